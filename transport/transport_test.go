package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nicksaban20/Green-Agent/core"
)

func TestHTTP_Send(t *testing.T) {
	var received sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-message", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"message": "the reply"}`))
	}))
	defer srv.Close()

	transport := NewHTTP(srv.URL, func(o *Options) {
		o.ContextID = "ctx-1"
	})

	reply, err := transport.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "the reply", reply)
	assert.Equal(t, "hello", received.Message)
	assert.Equal(t, "ctx-1", received.ContextID)
}

func TestHTTP_Send_A2AEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"parts": [{"text": "from parts"}]}}`))
	}))
	defer srv.Close()

	reply, err := NewHTTP(srv.URL).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "from parts", reply)
}

func TestHTTP_Send_A2ARootEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result": {"parts": [{"root": {"text": "from root"}}]}}`))
	}))
	defer srv.Close()

	reply, err := NewHTTP(srv.URL).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "from root", reply)
}

func TestHTTP_Send_RawFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<json>{"name": "respond_to_user", "kwargs": {}}</json>`))
	}))
	defer srv.Close()

	reply, err := NewHTTP(srv.URL).Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, `<json>{"name": "respond_to_user", "kwargs": {}}</json>`, reply)
}

func TestHTTP_Send_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Send(context.Background(), "hello")
	require.Error(t, err)

	var transportErr *core.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestHTTP_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewHTTP(srv.URL).Send(context.Background(), "hello")
	require.Error(t, err)

	var transportErr *core.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestFunc_Adapter(t *testing.T) {
	f := Func(func(_ context.Context, message string) (string, error) {
		return "echo: " + message, nil
	})

	reply, err := f.Send(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", reply)
}
