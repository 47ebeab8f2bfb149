// Package transport carries plaintext messages to the remote agent under
// test. The core only needs "send text, receive text, with a timeout"; the
// HTTP implementation here speaks the send-message envelope the agent
// exposes, and tests substitute an in-process Func.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nicksaban20/Green-Agent/core"
)

// Transport sends one message to the remote agent and blocks for its reply.
// Failures are terminal for the session; they are never retried here.
type Transport interface {
	Send(ctx context.Context, message string) (string, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, message string) (string, error)

// Send implements Transport.
func (f Func) Send(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

// Options holds optional overrides passed to NewHTTP().
type Options struct {
	// Timeout bounds one round-trip to the remote agent.
	Timeout time.Duration
	// ContextID is forwarded with every message so the remote side can
	// correlate a conversation.
	ContextID string
	// Client overrides the HTTP client (tests).
	Client *http.Client
}

// HTTP posts messages to the remote agent's /send-message endpoint.
type HTTP struct {
	baseURL   string
	contextID string
	client    *http.Client
}

// NewHTTP creates an HTTP transport for the agent at baseURL.
func NewHTTP(baseURL string, optFns ...func(o *Options)) *HTTP {
	opts := Options{Timeout: 30 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTP{baseURL: baseURL, contextID: opts.ContextID, client: client}
}

type sendRequest struct {
	Message   string `json:"message"`
	ContextID string `json:"context_id,omitempty"`
}

// Send posts the message and unwraps the reply envelope. The remote side may
// answer with an A2A-style {"result": {"parts": [{"text": ...}]}} payload, a
// flat {"message": ...} object, or raw text; all three are accepted.
func (t *HTTP) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(sendRequest{Message: message, ContextID: t.contextID})
	if err != nil {
		return "", &core.TransportError{Message: "failed to encode message", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/send-message", bytes.NewReader(body))
	if err != nil {
		return "", &core.TransportError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &core.TransportError{Message: fmt.Sprintf("failed to reach remote agent: %v", err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &core.TransportError{Message: "failed to read response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &core.TransportError{Message: fmt.Sprintf("remote agent returned status %d", resp.StatusCode)}
	}

	return unwrapEnvelope(raw), nil
}

func unwrapEnvelope(raw []byte) string {
	var envelope struct {
		Result *struct {
			Parts []struct {
				Text string `json:"text"`
				Root *struct {
					Text string `json:"text"`
				} `json:"root"`
			} `json:"parts"`
		} `json:"result"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Result != nil && len(envelope.Result.Parts) > 0 {
			part := envelope.Result.Parts[0]
			if part.Text != "" {
				return part.Text
			}
			if part.Root != nil && part.Root.Text != "" {
				return part.Root.Text
			}
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return string(raw)
}
