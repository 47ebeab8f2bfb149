package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore implements WorldStore without a real database.
type stubStore struct {
	closed bool
}

func (s *stubStore) Snapshot() (map[string][]map[string]any, error) {
	return map[string][]map[string]any{}, nil
}

func (s *stubStore) Reset(map[string][]map[string]any) error { return nil }

func (s *stubStore) Close() error {
	s.closed = true
	return nil
}

// -------------------- Session Tests --------------------

func TestSession_Records(t *testing.T) {
	sess := NewSession(NewID(), "airline", &stubStore{})

	sess.AppendRecord(CallRecord{Kind: RecordCall, Tool: "search_flights", Timestamp: time.Now()})
	sess.AppendRecord(CallRecord{Kind: RecordResult, Tool: "search_flights", Timestamp: time.Now()})

	records := sess.Records()
	require.Len(t, records, 2)

	// The returned slice is a copy; mutating it must not affect the session.
	records[0].Tool = "tampered"
	assert.Equal(t, "search_flights", sess.Records()[0].Tool)
}

func TestSession_Turns(t *testing.T) {
	sess := NewSession(NewID(), "retail", &stubStore{})

	assert.Equal(t, 0, sess.Turns())
	assert.Equal(t, 1, sess.AddTurn())
	assert.Equal(t, 2, sess.AddTurn())
	assert.Equal(t, 2, sess.Turns())
}

func TestSession_TerminalStatusSticky(t *testing.T) {
	sess := NewSession(NewID(), "airline", &stubStore{})

	assert.Equal(t, StatusRunning, sess.Status())
	sess.SetStatus(StatusProtocolError)
	sess.SetStatus(StatusComplete)
	assert.Equal(t, StatusProtocolError, sess.Status())
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusComplete.Terminal())
	assert.True(t, StatusBudgetExceeded.Terminal())
	assert.True(t, StatusProtocolError.Terminal())
	assert.True(t, StatusTransportError.Terminal())
}

// -------------------- Registry Tests --------------------

func TestRegistry_Lifecycle(t *testing.T) {
	reg := NewRegistry()
	store := &stubStore{}

	sess := reg.Create("", "airline", store)
	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, reg.Len())

	got, ok := reg.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)

	require.NoError(t, reg.Remove(sess.ID))
	assert.Equal(t, 0, reg.Len())
	assert.True(t, store.closed)

	_, ok = reg.Get(sess.ID)
	assert.False(t, ok)
}

func TestRegistry_ExplicitID(t *testing.T) {
	reg := NewRegistry()

	sess := reg.Create("my-session", "retail", &stubStore{})
	assert.Equal(t, "my-session", sess.ID)

	got, ok := reg.Get("my-session")
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestRegistry_RemoveUnknown(t *testing.T) {
	reg := NewRegistry()
	assert.NoError(t, reg.Remove("nope"))
}
