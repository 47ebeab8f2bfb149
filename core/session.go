package core

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// NewID returns a new unique identifier (UUID v4 string).
func NewID() string { return uuid.NewString() }

// Status is the lifecycle state of a session.
type Status string

const (
	// StatusRunning means the conversation loop is still in flight.
	StatusRunning Status = "running"
	// StatusComplete means the terminal sentinel tool was invoked.
	StatusComplete Status = "complete"
	// StatusBudgetExceeded means the turn budget ran out before completion.
	// This is a reportable end state, not an error.
	StatusBudgetExceeded Status = "budget_exceeded"
	// StatusProtocolError means the remote agent response could not be decoded.
	StatusProtocolError Status = "protocol_error"
	// StatusTransportError means the remote agent was unreachable or timed out.
	StatusTransportError Status = "transport_error"
)

// Terminal reports whether the status ends the conversation loop.
func (s Status) Terminal() bool { return s != StatusRunning }

// WorldStore is the narrow view of the world state store a session owns.
// The concrete implementation lives in the world package; core only needs
// enough surface to reset, snapshot and tear the store down.
type WorldStore interface {
	Snapshot() (map[string][]map[string]any, error)
	Reset(rowsByTable map[string][]map[string]any) error
	Close() error
}

// Session is the unit of one evaluation: it binds one world state store
// instance, one append-only call log, a turn counter and a terminal status.
// Sessions are never reused across scenarios; a fresh store per scenario is
// mandatory for isolation. Safe for concurrent access.
type Session struct {
	ID      string
	Domain  string
	Store   WorldStore
	Created time.Time

	mu      sync.RWMutex
	records []CallRecord
	turns   int
	status  Status
}

// NewSession creates a running session bound to the given store.
func NewSession(id, domain string, store WorldStore) *Session {
	return &Session{ID: id, Domain: domain, Store: store, Created: time.Now().UTC(), status: StatusRunning}
}

// AppendRecord appends a call record to the session log.
func (s *Session) AppendRecord(rec CallRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records returns a defensive copy of the call log.
func (s *Session) Records() []CallRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]CallRecord, len(s.records))
	copy(records, s.records)
	return records
}

// AddTurn increments and returns the turn counter.
func (s *Session) AddTurn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns++
	return s.turns
}

// Turns returns the number of turns consumed so far.
func (s *Session) Turns() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// Status returns the current session status.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// SetStatus transitions the session status. Terminal statuses are sticky:
// once set they are not overwritten.
func (s *Session) SetStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.Terminal() {
		return
	}
	s.status = st
}

// Close tears down the session's store.
func (s *Session) Close() error {
	if s.Store == nil {
		return nil
	}
	return s.Store.Close()
}

// Registry tracks live sessions keyed by an opaque identifier so concurrent
// batches can each own an isolated store and log. There is intentionally no
// global live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry constructs an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Create registers a new session for the given domain and store. An empty id
// is replaced with a fresh UUID.
func (r *Registry) Create(id, domain string, store WorldStore) *Session {
	if id == "" {
		id = NewID()
	}
	sess := NewSession(id, domain, store)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = sess
	return sess
}

// Get returns the session with the given id, if registered.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	return sess, ok
}

// Remove unregisters and closes the session with the given id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return sess.Close()
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
