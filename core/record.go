package core

import "time"

// RecordKind distinguishes the two halves of a tool execution in the log.
type RecordKind string

const (
	// RecordCall marks the entry appended before a tool handler runs.
	RecordCall RecordKind = "call"
	// RecordResult marks the entry appended after a tool handler returned.
	RecordResult RecordKind = "result"
)

// CallRecord is one entry of the append-only session log. Every tool
// execution appends exactly two records: a call carrying the arguments,
// then a result carrying the payload handed back to the remote agent.
// Records are never mutated after append.
type CallRecord struct {
	Kind      RecordKind     `json:"type"`
	Tool      string         `json:"tool"`
	Args      map[string]any `json:"args,omitempty"`
	Result    map[string]any `json:"result,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
