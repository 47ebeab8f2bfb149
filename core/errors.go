package core

import "fmt"

// ProtocolError indicates the remote agent produced a response the
// orchestrator could not decode into a structured action. It terminates the
// session; the raw turn count reached so far travels with the report.
type ProtocolError struct {
	Message string `json:"message"`
	Raw     string `json:"raw,omitempty"` // truncated offending payload
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: %s", e.Message)
}

// NewProtocolError builds a ProtocolError keeping at most 200 bytes of the
// offending payload for diagnostics.
func NewProtocolError(message, raw string) *ProtocolError {
	if len(raw) > 200 {
		raw = raw[:200]
	}
	return &ProtocolError{Message: message, Raw: raw}
}

// TransportError indicates the remote agent was unreachable or timed out.
// It terminates the session and is never retried automatically.
type TransportError struct {
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StorageError indicates a schema or constraint violation in the world state
// store. The executor converts it to a tool-level error result; the
// orchestrator never sees it raw.
type StorageError struct {
	Op  string `json:"op"`
	Err error  `json:"-"`
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// BusinessRuleError indicates a policy check rejected a tool operation
// (cancellation window, stock sufficiency, missing entity). Its message is
// surfaced verbatim as the tool-level error result so the remote agent can
// react to it.
type BusinessRuleError struct {
	Message string `json:"message"`
}

func (e *BusinessRuleError) Error() string { return e.Message }

// NewBusinessRuleError builds a BusinessRuleError with a formatted message.
func NewBusinessRuleError(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}
