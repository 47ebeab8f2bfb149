// Package whiteagent provides implementations of the agent under test. The
// scripted agent replays deterministic per-scenario tool sequences and doubles
// as an in-process transport in tests; the Claude and OpenAI agents put a real
// model behind the same wire format.
package whiteagent

import "encoding/json"

// action mirrors the wire-level tool call shape the evaluator decodes.
type action struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs"`
}

func (a action) encode() string {
	payload, _ := json.Marshal(a)
	return string(payload)
}

func respond(message string) action {
	return action{Name: "respond_to_user", Kwargs: map[string]any{"message": message}}
}

func call(name string, kwargs map[string]any) action {
	return action{Name: name, Kwargs: kwargs}
}
