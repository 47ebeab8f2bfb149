package runner

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/nicksaban20/Green-Agent/core"
)

// Action is the single structured action decoded from a remote agent
// response: the tool to invoke (or the terminal sentinel) and its keyword
// arguments.
type Action struct {
	Name   string         `json:"name"`
	Kwargs map[string]any `json:"kwargs"`
}

var (
	jsonTagRe = regexp.MustCompile(`(?s)<json>(.*?)</json>`)
	braceRe   = regexp.MustCompile(`(?s)\{.*\}`)
)

// DecodeAction extracts one action from a raw agent response. Preferred form
// is a <json>...</json> block; a bare JSON object and the first {...} region
// are accepted as fallbacks. Malformed JSON is retried once with literal
// newlines escaped; if it still does not parse the session ends in a
// protocol error.
func DecodeAction(text string) (Action, error) {
	if m := jsonTagRe.FindStringSubmatch(text); m != nil {
		return parseAction(strings.TrimSpace(m[1]))
	}

	trimmed := strings.TrimSpace(text)
	if action, err := parseAction(trimmed); err == nil {
		return action, nil
	}

	if region := braceRe.FindString(text); region != "" {
		return parseAction(region)
	}

	return Action{}, core.NewProtocolError("no JSON action found in agent response", text)
}

func parseAction(payload string) (Action, error) {
	var action Action
	if err := json.Unmarshal([]byte(payload), &action); err != nil {
		// Models sometimes emit literal newlines inside JSON strings; escape
		// them once and re-parse before giving up.
		repaired := escapeNewlines(payload)
		if err := json.Unmarshal([]byte(repaired), &action); err != nil {
			return Action{}, core.NewProtocolError("malformed action JSON", payload)
		}
	}
	if action.Name == "" {
		return Action{}, core.NewProtocolError("action missing tool name", payload)
	}
	if action.Kwargs == nil {
		action.Kwargs = map[string]any{}
	}
	return action, nil
}

// escapeNewlines replaces every literal newline not already preceded by a
// backslash with the two-character sequence \n.
func escapeNewlines(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' && (i == 0 || s[i-1] != '\\') {
			b.WriteString(`\n`)
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
