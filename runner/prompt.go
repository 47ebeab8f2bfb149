package runner

import (
	"encoding/json"
	"fmt"

	"github.com/nicksaban20/Green-Agent/domain"
)

// OpeningMessage composes the first message sent to the remote agent: the
// serialized tool catalog, fixed instructions describing the required
// response shape, and the user goal.
func OpeningMessage(catalog []domain.ToolSpec, userGoal string) string {
	tools, _ := json.MarshalIndent(catalog, "", "  ")

	return fmt.Sprintf(`Here's a list of tools you can use (you can use at most one tool at a time):
%s



Please respond in the JSON format. Please wrap the JSON part with <json>...</json> tags.
The JSON should contain:

- "name": the tool call function name, or "respond_to_user" if you want to respond directly.

- "kwargs": the arguments for the tool call, or {"message": "your message here"} if you want to respond directly.



Next, I'll provide you with the user message and tool call results.

User message: %s`, tools, userGoal)
}

// ToolResultMessage serializes a tool result for relay to the remote agent.
func ToolResultMessage(result map[string]any) string {
	payload, _ := json.Marshal(result)
	return "Tool result: " + string(payload)
}
