package whiteagent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/openai/openai-go"

	"github.com/nicksaban20/Green-Agent/logging"
)

// OpenAIOptions configures the OpenAI-backed agent.
type OpenAIOptions struct {
	Model  string
	Logger logging.Logger
}

// OpenAI is a white agent backed by the Chat Completions API. Like Claude it
// carries the conversation history across turns within one session.
type OpenAI struct {
	client *openai.Client
	opts   OpenAIOptions

	mu      sync.Mutex
	history []openai.ChatCompletionMessageParamUnion
}

// NewOpenAI creates an OpenAI agent using the official client. The API key is
// read from the environment by the SDK.
func NewOpenAI(optFns ...func(o *OpenAIOptions)) *OpenAI {
	opts := OpenAIOptions{
		Model:  openai.ChatModelGPT4oMini,
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client := openai.NewClient()

	return &OpenAI{
		client: &client,
		opts:   opts,
	}
}

// Reset clears the conversation history between evaluation sessions.
func (o *OpenAI) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.history = nil
}

// Send implements transport.Transport.
func (o *OpenAI) Send(ctx context.Context, message string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if strings.Contains(message, "Here's a list of tools") || len(o.history) == 0 {
		o.history = []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
		}
	}

	o.history = append(o.history, openai.UserMessage(message))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    o.opts.Model,
		Messages: o.history,
	})
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai response contained no choices")
	}

	reply := resp.Choices[0].Message.Content

	o.history = append(o.history, openai.AssistantMessage(reply))

	o.opts.Logger.Debug("openai agent reply", "model", o.opts.Model, "length", len(reply))

	return reply, nil
}
