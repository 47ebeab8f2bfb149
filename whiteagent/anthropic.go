package whiteagent

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/nicksaban20/Green-Agent/logging"
)

// ClaudeOptions configures the Claude-backed agent (model id, max tokens,
// API key). Extend via functional options to preserve stability.
type ClaudeOptions struct {
	Model     anthropic.Model
	MaxTokens int64
	APIKey    string
	Logger    logging.Logger
}

// Claude is a white agent backed by the Anthropic Messages API. It keeps the
// full conversation history so the model sees prior tool results when it
// chooses the next action.
type Claude struct {
	client *anthropic.Client
	opts   ClaudeOptions

	mu      sync.Mutex
	history []anthropic.MessageParam
}

// NewClaude creates a Claude agent using the official client.
func NewClaude(optFns ...func(o *ClaudeOptions)) *Claude {
	opts := ClaudeOptions{
		Model:     anthropic.ModelClaude3_5Sonnet20241022,
		MaxTokens: 1024,
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropic.NewClient(clientOpts...)

	return &Claude{
		client: &client,
		opts:   opts,
	}
}

// Reset clears the conversation history between evaluation sessions.
func (c *Claude) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = nil
}

// Send implements transport.Transport. An opening message (containing the
// tool catalog) starts a fresh conversation.
func (c *Claude) Send(ctx context.Context, message string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if strings.Contains(message, "Here's a list of tools") {
		c.history = nil
	}

	c.history = append(c.history, anthropic.NewUserMessage(anthropic.NewTextBlock(message)))

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.opts.Model,
		MaxTokens: c.opts.MaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: c.history,
	})
	if err != nil {
		return "", fmt.Errorf("anthropic api error: %w", err)
	}

	var sb strings.Builder

	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.AsText().Text)
		}
	}

	reply := sb.String()

	c.history = append(c.history, anthropic.NewAssistantMessage(anthropic.NewTextBlock(reply)))

	c.opts.Logger.Debug("claude agent reply", "model", c.opts.Model, "length", len(reply))

	return reply, nil
}
