// Package assist wraps an OpenAI-compatible chat completion backend. It is
// optional: when no key is configured the constructor returns nil and callers
// stay on the rule-based path.
package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/albapepper/matchfeed/internal/config"
)

// Client holds a configured completion backend.
type Client struct {
	client openai.Client
	model  string
}

// NewFromConfig builds a Client from configuration. An OpenAI key takes
// precedence; an OpenRouter key routes through its OpenAI-compatible
// endpoint with the configured model. Returns nil when neither is set.
func NewFromConfig(cfg *config.Config) *Client {
	switch {
	case cfg.OpenAIAPIKey != "":
		return &Client{
			client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
			model:  "gpt-3.5-turbo",
		}
	case cfg.OpenRouterAPIKey != "":
		return &Client{
			client: openai.NewClient(
				option.WithAPIKey(cfg.OpenRouterAPIKey),
				option.WithBaseURL(cfg.OpenRouterBaseURL),
			),
			model: cfg.OpenRouterModel,
		}
	default:
		return nil
	}
}

// Complete sends one system+user exchange and returns the trimmed reply.
func (c *Client) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userText),
		},
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("chat completion: empty choices")
	}
	out := strings.TrimSpace(completion.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("chat completion: empty content")
	}
	return out, nil
}
