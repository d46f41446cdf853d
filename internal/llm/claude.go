package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/liushuangls/go-anthropic/v2"
)

type ClaudeClient struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
}

func NewClaudeClient(apiKey string, model string, baseURL string, timeout time.Duration) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	client := anthropic.NewClient(apiKey, opts...)

	return &ClaudeClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, prompt string) (Result, error) {
	return c.message(ctx, []anthropic.MessageContent{
		anthropic.NewTextMessageContent(prompt),
	})
}

func (c *ClaudeClient) Describe(ctx context.Context, prompt string, img Image) (Result, error) {
	return c.message(ctx, []anthropic.MessageContent{
		anthropic.NewImageMessageContent(
			anthropic.NewMessageContentSource(anthropic.MessagesContentSourceTypeBase64, img.MIME, img.Data),
		),
		anthropic.NewTextMessageContent(prompt),
	})
}

// The Messages API has no safety finish reason; a declined request surfaces
// as an API error, so results here are never Rejected.
func (c *ClaudeClient) message(ctx context.Context, content []anthropic.MessageContent) (Result, error) {
	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model: anthropic.Model(c.model),
		Messages: []anthropic.Message{
			{Role: anthropic.RoleUser, Content: content},
		},
		MaxTokens: 4096,
	})
	if err != nil {
		return Result{}, err
	}

	if len(resp.Content) > 0 && resp.Content[0].Text != nil {
		return Result{Text: *resp.Content[0].Text}, nil
	}
	return Result{}, fmt.Errorf("no response content")
}
