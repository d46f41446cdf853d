package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"
)

type OpenAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIClient(apiKey string, model string, baseURL string, timeout time.Duration) *OpenAIClient {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (Result, error) {
	return c.chat(ctx, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
}

func (c *OpenAIClient) Describe(ctx context.Context, prompt string, img Image) (Result, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIME, base64.StdEncoding.EncodeToString(img.Data))
	return c.chat(ctx, openai.ChatCompletionMessage{
		Role: openai.ChatMessageRoleUser,
		MultiContent: []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt},
			{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{URL: dataURL}},
		},
	})
}

func (c *OpenAIClient) chat(ctx context.Context, msg openai.ChatCompletionMessage) (Result, error) {
	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessage{msg},
	})
	if err != nil {
		return Result{}, err
	}
	return openaiResult(resp)
}

func openaiResult(resp openai.ChatCompletionResponse) (Result, error) {
	if len(resp.Choices) == 0 {
		return Result{Rejected: true, Reason: "no response choices"}, nil
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return Result{Rejected: true, Reason: string(choice.FinishReason)}, nil
	}
	return Result{Text: choice.Message.Content}, nil
}
