package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, apiKey string, model string, timeout time.Duration) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiClient{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (Result, error) {
	return c.generate(ctx, genai.Text(prompt))
}

func (c *GeminiClient) Describe(ctx context.Context, prompt string, img Image) (Result, error) {
	return c.generate(ctx, genai.Text(prompt), &genai.Blob{MIMEType: img.MIME, Data: img.Data})
}

func (c *GeminiClient) generate(ctx context.Context, parts ...genai.Part) (Result, error) {
	ctx, cancel := callContext(ctx, c.timeout)
	defer cancel()

	model := c.client.GenerativeModel(c.model)
	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return Result{}, err
	}
	return geminiResult(resp)
}

// geminiResult maps a raw response onto a Result. A call is rejected when the
// candidate list is empty or the first candidate finished for safety reasons.
func geminiResult(resp *genai.GenerateContentResponse) (Result, error) {
	if len(resp.Candidates) == 0 {
		return Result{Rejected: true, Reason: "no candidates returned"}, nil
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return Result{Rejected: true, Reason: cand.FinishReason.String()}, nil
	}

	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return Result{}, fmt.Errorf("candidate has no content parts")
	}
	txt, ok := cand.Content.Parts[0].(genai.Text)
	if !ok {
		return Result{}, fmt.Errorf("unexpected part type %T", cand.Content.Parts[0])
	}
	return Result{Text: string(txt)}, nil
}
