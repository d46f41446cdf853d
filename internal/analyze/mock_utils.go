package analyze

import (
	"context"

	"github.com/agenthands/deckcheck/internal/llm"
)

type MockLLM struct {
	Response llm.Result
	Err      error
	Prompt   string
}

func (m *MockLLM) Generate(ctx context.Context, prompt string) (llm.Result, error) {
	m.Prompt = prompt
	if m.Err != nil {
		return llm.Result{}, m.Err
	}
	return m.Response, nil
}
