package extract

import (
	"context"

	"github.com/agenthands/deckcheck/internal/llm"
)

// MockVision scripts vision responses in call order and records what it was
// asked.
type MockVision struct {
	Response      llm.Result
	ResponseQueue []llm.Result
	ErrQueue      []error
	Prompts       []string
	Images        []llm.Image
}

func (m *MockVision) Describe(ctx context.Context, prompt string, img llm.Image) (llm.Result, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Images = append(m.Images, img)

	var err error
	if len(m.ErrQueue) > 0 {
		err = m.ErrQueue[0]
		m.ErrQueue = m.ErrQueue[1:]
	}

	if len(m.ResponseQueue) > 0 {
		resp := m.ResponseQueue[0]
		m.ResponseQueue = m.ResponseQueue[1:]
		return resp, err
	}
	return m.Response, err
}
