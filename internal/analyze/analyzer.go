// Package analyze turns an extracted content blob into an inconsistency
// report by way of a single model call. The report is an opaque string; no
// structure is parsed out of it.
package analyze

import (
	"context"
	"fmt"
	"log"

	"github.com/agenthands/deckcheck/internal/llm"
)

type Analyzer struct {
	LLM      llm.TextClient
	Preamble string
}

func NewAnalyzer(client llm.TextClient, preamble string) *Analyzer {
	return &Analyzer{LLM: client, Preamble: preamble}
}

// Run submits the reviewer preamble plus the presentation content and returns
// the model's report verbatim.
func (a *Analyzer) Run(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf("%s\n\nHere is the presentation content:\n\n%s", a.Preamble, content)

	log.Printf("Analyzing content... This may take a moment.")

	res, err := a.LLM.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("analysis request failed: %w", err)
	}

	// Unlike the per-image OCR path, the result is read without consulting
	// Rejected: review prompts over already-extracted text are assumed safe.
	return res.Text, nil
}
