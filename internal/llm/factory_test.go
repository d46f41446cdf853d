package llm

import (
	"context"
	"testing"

	"github.com/agenthands/deckcheck/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewClientUnsupportedProvider(t *testing.T) {
	_, err := NewClient(context.Background(), config.LLMConfig{Provider: "bard"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported llm provider")
}

func TestNewClientOpenAICompatibleProviders(t *testing.T) {
	for _, provider := range []string{"openai", "ollama", "claude"} {
		c, err := NewClient(context.Background(), config.LLMConfig{
			Provider: provider,
			Model:    "m",
			APIKey:   "k",
			BaseURL:  "http://localhost:11434",
		})
		assert.NoError(t, err, provider)
		assert.NotNil(t, c, provider)
	}
}
