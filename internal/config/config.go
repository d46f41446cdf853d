package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultOCRPrompt = "Extract all text verbatim from this image. If no text is present, say nothing."

	DefaultAnalysisPrompt = `You are a meticulous business analyst. Your task is to review the provided content, extracted slide-by-slide from a presentation, and identify all factual or logical inconsistencies.

For each inconsistency you find, provide a clear, structured report using the following format:
**Inconsistency Found:**
- **Slides Involved:** [e.g., Slide 2 and Slide 5]
- **Conflicting Information:** [Quote the specific conflicting pieces of data or text]
- **Analysis:** [Briefly explain why this is an inconsistency]
---
If you find no inconsistencies, your only response should be: "No inconsistencies found."`
)

type LLMConfig struct {
	Provider       string `toml:"provider"`
	Model          string `toml:"model"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
}

type PromptsConfig struct {
	OCR      string `toml:"ocr"`
	Analysis string `toml:"analysis"`
}

type Config struct {
	LLM     LLMConfig     `toml:"llm"`
	Prompts PromptsConfig `toml:"prompts"`
}

func Default() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "gemini",
			Model:          "gemini-1.5-flash",
			RequestTimeout: 120,
		},
		Prompts: PromptsConfig{
			OCR:      DefaultOCRPrompt,
			Analysis: DefaultAnalysisPrompt,
		},
	}
}

// Load reads a TOML config from path. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	if cfg.LLM.RequestTimeout <= 0 {
		cfg.LLM.RequestTimeout = 120
	}
	if cfg.Prompts.OCR == "" {
		cfg.Prompts.OCR = DefaultOCRPrompt
	}
	if cfg.Prompts.Analysis == "" {
		cfg.Prompts.Analysis = DefaultAnalysisPrompt
	}

	return cfg, nil
}

// ResolveAPIKey fills LLM.APIKey from the environment when the config leaves
// it empty. Environment variables win over the config value.
func (c *Config) ResolveAPIKey() string {
	candidates := []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
	switch strings.ToLower(c.LLM.Provider) {
	case "openai":
		candidates = []string{"OPENAI_API_KEY"}
	case "claude":
		candidates = []string{"ANTHROPIC_API_KEY"}
	case "ollama":
		candidates = nil
	}

	for _, name := range candidates {
		if v := os.Getenv(name); v != "" {
			c.LLM.APIKey = v
			return v
		}
	}
	return c.LLM.APIKey
}
