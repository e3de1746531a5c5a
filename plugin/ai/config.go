// Package ai provides the LLM service used by classification and agents.
package ai

import (
	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/internal/profile"
)

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider    string // openai, deepseek, or any OpenAI-compatible endpoint
	Model       string
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 2048
	Temperature float32 // default: 0.7
}

// NewConfigFromProfile creates LLM config from the server profile.
func NewConfigFromProfile(p *profile.Profile) *LLMConfig {
	cfg := &LLMConfig{
		Provider: p.LLMProvider,
		Model:    p.LLMModel,
		APIKey:   p.LLMAPIKey,
		BaseURL:  p.LLMBaseURL,
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.Provider == "deepseek" && cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.deepseek.com"
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *LLMConfig) {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2048
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
}

// Validate checks that the configuration can produce a working client.
func (cfg *LLMConfig) Validate() error {
	if cfg.Model == "" {
		return errors.New("llm model is required")
	}
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return errors.New("llm api key or base url is required")
	}
	return nil
}
