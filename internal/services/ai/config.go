// File: internal/services/ai/config.go
package ai

import (
	"fmt"
	"time"
)

type Config struct {
	// Embedding Configuration
	EmbeddingKey     string
	EmbeddingBaseURL string
	EmbeddingModel   string

	// LLM Configuration
	LLMKey     string
	LLMBaseURL string
	LLMModel   string

	// Performance Configuration. Timeouts bound every external call so a
	// slow provider cannot hang a request indefinitely.
	EmbeddingTimeout  time.Duration
	CompletionTimeout time.Duration

	// Model Parameters
	Temperature float32
	TopP        float32
}

func (c *Config) Validate() error {
	if c.EmbeddingKey == "" {
		return fmt.Errorf("embedding API key is required")
	}
	if c.LLMKey == "" {
		return fmt.Errorf("LLM API key is required")
	}
	if c.EmbeddingModel == "" {
		return fmt.Errorf("embedding model is required")
	}
	if c.LLMModel == "" {
		return fmt.Errorf("LLM model is required")
	}
	if c.EmbeddingTimeout <= 0 || c.CompletionTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		EmbeddingTimeout:  30 * time.Second,
		CompletionTimeout: 2 * time.Minute,
		Temperature:       0.7,
		TopP:              0.9,
	}
}
