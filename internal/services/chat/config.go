package chat

import "fmt"

type Config struct {
	// RetrievalTopK is the number of similar chunks supplied as context.
	// Narrow by default: one chunk keeps prompts small and cheap.
	RetrievalTopK int

	// SourcePreviewLength bounds the cited snippet returned to the caller.
	SourcePreviewLength int

	// MaxQuestionLength bounds an incoming question; answers are bounded by
	// the message store's own content limit.
	MaxQuestionLength int
}

func (c *Config) Validate() error {
	if c.RetrievalTopK <= 0 {
		return fmt.Errorf("retrieval_top_k must be positive")
	}
	if c.RetrievalTopK > 20 {
		return fmt.Errorf("retrieval_top_k cannot exceed 20")
	}
	if c.SourcePreviewLength <= 0 {
		return fmt.Errorf("source_preview_length must be positive")
	}
	if c.MaxQuestionLength <= 0 {
		return fmt.Errorf("max_question_length must be positive")
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		RetrievalTopK:       1,
		SourcePreviewLength: 200,
		MaxQuestionLength:   2000,
	}
}
