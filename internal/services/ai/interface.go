package ai

import "context"

// EmbeddingProvider handles text embeddings
type EmbeddingProvider interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// CompletionProvider handles chat completions
type CompletionProvider interface {
	GetCompletion(ctx context.Context, prompt string) (string, error)
}

// AIProvider combines embedding and completion capabilities
type AIProvider interface {
	EmbeddingProvider
	CompletionProvider
}
