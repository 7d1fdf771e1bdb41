// File: internal/services/ai/openai_provider.go
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to two OpenAI-compatible endpoints: one for
// embeddings, one for chat completions. They are configured separately so
// the embedding service and the LLM can live behind different vendors.
type OpenAIProvider struct {
	config          *Config
	embeddingClient *openai.Client
	llmClient       *openai.Client
}

func NewOpenAIProvider(config *Config) (*OpenAIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	embeddingConfig := openai.DefaultConfig(config.EmbeddingKey)
	if config.EmbeddingBaseURL != "" {
		embeddingConfig.BaseURL = config.EmbeddingBaseURL
	}

	llmConfig := openai.DefaultConfig(config.LLMKey)
	if config.LLMBaseURL != "" {
		llmConfig.BaseURL = config.LLMBaseURL
	}

	return &OpenAIProvider{
		config:          config,
		embeddingClient: openai.NewClientWithConfig(embeddingConfig),
		llmClient:       openai.NewClientWithConfig(llmConfig),
	}, nil
}

func (p *OpenAIProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.EmbeddingTimeout)
	defer cancel()

	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.config.EmbeddingModel),
	}

	resp, err := p.embeddingClient.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, NewProviderError("embedding", "failed to create embedding", err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, &AIError{
			Type:      ErrTypeProvider,
			Operation: "embedding",
			Message:   "empty embedding response",
		}
	}

	return resp.Data[0].Embedding, nil
}

func (p *OpenAIProvider) GetCompletion(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.CompletionTimeout)
	defer cancel()

	resp, err := p.llmClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: p.config.LLMModel,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: p.config.Temperature,
			TopP:        p.config.TopP,
		},
	)
	if err != nil {
		return "", NewProviderError("completion", "failed to create completion", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{
			Type:      ErrTypeProvider,
			Operation: "completion",
			Message:   "empty completion response",
		}
	}

	return resp.Choices[0].Message.Content, nil
}
