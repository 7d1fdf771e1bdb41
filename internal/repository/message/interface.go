package message

import (
	"context"

	"github.com/iyunix/go-retriever/internal/domain"
)

// MessageRepository handles message data operations.
type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	// CreatePair appends a question (sender=user) and its answer (sender=ai)
	// to a conversation in one transaction, so a question is never persisted
	// without its answer.
	CreatePair(ctx context.Context, conversationID uint, question, answer string) error
	FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error)
	CountByConversationID(ctx context.Context, conversationID uint) (int64, error)
}
