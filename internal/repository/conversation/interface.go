package conversation

import (
	"context"

	"github.com/iyunix/go-retriever/internal/domain"
)

// ConversationRepository handles conversation data operations.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error)
	FindByID(ctx context.Context, id uint) (*domain.Conversation, error)
	FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error)
	// DeleteWithMessages removes the conversation and every message that
	// belongs to it inside a single transaction.
	DeleteWithMessages(ctx context.Context, id uint) error
}
