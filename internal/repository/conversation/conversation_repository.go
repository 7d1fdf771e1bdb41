package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/iyunix/go-retriever/internal/domain"
)

var ErrConversationNotFound = errors.New("conversation not found")

type gormConversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &gormConversationRepository{db: db}
}

// Create persists a new conversation and returns it with its generated ID.
func (r *gormConversationRepository) Create(ctx context.Context, conv *domain.Conversation) (*domain.Conversation, error) {
	if err := r.validateInput(conv); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(conv).Error; err != nil {
		log.Printf("[ConversationRepository] Database error during creation for user ID %d: %v", conv.UserID, err)
		return nil, errors.New("database error creating conversation")
	}

	log.Printf("[ConversationRepository] Conversation created with ID: %d for user: %d", conv.ID, conv.UserID)
	return conv, nil
}

func (r *gormConversationRepository) FindByID(ctx context.Context, id uint) (*domain.Conversation, error) {
	if id == 0 {
		return nil, errors.New("invalid conversation ID")
	}

	var conv domain.Conversation
	err := r.db.WithContext(ctx).First(&conv, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Printf("[ConversationRepository] FindByID database error: %v", err)
		return nil, errors.New("database query failed")
	}
	return &conv, nil
}

func (r *gormConversationRepository) FindByUserID(ctx context.Context, userID uint) ([]domain.Conversation, error) {
	if userID == 0 {
		return nil, errors.New("invalid user ID")
	}

	var convs []domain.Conversation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&convs).Error
	if err != nil {
		log.Printf("[ConversationRepository] Database error finding conversations for user ID %d: %v", userID, err)
		return nil, errors.New("database error fetching conversations")
	}

	return convs, nil
}

// DeleteWithMessages deletes all messages for the conversation and then the
// conversation itself. Both deletions run inside one transaction: partial
// deletion must never be observable.
func (r *gormConversationRepository) DeleteWithMessages(ctx context.Context, id uint) error {
	if id == 0 {
		return errors.New("invalid conversation ID")
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var conv domain.Conversation
		if err := tx.First(&conv, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrConversationNotFound
			}
			return err
		}

		if err := tx.Where("conversation_id = ?", id).Delete(&domain.Message{}).Error; err != nil {
			return err
		}

		return tx.Delete(&conv).Error
	})

	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return ErrConversationNotFound
		}
		log.Printf("[ConversationRepository] Database error deleting conversation ID %d: %v", id, err)
		return errors.New("database error deleting conversation")
	}

	log.Printf("[ConversationRepository] Conversation %d and its messages deleted", id)
	return nil
}

func (r *gormConversationRepository) validateInput(conv *domain.Conversation) error {
	if conv == nil {
		return errors.New("conversation cannot be nil")
	}
	if conv.UserID == 0 {
		return errors.New("user ID is required")
	}
	if strings.TrimSpace(conv.FileName) == "" {
		return errors.New("file name is required")
	}
	if len(conv.Title) > 255 {
		return errors.New("title must be 255 characters or less")
	}
	return nil
}
