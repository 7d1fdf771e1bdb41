package message

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/iyunix/go-retriever/internal/domain"
)

var (
	ErrMessageNotFound      = errors.New("message not found")
	ErrConversationNotFound = errors.New("conversation not found")
)

type gormMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &gormMessageRepository{db: db}
}

// Create appends a message row. The referenced conversation must exist; gorm
// does not guarantee FK enforcement on every backend, so existence is checked
// here.
func (r *gormMessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	if err := r.validateInput(message); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.conversationExists(tx, message.ConversationID); err != nil {
			return err
		}
		return tx.Create(message).Error
	})
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return nil, ErrConversationNotFound
		}
		log.Printf("[MessageRepository] Database error during message creation for conversation ID %d: %v", message.ConversationID, err)
		return nil, errors.New("database error creating message")
	}

	return message, nil
}

// CreatePair writes the question then the answer inside one transaction,
// preserving user-then-ai ordering by creation time.
func (r *gormMessageRepository) CreatePair(ctx context.Context, conversationID uint, question, answer string) error {
	pair := []*domain.Message{
		{ConversationID: conversationID, Content: question, Sender: domain.SenderUser},
		{ConversationID: conversationID, Content: answer, Sender: domain.SenderAI},
	}
	for _, m := range pair {
		if err := r.validateInput(m); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.conversationExists(tx, conversationID); err != nil {
			return err
		}
		for _, m := range pair {
			if err := tx.Create(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return ErrConversationNotFound
		}
		log.Printf("[MessageRepository] Database error creating message pair for conversation ID %d: %v", conversationID, err)
		return errors.New("database error creating message pair")
	}

	return nil
}

func (r *gormMessageRepository) FindByConversationID(ctx context.Context, conversationID uint) ([]domain.Message, error) {
	if conversationID == 0 {
		return nil, errors.New("invalid conversation ID")
	}

	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error finding messages for conversation ID %d: %v", conversationID, err)
		return nil, errors.New("database error fetching messages")
	}

	return messages, nil
}

func (r *gormMessageRepository) CountByConversationID(ctx context.Context, conversationID uint) (int64, error) {
	if conversationID == 0 {
		return 0, errors.New("invalid conversation ID")
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("conversation_id = ?", conversationID).
		Count(&count).Error
	if err != nil {
		log.Printf("[MessageRepository] Database error counting messages for conversation ID %d: %v", conversationID, err)
		return 0, errors.New("database error counting messages")
	}

	return count, nil
}

func (r *gormMessageRepository) conversationExists(tx *gorm.DB, conversationID uint) error {
	var count int64
	if err := tx.Model(&domain.Conversation{}).Where("id = ?", conversationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrConversationNotFound
	}
	return nil
}

func (r *gormMessageRepository) validateInput(message *domain.Message) error {
	if message == nil {
		return errors.New("message cannot be nil")
	}
	if message.ConversationID == 0 {
		return errors.New("conversation ID is required")
	}
	if strings.TrimSpace(message.Content) == "" {
		return errors.New("message content cannot be empty")
	}
	if len(message.Content) > domain.MaxMessageLength {
		return errors.New("message content too long (max 10000 characters)")
	}
	if message.Sender != domain.SenderUser && message.Sender != domain.SenderAI {
		return errors.New("sender must be 'user' or 'ai'")
	}
	return nil
}
