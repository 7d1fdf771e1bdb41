// File: internal/domain/message.go
package domain

import "time"

// Message sender values. Messages are written in user/ai pairs per query turn.
const (
	SenderUser = "user"
	SenderAI   = "ai"
)

// MaxMessageLength bounds persisted message content.
const MaxMessageLength = 10000

// Message represents a single message within a conversation.
type Message struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	ConversationID uint      `json:"conversation_id" gorm:"not null;index"`
	Content        string    `json:"content" gorm:"size:10000;not null"`
	Sender         string    `json:"sender" gorm:"size:10;not null"`
	CreatedAt      time.Time `json:"created_at"`
}
