// File: internal/domain/conversation.go
package domain

import "time"

// MaxTitleLength bounds a conversation title, matching the column size.
const MaxTitleLength = 255

// Conversation is a single chat thread, created when a user uploads and
// indexes a document.
type Conversation struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	FileName  string    `json:"file_name" gorm:"size:255;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
}
