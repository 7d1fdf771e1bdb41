package chat

import (
	"errors"
	"fmt"
)

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeRAG        ErrorType = "RAG"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
)

type ChatError struct {
	Type           ErrorType
	Operation      string
	Message        string
	ConversationID uint
	UserID         uint
	Cause          error
}

func (e *ChatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("Chat %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("Chat %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *ChatError) Unwrap() error {
	return e.Cause
}

func NewValidationError(operation, msg string) *ChatError {
	return &ChatError{Type: ErrTypeValidation, Operation: operation, Message: msg}
}

func NewRAGError(operation, msg string, cause error) *ChatError {
	return &ChatError{Type: ErrTypeRAG, Operation: operation, Message: msg, Cause: cause}
}

// IsValidationError reports whether err is a caller mistake rather than an
// internal failure.
func IsValidationError(err error) bool {
	var chatErr *ChatError
	return errors.As(err, &chatErr) && chatErr.Type == ErrTypeValidation
}
