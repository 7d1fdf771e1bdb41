package ai

import "fmt"

type ErrorType string

const (
	ErrTypeConfig     ErrorType = "CONFIG"
	ErrTypeProvider   ErrorType = "PROVIDER"
	ErrTypeValidation ErrorType = "VALIDATION"
)

type AIError struct {
	Type      ErrorType
	Message   string
	Operation string
	Cause     error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("AI %s error in %s: %s (caused by: %v)",
			e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("AI %s error in %s: %s", e.Type, e.Operation, e.Message)
}

func (e *AIError) Unwrap() error {
	return e.Cause
}

func NewConfigError(msg string) *AIError {
	return &AIError{Type: ErrTypeConfig, Message: msg, Operation: "config"}
}

func NewProviderError(operation, msg string, cause error) *AIError {
	return &AIError{Type: ErrTypeProvider, Operation: operation, Message: msg, Cause: cause}
}
