package index

import "errors"

var (
	// ErrIndexNotFound means the user has no persisted index yet.
	ErrIndexNotFound = errors.New("vector index not found")
	// ErrEmptyDocument means every page of the document was empty or
	// whitespace-only.
	ErrEmptyDocument = errors.New("document contains no extractable text")
	// ErrInvalidUsername means the username is not usable as a storage key.
	ErrInvalidUsername = errors.New("invalid username for index storage")
)
