// File: internal/dtos/rag.go
package dtos

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// QueryRequest is the JSON body for POST /rag/query.
type QueryRequest struct {
	Question       string `json:"question"`
	ConversationID uint   `json:"conversation_id"`
}

// SourceSnippet is one retrieved chunk returned with an answer. Content is a
// preview truncated to 200 characters.
type SourceSnippet struct {
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata"`
}

// QueryResponse is returned by POST /rag/query.
type QueryResponse struct {
	Answer         string          `json:"answer"`
	ConversationID uint            `json:"conversation_id"`
	Sources        []SourceSnippet `json:"sources"`
}

// UploadResponse is returned by POST /rag/upload.
type UploadResponse struct {
	Message        string `json:"message"`
	DocumentCount  int    `json:"document_count"`
	Status         string `json:"status"`
	ConversationID uint   `json:"conversation_id"`
}

// DocumentInfo describes one stored blob in GET /rag/documents.
type DocumentInfo struct {
	Filename     string `json:"filename"`
	Size         int64  `json:"size"`
	LastModified string `json:"last_modified"`
}
