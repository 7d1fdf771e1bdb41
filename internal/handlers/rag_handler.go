package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iyunix/go-retriever/internal/dtos"
	"github.com/iyunix/go-retriever/internal/middleware"
	"github.com/iyunix/go-retriever/internal/repository/conversation"
	"github.com/iyunix/go-retriever/internal/services/blob"
	"github.com/iyunix/go-retriever/internal/services/chat"
	"github.com/iyunix/go-retriever/internal/services/index"
)

const maxUploadBytes = 50 << 20

// RAGHandler holds the dependencies for document and query endpoints.
type RAGHandler struct {
	ChatService  *chat.Service
	IndexService *index.Service
	Store        blob.ObjectStore
}

func NewRAGHandler(chatService *chat.Service, indexService *index.Service, store blob.ObjectStore) *RAGHandler {
	return &RAGHandler{
		ChatService:  chatService,
		IndexService: indexService,
		Store:        store,
	}
}

// Upload accepts one PDF, archives the raw bytes, rebuilds the caller's
// index from it and opens a conversation for the document.
func (h *RAGHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	filename := path.Base(header.Filename)
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "Only PDF files are allowed")
		return
	}

	raw, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	key := username + "/" + filename
	if err := h.Store.Put(r.Context(), key, bytes.NewReader(raw), int64(len(raw)), "application/pdf"); err != nil {
		log.Printf("[RAGHandler] Blob upload failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not store document")
		return
	}

	idx, err := h.IndexService.Build(r.Context(), raw, username, filename)
	if err != nil {
		if errors.Is(err, index.ErrEmptyDocument) {
			writeError(w, http.StatusBadRequest, "Document contains no extractable text")
			return
		}
		log.Printf("[RAGHandler] Index build failed for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "Could not process document")
		return
	}

	conv, err := h.ChatService.CreateConversation(r.Context(), userID, filename, "analysis_"+filename)
	if err != nil {
		log.Printf("[RAGHandler] Conversation creation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not create conversation")
		return
	}

	writeJSON(w, http.StatusOK, dtos.UploadResponse{
		Message:        fmt.Sprintf("Successfully uploaded and processed %s", filename),
		DocumentCount:  idx.PageCount,
		Status:         "ready_for_queries",
		ConversationID: conv.ID,
	})
}

// Query answers one question against the caller's index inside an existing
// conversation.
func (h *RAGHandler) Query(w http.ResponseWriter, r *http.Request) {
	userID, username, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req dtos.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ConversationID == 0 {
		writeError(w, http.StatusBadRequest, "Missing conversation_id")
		return
	}

	result, err := h.ChatService.Answer(r.Context(), userID, username, req.ConversationID, req.Question)
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrConversationNotFound):
			writeError(w, http.StatusNotFound, "Conversation not found")
		case errors.Is(err, index.ErrIndexNotFound):
			writeError(w, http.StatusNotFound, "No documents found. Please upload a PDF file first.")
		case chat.IsValidationError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[RAGHandler] Query failed for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "Could not answer the question")
		}
		return
	}

	sources := make([]dtos.SourceSnippet, 0, len(result.Sources))
	for _, s := range result.Sources {
		sources = append(sources, dtos.SourceSnippet{Content: s.Content, Metadata: s.Metadata})
	}

	writeJSON(w, http.StatusOK, dtos.QueryResponse{
		Answer:         result.Answer,
		ConversationID: req.ConversationID,
		Sources:        sources,
	})
}

// ListDocuments lists the caller's archived documents.
func (h *RAGHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	_, username, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	objects, err := h.Store.List(r.Context(), username+"/")
	if err != nil {
		log.Printf("[RAGHandler] Document listing failed for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "Could not list documents")
		return
	}

	documents := make([]dtos.DocumentInfo, 0, len(objects))
	for _, obj := range objects {
		documents = append(documents, dtos.DocumentInfo{
			Filename:     strings.TrimPrefix(obj.Key, username+"/"),
			Size:         obj.Size,
			LastModified: obj.LastModified.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"documents": documents})
}

// DeleteDocument removes one archived document.
func (h *RAGHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	_, username, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	filename := path.Base(mux.Vars(r)["filename"])
	if filename == "" || filename == "." || filename == "/" {
		writeError(w, http.StatusBadRequest, "Invalid filename")
		return
	}

	if err := h.Store.Delete(r.Context(), username+"/"+filename); err != nil {
		if errors.Is(err, blob.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "Document not found")
			return
		}
		log.Printf("[RAGHandler] Document delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not delete document")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": fmt.Sprintf("Successfully deleted %s", filename)})
}

// DeleteVectorDB removes the caller's entire index. Archived documents and
// conversations are untouched.
func (h *RAGHandler) DeleteVectorDB(w http.ResponseWriter, r *http.Request) {
	_, username, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.IndexService.Delete(username); err != nil {
		if errors.Is(err, index.ErrIndexNotFound) {
			writeError(w, http.StatusNotFound, "Vector store not found.")
			return
		}
		log.Printf("[RAGHandler] Index delete failed for %s: %v", username, err)
		writeError(w, http.StatusInternalServerError, "Error deleting vector store.")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Vector store for user '%s' deleted successfully.", username),
	})
}

// Health reports service liveness. Unauthenticated.
func (h *RAGHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "RAG API",
	})
}
