package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/iyunix/go-retriever/internal/middleware"
	"github.com/iyunix/go-retriever/internal/repository/conversation"
	"github.com/iyunix/go-retriever/internal/services/chat"
)

// ConversationHandler serves conversation history endpoints.
type ConversationHandler struct {
	ChatService *chat.Service
}

func NewConversationHandler(chatService *chat.Service) *ConversationHandler {
	return &ConversationHandler{ChatService: chatService}
}

// GetConversations lists the caller's conversations, oldest first.
func (h *ConversationHandler) GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	conversations, err := h.ChatService.GetUserConversations(r.Context(), userID)
	if err != nil {
		log.Printf("[ConversationHandler] Listing failed for user %d: %v", userID, err)
		writeError(w, http.StatusInternalServerError, "Could not list conversations")
		return
	}

	type item struct {
		ID       uint   `json:"id"`
		FileName string `json:"file_name"`
		Title    string `json:"title"`
		Created  string `json:"created_at"`
	}
	out := make([]item, 0, len(conversations))
	for _, c := range conversations {
		out = append(out, item{
			ID:       c.ID,
			FileName: c.FileName,
			Title:    c.Title,
			Created:  c.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": out})
}

// GetMessages returns the full history of one conversation the caller owns.
func (h *ConversationHandler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	conversationID, ok := parseConversationID(w, r)
	if !ok {
		return
	}

	messages, err := h.ChatService.GetConversationMessages(r.Context(), userID, conversationID)
	if err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("[ConversationHandler] Message fetch failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not load messages")
		return
	}

	type item struct {
		ID      uint   `json:"id"`
		Content string `json:"content"`
		Sender  string `json:"sender"`
		Created string `json:"created_at"`
	}
	out := make([]item, 0, len(messages))
	for _, m := range messages {
		out = append(out, item{
			ID:      m.ID,
			Content: m.Content,
			Sender:  m.Sender,
			Created: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": out})
}

// DeleteConversation removes one conversation the caller owns, with its
// messages.
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	conversationID, ok := parseConversationID(w, r)
	if !ok {
		return
	}

	if err := h.ChatService.DeleteConversation(r.Context(), userID, conversationID); err != nil {
		if errors.Is(err, conversation.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		log.Printf("[ConversationHandler] Delete failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not delete conversation")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Conversation and related messages deleted successfully",
	})
}

func parseConversationID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.URL.Query().Get("conId")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "Missing conId parameter")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, "Invalid conId parameter")
		return 0, false
	}
	return uint(id), true
}
