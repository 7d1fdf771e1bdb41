package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/iyunix/go-retriever/internal/dtos"
	"github.com/iyunix/go-retriever/internal/services/user_services"
)

// AuthHandler holds the dependencies for authentication endpoints.
type AuthHandler struct {
	AuthService *user_services.AuthService
}

func NewAuthHandler(authService *user_services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// Register handles new user registrations.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dtos.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.AuthService.Register(r.Context(), strings.TrimSpace(req.Username), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user_services.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "Username already registered")
		case errors.Is(err, user_services.ErrEmailTaken):
			writeError(w, http.StatusConflict, "Email already registered")
		default:
			log.Printf("[AuthHandler] Registration error: %v", err)
			writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	log.Printf("[AuthHandler] User %d registered", u.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "User created"})
}

// Token exchanges form credentials for a bearer token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	token, err := h.AuthService.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, user_services.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		log.Printf("[AuthHandler] Login error: %v", err)
		writeError(w, http.StatusInternalServerError, "Could not process login")
		return
	}

	writeJSON(w, http.StatusOK, dtos.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
