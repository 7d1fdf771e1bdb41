package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/iyunix/go-retriever/internal/services/user_services"
)

// NewJWTMiddleware validates the bearer token on protected routes and puts
// the authenticated identity on the request context.
func NewJWTMiddleware(authService *user_services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				unauthorized(w, "Not authenticated")
				return
			}

			identity, err := authService.ValidateToken(token)
			if err != nil {
				log.Printf("[AuthMiddleware] Invalid token: %v", err)
				unauthorized(w, "Could not validate credentials")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, identity.UserID)
			ctx = context.WithValue(ctx, UsernameKey, identity.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the authenticated user set by
// NewJWTMiddleware, or false when the request was not authenticated.
func IdentityFromContext(ctx context.Context) (uint, string, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	if !ok {
		return 0, "", false
	}
	username, ok := ctx.Value(UsernameKey).(string)
	if !ok {
		return 0, "", false
	}
	return userID, username, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": message})
}
