package middleware

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/iyunix/go-retriever/internal/ratelimit"
)

// RateLimitMiddleware enforces the limiter per client IP and reports the
// budget through standard X-RateLimit headers.
func RateLimitMiddleware(limiter *ratelimit.Limiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := ratelimit.ClientIP(r)
			decision := limiter.Allow(clientIP)

			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", decision.Remaining))
			w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", decision.ResetAt.Unix()))

			if !decision.Allowed {
				status := "RATE LIMITED"
				if decision.Banned {
					status = "BANNED"
				}
				log.Printf("[RateLimit] Blocked %s request from %s - %s", name, clientIP, status)

				if decision.RetryAfter > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%.0f", decision.RetryAfter.Seconds()))
				}

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"detail":     "Too many attempts. Please try again later.",
					"retryAfter": int(decision.RetryAfter.Seconds()),
					"banned":     decision.Banned,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthSuccessMiddleware resets the caller's rate limit window after a
// successful authentication response.
func AuthSuccessMiddleware(limiter *ratelimit.Limiter, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapper, r)

			if wrapper.statusCode >= 200 && wrapper.statusCode < 300 {
				clientIP := ratelimit.ClientIP(r)
				limiter.RecordSuccess(clientIP)
				log.Printf("[RateLimit] Reset attempts for %s from %s", name, clientIP)
			}
		})
	}
}

// responseWriter captures the status code written by downstream handlers.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
