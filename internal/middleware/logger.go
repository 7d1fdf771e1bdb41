package middleware

import (
	"log"
	"net/http"
	"time"
)

// LoggingMiddleware logs each request with its outcome and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		log.Printf(
			"Request: %s %s from %s | Status: %d | Duration: %v",
			r.Method,
			r.RequestURI,
			r.RemoteAddr,
			wrapper.statusCode,
			time.Since(start),
		)
	})
}
