package middleware

import (
	"log"
	"net/http"
	"runtime/debug"
)

// RecoverPanic converts handler panics into 500 responses so one bad
// request cannot take the server down.
func RecoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[PANIC] %v\n%s", err, debug.Stack())
				w.Header().Set("Connection", "close")
				http.Error(w, "Something went wrong on our end.", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
