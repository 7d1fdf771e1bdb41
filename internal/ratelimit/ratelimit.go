package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config controls the fixed-window limiter.
type Config struct {
	Window        time.Duration
	MaxAttempts   int
	BanDuration   time.Duration
	CleanupPeriod time.Duration
}

// DefaultAuthConfig returns limits suited to login and registration
// endpoints.
func DefaultAuthConfig() *Config {
	return &Config{
		Window:        15 * time.Minute,
		MaxAttempts:   5,
		BanDuration:   30 * time.Minute,
		CleanupPeriod: 30 * time.Minute,
	}
}

// Decision reports the outcome of an Allow call.
type Decision struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
	Banned     bool
}

type window struct {
	count    int
	openedAt time.Time
	bannedAt time.Time // zero when not banned
}

// Limiter is an in-memory fixed-window rate limiter keyed by an arbitrary
// identifier, usually the client IP. Exceeding the window's budget bans the
// identifier for BanDuration.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	windows map[string]*window
	stop    chan struct{}
}

func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		config:  config,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow records one attempt for identifier and reports whether it may
// proceed.
func (l *Limiter) Allow(identifier string) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	w, ok := l.windows[identifier]
	if !ok || (w.bannedAt.IsZero() && now.Sub(w.openedAt) > l.config.Window) {
		l.windows[identifier] = &window{count: 1, openedAt: now}
		return Decision{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetAt:   now.Add(l.config.Window),
		}
	}

	if !w.bannedAt.IsZero() {
		if now.Sub(w.bannedAt) < l.config.BanDuration {
			return Decision{
				ResetAt:    w.bannedAt.Add(l.config.BanDuration),
				RetryAfter: l.config.BanDuration - now.Sub(w.bannedAt),
				Banned:     true,
			}
		}
		// Ban expired, open a fresh window.
		l.windows[identifier] = &window{count: 1, openedAt: now}
		return Decision{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetAt:   now.Add(l.config.Window),
		}
	}

	w.count++
	if w.count > l.config.MaxAttempts {
		w.bannedAt = now
		return Decision{
			ResetAt:    now.Add(l.config.BanDuration),
			RetryAfter: l.config.BanDuration,
			Banned:     true,
		}
	}

	return Decision{
		Allowed:   true,
		Remaining: l.config.MaxAttempts - w.count,
		ResetAt:   w.openedAt.Add(l.config.Window),
	}
}

// RecordSuccess clears the identifier's window after a successful
// authentication, so legitimate users are not throttled by their own
// earlier failures.
func (l *Limiter) RecordSuccess(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, identifier)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stop:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for identifier, w := range l.windows {
		expired := w.bannedAt.IsZero() && now.Sub(w.openedAt) > l.config.Window
		banLifted := !w.bannedAt.IsZero() && now.Sub(w.bannedAt) > l.config.BanDuration
		if expired || banLifted {
			delete(l.windows, identifier)
		}
	}
}

// Close stops the background cleanup goroutine.
func (l *Limiter) Close() {
	close(l.stop)
}

// ClientIP extracts the originating client IP, preferring proxy headers
// over the socket address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
