package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func testConfig() *Config {
	return &Config{
		Window:        time.Minute,
		MaxAttempts:   3,
		BanDuration:   time.Hour,
		CleanupPeriod: time.Hour,
	}
}

func TestLimiter_AllowWithinBudget(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Close()

	for i := 0; i < 3; i++ {
		d := l.Allow("1.2.3.4")
		if !d.Allowed {
			t.Fatalf("attempt %d blocked, want allowed", i+1)
		}
		if d.Remaining != 3-(i+1) {
			t.Errorf("attempt %d remaining = %d, want %d", i+1, d.Remaining, 3-(i+1))
		}
	}
}

func TestLimiter_BansAfterLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Close()

	for i := 0; i < 3; i++ {
		l.Allow("1.2.3.4")
	}

	d := l.Allow("1.2.3.4")
	if d.Allowed {
		t.Fatal("fourth attempt allowed, want banned")
	}
	if !d.Banned {
		t.Error("decision not marked banned")
	}
	if d.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", d.RetryAfter)
	}

	// Still banned on the next attempt.
	if d := l.Allow("1.2.3.4"); d.Allowed || !d.Banned {
		t.Error("ban not sticky")
	}
}

func TestLimiter_IdentifiersIndependent(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Close()

	for i := 0; i < 4; i++ {
		l.Allow("1.2.3.4")
	}

	if d := l.Allow("5.6.7.8"); !d.Allowed {
		t.Fatal("other identifier blocked by unrelated ban")
	}
}

func TestLimiter_RecordSuccessResets(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Close()

	l.Allow("1.2.3.4")
	l.Allow("1.2.3.4")
	l.RecordSuccess("1.2.3.4")

	d := l.Allow("1.2.3.4")
	if !d.Allowed || d.Remaining != 2 {
		t.Fatalf("after RecordSuccess: allowed=%v remaining=%d, want fresh window", d.Allowed, d.Remaining)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"remote addr", "10.0.0.1:5000", nil, "10.0.0.1"},
		{"x-forwarded-for", "10.0.0.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "203.0.113.7"},
		{"x-forwarded-for chain", "10.0.0.1:5000", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "203.0.113.7"},
		{"x-real-ip", "10.0.0.1:5000", map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
		{"no port", "10.0.0.1", nil, "10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
