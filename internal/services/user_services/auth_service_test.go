package user_services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/iyunix/go-retriever/internal/domain"
	"github.com/iyunix/go-retriever/internal/repository/user"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

const testSecret = "test-secret-key"

func newTestService(t *testing.T, expiry time.Duration) *AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewAuthService(user.NewGormUserRepository(db), testSecret, expiry, nopLogger{})
}

func TestRegisterLoginRoundTrip(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	created, err := svc.Register(ctx, "alice", "alice@example.com", "password123")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Register() did not assign an ID")
	}
	if created.Password == "password123" {
		t.Fatal("password stored in plaintext")
	}

	token, err := svc.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if token == "" {
		t.Fatal("Login() returned empty token")
	}

	identity, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if identity.UserID != created.ID || identity.Username != "alice" {
		t.Errorf("ValidateToken() = %+v, want user %d alice", identity, created.ID)
	}
}

func TestRegister_Duplicates(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "other@example.com", "password123"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Register(duplicate username) error = %v, want ErrUsernameTaken", err)
	}
	if _, err := svc.Register(ctx, "bob", "alice@example.com", "password123"); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("Register(duplicate email) error = %v, want ErrEmailTaken", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"username too long", "averylongname", "a@example.com", "password123"},
		{"username with spaces", "a b", "a@example.com", "password123"},
		{"bad email", "alice", "not-an-email", "password123"},
		{"short password", "alice", "a@example.com", "short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.username, tt.email, tt.password); err == nil {
				t.Error("Register() expected validation error")
			}
		})
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrongpass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(wrong password) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(unknown user) error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Login(empty) error = %v, want ErrInvalidCredentials", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := newTestService(t, -time.Minute)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	token, err := svc.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateToken(expired) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_BadSignature(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  uint(1),
		"username": "alice",
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	if _, err := svc.ValidateToken(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("ValidateToken(forged) error = %v, want ErrInvalidToken", err)
	}
}

func TestValidateToken_Malformed(t *testing.T) {
	svc := newTestService(t, 30*time.Minute)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.ValidateToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ValidateToken(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}
