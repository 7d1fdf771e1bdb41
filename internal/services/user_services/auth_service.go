// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iyunix/go-retriever/internal/domain"
	"github.com/iyunix/go-retriever/internal/repository/user"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// TokenIdentity is the validated payload of a bearer token.
type TokenIdentity struct {
	UserID   uint
	Username string
}

type AuthService struct {
	userRepo     user.UserRepository
	jwtSecretKey string
	tokenExpiry  time.Duration
	logger       Logger
}

func NewAuthService(userRepo user.UserRepository, jwtSecretKey string, tokenExpiry time.Duration, logger Logger) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		tokenExpiry:  tokenExpiry,
		logger:       logger,
	}
}

// Register creates a new user with a bcrypt-hashed password. The plaintext
// password is never stored.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	u := &domain.User{Username: username, Email: email}
	if err := u.IsValid(); err != nil {
		s.logger.Warn("registration validation failed", "error", err.Error())
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := u.HashPassword(password); err != nil {
		s.logger.Warn("registration password rejected", "error", err.Error())
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if existing, err := s.userRepo.FindByUsername(ctx, username); err == nil && existing != nil {
		s.logger.Warn("registration failed - username exists", "username", username)
		return nil, ErrUsernameTaken
	}
	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		s.logger.Warn("registration failed - email exists", "username", username)
		return nil, ErrEmailTaken
	}

	created, err := s.userRepo.Create(ctx, u)
	if err != nil {
		s.logger.Error("user creation failed", "error", err, "username", username)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", created.ID, "username", username)
	return created, nil
}

// Login authenticates a user and returns a signed bearer token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", ErrInvalidCredentials
	}

	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login failed - user not found", "username", username)
		return "", ErrInvalidCredentials
	}

	if err := u.ValidatePassword(password); err != nil {
		s.logger.Warn("login failed - invalid password", "user_id", u.ID)
		return "", ErrInvalidCredentials
	}

	token, err := s.generateToken(u)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", u.ID)
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("login successful", "user_id", u.ID, "username", username)
	return token, nil
}

// ValidateToken verifies signature and expiry and returns the embedded
// identity. Validation is stateless: user existence is not re-checked.
func (s *AuthService) ValidateToken(tokenString string) (*TokenIdentity, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil {
		s.logger.Warn("token validation failed", "error", err)
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID == 0 {
		s.logger.Warn("token missing user_id claim")
		return nil, ErrInvalidToken
	}
	username, ok := claims["username"].(string)
	if !ok || username == "" {
		s.logger.Warn("token missing username claim")
		return nil, ErrInvalidToken
	}

	return &TokenIdentity{UserID: uint(userID), Username: username}, nil
}

func (s *AuthService) generateToken(u *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  u.ID,
		"username": u.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecretKey))
}
