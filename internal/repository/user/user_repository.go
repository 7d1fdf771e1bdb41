package user

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/iyunix/go-retriever/internal/domain"
)

var ErrUserNotFound = errors.New("user not found")

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create persists a new user record.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := user.IsValid(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return nil, errors.New("database error creating user")
	}

	return user, nil
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return r.handleFindError(err, &user, "FindByUsername")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}

	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

// handleFindError maps gorm errors without leaking database details.
func (r *gormUserRepository) handleFindError(err error, user *domain.User, operation string) (*domain.User, error) {
	if err == nil {
		return user, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	log.Printf("[UserRepository] %s database error: %v", operation, err)
	return nil, errors.New("database query failed")
}
