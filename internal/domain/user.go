// File: internal/domain/user.go
package domain

import (
	"errors"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,10}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type User struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"size:10;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HashPassword securely hashes the user's password.
func (u *User) HashPassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// ValidatePassword compares a plain-text password with the user's hashed password.
func (u *User) ValidatePassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
}

// IsValid checks registration constraints. Usernames are capped at 10
// characters and restricted to a safe alphabet because they become blob
// prefixes and vector store directory names.
func (u *User) IsValid() error {
	if !usernamePattern.MatchString(u.Username) {
		return errors.New("username must be 1-10 characters, alphanumeric or underscore")
	}
	if !emailPattern.MatchString(u.Email) {
		return errors.New("invalid email address")
	}
	return nil
}

// IsSafeUsername reports whether a username is usable as a storage key.
// Anything with path separators or outside the registration alphabet is
// rejected before it can reach the filesystem or object store.
func IsSafeUsername(username string) bool {
	return usernamePattern.MatchString(username)
}
