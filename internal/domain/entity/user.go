// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
type User struct {
	ID                uuid.UUID
	Email             string
	Name              string
	PasswordHash      string
	TermsAcceptedAt   time.Time
	PasswordChangedAt time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewUser creates a new User with default values.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                uuid.New(),
		Email:             email,
		Name:              name,
		PasswordHash:      passwordHash,
		TermsAcceptedAt:   termsAcceptedAt,
		PasswordChangedAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ChangePassword replaces the stored hash and stamps the change time.
func (u *User) ChangePassword(passwordHash string, at time.Time) {
	u.PasswordHash = passwordHash
	u.PasswordChangedAt = at
	u.UpdatedAt = at
}
