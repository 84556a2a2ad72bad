// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/passmeter/backend/internal/domain/valueobject"

// PasswordService defines the interface for password hashing, verification and strength checks.
type PasswordService interface {
	// HashPassword hashes a plain text password using bcrypt.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a hashed password.
	VerifyPassword(hashedPassword, password string) error

	// EvaluateStrength scores a password and classifies it as Weak, Moderate or Strong.
	EvaluateStrength(password string) valueobject.StrengthResult

	// ValidatePasswordStrength validates if a password meets minimum requirements.
	ValidatePasswordStrength(password string) error
}
