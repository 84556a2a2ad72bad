// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

const (
	// bcryptCost is the cost factor for bcrypt hashing.
	bcryptCost = 12
	// maxPasswordBytes is the longest input bcrypt accepts.
	maxPasswordBytes = 72
)

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	minStrength valueobject.StrengthLabel
	cost        int
}

// NewPasswordService creates a new password service that requires at least minStrength.
func NewPasswordService(minStrength valueobject.StrengthLabel) adapter.PasswordService {
	return newPasswordServiceWithCost(minStrength, bcryptCost)
}

func newPasswordServiceWithCost(minStrength valueobject.StrengthLabel, cost int) *passwordService {
	if !minStrength.IsValid() {
		minStrength = valueobject.StrengthModerate
	}
	return &passwordService{
		minStrength: minStrength,
		cost:        cost,
	}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// EvaluateStrength scores a password with the sign-up meter heuristic.
func (s *passwordService) EvaluateStrength(password string) valueobject.StrengthResult {
	return valueobject.EvaluatePasswordStrength(password)
}

// ValidatePasswordStrength validates if a password meets minimum requirements.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if utf8.RuneCountInString(password) < valueobject.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", valueobject.MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password must be at most %d bytes long", maxPasswordBytes)
	}

	result := s.EvaluateStrength(password)
	if !result.Label.AtLeast(s.minStrength) {
		return fmt.Errorf("password strength is %s, at least %s is required", result.Label, s.minStrength)
	}
	return nil
}
