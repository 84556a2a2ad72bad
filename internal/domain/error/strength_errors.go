// Package error defines domain-specific errors for the passmeter service.
package error

import "errors"

// Strength evaluation errors.
var (
	// ErrMissingPassword is returned when a strength request carries no password field.
	ErrMissingPassword = errors.New("password field is required")

	// ErrPasswordTooLong is returned when a password exceeds the evaluation limit.
	ErrPasswordTooLong = errors.New("password is too long to evaluate")
)

// StrengthErrorCode defines error codes for strength evaluation errors.
// Format: STRENGTH-XXYYYY where XX is category and YYYY is specific error.
type StrengthErrorCode string

const (
	// Request errors (01XXXX)
	ErrCodeMissingPassword StrengthErrorCode = "STRENGTH-010001"
	ErrCodePasswordTooLong StrengthErrorCode = "STRENGTH-010002"
)

// StrengthError represents a strength evaluation error with code and message.
type StrengthError struct {
	Code    StrengthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StrengthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StrengthError) Unwrap() error {
	return e.Err
}

// NewStrengthError creates a new StrengthError with the given code and message.
func NewStrengthError(code StrengthErrorCode, message string, err error) *StrengthError {
	return &StrengthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
