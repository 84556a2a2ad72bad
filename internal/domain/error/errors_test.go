package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestAuthError(t *testing.T) {
	t.Run("message includes wrapped error", func(t *testing.T) {
		err := NewAuthError(ErrCodeWeakPassword, "password does not meet minimum requirements", ErrWeakPassword)

		expected := "password does not meet minimum requirements: password does not meet minimum requirements"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
	})

	t.Run("message without wrapped error", func(t *testing.T) {
		err := NewAuthError(ErrCodeMissingFields, "missing fields", nil)
		if err.Error() != "missing fields" {
			t.Errorf("expected %q, got %q", "missing fields", err.Error())
		}
	})

	t.Run("errors.Is and errors.As see through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("register: %w", NewAuthError(ErrCodeEmailExists, "email already exists", ErrEmailAlreadyExists))

		if !errors.Is(wrapped, ErrEmailAlreadyExists) {
			t.Error("expected errors.Is to find ErrEmailAlreadyExists")
		}

		var authErr *AuthError
		if !errors.As(wrapped, &authErr) {
			t.Fatal("expected errors.As to find *AuthError")
		}
		if authErr.Code != ErrCodeEmailExists {
			t.Errorf("expected code %s, got %s", ErrCodeEmailExists, authErr.Code)
		}
	})
}

func TestStrengthError(t *testing.T) {
	err := NewStrengthError(ErrCodePasswordTooLong, "password must be at most 1024 bytes", ErrPasswordTooLong)

	if !errors.Is(err, ErrPasswordTooLong) {
		t.Error("expected errors.Is to find ErrPasswordTooLong")
	}

	var strengthErr *StrengthError
	if !errors.As(err, &strengthErr) {
		t.Fatal("expected errors.As to find *StrengthError")
	}
	if strengthErr.Code != ErrCodePasswordTooLong {
		t.Errorf("expected code %s, got %s", ErrCodePasswordTooLong, strengthErr.Code)
	}
}
