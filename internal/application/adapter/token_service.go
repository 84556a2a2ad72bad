// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/domain/entity"
)

// TokenPair represents an access and refresh token pair.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateTokenPair generates a new access and refresh token pair.
	GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string, rememberMe bool) (*TokenPair, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)

	// ValidateRefreshToken validates a refresh token and returns its claims.
	ValidateRefreshToken(ctx context.Context, token string) (*TokenClaims, error)

	// InvalidateRefreshToken invalidates a refresh token.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserTokens invalidates all refresh tokens for a user.
	InvalidateAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// IsRefreshTokenValid checks if a refresh token is still valid (not invalidated).
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)
}

// PasswordResetToken is a single-use credential that authorizes a password reset.
type PasswordResetToken struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// IsExpired reports whether the token is no longer usable at the given time.
func (t *PasswordResetToken) IsExpired(at time.Time) bool {
	return !at.Before(t.ExpiresAt)
}

// PasswordResetTokenService issues and redeems password reset tokens.
type PasswordResetTokenService interface {
	// Issue creates a reset token for the user. Tokens issued earlier stay valid until used or expired.
	Issue(ctx context.Context, userID uuid.UUID) (*PasswordResetToken, error)

	// Lookup returns an unused token, expired or not. Unknown or used tokens yield an error.
	Lookup(ctx context.Context, token string) (*PasswordResetToken, error)

	// Redeem marks the token as used and stores the user's new password hash in one
	// transaction. It fails if the token was already used; on any failure neither change is kept.
	Redeem(ctx context.Context, token string, user *entity.User) error
}
