package adapters

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/integration/persistence"
)

const (
	defaultResetTokenTTL = time.Hour
	resetTokenBytes      = 32
)

// passwordResetTokenService implements the adapter.PasswordResetTokenService interface.
type passwordResetTokenService struct {
	tokenRepository persistence.TokenRepository
	ttl             time.Duration
	now             func() time.Time
}

// NewPasswordResetTokenService creates a new password reset token service. Non-positive TTLs default to one hour.
func NewPasswordResetTokenService(tokenRepository persistence.TokenRepository, ttl time.Duration) adapter.PasswordResetTokenService {
	if ttl <= 0 {
		ttl = defaultResetTokenTTL
	}
	return &passwordResetTokenService{
		tokenRepository: tokenRepository,
		ttl:             ttl,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Issue generates a random token and stores its digest.
func (s *passwordResetTokenService) Issue(ctx context.Context, userID uuid.UUID) (*adapter.PasswordResetToken, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := hex.EncodeToString(raw)
	expiresAt := s.now().Add(s.ttl)

	if err := s.tokenRepository.SavePasswordResetToken(ctx, digest(token), userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save reset token: %w", err)
	}

	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}, nil
}

// Lookup finds an unused token by its digest.
func (s *passwordResetTokenService) Lookup(ctx context.Context, token string) (*adapter.PasswordResetToken, error) {
	if token == "" {
		return nil, domainerror.ErrInvalidResetToken
	}
	stored, err := s.tokenRepository.GetPasswordResetToken(ctx, digest(token))
	if err != nil {
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	if stored == nil {
		return nil, domainerror.ErrInvalidResetToken
	}
	return &adapter.PasswordResetToken{
		Token:     token,
		UserID:    stored.UserID,
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

// Redeem marks the token as used and stores the user's new password together.
func (s *passwordResetTokenService) Redeem(ctx context.Context, token string, user *entity.User) error {
	redeemed, err := s.tokenRepository.RedeemPasswordResetToken(ctx, digest(token), user, s.now())
	if err != nil {
		return fmt.Errorf("failed to redeem reset token: %w", err)
	}
	if !redeemed {
		return domainerror.ErrInvalidResetToken
	}
	return nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
