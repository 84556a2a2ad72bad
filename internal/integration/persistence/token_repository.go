// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/passmeter/backend/internal/domain/entity"
	"github.com/passmeter/backend/internal/integration/persistence/model"
)

// TokenRepository defines the interface for token persistence operations.
type TokenRepository interface {
	// SaveRefreshToken saves a refresh token to the database.
	SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// IsRefreshTokenValid checks if a refresh token is valid (exists and not invalidated).
	IsRefreshTokenValid(ctx context.Context, token string) (bool, error)

	// InvalidateRefreshToken marks a refresh token as invalidated.
	InvalidateRefreshToken(ctx context.Context, token string) error

	// InvalidateAllUserRefreshTokens invalidates all refresh tokens for a user.
	InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpiredRefreshTokens removes refresh tokens that expired before the given time.
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error)

	// SavePasswordResetToken stores the digest of a password reset token.
	SavePasswordResetToken(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error

	// GetPasswordResetToken returns the unused reset token with the given digest, or nil if there is none.
	GetPasswordResetToken(ctx context.Context, tokenHash string) (*model.PasswordResetTokenModel, error)

	// RedeemPasswordResetToken flags an unused reset token as used and writes the user's
	// password in one transaction. It reports false, changing nothing, if no unused token matched.
	RedeemPasswordResetToken(ctx context.Context, tokenHash string, user *entity.User, at time.Time) (bool, error)

	// DeleteExpiredPasswordResetTokens removes reset tokens that expired before the given time.
	DeleteExpiredPasswordResetTokens(ctx context.Context, before time.Time) (int64, error)
}

var errResetTokenNotRedeemable = errors.New("reset token already used or unknown")

// tokenRepository implements the TokenRepository interface.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{
		db: db,
	}
}

// SaveRefreshToken saves a refresh token to the database.
func (r *tokenRepository) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	refreshToken := &model.RefreshTokenModel{
		ID:          uuid.New(),
		Token:       token,
		UserID:      userID,
		Invalidated: false,
		ExpiresAt:   expiresAt,
		CreatedAt:   time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).Create(refreshToken)
	return result.Error
}

// IsRefreshTokenValid checks if a refresh token is valid (exists and not invalidated).
func (r *tokenRepository) IsRefreshTokenValid(ctx context.Context, token string) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := r.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&refreshToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// InvalidateRefreshToken marks a refresh token as invalidated.
func (r *tokenRepository) InvalidateRefreshToken(ctx context.Context, token string) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true)
	return result.Error
}

// InvalidateAllUserRefreshTokens invalidates all refresh tokens for a user.
func (r *tokenRepository) InvalidateAllUserRefreshTokens(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("user_id = ? AND invalidated = ?", userID, false).
		Update("invalidated", true)
	return result.Error
}

// DeleteExpiredRefreshTokens removes refresh tokens that expired before the given time.
func (r *tokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", before).
		Delete(&model.RefreshTokenModel{})
	return result.RowsAffected, result.Error
}

// SavePasswordResetToken stores the digest of a password reset token.
func (r *tokenRepository) SavePasswordResetToken(ctx context.Context, tokenHash string, userID uuid.UUID, expiresAt time.Time) error {
	resetToken := &model.PasswordResetTokenModel{
		ID:        uuid.New(),
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return r.db.WithContext(ctx).Create(resetToken).Error
}

// GetPasswordResetToken returns the unused reset token with the given digest, or nil if there is none.
func (r *tokenRepository) GetPasswordResetToken(ctx context.Context, tokenHash string) (*model.PasswordResetTokenModel, error) {
	var resetToken model.PasswordResetTokenModel
	result := r.db.WithContext(ctx).
		Where("token_hash = ? AND used = ?", tokenHash, false).
		First(&resetToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return &resetToken, nil
}

// RedeemPasswordResetToken flags an unused reset token as used and writes the user's password.
func (r *tokenRepository) RedeemPasswordResetToken(ctx context.Context, tokenHash string, user *entity.User, at time.Time) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.PasswordResetTokenModel{}).
			Where("token_hash = ? AND used = ? AND user_id = ?", tokenHash, false, user.ID).
			Updates(map[string]any{"used": true, "used_at": at})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != 1 {
			return errResetTokenNotRedeemable
		}

		return updateUserPassword(tx, user)
	})
	if errors.Is(err, errResetTokenNotRedeemable) {
		return false, nil
	}
	return err == nil, err
}

// DeleteExpiredPasswordResetTokens removes reset tokens that expired before the given time.
func (r *tokenRepository) DeleteExpiredPasswordResetTokens(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at <= ?", before).
		Delete(&model.PasswordResetTokenModel{})
	return result.RowsAffected, result.Error
}
