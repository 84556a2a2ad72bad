package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/domain/valueobject"
)

// ResetPasswordInput represents the input for a password reset.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// ResetPasswordOutput represents the output of a password reset.
type ResetPasswordOutput struct {
	Message  string
	Strength valueobject.StrengthResult
}

// ResetPasswordUseCase sets a new password using a reset token.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.PasswordResetTokenService
	tokenService      adapter.TokenService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.PasswordResetTokenService,
	tokenService adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
	}
}

// Execute redeems the token together with the new password and revokes every
// refresh token the user holds. A weak password or a failed write leaves the token unused.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	resetToken, err := uc.resetTokenService.Lookup(ctx, input.Token)
	if err != nil {
		return nil, invalidResetToken(err)
	}

	now := time.Now().UTC()
	if resetToken.IsExpired(now) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			err.Error(),
			domainerror.ErrWeakPassword,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, resetToken.UserID)
	if err != nil {
		return nil, invalidResetToken(err)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.ChangePassword(passwordHash, now)
	if err := uc.resetTokenService.Redeem(ctx, input.Token, user); err != nil {
		return nil, invalidResetToken(err)
	}

	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}

	return &ResetPasswordOutput{
		Message:  "Password has been successfully reset",
		Strength: uc.passwordService.EvaluateStrength(input.NewPassword),
	}, nil
}

func invalidResetToken(err error) error {
	if !errors.Is(err, domainerror.ErrInvalidResetToken) && !errors.Is(err, domainerror.ErrUserNotFound) {
		return fmt.Errorf("failed to verify reset token: %w", err)
	}
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidResetToken,
		"invalid or expired password reset token",
		domainerror.ErrInvalidResetToken,
	)
}
