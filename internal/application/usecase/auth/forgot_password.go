package auth

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

// forgotPasswordMessage is returned whether or not the account exists.
const forgotPasswordMessage = "If an account with that email exists, we have sent a password reset link"

// ForgotPasswordInput represents the input for a forgot password request.
type ForgotPasswordInput struct {
	Email string
}

// ForgotPasswordOutput represents the output of a forgot password request.
type ForgotPasswordOutput struct {
	Message string
}

// ForgotPasswordUseCase issues a reset token and queues the reset email.
type ForgotPasswordUseCase struct {
	userRepo          adapter.UserRepository
	resetTokenService adapter.PasswordResetTokenService
	emailService      adapter.EmailService
	appBaseURL        string
}

// NewForgotPasswordUseCase creates a new ForgotPasswordUseCase instance.
func NewForgotPasswordUseCase(
	userRepo adapter.UserRepository,
	resetTokenService adapter.PasswordResetTokenService,
	emailService adapter.EmailService,
	appBaseURL string,
) *ForgotPasswordUseCase {
	return &ForgotPasswordUseCase{
		userRepo:          userRepo,
		resetTokenService: resetTokenService,
		emailService:      emailService,
		appBaseURL:        strings.TrimRight(appBaseURL, "/"),
	}
}

// Execute answers with the same message for known and unknown addresses.
// Only a malformed address is reported as an error.
func (uc *ForgotPasswordUseCase) Execute(ctx context.Context, input ForgotPasswordInput) (*ForgotPasswordOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	output := &ForgotPasswordOutput{Message: forgotPasswordMessage}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.DebugContext(ctx, "Password reset requested for unknown email")
		return output, nil
	}

	resetToken, err := uc.resetTokenService.Issue(ctx, user.ID)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to issue password reset token", "error", err, "user_id", user.ID)
		return output, nil
	}

	err = uc.emailService.QueuePasswordResetEmail(ctx, adapter.PasswordResetEmail{
		Email:     user.Email,
		Name:      user.Name,
		ResetURL:  uc.appBaseURL + "/reset-password?token=" + url.QueryEscape(resetToken.Token),
		ExpiresIn: resetToken.ExpiresAt.Sub(time.Now().UTC()).Round(time.Minute),
	})
	if err != nil {
		slog.ErrorContext(ctx, "Failed to queue password reset email", "error", err, "user_id", user.ID)
		return output, nil
	}

	slog.InfoContext(ctx, "Password reset email queued", "user_id", user.ID)
	return output, nil
}
