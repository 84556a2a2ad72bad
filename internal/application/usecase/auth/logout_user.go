// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"log/slog"

	"github.com/passmeter/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message string
}

// LogoutUserUseCase revokes the refresh token of the current session.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{tokenService: tokenService}
}

// Execute always reports success. Tokens that fail signature checks are
// ignored without touching storage.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	output := &LogoutUserOutput{Message: "Successfully logged out"}

	if _, err := uc.tokenService.ValidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.DebugContext(ctx, "Logout with unusable refresh token", "error", err)
		return output, nil
	}
	if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
		slog.WarnContext(ctx, "Failed to invalidate refresh token on logout", "error", err)
	}
	return output, nil
}
