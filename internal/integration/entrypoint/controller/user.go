// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/passmeter/backend/internal/application/usecase/auth"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/integration/entrypoint/dto"
	"github.com/passmeter/backend/internal/integration/entrypoint/middleware"
)

// UserController handles user management endpoints.
type UserController struct {
	changePasswordUseCase *auth.ChangePasswordUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	changePasswordUseCase *auth.ChangePasswordUseCase,
) *UserController {
	return &UserController{
		changePasswordUseCase: changePasswordUseCase,
	}
}

// ChangePassword handles PUT /users/me/password requests.
func (c *UserController) ChangePassword(ctx *gin.Context) {
	// Get user ID from auth context
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "Unauthorized",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := auth.ChangePasswordInput{
		UserID:          userID,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}

	output, err := c.changePasswordUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleChangePasswordError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChangePasswordResponse{
		Message:          output.Message,
		PasswordStrength: dto.ToStrengthLabelResponse(output.Strength),
	})
}

// handleChangePasswordError handles password change errors and returns appropriate HTTP responses.
func (c *UserController) handleChangePasswordError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		statusCode := c.getStatusCodeForChangePasswordError(authErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Failed to change password", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForChangePasswordError maps auth error codes to HTTP status codes for password changes.
func (c *UserController) getStatusCodeForChangePasswordError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidCredentials:
		return http.StatusUnauthorized
	case domainerror.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodePasswordReused,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
