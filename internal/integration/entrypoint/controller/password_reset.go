package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/passmeter/backend/internal/application/usecase/auth"
	"github.com/passmeter/backend/internal/application/usecase/strength"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/domain/valueobject"
	"github.com/passmeter/backend/internal/integration/entrypoint/dto"
	"github.com/passmeter/backend/internal/integration/web"
)

// resetPasswordForm is the form posted by the password reset page.
type resetPasswordForm struct {
	Token       string `form:"token"`
	NewPassword string `form:"new_password"`
}

// PasswordResetController handles the forgot and reset password flow for the API and the browser page.
type PasswordResetController struct {
	forgotPasswordUseCase *auth.ForgotPasswordUseCase
	resetPasswordUseCase  *auth.ResetPasswordUseCase
	evaluateUseCase       *strength.EvaluatePasswordUseCase
}

// NewPasswordResetController creates a new password reset controller instance.
func NewPasswordResetController(
	forgotPasswordUseCase *auth.ForgotPasswordUseCase,
	resetPasswordUseCase *auth.ResetPasswordUseCase,
	evaluateUseCase *strength.EvaluatePasswordUseCase,
) *PasswordResetController {
	return &PasswordResetController{
		forgotPasswordUseCase: forgotPasswordUseCase,
		resetPasswordUseCase:  resetPasswordUseCase,
		evaluateUseCase:       evaluateUseCase,
	}
}

// ForgotPassword handles POST /auth/forgot-password requests.
func (c *PasswordResetController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.forgotPasswordUseCase.Execute(ctx.Request.Context(), auth.ForgotPasswordInput{Email: req.Email})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: output.Message})
}

// ResetPassword handles POST /auth/reset-password requests.
func (c *PasswordResetController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ChangePasswordResponse{
		Message:          output.Message,
		PasswordStrength: dto.ToStrengthLabelResponse(output.Strength),
	})
}

// ShowResetPassword handles GET /reset-password?token=... requests.
func (c *PasswordResetController) ShowResetPassword(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.ResetPasswordPage, web.ResetPasswordPageData{
		Token:     ctx.Query("token"),
		MinLength: valueobject.MinPasswordLength,
	})
}

// SubmitResetPassword handles POST /reset-password requests from the reset page.
func (c *PasswordResetController) SubmitResetPassword(ctx *gin.Context) {
	var form resetPasswordForm
	_ = ctx.ShouldBind(&form)
	data := web.ResetPasswordPageData{Token: form.Token, MinLength: valueobject.MinPasswordLength}

	evaluated, err := c.evaluateUseCase.Execute(ctx.Request.Context(), strength.EvaluatePasswordInput{Password: form.NewPassword})
	if err == nil {
		data.StrengthLabel = evaluated.Result.Label.String()
		data.StrengthClass = evaluated.Result.Class
	}

	_, err = c.resetPasswordUseCase.Execute(ctx.Request.Context(), auth.ResetPasswordInput{
		Token:       form.Token,
		NewPassword: form.NewPassword,
	})
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			data.Error = authErr.Message
			ctx.HTML(getStatusCodeForAuthError(authErr.Code), web.ResetPasswordPage, data)
			return
		}
		slog.ErrorContext(ctx.Request.Context(), "Password reset page submission failed", "error", err)
		data.Error = "An internal error occurred. Please try again."
		ctx.HTML(http.StatusInternalServerError, web.ResetPasswordPage, data)
		return
	}

	data.Done = true
	ctx.HTML(http.StatusOK, web.ResetPasswordPage, data)
}

func (c *PasswordResetController) handleError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(getStatusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Error: authErr.Message,
			Code:  string(authErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Password reset request failed", "path", ctx.FullPath(), "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
