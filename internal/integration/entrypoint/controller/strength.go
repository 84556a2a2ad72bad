// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/passmeter/backend/internal/application/usecase/strength"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/integration/entrypoint/dto"
)

// maxStrengthBodyBytes bounds the request body read by Evaluate.
const maxStrengthBodyBytes = 64 << 10

// StrengthController handles password strength endpoints.
type StrengthController struct {
	evaluateUseCase *strength.EvaluatePasswordUseCase
}

// NewStrengthController creates a new strength controller instance.
func NewStrengthController(evaluateUseCase *strength.EvaluatePasswordUseCase) *StrengthController {
	return &StrengthController{
		evaluateUseCase: evaluateUseCase,
	}
}

// Evaluate handles POST /password/strength requests.
func (c *StrengthController) Evaluate(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxStrengthBodyBytes)

	var req dto.PasswordStrengthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error: "Request body too large",
				Code:  string(domainerror.ErrCodePasswordTooLong),
			})
			return
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingPassword),
		})
		return
	}

	input := strength.EvaluatePasswordInput{
		Password:   *req.Password,
		UserInputs: req.UserInputs,
	}

	output, err := c.evaluateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleStrengthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPasswordStrengthResponse(output.Result, output.Estimate))
}

// handleStrengthError handles strength errors and returns appropriate HTTP responses.
func (c *StrengthController) handleStrengthError(ctx *gin.Context, err error) {
	var strengthErr *domainerror.StrengthError
	if errors.As(err, &strengthErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: strengthErr.Message,
			Code:  string(strengthErr.Code),
		})
		return
	}

	slog.ErrorContext(ctx.Request.Context(), "Password strength evaluation failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}
