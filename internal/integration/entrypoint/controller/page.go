// Package controller implements HTTP handlers for the API endpoints.
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
	"github.com/passmeter/backend/internal/integration/web"
)

// registerForm is the form posted by the sign-up page.
type registerForm struct {
	Name          string `form:"name"`
	Email         string `form:"email"`
	Password      string `form:"password"`
	TermsAccepted bool   `form:"terms_accepted"`
}

// PageController serves the server-rendered sign-up page.
type PageController struct {
	registerUseCase *auth.RegisterUserUseCase
	evaluateUseCase *strength.EvaluatePasswordUseCase
}

// NewPageController creates a new page controller instance.
func NewPageController(
	registerUseCase *auth.RegisterUserUseCase,
	evaluateUseCase *strength.EvaluatePasswordUseCase,
) *PageController {
	return &PageController{
		registerUseCase: registerUseCase,
		evaluateUseCase: evaluateUseCase,
	}
}

// ShowRegister handles GET / and GET /register requests.
func (c *PageController) ShowRegister(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, web.RegisterPage, web.RegisterPageData{
		MinLength: valueobject.MinPasswordLength,
	})
}

// SubmitRegister handles POST /register requests from browsers without JavaScript.
func (c *PageController) SubmitRegister(ctx *gin.Context) {
	var form registerForm
	data := web.RegisterPageData{MinLength: valueobject.MinPasswordLength}

	if err := ctx.ShouldBind(&form); err != nil {
		data.Error = "Please fill in the form."
		ctx.HTML(http.StatusBadRequest, web.RegisterPage, data)
		return
	}
	data.Name = form.Name
	data.Email = form.Email

	// Show the meter's verdict on what was submitted; the password itself is never echoed.
	evaluated, err := c.evaluateUseCase.Execute(ctx.Request.Context(), strength.EvaluatePasswordInput{Password: form.Password})
	if err == nil {
		data.StrengthLabel = evaluated.Result.Label.String()
		data.StrengthClass = evaluated.Result.Class
	}

	_, err = c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Email:         form.Email,
		Name:          form.Name,
		Password:      form.Password,
		TermsAccepted: form.TermsAccepted,
	})
	if err != nil {
		var authErr *domainerror.AuthError
		if errors.As(err, &authErr) {
			data.Error = authErr.Message
			ctx.HTML(getStatusCodeForAuthError(authErr.Code), web.RegisterPage, data)
			return
		}
		slog.ErrorContext(ctx.Request.Context(), "Sign-up page registration failed", "error", err)
		data.Error = "An internal error occurred. Please try again."
		ctx.HTML(http.StatusInternalServerError, web.RegisterPage, data)
		return
	}

	data.Registered = true
	ctx.HTML(http.StatusCreated, web.RegisterPage, data)
}
