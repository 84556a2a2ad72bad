// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
	"github.com/passmeter/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// UserIDKey is the context key for the authenticated user's ID.
	UserIDKey ContextKey = "user_id"
	// UserEmailKey is the context key for the authenticated user's email.
	UserEmailKey ContextKey = "user_email"
)

const bearerPrefix = "Bearer "

// AuthMiddleware guards routes that need a valid access token.
type AuthMiddleware struct {
	tokenService adapter.TokenService
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(tokenService adapter.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenService: tokenService}
}

// Authenticate rejects the request with 401 unless it carries a valid bearer
// access token, and stores the token's subject on the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, authErr := bearerToken(c.GetHeader("Authorization"))
		if authErr != nil {
			abortUnauthorized(c, authErr)
			return
		}

		claims, err := m.tokenService.ValidateAccessToken(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, domainerror.NewAuthError(
				domainerror.ErrCodeInvalidToken,
				"Invalid or expired token",
				err,
			))
			return
		}

		c.Set(string(UserIDKey), claims.UserID)
		c.Set(string(UserEmailKey), claims.Email)
		c.Next()
	}
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, *domainerror.AuthError) {
	switch {
	case header == "":
		return "", domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Authorization header is required", nil)
	case !strings.HasPrefix(header, bearerPrefix):
		return "", domainerror.NewAuthError(domainerror.ErrCodeInvalidToken, "Invalid authorization header format", nil)
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", domainerror.NewAuthError(domainerror.ErrCodeMissingToken, "Token is required", nil)
	}
	return token, nil
}

func abortUnauthorized(c *gin.Context, authErr *domainerror.AuthError) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: authErr.Message,
		Code:  string(authErr.Code),
	})
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Value(string(UserIDKey)).(uuid.UUID)
	return id, ok
}

// GetUserEmailFromContext extracts the user email from the Gin context.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	email, ok := c.Value(string(UserEmailKey)).(string)
	return email, ok
}
