package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/application/adapter"
)

type stubTokenService struct {
	adapter.TokenService
	valid  string
	userID uuid.UUID
}

func (s stubTokenService) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	if token != s.valid {
		return nil, errors.New("invalid")
	}
	return &adapter.TokenClaims{UserID: s.userID, Email: "jane@example.com", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(stubTokenService{valid: "good", userID: userID})

	r := gin.New()
	r.GET("/me", m.Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, id.String()+" "+email)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "AUTH-030003"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "AUTH-030001"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "AUTH-030003"},
		{"invalid token", "Bearer bad", http.StatusUnauthorized, "AUTH-030001"},
		{"valid token", "Bearer good", http.StatusOK, userID.String() + " jane@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if !strings.Contains(w.Body.String(), tt.wantBody) {
				t.Errorf("expected body to contain %q, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}
