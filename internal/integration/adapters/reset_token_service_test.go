package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

func TestPasswordResetTokenService(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepository()
	svc := NewPasswordResetTokenService(repo, 0).(*passwordResetTokenService)
	fixed := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	userID := uuid.New()

	issued, err := svc.Issue(ctx, userID)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(issued.Token) != 64 || !issued.ExpiresAt.Equal(fixed.Add(time.Hour)) {
		t.Errorf("unexpected token %+v", issued)
	}
	if _, stored := repo.resets[issued.Token]; stored {
		t.Error("expected only the digest to be stored")
	}

	found, err := svc.Lookup(ctx, issued.Token)
	if err != nil || found.UserID != userID {
		t.Fatalf("Lookup: %+v (%v)", found, err)
	}

	user := &entity.User{ID: userID, PasswordHash: "new-hash"}
	if err := svc.Redeem(ctx, issued.Token, user); err != nil {
		t.Fatalf("Redeem: %v", err)
	}
	if repo.passwords[userID] != "new-hash" {
		t.Errorf("expected password written with the redemption, got %q", repo.passwords[userID])
	}
	if err := svc.Redeem(ctx, issued.Token, user); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected second redemption to fail with ErrInvalidResetToken, got %v", err)
	}
	if _, err := svc.Lookup(ctx, issued.Token); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected used token lookup to fail, got %v", err)
	}
	if _, err := svc.Lookup(ctx, ""); !errors.Is(err, domainerror.ErrInvalidResetToken) {
		t.Errorf("expected empty token lookup to fail, got %v", err)
	}
}
