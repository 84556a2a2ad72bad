// Package worker runs background maintenance jobs.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/passmeter/backend/internal/integration/persistence"
)

// TokenCleanupWorker periodically deletes expired refresh and password reset tokens.
type TokenCleanupWorker struct {
	tokens   persistence.TokenRepository
	interval time.Duration
	now      func() time.Time
}

// NewTokenCleanupWorker creates a new cleanup worker. Non-positive intervals default to one hour.
func NewTokenCleanupWorker(tokens persistence.TokenRepository, interval time.Duration) *TokenCleanupWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TokenCleanupWorker{
		tokens:   tokens,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	slog.Info("Token cleanup worker started", "interval", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Token cleanup worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow deletes expired tokens immediately.
// A failure on one table does not stop the sweep of the other.
func (w *TokenCleanupWorker) ProcessNow(ctx context.Context) {
	now := w.now()
	w.sweep(ctx, "refresh", now, w.tokens.DeleteExpiredRefreshTokens)
	w.sweep(ctx, "password_reset", now, w.tokens.DeleteExpiredPasswordResetTokens)
}

func (w *TokenCleanupWorker) sweep(ctx context.Context, kind string, now time.Time, deleteFn func(context.Context, time.Time) (int64, error)) {
	deleted, err := deleteFn(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to delete expired tokens", "kind", kind, "error", err)
		return
	}
	if deleted > 0 {
		slog.InfoContext(ctx, "Deleted expired tokens", "kind", kind, "count", deleted)
	}
}
