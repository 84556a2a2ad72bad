package email

import (
	"context"
	"fmt"
	"time"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

const passwordResetSubject = "Reset your Passmeter password"

// Service queues emails for the worker to deliver.
type Service struct {
	queue adapter.EmailQueueRepository
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository) *Service {
	return &Service{queue: queue}
}

// QueuePasswordResetEmail queues a password reset email.
func (s *Service) QueuePasswordResetEmail(ctx context.Context, input adapter.PasswordResetEmail) error {
	job := entity.NewEmailJob(
		entity.TemplatePasswordReset,
		input.Email,
		input.Name,
		passwordResetSubject,
		map[string]string{
			"user_name":  input.Name,
			"reset_url":  input.ResetURL,
			"expires_in": formatExpiry(input.ExpiresIn),
		},
	)

	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			"failed to queue password reset email",
			err,
		)
	}
	return nil
}

// formatExpiry renders a duration as whole hours or minutes.
func formatExpiry(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 {
		return plural(int(d/time.Hour), "hour")
	}
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return plural(minutes, "minute")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

var _ adapter.EmailService = (*Service)(nil)
