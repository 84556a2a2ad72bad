package adapter

import (
	"context"
	"time"

	"github.com/passmeter/backend/internal/domain/entity"
)

// OutgoingEmail is a rendered message ready for the provider.
type OutgoingEmail struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// EmailSender delivers a rendered email and returns the provider message ID.
type EmailSender interface {
	Send(ctx context.Context, email OutgoingEmail) (string, error)
}

// EmailQueueRepository persists outbound email jobs.
type EmailQueueRepository interface {
	// Create adds a job to the queue.
	Create(ctx context.Context, job *entity.EmailJob) error

	// GetPendingJobs returns up to limit pending jobs scheduled at or before now, oldest first.
	GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Update saves the job's delivery state.
	Update(ctx context.Context, job *entity.EmailJob) error
}

// PasswordResetEmail carries what a password reset email needs.
type PasswordResetEmail struct {
	Email     string
	Name      string
	ResetURL  string
	ExpiresIn time.Duration
}

// EmailService queues transactional emails.
type EmailService interface {
	QueuePasswordResetEmail(ctx context.Context, input PasswordResetEmail) error
}
