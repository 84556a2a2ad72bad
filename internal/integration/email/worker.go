package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
}

// Worker polls the email queue and delivers due jobs.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *Renderer
	pollInterval time.Duration
	batchSize    int
	now          func() time.Time
}

// NewWorker creates a new email worker. Non-positive settings fall back to 5s and 10 jobs.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *Renderer, cfg WorkerConfig) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: cfg.PollInterval,
		batchSize:    cfg.BatchSize,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	slog.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.ProcessNow(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.ProcessNow(ctx)
		}
	}
}

// ProcessNow delivers one batch of due jobs.
func (w *Worker) ProcessNow(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.now(), w.batchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get pending email jobs", "error", err)
		return
	}

	for _, job := range jobs {
		if ctx.Err() != nil {
			return
		}
		w.processJob(ctx, job)
	}
}

func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := slog.With("job_id", job.ID, "template", job.TemplateType)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.ErrorContext(ctx, "Failed to mark email job as processing", "error", err)
		return
	}

	html, text, err := w.renderer.Render(job)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to render email", "error", err)
		w.fail(ctx, job, err, true)
		return
	}

	providerID, err := w.sender.Send(ctx, adapter.OutgoingEmail{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.WarnContext(ctx, "Failed to send email", "error", err)
		w.fail(ctx, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(providerID, w.now())
	if err := w.queue.Update(ctx, job); err != nil {
		logger.ErrorContext(ctx, "Failed to mark email job as sent", "error", err)
		return
	}
	logger.InfoContext(ctx, "Email sent", "provider_id", providerID)
}

func (w *Worker) fail(ctx context.Context, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent, w.now())
	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		slog.ErrorContext(ctx, "Failed to update email job after failure", "job_id", job.ID, "error", updateErr)
		return
	}

	if job.Status == entity.EmailStatusFailed {
		slog.WarnContext(ctx, "Email job failed permanently",
			"job_id", job.ID,
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
		return
	}
	slog.InfoContext(ctx, "Email job scheduled for retry",
		"job_id", job.ID,
		"attempts", job.Attempts,
		"scheduled_at", job.ScheduledAt,
	)
}
