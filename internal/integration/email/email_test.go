package email

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/passmeter/backend/internal/application/adapter"
	"github.com/passmeter/backend/internal/domain/entity"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

type memoryQueue struct {
	mu   sync.Mutex
	jobs map[string]*entity.EmailJob
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: make(map[string]*entity.EmailJob)}
}

func (q *memoryQueue) Create(ctx context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID.String()] = &copied
	return nil
}

func (q *memoryQueue) GetPendingJobs(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var due []*entity.EmailJob
	for _, job := range q.jobs {
		if job.IsReadyToProcess(now) && len(due) < limit {
			copied := *job
			due = append(due, &copied)
		}
	}
	return due, nil
}

func (q *memoryQueue) Update(ctx context.Context, job *entity.EmailJob) error {
	return q.Create(ctx, job)
}

func (q *memoryQueue) only(t *testing.T) *entity.EmailJob {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.jobs) != 1 {
		t.Fatalf("expected exactly one queued job, got %d", len(q.jobs))
	}
	for _, job := range q.jobs {
		return job
	}
	return nil
}

type recordingSender struct {
	sent []adapter.OutgoingEmail
	err  error
}

func (s *recordingSender) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, email)
	return "re_test", nil
}

func queueReset(t *testing.T, queue *memoryQueue) {
	t.Helper()
	err := NewService(queue).QueuePasswordResetEmail(context.Background(), adapter.PasswordResetEmail{
		Email:     "jane@example.com",
		Name:      "Jane",
		ResetURL:  "http://localhost:8080/reset-password?token=abc123",
		ExpiresIn: time.Hour,
	})
	if err != nil {
		t.Fatalf("QueuePasswordResetEmail: %v", err)
	}
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return NewWorker(queue, sender, renderer, WorkerConfig{})
}

func TestService_QueuePasswordResetEmail(t *testing.T) {
	queue := newMemoryQueue()
	queueReset(t, queue)

	job := queue.only(t)
	if job.TemplateType != entity.TemplatePasswordReset || job.Status != entity.EmailStatusPending {
		t.Errorf("unexpected job %+v", job)
	}
	if job.TemplateData["expires_in"] != "1 hour" {
		t.Errorf("expected expires_in of 1 hour, got %q", job.TemplateData["expires_in"])
	}
}

func TestFormatExpiry(t *testing.T) {
	tests := map[time.Duration]string{
		time.Hour:        "1 hour",
		2 * time.Hour:    "2 hours",
		30 * time.Minute: "30 minutes",
		90 * time.Minute: "90 minutes",
		time.Minute:      "1 minute",
		time.Second:      "1 minute",
	}
	for in, want := range tests {
		if got := formatExpiry(in); got != want {
			t.Errorf("formatExpiry(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestWorker_DeliversQueuedEmail(t *testing.T) {
	queue := newMemoryQueue()
	queueReset(t, queue)
	sender := &recordingSender{}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if len(sender.sent) != 1 {
		t.Fatalf("expected one email sent, got %d", len(sender.sent))
	}
	sent := sender.sent[0]
	if sent.To != "jane@example.com" || sent.Subject != passwordResetSubject {
		t.Errorf("unexpected email %+v", sent)
	}
	if !strings.Contains(sent.HTML, "token=abc123") || !strings.Contains(sent.Text, "token=abc123") {
		t.Error("expected both bodies to carry the reset link")
	}
	if !strings.Contains(sent.Text, "expires in 1 hour") {
		t.Errorf("expected expiry in text body, got %q", sent.Text)
	}

	job := queue.only(t)
	if job.Status != entity.EmailStatusSent || job.ProviderID != "re_test" {
		t.Errorf("expected job marked sent, got %+v", job)
	}
}

func TestWorker_RetriesTemporaryFailures(t *testing.T) {
	queue := newMemoryQueue()
	queueReset(t, queue)
	sender := &recordingSender{err: domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", errors.New("503"))}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	job := queue.only(t)
	if job.Status != entity.EmailStatusPending || job.Attempts != 1 {
		t.Errorf("expected job rescheduled, got %+v", job)
	}
}

func TestWorker_StopsOnPermanentFailure(t *testing.T) {
	queue := newMemoryQueue()
	queueReset(t, queue)
	sender := &recordingSender{err: classifyProviderError(errors.New("422 validation_error: invalid `to` field"))}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	job := queue.only(t)
	if job.Status != entity.EmailStatusFailed || job.Attempts != 1 {
		t.Errorf("expected job failed permanently, got %+v", job)
	}
}

func TestWorker_UnknownTemplateFails(t *testing.T) {
	queue := newMemoryQueue()
	job := entity.NewEmailJob("newsletter", "jane@example.com", "Jane", "News", nil)
	if err := queue.Create(context.Background(), job); err != nil {
		t.Fatal(err)
	}
	sender := &recordingSender{}

	newTestWorker(t, queue, sender).ProcessNow(context.Background())

	if len(sender.sent) != 0 {
		t.Error("expected nothing sent for an unknown template")
	}
	if got := queue.only(t); got.Status != entity.EmailStatusFailed {
		t.Errorf("expected job failed, got %s", got.Status)
	}
}

func TestClassifyProviderError(t *testing.T) {
	if !domainerror.IsPermanentEmailFailure(classifyProviderError(errors.New("401 unauthorized"))) {
		t.Error("expected 401 to be permanent")
	}
	if domainerror.IsPermanentEmailFailure(classifyProviderError(errors.New("429 rate_limit_exceeded"))) {
		t.Error("expected 429 to be temporary")
	}
}

func TestNewSender(t *testing.T) {
	if _, ok := NewSender("", "Passmeter", "a@example.com").(LogSender); !ok {
		t.Error("expected LogSender without an API key")
	}
	if _, ok := NewSender("re_key", "Passmeter", "a@example.com").(*ResendClient); !ok {
		t.Error("expected ResendClient with an API key")
	}
}
