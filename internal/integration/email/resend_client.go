// Package email queues transactional emails and delivers them through Resend.
package email

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/passmeter/backend/internal/application/adapter"
	domainerror "github.com/passmeter/backend/internal/domain/error"
)

// ResendClient implements the adapter.EmailSender interface using Resend.
type ResendClient struct {
	client    *resend.Client
	fromName  string
	fromEmail string
}

// NewResendClient creates a new Resend client.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	return &ResendClient{
		client:    resend.NewClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// Send delivers the email and returns the Resend message ID.
func (c *ResendClient) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	to := email.To
	if email.Name != "" {
		to = fmt.Sprintf("%s <%s>", email.Name, email.To)
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", c.fromName, c.fromEmail),
		To:      []string{to},
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	})
	if err != nil {
		return "", classifyProviderError(err)
	}
	return resp.Id, nil
}

// permanentFailureMarkers match Resend errors that a retry cannot fix:
// bad credentials, forbidden senders and validation failures.
var permanentFailureMarkers = []string{
	"401", "403", "422",
	"unauthorized", "forbidden", "validation", "invalid", "bad request",
}

func classifyProviderError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, marker := range permanentFailureMarkers {
		if strings.Contains(msg, marker) {
			return domainerror.NewEmailError(domainerror.ErrCodePermanentEmailFailure, "permanent email failure", err)
		}
	}
	return domainerror.NewEmailError(domainerror.ErrCodeTemporaryEmailFailure, "temporary email failure", err)
}

// LogSender writes emails to the log instead of sending them.
// It stands in for Resend when no API key is configured.
type LogSender struct{}

// Send logs the recipient and plain text body.
func (LogSender) Send(ctx context.Context, email adapter.OutgoingEmail) (string, error) {
	slog.InfoContext(ctx, "Email delivery disabled, logging message instead",
		"to", email.To,
		"subject", email.Subject,
		"body", email.Text,
	)
	return "", nil
}

// NewSender returns a Resend client when apiKey is set and a LogSender otherwise.
func NewSender(apiKey, fromName, fromEmail string) adapter.EmailSender {
	if apiKey == "" {
		return LogSender{}
	}
	return NewResendClient(apiKey, fromName, fromEmail)
}

var (
	_ adapter.EmailSender = (*ResendClient)(nil)
	_ adapter.EmailSender = LogSender{}
)
