package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

func theEmailWorkerProcessesTheQueue(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.emailWorker == nil {
		return fmt.Errorf("email worker not available")
	}
	tc.emailWorker.ProcessNow(ctx)
	return nil
}

// resetLink returns the path and token of the newest reset link sent to recipient.
func (tc *TestContext) resetLink(recipient string) (string, string, error) {
	data, err := tc.db.LatestEmailData(recipient)
	if err != nil {
		return "", "", err
	}
	link, err := url.Parse(data["reset_url"])
	if err != nil {
		return "", "", fmt.Errorf("invalid reset URL %q: %w", data["reset_url"], err)
	}
	token := link.Query().Get("token")
	if token == "" {
		return "", "", fmt.Errorf("reset URL %q carries no token", data["reset_url"])
	}
	return link.RequestURI(), token, nil
}

func iOpenThePasswordResetLinkEmailedTo(ctx context.Context, recipient string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	path, _, err := tc.resetLink(recipient)
	if err != nil {
		return err
	}
	return tc.send(http.MethodGet, path, "", nil)
}

func iResetMyPasswordUsingTheLinkEmailedTo(ctx context.Context, password, recipient string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, token, err := tc.resetLink(recipient)
	if err != nil {
		return err
	}
	return tc.sendJSON(http.MethodPost, "/api/v1/auth/reset-password", map[string]any{
		"token":        token,
		"new_password": password,
	})
}
