package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

func theAPIServerIsRunning(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.server == nil {
		return fmt.Errorf("test server is not running")
	}
	resp, err := tc.client.Get(tc.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

// send performs the request and stores the response on the context.
func (tc *TestContext) send(method, endpoint, contentType string, body io.Reader) error {
	req, err := http.NewRequest(method, tc.server.URL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range tc.requestHeaders {
		req.Header.Set(key, value)
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func (tc *TestContext) sendJSON(method, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tc.send(method, endpoint, "application/json", bytes.NewReader(body))
}

func iSendARequestTo(ctx context.Context, method, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, "", nil)
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.send(method, endpoint, "application/json", strings.NewReader(body.Content))
}

func iSendARequestNTimesWithBody(ctx context.Context, method, endpoint string, times int, body *godog.DocString) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	for i := 0; i < times; i++ {
		if err := tc.send(method, endpoint, "application/json", strings.NewReader(body.Content)); err != nil {
			return err
		}
	}
	return nil
}

// iSubmitTheFormWith posts a url-encoded form built from a two-column table.
func iSubmitTheFormWith(ctx context.Context, endpoint string, table *godog.Table) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	form := url.Values{}
	for _, row := range table.Rows {
		if len(row.Cells) != 2 {
			return fmt.Errorf("form rows need a field and a value")
		}
		form.Set(row.Cells[0].Value, row.Cells[1].Value)
	}
	return tc.send(http.MethodPost, endpoint, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func iSetHeaderTo(ctx context.Context, header, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.requestHeaders[header] = value
	return nil
}

func aUserExistsWithEmailAndPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	err := tc.sendJSON(http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email":          email,
		"name":           "Test User",
		"password":       password,
		"terms_accepted": true,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusCreated {
		return fmt.Errorf("failed to create user %s: %d %s", email, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func iAmLoggedInAsWithPassword(ctx context.Context, email, password string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	err := tc.sendJSON(http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed for %s: %d %s", email, tc.response.StatusCode, string(tc.responseBody))
	}

	var auth struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(tc.responseBody, &auth); err != nil {
		return fmt.Errorf("failed to parse login response: %w", err)
	}
	tc.accessToken = auth.AccessToken
	tc.refreshToken = auth.RefreshToken
	return nil
}

func iSendMyRefreshTokenTo(ctx context.Context, endpoint string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.refreshToken == "" {
		return fmt.Errorf("no refresh token held; log in first")
	}
	return tc.sendJSON(http.MethodPost, endpoint, map[string]any{"refresh_token": tc.refreshToken})
}

func iClearMyAccessToken(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.accessToken = ""
	return nil
}

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldBeJSON(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var js json.RawMessage
	if err := json.Unmarshal(tc.responseBody, &js); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain '%s'. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldNotContain(ctx context.Context, unexpected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if strings.Contains(string(tc.responseBody), unexpected) {
		return fmt.Errorf("response unexpectedly contains '%s'", unexpected)
	}
	return nil
}

// lookupField resolves a dotted path such as "user.email" in the JSON body.
func (tc *TestContext) lookupField(field string) (any, bool, error) {
	var data any
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return nil, false, fmt.Errorf("failed to parse response JSON: %w", err)
	}
	for _, key := range strings.Split(field, ".") {
		object, ok := data.(map[string]any)
		if !ok {
			return nil, false, nil
		}
		if data, ok = object[key]; !ok {
			return nil, false, nil
		}
	}
	return data, true, nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	value, ok, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	if actual := fmt.Sprintf("%v", value); actual != expected {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, ok, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("field '%s' not found in response: %s", field, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldNotExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, ok, err := tc.lookupField(field)
	if err != nil {
		return err
	}
	if ok {
		return fmt.Errorf("field '%s' should not be present: %s", field, string(tc.responseBody))
	}
	return nil
}

func theResponseHeaderShouldExist(ctx context.Context, header string) error {
	tc := GetTestContext(ctx)
	if tc == nil || tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.Header.Get(header) == "" {
		return fmt.Errorf("header '%s' not set", header)
	}
	return nil
}

func theDbShouldContainObjectsInTheTable(ctx context.Context, expected int, table string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	count, err := tc.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}

func theDbShouldContainObjectsWhere(ctx context.Context, expected int, table, column, value string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var typed any = value
	switch value {
	case "true":
		typed = true
	case "false":
		typed = false
	}
	count, err := tc.db.CountWhere(table, map[string]any{column: typed})
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s with %s=%s, got %d", expected, table, column, value, count)
	}
	return nil
}
