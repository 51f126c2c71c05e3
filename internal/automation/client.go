// Package automation is the HTTP client for the hosted form-filling service.
// The browser automation engine itself runs elsewhere; only its contract
// lives here.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/seekwell-app/seekwell/internal/retry"
)

// Submission statuses returned by the service.
const (
	StatusSubmitted     = "submitted"
	StatusMissingFields = "missing_fields"
	StatusFailed        = "failed"
)

// MissingFieldsError reports form fields the service could not fill from the
// supplied profile. The caller records them and asks the user to complete
// the profile.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("automation: missing fields: %s", strings.Join(e.Fields, ", "))
}

// SubmitRequest describes one application the service should file.
type SubmitRequest struct {
	JobURL    string          `json:"job_url"`
	Profile   json.RawMessage `json:"profile"`
	ResumeURL string          `json:"resume_url,omitempty"`
}

// SubmitResult is the service's verdict on a submission.
type SubmitResult struct {
	Status         string   `json:"status"`
	ConfirmationID string   `json:"confirmation_id"`
	MissingFields  []string `json:"missing_fields"`
	Error          string   `json:"error,omitempty"`
}

// Client talks to the automation service over HTTP/JSON.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	backoff time.Duration
}

// NewClient builds the client. A zero timeout defaults to 120s because a
// browser-driven submission is slow by nature.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
		backoff: time.Second,
	}
}

// SubmitApplication files one application. Transient failures (429, 5xx)
// are retried with backoff; a missing_fields verdict surfaces as a typed
// error so callers can branch on it.
func (c *Client) SubmitApplication(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	result, err := retry.Do(ctx, 3, c.backoff, func() (*SubmitResult, error) {
		return c.submit(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case StatusMissingFields:
		return result, &MissingFieldsError{Fields: result.MissingFields}
	case StatusFailed:
		return result, fmt.Errorf("automation: submit rejected: %s", result.Error)
	}
	return result, nil
}

func (c *Client) submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("automation: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/applications", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("automation: submit: %w", err)
	}
	defer resp.Body.Close()

	if retry.RetryableStatus(resp.StatusCode) {
		return nil, fmt.Errorf("automation: submit failed: %s", resp.Status)
	}
	if resp.StatusCode >= 300 {
		// Client errors are permanent: surface them as a failed result so
		// the retry loop does not re-submit the same bad request.
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &SubmitResult{
			Status: StatusFailed,
			Error:  fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(data))),
		}, nil
	}

	var result SubmitResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("automation: decode response: %w", err)
	}
	return &result, nil
}
