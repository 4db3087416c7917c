// Package relay forwards validated lead submissions to the upstream form
// backend and normalizes its response into a typed error taxonomy: nil for
// success, UpstreamError when the backend answered with a failure status, and
// TransportError for timeouts and network-level failures.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lewieville/g1-creative-sub000/internal/domain"
)

// DefaultEndpoint is the form backend used when none is configured.
const DefaultEndpoint = "https://api.web3forms.com/submit"

// DefaultTimeout bounds the single outbound call per submission. The
// in-flight request is cancelled at the boundary; the caller resubmits.
const DefaultTimeout = 10 * time.Second

const maxUpstreamBody = 64 << 10

// TransportKind classifies a transport-level failure.
type TransportKind string

const (
	TransportTimeout TransportKind = "timeout"
	TransportNetwork TransportKind = "network"
)

// UpstreamError reports that the form backend responded with a failure
// status. Message is the backend's own error text when one could be
// extracted, else a generic fallback.
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("relay: upstream status %d: %s", e.Status, e.Message)
}

// TransportError reports that the backend could not be reached or did not
// answer within the timeout.
type TransportError struct {
	Kind TransportKind
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("relay: transport failure (%s): %v", e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client relays lead submissions to one configured endpoint. It keeps no
// state between calls and never retries.
type Client struct {
	endpoint   string
	accessKey  string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a relay client. Empty endpoint or non-positive timeout
// fall back to the package defaults.
func NewClient(endpoint, accessKey string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint:   endpoint,
		accessKey:  accessKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Send issues exactly one POST with the normalized submission payload.
// Optional fields are sent as empty strings so the backend always sees the
// same shape. A nil return means the backend accepted the submission.
func (c *Client) Send(ctx context.Context, lead domain.LeadSubmission) error {
	payload := map[string]string{
		"access_key": c.accessKey,
		"subject":    "New inquiry from " + lead.Name,
		"name":       lead.Name,
		"email":      lead.Email,
		"message":    lead.Message,
		"company":    lead.Company,
		"phone":      lead.Phone,
		"service":    lead.Service,
		"budget":     lead.Budget,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("relay: marshal payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("relay: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &TransportError{Kind: TransportTimeout, Err: err}
		}
		return &TransportError{Kind: TransportNetwork, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return &TransportError{Kind: TransportNetwork, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return &UpstreamError{
		Status:  resp.StatusCode,
		Message: extractErrorMessage(respBody),
	}
}

// extractErrorMessage pulls the backend's own error text out of the common
// {message}, {error} and {errors: [...]} shapes, best effort.
func extractErrorMessage(body []byte) string {
	var parsed struct {
		Message string          `json:"message"`
		Error   string          `json:"error"`
		Errors  json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if m := strings.TrimSpace(parsed.Message); m != "" {
			return m
		}
		if m := strings.TrimSpace(parsed.Error); m != "" {
			return m
		}
		if m := joinErrors(parsed.Errors); m != "" {
			return m
		}
	}
	return "Form submission failed"
}

func joinErrors(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var asStrings []string
	if err := json.Unmarshal(raw, &asStrings); err == nil {
		return strings.TrimSpace(strings.Join(asStrings, "; "))
	}

	var asObjects []struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &asObjects); err == nil {
		parts := make([]string, 0, len(asObjects))
		for _, o := range asObjects {
			if o.Message != "" {
				parts = append(parts, o.Message)
			}
		}
		return strings.Join(parts, "; ")
	}

	return ""
}
