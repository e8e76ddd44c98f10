// Package webhook posts generation requests to the external workflow engine.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonathan/wordsmithery/internal/types"
)

// DefaultEndpoint is the workflow webhook the drafting tool was deployed against
const DefaultEndpoint = "https://n8n.srv1311717.hstgr.cloud/webhook/5c2aa3b8-401c-4988-9f2e-2fad357496b4"

// timestampLayout matches ISO-8601 with millisecond precision in UTC
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Options configures the webhook client.
type Options struct {
	Endpoint string
	Source   string
	// Timeout of zero leaves the transport default in place
	Timeout    time.Duration
	HTTPClient *http.Client
	Now        func() time.Time
}

// Client sends one generation request at a time to the engine.
type Client struct {
	endpoint string
	source   string
	http     *http.Client
	now      func() time.Time
	inflight *semaphore.Weighted
}

// New creates a webhook client. The endpoint must be an absolute URL.
func New(opts Options) (*Client, error) {
	endpoint := opts.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{
			Endpoint: endpoint,
			Message:  "invalid endpoint URL",
			Cause:    err,
		}
	}

	source := opts.Source
	if source == "" {
		source = types.DefaultSource
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		endpoint: endpoint,
		source:   source,
		http:     httpClient,
		now:      now,
		inflight: semaphore.NewWeighted(1),
	}, nil
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Generate posts req stamped with the current time and source tag, and returns the raw body.
func (c *Client) Generate(ctx context.Context, req types.GenerationRequest) (string, error) {
	return c.Post(ctx, c.Payload(req))
}

// Payload augments req with the wire-only timestamp and source fields
func (c *Client) Payload(req types.GenerationRequest) types.WebhookPayload {
	return types.WebhookPayload{
		GenerationRequest: req,
		Timestamp:         c.now().UTC().Format(timestampLayout),
		Source:            c.source,
	}
}

// Post sends payload and returns the response body text.
// Non-2xx responses fail with a *StatusError embedding the status and body.
func (c *Client) Post(ctx context.Context, payload types.WebhookPayload) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", &Error{Endpoint: c.endpoint, Message: "failed to encode payload", Cause: err}
	}

	// Only one call may be outstanding against the engine
	if err := c.inflight.Acquire(ctx, 1); err != nil {
		return "", &Error{Endpoint: c.endpoint, Message: "request cancelled before dispatch", Cause: err}
	}
	defer c.inflight.Release(1)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &Error{Endpoint: c.endpoint, Message: "failed to create request", Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &Error{Endpoint: c.endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Endpoint: c.endpoint, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{
			StatusCode: resp.StatusCode,
			Status:     statusText(resp),
			Body:       string(respBytes),
		}
	}

	return string(respBytes), nil
}

// statusText returns the reason phrase without the numeric code
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}
