// Package client is the Go SDK for the sitecast reporting API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Version is the SDK version reported in the User-Agent header.
const Version = "0.1.0"

// Logger is the minimal logging surface the client writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(format string, args ...interface{}) {}
func (noopLogger) Errorf(format string, args ...interface{}) {}

// Client talks to a sitecast API server.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	userAgent    string
	logger       Logger
	retryMax     int
	retryWaitMin time.Duration
	retryWaitMax time.Duration

	projects      *ProjectsClient
	projectsOnce  sync.Once
	forecasts     *ForecastsClient
	forecastsOnce sync.Once
	reports       *ReportsClient
	reportsOnce   sync.Once
}

// APIError is a non-2xx response decoded into the server's error body.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	RequestID  string `json:"request_id"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sitecast: %s (HTTP %d): %s [request_id=%s]", e.Code, e.StatusCode, e.Message, e.RequestID)
}

func (e *APIError) IsNotFound() bool    { return e.StatusCode == http.StatusNotFound }
func (e *APIError) IsServerError() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// NewClient validates baseURL and constructs a Client with default retry
// behaviour.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: baseURL is required")
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client: invalid baseURL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("client: baseURL scheme must be http or https")
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		userAgent:    fmt.Sprintf("sitecast-go-sdk/%s", Version),
		logger:       noopLogger{},
		retryMax:     3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Projects returns the projects sub-client.
func (c *Client) Projects() *ProjectsClient {
	c.projectsOnce.Do(func() { c.projects = &ProjectsClient{client: c} })
	return c.projects
}

// Forecasts returns the forecasts sub-client.
func (c *Client) Forecasts() *ForecastsClient {
	c.forecastsOnce.Do(func() { c.forecasts = &ForecastsClient{client: c} })
	return c.forecasts
}

// Reports returns the reports sub-client.
func (c *Client) Reports() *ReportsClient {
	c.reportsOnce.Do(func() { c.reports = &ReportsClient{client: c} })
	return c.reports
}

// do performs a JSON request with retry on transport failures and 5xx
// responses.  result may be nil for fire-and-forget calls.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	raw, err := c.doRaw(ctx, method, path, body, "application/json")
	if err != nil {
		return err
	}
	if result == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("client: decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// doRaw is do without response decoding; accept controls the Accept header so
// CSV endpoints can reuse the retry loop.
func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}, accept string) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	fullURL := c.baseURL + path

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("client: encoding request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retryMax; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			c.logger.Debugf("retry %d after %v", attempt, backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reader io.Reader
		if bodyBytes != nil {
			reader = bytes.NewReader(bodyBytes)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("client: building request: %w", err)
		}
		requestID := uuid.NewString()
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", accept)
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("X-Request-ID", requestID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.logger.Errorf("%s %s: %v", method, path, err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("client: reading response: %w", err)
		}
		c.logger.Debugf("%s %s %d", method, path, resp.StatusCode)

		if resp.StatusCode >= 400 {
			apiErr := &APIError{StatusCode: resp.StatusCode, RequestID: requestID}
			_ = json.Unmarshal(respBody, apiErr)
			if apiErr.IsServerError() && attempt < c.retryMax {
				lastErr = apiErr
				continue
			}
			return nil, apiErr
		}
		return respBody, nil
	}
	return nil, fmt.Errorf("client: %s %s failed after %d attempts: %w", method, path, c.retryMax+1, lastErr)
}

// backoff is exponential with jitter, clamped to retryWaitMax.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.retryWaitMin << uint(attempt-1)
	if d > c.retryWaitMax {
		d = c.retryWaitMax
	}
	jitter := time.Duration(rand.Int63n(int64(d)/4 + 1))
	return d + jitter
}
