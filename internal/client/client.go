// Package client calls the icon generation API over HTTP, applying a request timeout
// and a small fixed retry budget
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/golden-vcr/icongen/internal/icons"
)

const (
	DefaultTimeout       = 60 * time.Second
	DefaultHealthTimeout = 5 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryDelay    = time.Second
)

// APIError is a failure reported by the icon generation API, or a failure to reach it
type APIError struct {
	Message    string
	StatusCode int
	Context    map[string]any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// retryable reports whether it's worth sending the same request again: client errors
// will fail the same way every time, except for timeouts and rate limiting
func (e *APIError) retryable() bool {
	if e.StatusCode == http.StatusRequestTimeout || e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode < 400 || e.StatusCode >= 500
}

type Client struct {
	baseURL    string
	http       *http.Client
	maxRetries uint
	retryDelay time.Duration
}

// NewClient initializes a client for the API running at baseURL, e.g.
// http://localhost:4000
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Timeout: DefaultTimeout},
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// GenerateIcons requests a set of icons, retrying a fixed number of times with a fixed
// delay between attempts
func (c *Client) GenerateIcons(ctx context.Context, r icons.Request) (*icons.Response, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return backoff.Retry(ctx, func() (*icons.Response, error) {
		result, err := c.generateIcons(ctx, body)
		var apiError *APIError
		if errors.As(err, &apiError) && !apiError.retryable() {
			return nil, backoff.Permanent(err)
		}
		return result, err
	},
		backoff.WithBackOff(backoff.NewConstantBackOff(c.retryDelay)),
		backoff.WithMaxTries(c.maxRetries+1),
	)
}

func (c *Client) generateIcons(ctx context.Context, body []byte) (*icons.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate-icons", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("content-type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, &APIError{Message: "Request timeout", StatusCode: http.StatusRequestTimeout}
		}
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, parseError(res)
	}

	var result icons.Response
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Images) == 0 {
		return nil, &APIError{Message: "Invalid response: no images received", StatusCode: http.StatusInternalServerError}
	}
	return &result, nil
}

// Health reports whether the API is up and responding to health checks
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, DefaultHealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	res, err := c.http.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()
	return res.StatusCode == http.StatusOK
}

// parseError builds an APIError from a failure response, preferring the message
// supplied in the JSON body
func parseError(res *http.Response) *APIError {
	apiError := &APIError{
		Message:    "Failed to generate icons",
		StatusCode: res.StatusCode,
	}
	var payload struct {
		Error   string         `json:"error"`
		Context map[string]any `json:"context"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		if text := http.StatusText(res.StatusCode); text != "" {
			apiError.Message = text
		}
		return apiError
	}
	if payload.Error != "" {
		apiError.Message = payload.Error
	}
	apiError.Context = payload.Context
	return apiError
}

func isTimeout(err error) bool {
	var timeoutError interface{ Timeout() bool }
	return errors.As(err, &timeoutError) && timeoutError.Timeout()
}
