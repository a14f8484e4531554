// Package jira provides a minimal Jira REST client for bulk issue lookups.
package jira

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Retry constants for tracker requests.
const (
	defaultMaxAttempts = 5
	initialRetryDelay  = 200 * time.Millisecond
	maxRetryDelay      = 10 * time.Second
)

// Config holds the settings for creating a Jira client.
type Config struct {
	BaseURL      string // Jira base URL, e.g. https://jira.example.com
	Token        string // personal access token (bearer auth)
	ConnectKey   string // Atlassian Connect app key; with SharedSecret enables JWT auth
	SharedSecret string // Connect shared secret for signing request JWTs
	HTTPTimeout  time.Duration
	MaxAttempts  int // retry attempts per request; 0 means the default
}

// Client handles Jira REST API interactions.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	token        string
	connectKey   string
	sharedSecret []byte
	maxAttempts  int
}

// New creates a Jira client from the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("jira base URL is required")
	}
	if cfg.Token == "" && (cfg.ConnectKey == "" || cfg.SharedSecret == "") {
		return nil, errors.New("jira credentials are required: set a token, or a connect key with a shared secret")
	}

	timeout := cfg.HTTPTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts == 0 {
		attempts = defaultMaxAttempts
	}

	if cfg.ConnectKey != "" && cfg.SharedSecret != "" {
		slog.Info("Using Connect JWT authentication", "component", "jira", "key", cfg.ConnectKey)
	} else {
		slog.Info("Using bearer token authentication", "component", "jira")
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		token:        cfg.Token,
		connectKey:   cfg.ConnectKey,
		sharedSecret: []byte(cfg.SharedSecret),
		maxAttempts:  attempts,
	}, nil
}

// doRequest makes an HTTP request to the Jira API with retry on rate limits,
// server errors and transport failures. The caller owns the response body.
func (c *Client) doRequest(ctx context.Context, method, apiURL string) (*http.Response, error) {
	slog.Debug("HTTP request", "component", "jira", "method", method, "url", apiURL)

	var resp *http.Response
	err := retryWithBackoff(ctx, c.maxAttempts, fmt.Sprintf("%s %s", method, apiURL), func() error {
		req, err := http.NewRequestWithContext(ctx, method, apiURL, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		if err := c.authorize(req); err != nil {
			return fmt.Errorf("authorize request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		localResp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		if localResp.StatusCode == http.StatusTooManyRequests {
			drainAndCloseBody(localResp.Body)
			slog.Warn("Rate limited - will retry with backoff", "method", method, "url", apiURL)
			return fmt.Errorf("http %d: rate limited", localResp.StatusCode)
		}
		if localResp.StatusCode >= http.StatusInternalServerError {
			drainAndCloseBody(localResp.Body)
			slog.Warn("Server error - will retry with backoff", "method", method, "url", apiURL, "status", localResp.StatusCode)
			return fmt.Errorf("http %d: server error", localResp.StatusCode)
		}

		resp = localResp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("HTTP response", "component", "jira", "method", method, "url", apiURL, "status", resp.StatusCode)
	return resp, nil
}

// retryWithBackoff executes fn with jittered exponential backoff.
func retryWithBackoff(ctx context.Context, attempts int, operation string, fn func() error) error {
	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(initialRetryDelay),
		retry.MaxDelay(maxRetryDelay),
		retry.DelayType(retry.CombineDelay(retry.BackOffDelay, retry.RandomDelay)),
		retry.MaxJitter(initialRetryDelay/4),
		retry.OnRetry(func(n uint, err error) {
			slog.Info("Retry attempt", "component", "retry", "operation", operation, "attempt", n+1, "error", err)
		}),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			if err == nil {
				return false
			}
			errStr := err.Error()
			return strings.Contains(errStr, "rate limited") ||
				strings.Contains(errStr, "server error") ||
				strings.Contains(errStr, "connection refused") ||
				strings.Contains(errStr, "timeout") ||
				strings.Contains(errStr, "EOF")
		}),
	)
}

// drainAndCloseBody drains and closes an HTTP response body so the
// connection can be reused.
func drainAndCloseBody(body io.ReadCloser) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		slog.Warn("Failed to drain response body", "error", err)
	}
	if err := body.Close(); err != nil {
		slog.Warn("Failed to close response body", "error", err)
	}
}
