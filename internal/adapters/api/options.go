package api

import (
	"net/http"
	"time"

	"github.com/medwatch/triage/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxAttempts bounds attempts per request for retryable statuses.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBackoff sets the retry backoff schedule: the exponential base, the
// hard cap, and the upper bound on random jitter.
func WithBackoff(base, cap, jitter time.Duration) Option {
	return func(c *Client) {
		if base > 0 {
			c.backoffBase = base
		}
		if cap > 0 {
			c.backoffCap = cap
		}
		if jitter >= 0 {
			c.jitterMax = jitter
		}
	}
}

// WithPageSize sets the per-page record limit for patient fetches.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 && n <= maxPageSize {
			c.pageSize = n
		}
	}
}

// WithPageDelay sets the pacing delay between successive page requests.
func WithPageDelay(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.pageDelay = d
		}
	}
}

// WithSleeper replaces the sleep function. Tests use this to record
// waits instead of performing them.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(c *Client) {
		if sleep != nil {
			c.sleep = sleep
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}
