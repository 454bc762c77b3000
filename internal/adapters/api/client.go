// Package api is the assessment API adapter: an HTTP client that wraps
// every call in a bounded retry policy, plus the paginated patient
// fetcher and the assessment submit operation built on it.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/medwatch/triage/pkg/logger"
	"github.com/medwatch/triage/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultMaxAttempts = 5
	defaultBackoffBase = 500 * time.Millisecond
	defaultBackoffCap  = 8 * time.Second
	defaultJitterMax   = 250 * time.Millisecond
	defaultPageSize    = 20
	defaultPageDelay   = 150 * time.Millisecond
	defaultHTTPTimeout = 30 * time.Second

	// maxPageSize is the largest per-page limit the API accepts.
	maxPageSize = 20
)

// Client talks to the assessment API. All requests carry the API key and
// accept headers and run through the retry policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	maxAttempts int
	backoffBase time.Duration
	backoffCap  time.Duration
	jitterMax   time.Duration

	pageSize  int
	pageDelay time.Duration

	sleep func(time.Duration)
	rng   *rand.Rand
	log   logger.Logger
}

// New creates a Client for the given API root and key.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultHTTPTimeout},
		baseURL:     baseURL,
		apiKey:      apiKey,
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		backoffCap:  defaultBackoffCap,
		jitterMax:   defaultJitterMax,
		pageSize:    defaultPageSize,
		pageDelay:   defaultPageDelay,
		sleep:       time.Sleep,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // jitter only, not security-sensitive
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// do issues one logical request, retrying on 429/500/503 and on
// transport-level failures until the attempt budget runs out. A 2xx
// response returns its body; any other status returns a *StatusError.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", ErrRequestFailed, err)
			if attempt == c.maxAttempts {
				break
			}
			c.logRetry(ctx, endpoint, 0, attempt)
			c.sleep(c.backoff(attempt))
			continue
		}

		respBody, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, fmt.Errorf("%w: reading response body: %v", ErrRequestFailed, readErr)
		}

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return respBody, nil
		}

		statusErr := &StatusError{Status: resp.StatusCode, Attempts: attempt, Body: string(respBody)}
		if !retryableStatus(resp.StatusCode) {
			metrics.RecordTransportError()
			return nil, statusErr
		}

		lastErr = statusErr
		if attempt == c.maxAttempts {
			break
		}

		metrics.RecordRetryAttempt(strconv.Itoa(resp.StatusCode))
		c.logRetry(ctx, endpoint, resp.StatusCode, attempt)
		c.sleep(c.retryDelay(resp, attempt))
	}

	metrics.RecordTransportError()
	return nil, lastErr
}

// retryDelay picks the wait before the next attempt. A numeric
// Retry-After header (seconds) wins outright; otherwise the exponential
// backoff schedule applies.
func (c *Client) retryDelay(resp *http.Response, attempt int) time.Duration {
	if h := resp.Header.Get("Retry-After"); h != "" {
		if secs, err := strconv.ParseFloat(h, 64); err == nil && secs >= 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	return c.backoff(attempt)
}

// backoff computes min(cap, base*2^(attempt-1) + jitter).
func (c *Client) backoff(attempt int) time.Duration {
	d := c.backoffBase
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= c.backoffCap {
			break
		}
	}
	if c.jitterMax > 0 {
		d += time.Duration(c.rng.Int63n(int64(c.jitterMax)))
	}
	if d > c.backoffCap {
		d = c.backoffCap
	}
	return d
}

func (c *Client) logRetry(ctx context.Context, endpoint string, status, attempt int) {
	if c.log == nil {
		return
	}
	c.log.Warn(ctx, "retrying request",
		logger.String("endpoint", endpoint),
		logger.Int("status", status),
		logger.Int("attempt", attempt),
	)
}
