package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for transport errors. These allow errors.Is/As from callers.
var (
	ErrRequestFailed = errors.New("request failed")
)

// StatusError reports a request that ended on a non-success status,
// either immediately (non-retryable) or after retries were exhausted.
type StatusError struct {
	Status   int
	Attempts int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("assessment API returned status %d after %d attempt(s): %s",
		e.Status, e.Attempts, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// retryableStatus reports whether a status code is worth retrying.
// Everything else fails the request immediately.
func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 503:
		return true
	default:
		return false
	}
}
