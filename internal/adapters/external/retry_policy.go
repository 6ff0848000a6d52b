package external

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// RetryPolicy configures retries of transient fetch failures: MaxRetries extra attempts
// separated by a fixed Backoff.
type RetryPolicy struct {
	MaxRetries int
	Backoff    time.Duration
}

// DefaultRetryPolicy returns the provider's recommended retry behavior.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		Backoff:    3 * time.Second,
	}
}

// Attempts is the total number of tries, including the first.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 0 {
		return 1
	}
	return 1 + p.MaxRetries
}

// statusError reports a non-2xx response.
type statusError struct {
	StatusCode int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ShouldRetry reports whether a failed attempt is transient: a 5xx response or a
// transport error. Client errors are final.
func ShouldRetry(err error) bool {
	if err == nil {
		return false
	}
	var se *statusError
	if stderrors.As(err, &se) {
		return se.StatusCode >= http.StatusInternalServerError
	}
	return true
}
