// Package external provides adapters for external services
// These adapters implement ports for the forecast provider, email, caches, etc.
package external

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sony/gobreaker/v2"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

const (
	acceptGeoJSON   = "application/geo+json"
	maxResponseSize = 16 << 20
	breakerTimeout  = 30 * time.Second
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NWSClientAdapter implements ForecastFetcher for the National Weather Service API.
// Every attempt goes through the rate limiter and a circuit breaker; 5xx and transport
// failures are retried with a fixed backoff.
type NWSClientAdapter struct {
	client      HTTPClient
	limiter     *RateLimiter
	breaker     *gobreaker.CircuitBreaker[[]byte]
	retryPolicy RetryPolicy
	userAgent   string
	clock       clockwork.Clock
	logger      ports.Logger
	metrics     ports.MetricsCollector
}

// NWSClientParams holds parameters for creating the NWS client
type NWSClientParams struct {
	HTTPClient         HTTPClient
	UserAgent          string
	Timeout            time.Duration
	MinRequestInterval time.Duration
	RetryPolicy        RetryPolicy
	BreakerMaxFailures int
	Clock              clockwork.Clock
	Logger             ports.Logger
	Metrics            ports.MetricsCollector
}

// NewNWSClientAdapter creates a new NWS client adapter
func NewNWSClientAdapter(params NWSClientParams) (*NWSClientAdapter, error) {
	if strings.TrimSpace(params.UserAgent) == "" {
		return nil, errors.NewValidationError("user agent is required")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	client := params.HTTPClient
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	clock := params.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	maxFailures := params.BreakerMaxFailures
	if maxFailures < 1 {
		maxFailures = 5
	}

	logger := params.Logger
	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "nws",
		MaxRequests: 1,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(maxFailures)
		},
		// Client errors say nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || !ShouldRetry(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				ports.F("breaker", name),
				ports.F("from", from.String()),
				ports.F("to", to.String()))
		},
	})

	return &NWSClientAdapter{
		client:      client,
		limiter:     NewRateLimiter(params.MinRequestInterval, clock),
		breaker:     breaker,
		retryPolicy: params.RetryPolicy,
		userAgent:   params.UserAgent,
		clock:       clock,
		logger:      params.Logger,
		metrics:     params.Metrics,
	}, nil
}

// FetchJSON performs a rate limited GET of rawURL and returns the response body.
func (c *NWSClientAdapter) FetchJSON(ctx context.Context, rawURL string) ([]byte, error) {
	endpoint := endpointOf(rawURL)
	attempts := c.retryPolicy.Attempts()

	var lastErr error
	attempt := 0
	for attempt < attempts {
		attempt++

		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		body, err := c.breaker.Execute(func() ([]byte, error) {
			return c.get(ctx, rawURL)
		})
		if err == nil {
			c.metrics.RecordFetch(ctx, endpoint, true)
			return body, nil
		}
		lastErr = err

		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			break
		}
		if !ShouldRetry(err) || ctx.Err() != nil || attempt == attempts {
			break
		}

		c.metrics.RecordRetry(ctx, endpoint)
		c.logger.Warn("Retrying forecast request",
			ports.F("url", rawURL),
			ports.F("attempt", attempt),
			ports.F("backoff", c.retryPolicy.Backoff.String()),
			ports.F("error", err.Error()))

		if err := sleep(ctx, c.clock, c.retryPolicy.Backoff); err != nil {
			lastErr = err
			break
		}
	}

	c.metrics.RecordFetch(ctx, endpoint, false)
	return nil, errors.NewFetchFailureError(
		fmt.Sprintf("GET %s failed after %d attempt(s)", rawURL, attempt), lastErr)
}

func (c *NWSClientAdapter) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptGeoJSON)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Failed to close NWS response body", ports.F("error", closeErr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &statusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// endpointOf returns the first path segment of rawURL, used as a low-cardinality label.
func endpointOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	segment := strings.SplitN(strings.Trim(u.Path, "/"), "/", 2)[0]
	if segment == "" {
		return "root"
	}
	return segment
}
