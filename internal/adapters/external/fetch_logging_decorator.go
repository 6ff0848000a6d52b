package external

import (
	"context"
	"time"

	"skywatch.app/internal/ports"
)

// FetchLoggingDecorator decorates a forecast fetcher with structured logging
type FetchLoggingDecorator struct {
	fetcher ports.ForecastFetcher
	logger  ports.Logger
}

// NewFetchLoggingDecorator creates a new logging decorator for forecast fetchers
func NewFetchLoggingDecorator(fetcher ports.ForecastFetcher, logger ports.Logger) ports.ForecastFetcher {
	return &FetchLoggingDecorator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// FetchJSON wraps the fetch with structured logging
func (d *FetchLoggingDecorator) FetchJSON(ctx context.Context, url string) ([]byte, error) {
	d.logger.Info("Forecast request started",
		ports.F("url", url),
		ports.F("event", "request"))

	startTime := time.Now()
	body, err := d.fetcher.FetchJSON(ctx, url)
	duration := time.Since(startTime)

	if err != nil {
		d.logger.Error("Forecast request failed",
			ports.F("url", url),
			ports.F("event", "error"),
			ports.F("duration_ms", duration.Milliseconds()),
			ports.F("error", err.Error()))
		return nil, err
	}

	d.logger.Info("Forecast request completed",
		ports.F("url", url),
		ports.F("event", "response"),
		ports.F("duration_ms", duration.Milliseconds()),
		ports.F("bytes", len(body)))

	return body, nil
}
