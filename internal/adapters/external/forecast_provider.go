package external

import (
	"context"
	"fmt"

	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// NWSForecastProviderAdapter implements ForecastProvider on top of the grid resolver
// and the forecast fetcher.
type NWSForecastProviderAdapter struct {
	resolver ports.GridResolver
	fetcher  ports.ForecastFetcher
}

// NewNWSForecastProviderAdapter creates a new forecast provider
func NewNWSForecastProviderAdapter(resolver ports.GridResolver, fetcher ports.ForecastFetcher) (*NWSForecastProviderAdapter, error) {
	if resolver == nil {
		return nil, errors.NewValidationError("grid resolver is required")
	}
	if fetcher == nil {
		return nil, errors.NewValidationError("fetcher is required")
	}
	return &NWSForecastProviderAdapter{
		resolver: resolver,
		fetcher:  fetcher,
	}, nil
}

// GetGridData returns the raw grid forecast document for lat/lon.
func (p *NWSForecastProviderAdapter) GetGridData(ctx context.Context, lat, lon float64) ([]byte, error) {
	gridURL, err := p.resolver.Resolve(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("resolve grid endpoint: %w", err)
	}

	body, err := p.fetcher.FetchJSON(ctx, gridURL)
	if err != nil {
		return nil, fmt.Errorf("fetch grid forecast: %w", err)
	}
	return body, nil
}
