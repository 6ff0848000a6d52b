package external

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

// GridResolverAdapter maps coordinates to the grid forecast endpoint, memoizing the
// answer in a persistent cache. Entries never expire: grid endpoints are stable.
type GridResolverAdapter struct {
	baseURL      string
	fetcher      ports.ForecastFetcher
	cache        ports.CacheProvider
	cacheBackend string
	logger       ports.Logger
	metrics      ports.MetricsCollector
}

// GridResolverParams holds parameters for creating the grid resolver
type GridResolverParams struct {
	BaseURL string
	Fetcher ports.ForecastFetcher
	Cache   ports.CacheProvider
	// CacheBackend labels cache metrics, e.g. "file" or "redis".
	CacheBackend string
	Logger       ports.Logger
	Metrics      ports.MetricsCollector
}

type pointsResponse struct {
	Properties *struct {
		ForecastGridData string `json:"forecastGridData"`
	} `json:"properties"`
}

// NewGridResolverAdapter creates a new grid resolver
func NewGridResolverAdapter(params GridResolverParams) (*GridResolverAdapter, error) {
	if params.BaseURL == "" {
		return nil, errors.NewValidationError("base URL is required")
	}
	if params.Fetcher == nil {
		return nil, errors.NewValidationError("fetcher is required")
	}
	if params.Cache == nil {
		return nil, errors.NewValidationError("cache is required")
	}
	if params.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if params.Metrics == nil {
		return nil, errors.NewValidationError("metrics collector is required")
	}

	return &GridResolverAdapter{
		baseURL:      strings.TrimRight(params.BaseURL, "/"),
		fetcher:      params.Fetcher,
		cache:        params.Cache,
		cacheBackend: params.CacheBackend,
		logger:       params.Logger,
		metrics:      params.Metrics,
	}, nil
}

// GridCacheKey formats a coordinate pair the same way for every read and write.
func GridCacheKey(lat, lon float64) string {
	return formatCoordinate(lat) + "," + formatCoordinate(lon)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Resolve returns the grid endpoint URL for lat/lon.
func (r *GridResolverAdapter) Resolve(ctx context.Context, lat, lon float64) (string, error) {
	key := GridCacheKey(lat, lon)

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		r.metrics.RecordCacheHit(ctx, r.cacheBackend)
		return string(cached), nil
	case errors.IsNotFoundError(err):
		r.metrics.RecordCacheMiss(ctx, r.cacheBackend)
	default:
		return "", fmt.Errorf("read grid cache: %w", err)
	}

	pointsURL := fmt.Sprintf("%s/points/%s", r.baseURL, key)
	body, err := r.fetcher.FetchJSON(ctx, pointsURL)
	if err != nil {
		return "", err
	}

	var points pointsResponse
	if err := json.Unmarshal(body, &points); err != nil {
		return "", errors.NewMalformedResponseError("points response is not valid JSON", err)
	}
	if points.Properties == nil {
		return "", errors.NewMalformedResponseError("points response has no properties", nil)
	}
	gridURL := points.Properties.ForecastGridData
	if gridURL == "" {
		return "", errors.NewMalformedResponseError("points response has no properties.forecastGridData", nil)
	}

	if err := r.cache.Set(ctx, key, []byte(gridURL), 0); err != nil {
		return "", fmt.Errorf("write grid cache: %w", err)
	}

	r.logger.Debug("Grid endpoint resolved",
		ports.F("key", key),
		ports.F("grid_url", gridURL))
	return gridURL, nil
}
