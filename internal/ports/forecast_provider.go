package ports

import "context"

// ForecastFetcher performs a rate limited, retried GET and returns the JSON body.
type ForecastFetcher interface {
	FetchJSON(ctx context.Context, url string) ([]byte, error)
}

// GridResolver maps a coordinate pair to the provider's grid forecast endpoint.
type GridResolver interface {
	Resolve(ctx context.Context, lat, lon float64) (string, error)
}

// ForecastProvider returns the raw grid forecast document for a coordinate pair.
type ForecastProvider interface {
	GetGridData(ctx context.Context, lat, lon float64) ([]byte, error)
}
