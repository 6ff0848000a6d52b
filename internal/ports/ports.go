package ports

// ApplicationPorts aggregates all ports for dependency injection
type ApplicationPorts struct {
	// Forecast
	ForecastFetcher  ForecastFetcher
	GridResolver     GridResolver
	ForecastProvider ForecastProvider

	// Communication
	EmailProvider EmailProvider

	// Cache
	GridCache    CacheProvider
	CacheMetrics CacheMetrics

	// Infrastructure
	Logger  Logger
	Metrics MetricsCollector
}
