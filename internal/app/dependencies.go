package app

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"skywatch.app/internal/adapters/external"
	"skywatch.app/internal/adapters/infrastructure"
	"skywatch.app/internal/config"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/logger"
)

const smtpHealthTimeout = 3 * time.Second

type DependencyContainer struct {
	config  DependencyConfig
	ports   *ports.ApplicationPorts
	metrics *infrastructure.PrometheusMetricsCollector
	health  *infrastructure.SystemHealthChecker
	closers []io.Closer
}

type DependencyConfig struct {
	NWS   config.NWSConfig
	Email config.EmailConfig
	Cache config.CacheConfig
	Log   config.LogConfig

	// HTTPClient and Clock replace the real transport and time source when set.
	HTTPClient external.HTTPClient
	Clock      clockwork.Clock
}

func NewDependencyContainer(depConfig DependencyConfig) (*DependencyContainer, error) {
	container := &DependencyContainer{
		config: depConfig,
	}

	if err := container.initializePorts(); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	container.initializeHealthCheckers()
	return container, nil
}

func (c *DependencyContainer) initializeLogger() ports.Logger {
	if c.config.Log.FilePath == "" {
		return infrastructure.NewSlogLoggerAdapter(nil)
	}

	fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Log.FilePath, logger.ParseLevel(c.config.Log.Level))
	if err != nil {
		slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		return infrastructure.NewSlogLoggerAdapter(nil)
	}

	c.closers = append(c.closers, fileLogger)
	slog.Info("File logging enabled", "path", c.config.Log.FilePath)
	return fileLogger
}

func (c *DependencyContainer) initializePorts() error {
	slog.Info("Initializing ports...")

	log := c.initializeLogger()
	c.metrics = infrastructure.NewPrometheusMetricsCollector(nil)

	cache, err := external.NewCacheProviderFactory().CreateCacheProvider(&c.config.Cache)
	if err != nil {
		return fmt.Errorf("create cache provider: %w", err)
	}
	if closer, ok := cache.(io.Closer); ok {
		c.closers = append(c.closers, closer)
	}
	slog.Info("Cache provider initialized", "type", c.config.Cache.Type.String())

	client, err := external.NewNWSClientAdapter(external.NWSClientParams{
		HTTPClient:         c.config.HTTPClient,
		UserAgent:          c.config.NWS.UserAgent,
		Timeout:            c.config.NWS.Timeout(),
		MinRequestInterval: c.config.NWS.MinRequestInterval(),
		RetryPolicy: external.RetryPolicy{
			MaxRetries: c.config.NWS.MaxRetries,
			Backoff:    c.config.NWS.RetryBackoff(),
		},
		BreakerMaxFailures: c.config.NWS.BreakerMaxFailures,
		Clock:              c.config.Clock,
		Logger:             log,
		Metrics:            c.metrics,
	})
	if err != nil {
		return fmt.Errorf("create forecast client: %w", err)
	}
	fetcher := external.NewFetchLoggingDecorator(client, log)

	resolver, err := external.NewGridResolverAdapter(external.GridResolverParams{
		BaseURL:      c.config.NWS.BaseURL,
		Fetcher:      fetcher,
		Cache:        cache,
		CacheBackend: c.config.Cache.Type.String(),
		Logger:       log,
		Metrics:      c.metrics,
	})
	if err != nil {
		return fmt.Errorf("create grid resolver: %w", err)
	}

	provider, err := external.NewNWSForecastProviderAdapter(resolver, fetcher)
	if err != nil {
		return fmt.Errorf("create forecast provider: %w", err)
	}

	emailProvider := external.NewSMTPEmailProviderAdapter(external.EmailProviderConfig{
		Host:     c.config.Email.SMTPHost,
		Port:     c.config.Email.SMTPPort,
		Username: c.config.Email.SMTPUsername,
		Password: c.config.Email.SMTPPassword,
		FromName: c.config.Email.FromName,
		FromAddr: c.config.Email.FromAddress,
	})

	c.ports = &ports.ApplicationPorts{
		ForecastFetcher:  fetcher,
		GridResolver:     resolver,
		ForecastProvider: provider,
		EmailProvider:    emailProvider,
		GridCache:        cache,
		CacheMetrics:     cache,
		Logger:           log,
		Metrics:          c.metrics,
	}

	slog.Info("Ports initialized successfully")
	return nil
}

func (c *DependencyContainer) initializeHealthCheckers() {
	c.health = infrastructure.NewSystemHealthChecker(map[string]ports.HealthChecker{
		"cache": infrastructure.NewCacheHealthChecker(c.config.Cache.Type.String(), c.ports.GridCache),
		"smtp":  infrastructure.NewSMTPHealthChecker(c.config.Email.SMTPHost, c.config.Email.SMTPPort, smtpHealthTimeout),
	})
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Metrics returns the Prometheus collector behind ApplicationPorts().Metrics.
func (c *DependencyContainer) Metrics() *infrastructure.PrometheusMetricsCollector {
	return c.metrics
}

func (c *DependencyContainer) HealthChecker() *infrastructure.SystemHealthChecker {
	return c.health
}

// Cleanup closes the cache connection and the log file, newest first.
func (c *DependencyContainer) Cleanup() error {
	var firstErr error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.closers = nil
	return firstErr
}
