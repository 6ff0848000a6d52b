package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"skywatch.app/internal/adapters/api"
	"skywatch.app/internal/adapters/external"
	"skywatch.app/internal/config"
	"skywatch.app/internal/core/forecast"
	"skywatch.app/internal/core/notification"
	"skywatch.app/internal/ports"
)

type Application struct {
	config *config.Config

	// Domain
	locations   []forecast.Location
	displayZone *time.Location

	// Use Cases
	notificationUseCase *notification.UseCase

	// Adapters
	server *api.HTTPServerAdapter

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

// Options overrides runtime collaborators. The zero value uses the real network,
// clock and sunrise calculation.
type Options struct {
	HTTPClient external.HTTPClient
	Clock      clockwork.Clock
	Sunrise    forecast.SunriseFunc
}

// NewApplication loads configuration from the environment and wires the application.
func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return NewApplicationWithConfig(cfg, Options{})
}

// NewApplicationWithConfig wires the application from an already loaded configuration.
func NewApplicationWithConfig(cfg *config.Config, opts Options) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate configuration: %w", err)
	}

	app := &Application{config: cfg}

	if err := app.initializeLocations(); err != nil {
		return nil, fmt.Errorf("initialize locations: %w", err)
	}

	if err := app.initializePorts(opts); err != nil {
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	if err := app.initializeUseCases(opts); err != nil {
		_ = app.deps.Cleanup()
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(); err != nil {
		_ = app.deps.Cleanup()
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeLocations() error {
	zone, err := a.config.Notify.DisplayLocation()
	if err != nil {
		return err
	}
	a.displayZone = zone

	locations, err := config.LoadLocations(a.config.Notify.LocationsFile)
	if err != nil {
		return err
	}
	a.locations = locations

	slog.Info("Locations loaded", "file", a.config.Notify.LocationsFile, "count", len(locations))
	return nil
}

func (a *Application) initializePorts(opts Options) error {
	slog.Info("Initializing application ports...")

	deps, err := NewDependencyContainer(DependencyConfig{
		NWS:        a.config.NWS,
		Email:      a.config.Email,
		Cache:      a.config.Cache,
		Log:        a.config.Log,
		HTTPClient: opts.HTTPClient,
		Clock:      opts.Clock,
	})
	if err != nil {
		return fmt.Errorf("create dependency container: %w", err)
	}

	a.deps = deps
	a.ports = deps.ApplicationPorts()
	slog.Info("Application ports initialized successfully")
	return nil
}

func (a *Application) initializeUseCases(opts Options) error {
	slog.Info("Initializing use cases...")

	resolver := forecast.NewTimeResolver(forecast.TimeResolverParams{
		Clock:    opts.Clock,
		Sunrise:  opts.Sunrise,
		DateZone: a.displayZone,
	})

	notificationUseCase, err := notification.NewUseCase(notification.UseCaseDependencies{
		ForecastProvider: a.ports.ForecastProvider,
		EmailProvider:    a.ports.EmailProvider,
		Resolver:         resolver,
		Evaluator:        forecast.NewEvaluator(a.displayZone),
		Recipients:       a.config.Email.To,
		Clock:            opts.Clock,
		Logger:           a.ports.Logger,
		Metrics:          a.ports.Metrics,
	})
	if err != nil {
		return fmt.Errorf("create notification use case: %w", err)
	}
	a.notificationUseCase = notificationUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

// Run performs one notification run over the configured locations, then pushes
// metrics when a Pushgateway is configured. A failed push is logged, not returned.
func (a *Application) Run(ctx context.Context) (*notification.RunResult, error) {
	result, runErr := a.notificationUseCase.Run(ctx, notification.RunParams{
		Locations: a.locations,
		DryRun:    a.config.Notify.DryRun,
	})

	if url := a.config.Metrics.PushgatewayURL; url != "" {
		if err := a.deps.Metrics().Push(ctx, url, a.config.Metrics.JobName); err != nil {
			a.ports.Logger.Warn("Failed to push metrics",
				ports.F("gateway", url),
				ports.F("error", err))
		}
	}

	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

func (a *Application) initializeAdapters() error {
	slog.Info("Initializing adapters...")

	server, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config:         api.ServerConfig{Port: a.config.Server.Port},
		Evaluations:    a.notificationUseCase,
		Locations:      a.locations,
		DisplayZone:    a.displayZone,
		HealthChecker:  a.deps.HealthChecker(),
		MetricsHandler: a.deps.Metrics().Handler(),
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}
	a.server = server

	slog.Info("Adapters initialized successfully")
	return nil
}

// Serve runs the HTTP preview until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	slog.Info("Starting preview server", "port", a.config.Server.Port)
	return a.server.Start(ctx)
}

// Close releases the cache connection and log file.
func (a *Application) Close() error {
	slog.Info("Shutting down application...")
	if a.deps == nil {
		return nil
	}
	return a.deps.Cleanup()
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

func (a *Application) Locations() []forecast.Location {
	return a.locations
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.server.GetRouter()
}

// GetNotificationUseCase returns the notification use case for testing
func (a *Application) GetNotificationUseCase() *notification.UseCase {
	return a.notificationUseCase
}
