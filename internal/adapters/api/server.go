// Package api provides the HTTP preview surface: it lists configured locations and
// evaluates them on demand without sending email.
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"skywatch.app/internal/core/forecast"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

const shutdownTimeout = 10 * time.Second

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port int
}

// EvaluationUseCase evaluates locations without side effects
type EvaluationUseCase interface {
	Evaluate(ctx context.Context, locations []forecast.Location) ([]*forecast.Message, error)
}

// HTTPServerAdapter implements HTTP server using Gin framework
type HTTPServerAdapter struct {
	router         *gin.Engine
	config         ServerConfig
	evaluations    EvaluationUseCase
	locations      []forecast.Location
	displayZone    *time.Location
	healthChecker  ports.SystemHealthChecker
	metricsHandler http.Handler
}

// ServerOptions represents options for creating the HTTP server
type ServerOptions struct {
	Config         ServerConfig
	Evaluations    EvaluationUseCase
	Locations      []forecast.Location
	DisplayZone    *time.Location
	HealthChecker  ports.SystemHealthChecker
	MetricsHandler http.Handler
}

// NewHTTPServerAdapter creates a new HTTP server adapter
func NewHTTPServerAdapter(opts ServerOptions) (*HTTPServerAdapter, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server options: %w", err)
	}

	zone := opts.DisplayZone
	if zone == nil {
		zone = time.UTC
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	server := &HTTPServerAdapter{
		router:         router,
		config:         opts.Config,
		evaluations:    opts.Evaluations,
		locations:      opts.Locations,
		displayZone:    zone,
		healthChecker:  opts.HealthChecker,
		metricsHandler: opts.MetricsHandler,
	}

	server.setupRoutes()
	return server, nil
}

// Validate checks if all required dependencies are provided
func (opts *ServerOptions) Validate() error {
	if opts.Evaluations == nil {
		return errors.NewValidationError("evaluation use case is required")
	}
	if len(opts.Locations) == 0 {
		return errors.NewValidationError("at least one location is required")
	}
	if opts.HealthChecker == nil {
		return errors.NewValidationError("health checker is required")
	}
	if opts.MetricsHandler == nil {
		return errors.NewValidationError("metrics handler is required")
	}
	return nil
}

// setupRoutes configures all HTTP routes
func (s *HTTPServerAdapter) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/locations", s.listLocations)
		api.GET("/evaluations", s.evaluate)
	}

	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(s.metricsHandler))
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *HTTPServerAdapter) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", s.config.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// GetRouter returns the router for testing purposes
func (s *HTTPServerAdapter) GetRouter() *gin.Engine {
	return s.router
}

// requestLogger logs one line per request through slog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}
