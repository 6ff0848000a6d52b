package infrastructure

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"

	healthProbeKey = "__health_probe__"
)

// pinger is implemented by cache backends that hold a connection
type pinger interface {
	Ping(ctx context.Context) error
}

// CacheHealthChecker reports whether the grid cache backend answers.
type CacheHealthChecker struct {
	backend string
	cache   ports.CacheProvider
}

func NewCacheHealthChecker(backend string, cache ports.CacheProvider) *CacheHealthChecker {
	return &CacheHealthChecker{backend: backend, cache: cache}
}

// Check pings connection-backed caches and probes the others with a lookup.
func (c *CacheHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "cache",
		Details:   map[string]interface{}{"backend": c.backend},
	}

	if c.cache == nil {
		status.Status = statusUnhealthy
		status.Error = "cache is not configured"
		return status
	}

	var err error
	if p, ok := c.cache.(pinger); ok {
		err = p.Ping(ctx)
	} else {
		_, err = c.cache.Exists(ctx, healthProbeKey)
	}
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = err.Error()
		return status
	}

	if m, ok := c.cache.(ports.CacheMetrics); ok {
		stats := m.GetStats()
		status.Details["hits"] = stats.Hits
		status.Details["misses"] = stats.Misses
		status.Details["hit_ratio"] = stats.HitRatio
	}

	status.Status = statusHealthy
	return status
}

// SMTPHealthChecker reports whether the SMTP server accepts TCP connections.
type SMTPHealthChecker struct {
	host    string
	port    int
	timeout time.Duration
}

func NewSMTPHealthChecker(host string, port int, timeout time.Duration) *SMTPHealthChecker {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &SMTPHealthChecker{host: host, port: port, timeout: timeout}
}

func (s *SMTPHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "smtp",
		Details: map[string]interface{}{
			"host": s.host,
			"port": fmt.Sprintf("%d", s.port),
		},
	}

	if s.host == "" {
		status.Status = statusUnhealthy
		status.Error = "SMTP host is not configured"
		return status
	}

	dialer := net.Dialer{Timeout: s.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		status.Status = statusUnhealthy
		status.Error = errors.NewEmailError("SMTP server unreachable", err).Error()
		return status
	}
	_ = conn.Close()

	status.Status = statusHealthy
	return status
}
