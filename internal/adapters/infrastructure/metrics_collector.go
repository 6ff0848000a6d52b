package infrastructure

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"skywatch.app/internal/ports"
	"skywatch.app/pkg/errors"
)

const metricsNamespace = "skywatch"

// PrometheusMetricsCollector implements the MetricsCollector port on its own registry,
// so one-shot runs can push exactly what they recorded.
type PrometheusMetricsCollector struct {
	registry *prometheus.Registry

	cacheLookups  *prometheus.CounterVec // labels: backend, result={hit,miss}
	cacheHitRatio *prometheus.GaugeVec   // labels: backend
	fetches       *prometheus.CounterVec // labels: endpoint, outcome={success,failure}
	retries       *prometheus.CounterVec // labels: endpoint
	evaluations   *prometheus.CounterVec // labels: location, meets_criteria
	notifications *prometheus.CounterVec // labels: sent

	mutex      sync.Mutex
	cacheCount map[string]*hitMiss
}

type hitMiss struct {
	hits, total float64
}

// NewPrometheusMetricsCollector registers the collector's metrics on reg; a nil reg
// gets a fresh registry.
func NewPrometheusMetricsCollector(reg *prometheus.Registry) *PrometheusMetricsCollector {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &PrometheusMetricsCollector{
		registry: reg,
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "grid_cache_lookups_total",
			Help:      "Grid cache lookups by backend and result.",
		}, []string{"backend", "result"}),
		cacheHitRatio: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "grid_cache_hit_ratio",
			Help:      "Grid cache hit ratio (hits/lookups).",
		}, []string{"backend"}),
		fetches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forecast_fetches_total",
			Help:      "Forecast provider requests by endpoint and outcome, after retries.",
		}, []string{"endpoint", "outcome"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "forecast_fetch_retries_total",
			Help:      "Retried forecast provider attempts by endpoint.",
		}, []string{"endpoint"}),
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "location_evaluations_total",
			Help:      "Location evaluations by location and outcome.",
		}, []string{"location", "meets_criteria"}),
		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "notification_runs_total",
			Help:      "Completed notification runs by whether an email was sent.",
		}, []string{"sent"}),
		cacheCount: make(map[string]*hitMiss),
	}
}

// Registry exposes the underlying registry for scraping and tests
func (m *PrometheusMetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *PrometheusMetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Push sends the registry to a Pushgateway under job.
func (m *PrometheusMetricsCollector) Push(ctx context.Context, gatewayURL, job string) error {
	if gatewayURL == "" {
		return errors.NewConfigurationError("pushgateway URL cannot be empty", nil)
	}
	if err := push.New(gatewayURL, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return errors.Wrap(errors.ErrorTypeUnknown, "failed to push metrics", err)
	}
	return nil
}

func (m *PrometheusMetricsCollector) RecordCacheHit(ctx context.Context, backend string) {
	m.cacheLookups.WithLabelValues(backend, "hit").Inc()
	m.updateHitRatio(backend, true)
}

func (m *PrometheusMetricsCollector) RecordCacheMiss(ctx context.Context, backend string) {
	m.cacheLookups.WithLabelValues(backend, "miss").Inc()
	m.updateHitRatio(backend, false)
}

func (m *PrometheusMetricsCollector) updateHitRatio(backend string, hit bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	c, ok := m.cacheCount[backend]
	if !ok {
		c = &hitMiss{}
		m.cacheCount[backend] = c
	}
	c.total++
	if hit {
		c.hits++
	}
	m.cacheHitRatio.WithLabelValues(backend).Set(c.hits / c.total)
}

func (m *PrometheusMetricsCollector) RecordFetch(ctx context.Context, endpoint string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.fetches.WithLabelValues(endpoint, outcome).Inc()
}

func (m *PrometheusMetricsCollector) RecordRetry(ctx context.Context, endpoint string) {
	m.retries.WithLabelValues(endpoint).Inc()
}

func (m *PrometheusMetricsCollector) RecordEvaluation(ctx context.Context, location string, meetsCriteria bool) {
	m.evaluations.WithLabelValues(location, strconv.FormatBool(meetsCriteria)).Inc()
}

func (m *PrometheusMetricsCollector) RecordNotification(ctx context.Context, sent bool) {
	m.notifications.WithLabelValues(strconv.FormatBool(sent)).Inc()
}

var _ ports.MetricsCollector = (*PrometheusMetricsCollector)(nil)
