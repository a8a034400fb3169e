package observability

import (
	"time"

	"github.com/membresiasgt/panel-go/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the panel.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	upstreamDuration *prometheus.HistogramVec
	upstreamErrors   *prometheus.CounterVec
	upstreamRequests *prometheus.CounterVec
	healthChecks     *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	pagesRendered    *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "panel_upstream_duration_seconds",
				Help:    "Duration of upstream API calls by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		upstreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_upstream_errors_total",
				Help: "Total errors from the upstream membership API.",
			},
			[]string{"operation"},
		),
		upstreamRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_upstream_requests_total",
				Help: "Total upstream API calls by outcome.",
			},
			[]string{"status"},
		),
		healthChecks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_health_checks_total",
				Help: "Connectivity probes by resulting state.",
			},
			[]string{"state"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		pagesRendered: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "panel_pages_rendered_total",
				Help: "Rendered HTML pages by tab.",
			},
			[]string{"tab"},
		),
	}
}

// RecordUpstreamDuration records the duration of an upstream call.
func (m *Metrics) RecordUpstreamDuration(operation string, d time.Duration) {
	m.upstreamDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrUpstreamError increments the upstream error counter.
func (m *Metrics) IncrUpstreamError(operation string) {
	m.upstreamErrors.WithLabelValues(operation).Inc()
	m.upstreamRequests.WithLabelValues("error").Inc()
}

// IncrUpstreamSuccess counts a completed upstream call.
func (m *Metrics) IncrUpstreamSuccess() {
	m.upstreamRequests.WithLabelValues("success").Inc()
}

// IncrHealthCheck counts a connectivity probe by resulting state.
func (m *Metrics) IncrHealthCheck(state domain.ConnectionState) {
	m.healthChecks.WithLabelValues(string(state)).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// IncrPageRendered counts a rendered tab page.
func (m *Metrics) IncrPageRendered(tab string) {
	m.pagesRendered.WithLabelValues(tab).Inc()
}

// GetPanelSnapshot returns a snapshot of operational counters for the
// GET /healthz payload.
func (m *Metrics) GetPanelSnapshot() *domain.PanelStats {
	requests := getCounterValue(m.upstreamRequests, "success") +
		getCounterValue(m.upstreamRequests, "error")
	errs := getCounterValue(m.upstreamRequests, "error")

	probes := float64(0)
	for _, state := range []domain.ConnectionState{
		domain.StateConnected,
		domain.StateDisconnectedTimeout,
		domain.StateDisconnectedError,
	} {
		probes += getCounterValue(m.healthChecks, string(state))
	}

	hits := getCounterValue(m.cacheHits, "stats")
	misses := getCounterValue(m.cacheMisses, "stats")
	hitRate := float64(0)
	if hits+misses > 0 {
		hitRate = hits / (hits + misses)
	}

	return &domain.PanelStats{
		UpstreamRequests: requests,
		UpstreamErrors:   errs,
		HealthProbes:     probes,
		CacheHitRate:     hitRate,
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
