package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/webpaste/pkg/observability"
)

const metricsNamespace = "webpaste"

// Metrics records pipeline, cache and HTTP events as Prometheus metrics. It
// implements the observability hook interfaces.
//
// Metrics collected:
//   - webpaste_cleans_total: cleans by status (ok, error)
//   - webpaste_clean_duration_seconds: clean latency
//   - webpaste_clean_input_bytes: input fragment sizes
//   - webpaste_rule_matches_total: elements matched, by rule
//   - webpaste_cache_events_total: cache hits, misses, sets and errors
//   - webpaste_http_requests_in_flight: requests being served
//   - webpaste_http_requests_total: responses by method, route and status
//   - webpaste_http_request_duration_seconds: response latency by route
type Metrics struct {
	gatherer prometheus.Gatherer

	cleansTotal     *prometheus.CounterVec
	cleanDuration   prometheus.Histogram
	cleanInputBytes prometheus.Histogram
	ruleMatches     *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	inFlight        prometheus.Gauge
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetrics creates the metrics and registers them on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		cleansTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cleans_total",
			Help:      "Total number of fragments cleaned",
		}, []string{"status"}),

		cleanDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "clean_duration_seconds",
			Help:      "Clean duration in seconds, including cache lookups",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),

		cleanInputBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "clean_input_bytes",
			Help:      "Size of input fragments in bytes",
			Buckets:   []float64{256, 1024, 4096, 16384, 65536, 262144, 1048576}, // 256B to 1MB
		}),

		ruleMatches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "rule_matches_total",
			Help:      "Total number of elements matched, by rule",
		}, []string{"rule"}),

		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_events_total",
			Help:      "Cache operations by event",
		}, []string{"event"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests being served",
		}),

		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP responses",
		}, []string{"method", "route", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP response latency in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Install registers m as the process-wide transform, cache and HTTP hooks.
func (m *Metrics) Install() {
	observability.SetTransformHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// =============================================================================
// observability.TransformHooks
// =============================================================================

func (m *Metrics) OnCleanStart(_ context.Context, inputBytes int) {
	m.cleanInputBytes.Observe(float64(inputBytes))
}

func (m *Metrics) OnRuleApplied(_ context.Context, rule string, matches int) {
	if matches > 0 {
		m.ruleMatches.WithLabelValues(rule).Add(float64(matches))
	}
}

func (m *Metrics) OnCleanComplete(_ context.Context, _, _ int, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.cleansTotal.WithLabelValues(status).Inc()
	m.cleanDuration.Observe(duration.Seconds())
}

// =============================================================================
// observability.CacheHooks
// =============================================================================

func (m *Metrics) OnCacheHit(context.Context, string) {
	m.cacheEvents.WithLabelValues("hit").Inc()
}

func (m *Metrics) OnCacheMiss(context.Context, string) {
	m.cacheEvents.WithLabelValues("miss").Inc()
}

func (m *Metrics) OnCacheSet(context.Context, string, int) {
	m.cacheEvents.WithLabelValues("set").Inc()
}

func (m *Metrics) OnCacheError(context.Context, string, error) {
	m.cacheEvents.WithLabelValues("error").Inc()
}

// =============================================================================
// observability.HTTPHooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.inFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	m.inFlight.Dec()
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

var (
	_ observability.TransformHooks = (*Metrics)(nil)
	_ observability.CacheHooks     = (*Metrics)(nil)
	_ observability.HTTPHooks      = (*Metrics)(nil)
)
