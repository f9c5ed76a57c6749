// Package prometheus exposes the service metrics: HTTP request counters and
// latencies, retrieval pipeline observations, ethical-concern and cache
// counters.  Everything registers on a private registry so tests can create
// as many instances as they like.
package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every instrument the service records into.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	retrievalDuration prometheus.Histogram
	retrievalResults  prometheus.Histogram

	ethicalConcerns prometheus.Counter
	cacheLookups    *prometheus.CounterVec
}

// NewMetrics builds and registers all instruments.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nyayvandan",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served, by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nyayvandan",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency, by method and path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		retrievalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nyayvandan",
			Subsystem: "retrieval",
			Name:      "duration_seconds",
			Help:      "End-to-end hybrid ranking latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		retrievalResults: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "nyayvandan",
			Subsystem: "retrieval",
			Name:      "result_count",
			Help:      "Number of ranked cases returned per query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 15},
		}),
		ethicalConcerns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "nyayvandan",
			Subsystem: "ethics",
			Name:      "concerns_total",
			Help:      "Analyze responses flagged with ethical concerns.",
		}),
		cacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nyayvandan",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups, by outcome.",
		}, []string{"outcome"}),
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRetrieval records one ranking pass.
func (m *Metrics) ObserveRetrieval(d time.Duration, resultCount int) {
	m.retrievalDuration.Observe(d.Seconds())
	m.retrievalResults.Observe(float64(resultCount))
}

// MarkEthicalConcern counts one flagged response.
func (m *Metrics) MarkEthicalConcern() {
	m.ethicalConcerns.Inc()
}

// MarkCacheLookup counts one response-cache lookup.
func (m *Metrics) MarkCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.cacheLookups.WithLabelValues(outcome).Inc()
}

// statusRecorder captures the response status for the HTTP instruments.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMiddleware instruments every request with the counter and latency
// histogram.  Route patterns are not resolved; the raw path is used, which
// is fine for this API's small fixed route set.
func (m *Metrics) HTTPMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			m.requestTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
			m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
