// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	MetricHTTPRequestDuration = "http_request_duration_seconds"
	MetricHTTPRequestsTotal   = "http_requests_total"
	MetricSceneResolveTotal   = "scene_resolve_total"
	MetricGenerationDuration  = "generation_duration_seconds"
	MetricMovieLookupTotal    = "movie_lookup_total"
)

// Outcomes recorded by ObserveResolve.
const (
	OutcomeCacheHit         = "cache_hit"
	OutcomeGenerated        = "generated"
	OutcomeGenerationFailed = "generation_failed"
	OutcomeError            = "error"
)

// Metrics is safe for concurrent use. A nil *Metrics is a no-op.
type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	sceneResolveTotal   *prometheus.CounterVec
	generationDuration  *prometheus.HistogramVec
	movieLookupTotal    *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricHTTPRequestDuration,
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15, 30, 60},
			},
			[]string{"method", "path", "status"},
		),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricHTTPRequestsTotal,
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		sceneResolveTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricSceneResolveTotal,
				Help: "Scene location resolutions by outcome",
			},
			[]string{"outcome", "forced"},
		),
		generationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    MetricGenerationDuration,
				Help:    "Duration of text generation calls in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
			[]string{"kind", "status"},
		),
		movieLookupTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricMovieLookupTotal,
				Help: "Movie metadata lookups by source",
			},
			[]string{"source"},
		),
	}
}

// Register registers the collectors plus the Go runtime and process collectors.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	cs := []prometheus.Collector{
		m.httpRequestDuration,
		m.httpRequestsTotal,
		m.sceneResolveTotal,
		m.generationDuration,
		m.movieLookupTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveHTTPRequest(method, path, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequestDuration.WithLabelValues(method, path, status).Observe(seconds)
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}

func (m *Metrics) ObserveResolve(outcome string, forced bool) {
	if m == nil {
		return
	}
	f := "false"
	if forced {
		f = "true"
	}
	m.sceneResolveTotal.WithLabelValues(outcome, f).Inc()
}

// ObserveGeneration kind is "scenes" or "checklist".
func (m *Metrics) ObserveGeneration(kind string, seconds float64, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.generationDuration.WithLabelValues(kind, status).Observe(seconds)
}

func (m *Metrics) ObserveMovieLookup(source string) {
	if m == nil {
		return
	}
	m.movieLookupTotal.WithLabelValues(source).Inc()
}
