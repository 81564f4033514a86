package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/healthtrack-backend/internal/domain"
)

const namespace = "healthtrack"

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	httpInflight prometheus.Gauge

	analyses        *prometheus.CounterVec
	analysisLatency prometheus.Histogram
	candidates      prometheus.Histogram

	storeQueries *prometheus.CounterVec
	storeLatency *prometheus.HistogramVec
	breakerState *prometheus.GaugeVec

	suggestCache *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_inflight_requests",
			Help:      "Requests currently being served.",
		}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Symptom analyses by status and emergency tier.",
		}, []string{"status", "tier"}),
		analysisLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end analysis latency.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_candidates",
			Help:      "Candidates returned per analysis.",
			Buckets:   []float64{0, 1, 2, 3, 5, 10},
		}),
		storeQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_queries_total",
			Help:      "Knowledge store queries by operation and outcome.",
		}, []string{"op", "status"}),
		storeLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_query_duration_seconds",
			Help:      "Knowledge store query latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		breakerState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "store_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open.",
		}, []string{"breaker"}),
		suggestCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "suggest_requests_total",
			Help:      "Autocomplete requests by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpLatency, m.httpInflight,
		m.analyses, m.analysisLatency, m.candidates,
		m.storeQueries, m.storeLatency, m.breakerState,
		m.suggestCache,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) IncInflight() {
	if m != nil {
		m.httpInflight.Inc()
	}
}

func (m *Metrics) DecInflight() {
	if m != nil {
		m.httpInflight.Dec()
	}
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveAnalysis(status domain.AnalysisStatus, tier domain.EmergencyTier, n int, elapsed time.Duration) {
	if m == nil {
		return
	}
	t := string(tier)
	if t == "" {
		t = "none"
	}
	m.analyses.WithLabelValues(string(status), t).Inc()
	m.analysisLatency.Observe(elapsed.Seconds())
	m.candidates.Observe(float64(n))
}

func (m *Metrics) ObserveStoreQuery(op, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.storeQueries.WithLabelValues(op, status).Inc()
	if elapsed > 0 {
		m.storeLatency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) ObserveBreakerState(name, state string) {
	if m == nil {
		return
	}
	v := 0.0
	switch state {
	case "half-open":
		v = 1
	case "open":
		v = 2
	}
	m.breakerState.WithLabelValues(name).Set(v)
}

func (m *Metrics) ObserveSuggest(outcome string) {
	if m == nil {
		return
	}
	m.suggestCache.WithLabelValues(outcome).Inc()
}
