package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_builder"

// Metrics exposes Prometheus collectors for rendering, AI calls, the render cache and the API.
type Metrics struct {
	renderDuration *prometheus.HistogramVec
	renderFailures *prometheus.CounterVec
	aiDuration     *prometheus.HistogramVec
	cacheLookups   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

var (
	defaultMetricsOnce sync.Once
	sharedMetrics      *Metrics
)

// DefaultMetrics returns the process-wide instance registered with the default registry
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		sharedMetrics = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return sharedMetrics
}

// MustNewMetrics registers the collectors with reg, reusing collectors that are
// already registered under the same name. Any other registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "duration_seconds",
				Help:      "Time spent producing one rendered artifact.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"kind", "status"},
		),
		renderFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render",
				Name:      "failures_total",
				Help:      "Render attempts that returned an error.",
			},
			[]string{"kind", "reason"},
		),
		aiDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ai",
				Name:      "call_duration_seconds",
				Help:      "Round trip time of optimize, import and tailor calls.",
				Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80},
			},
			[]string{"operation", "status"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "render_cache",
				Name:      "lookups_total",
				Help:      "Render cache lookups by result.",
			},
			[]string{"result"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "API request latency by route and status code.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route", "code"},
		),
	}

	m.renderDuration = register(reg, m.renderDuration)
	m.renderFailures = register(reg, m.renderFailures)
	m.aiDuration = register(reg, m.aiDuration)
	m.cacheLookups = register(reg, m.cacheLookups)
	m.httpDuration = register(reg, m.httpDuration)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveRender records one render of kind. A non-nil err also counts a failure with reason.
func (m *Metrics) ObserveRender(kind string, duration time.Duration, err error, reason string) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(kind, status(err)).Observe(duration.Seconds())
	if err != nil {
		m.renderFailures.WithLabelValues(kind, reason).Inc()
	}
}

// ObserveAICall records the duration of an AI operation
func (m *Metrics) ObserveAICall(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.aiDuration.WithLabelValues(operation, status(err)).Observe(duration.Seconds())
}

// CacheHit counts a render cache hit
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("hit").Inc()
}

// CacheMiss counts a render cache miss
func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveRequest records one API request. route is the matched mux pattern.
func (m *Metrics) ObserveRequest(route string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpDuration.WithLabelValues(route, strconv.Itoa(code)).Observe(duration.Seconds())
}
