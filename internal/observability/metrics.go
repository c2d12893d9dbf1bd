package observability

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "careerpath"

// Metrics holds the service's prometheus collectors. All methods are safe on a nil
// receiver so callers never need to check whether metrics are enabled.
type Metrics struct {
	generations       *prometheus.CounterVec
	generationAttempt *prometheus.CounterVec
	attemptLatency    *prometheus.HistogramVec
	progressUpdates   *prometheus.CounterVec
	persistWrites     *prometheus.CounterVec
	rankRequests      *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
	httpLatency       *prometheus.HistogramVec
}

var current atomic.Pointer[Metrics]

// Init registers the collectors with reg and makes them the process-wide metrics.
func Init(reg prometheus.Registerer) (*Metrics, error) {
	m, err := NewMetrics(reg)
	if err != nil {
		return nil, err
	}
	current.Store(m)
	return m, nil
}

// Current returns the metrics installed by Init, or nil.
func Current() *Metrics { return current.Load() }

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "roadmap", Name: "generations_total",
			Help: "Roadmaps produced, by generation source.",
		}, []string{"source"}),
		generationAttempt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "roadmap", Name: "generation_attempts_total",
			Help: "Generative backend attempts, by state and outcome.",
		}, []string{"state", "outcome"}),
		attemptLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "roadmap", Name: "generation_attempt_seconds",
			Help:    "Latency of generative backend attempts.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60, 120},
		}, []string{"state"}),
		progressUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "progress", Name: "updates_total",
			Help: "Progress update requests, by result.",
		}, []string{"result"}),
		persistWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "store", Name: "persist_writes_total",
			Help: "Whole-document persistence writes, by outcome.",
		}, []string{"outcome"}),
		rankRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "career", Name: "rank_requests_total",
			Help: "Career ranking requests, by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	for _, c := range []prometheus.Collector{
		m.generations, m.generationAttempt, m.attemptLatency, m.progressUpdates,
		m.persistWrites, m.rankRequests, m.httpRequests, m.httpLatency,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveGeneration(source string) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveGenerationAttempt(state, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.generationAttempt.WithLabelValues(state, outcome).Inc()
	m.attemptLatency.WithLabelValues(state).Observe(d.Seconds())
}

func (m *Metrics) ObserveProgressUpdate(result string) {
	if m == nil {
		return
	}
	m.progressUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) ObservePersist(outcome string) {
	if m == nil {
		return
	}
	m.persistWrites.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRank(outcome string) {
	if m == nil {
		return
	}
	m.rankRequests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}
