package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/picalc/internal/engine"
)

const namespace = "picalc"

// Metrics owns a private Prometheus registry so that several instances can
// coexist in one process (tests, --engine all).
type Metrics struct {
	registry     *prometheus.Registry
	handler      http.Handler
	termDuration *prometheus.HistogramVec
	foldWait     *prometheus.HistogramVec
	termsTotal   *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
	runsTotal    *prometheus.CounterVec
	activeRuns   prometheus.Gauge
	requests     *prometheus.CounterVec
}

// NewMetrics creates the collectors and the /metrics handler. Go runtime
// and process collectors are included.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		termDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "term_duration_seconds",
			Help:      "Time to compute one series term.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"engine"}),
		foldWait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fold_wait_seconds",
			Help:      "Time spent waiting for the accumulator lock.",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"engine"}),
		termsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "terms_total",
			Help:      "Series terms folded into the sum.",
		}, []string{"engine"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a complete run.",
			Buckets:   prometheus.ExponentialBuckets(1e-3, 4, 12),
		}, []string{"engine"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed runs by outcome.",
		}, []string{"engine", "status"}),
		activeRuns: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_runs",
			Help:      "Runs currently in progress.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by the metrics endpoint.",
		}, []string{"path"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.termDuration, m.foldWait, m.termsTotal, m.runDuration, m.runsTotal, m.activeRuns, m.requests,
	)
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserverFor returns an engine.TermObserver recording under the given
// engine label.
func (m *Metrics) ObserverFor(engineName string) engine.TermObserver {
	return termObserver{
		term:  m.termDuration.WithLabelValues(engineName),
		wait:  m.foldWait.WithLabelValues(engineName),
		terms: m.termsTotal.WithLabelValues(engineName),
	}
}

// IncrementActiveRuns marks the start of a run.
func (m *Metrics) IncrementActiveRuns() { m.activeRuns.Inc() }

// DecrementActiveRuns marks the end of a run.
func (m *Metrics) DecrementActiveRuns() { m.activeRuns.Dec() }

// ObserveRun records the outcome of a finished run.
func (m *Metrics) ObserveRun(engineName string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.runDuration.WithLabelValues(engineName).Observe(d.Seconds())
	m.runsTotal.WithLabelValues(engineName, status).Inc()
}

// WritePrometheus serves the registry in the Prometheus text format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}

type termObserver struct {
	term  prometheus.Observer
	wait  prometheus.Observer
	terms prometheus.Counter
}

func (o termObserver) ObserveTerm(d time.Duration) { o.term.Observe(d.Seconds()) }

func (o termObserver) ObserveFold(d time.Duration) {
	o.wait.Observe(d.Seconds())
	o.terms.Inc()
}
