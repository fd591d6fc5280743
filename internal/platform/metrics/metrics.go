// Package metrics owns the prometheus registry for the api process
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "postpilot"

// Outcome labels shared by callers
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics is a private registry plus the collectors the app writes to
// all recording methods are nil safe so adapters can run without metrics
type Metrics struct {
	reg *prometheus.Registry

	upstreamCalls   *prometheus.CounterVec
	upstreamSeconds *prometheus.HistogramVec
	workflowRuns    *prometheus.CounterVec
	workflowSteps   *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// New builds a registry with go and process collectors plus app collectors
func New() *Metrics {
	m := &Metrics{reg: prometheus.NewRegistry()}

	m.upstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "linkedin_calls_total",
			Help:      "Outbound LinkedIn API calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)
	m.upstreamSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "linkedin_call_seconds",
			Help:      "Outbound LinkedIn API call latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)
	m.workflowRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_runs_total",
			Help:      "Workflow runs by outcome",
		},
		[]string{"outcome"},
	)
	m.workflowSteps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workflow_steps_total",
			Help:      "Executed workflow steps by node",
		},
		[]string{"node"},
	)
	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Inbound HTTP requests by method and status",
		},
		[]string{"method", "status"},
	)

	m.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamCalls,
		m.upstreamSeconds,
		m.workflowRuns,
		m.workflowSteps,
		m.httpRequests,
	)
	return m
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

// ObserveCall records one outbound call
func (m *Metrics) ObserveCall(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamCalls.WithLabelValues(op, outcome).Inc()
	m.upstreamSeconds.WithLabelValues(op).Observe(d.Seconds())
}

// ObserveRun records a finished workflow run
func (m *Metrics) ObserveRun(outcome string) {
	if m == nil {
		return
	}
	m.workflowRuns.WithLabelValues(outcome).Inc()
}

// ObserveStep records an executed workflow node
func (m *Metrics) ObserveStep(node string) {
	if m == nil {
		return
	}
	m.workflowSteps.WithLabelValues(node).Inc()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware counts inbound requests by method and final status
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		m.httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
	})
}
