// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can create independent instances.
// All recording methods are safe on a nil receiver.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	submissions     *prometheus.CounterVec
	teamEvents      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamwork",
			Name:      "http_requests_total",
			Help:      "HTTP requests processed, by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "teamwork",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamwork",
			Name:      "submissions_total",
			Help:      "Stored submissions, by lateness and whether they replaced an earlier upload.",
		}, []string{"late", "resubmission"}),
		teamEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "teamwork",
			Name:      "team_events_total",
			Help:      "Team lifecycle events.",
		}, []string{"event"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
		m.submissions,
		m.teamEvents,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SubmissionStored records a stored submission.
func (m *Metrics) SubmissionStored(late, resubmission bool) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(strconv.FormatBool(late), strconv.FormatBool(resubmission)).Inc()
}

// Team lifecycle events.
const (
	TeamCreated       = "created"
	TeamJoined        = "joined"
	TeamLeft          = "left"
	TeamMemberRemoved = "member_removed"
	TeamDissolved     = "dissolved"
	TeamOrphanRemoved = "orphan_removed"
)

// TeamEvent records a team lifecycle event.
func (m *Metrics) TeamEvent(event string) {
	if m == nil {
		return
	}
	m.teamEvents.WithLabelValues(event).Inc()
}

// AddTeamEvents records n occurrences of a team lifecycle event.
func (m *Metrics) AddTeamEvents(event string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.teamEvents.WithLabelValues(event).Add(float64(n))
}
