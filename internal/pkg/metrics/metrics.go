// Package metrics exposes Prometheus collectors for HTTP traffic and
// dashboard activity. All recording methods are safe on a nil *Metrics.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yigit/mentoraid/internal/app/models"
)

const namespace = "mentoraid"

// Metrics owns a private registry and the collectors registered on it
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	rosterLoads    prometheus.Counter
	rosterSize     prometheus.Gauge
	studentsByRisk *prometheus.GaugeVec
	insights       *prometheus.CounterVec
	logins         *prometheus.CounterVec
	notifications  *prometheus.CounterVec
	dropped        prometheus.Counter
	uploads        *prometheus.CounterVec
}

// New creates the collectors and registers them with the Go and process collectors
func New() (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		rosterLoads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "roster_generations_total",
			Help:      "Number of times the student roster was synthesized.",
		}),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_students",
			Help:      "Students in the current roster.",
		}),
		studentsByRisk: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "roster_students_by_risk",
			Help:      "Students in the current roster per risk level.",
		}, []string{"level"}),
		insights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "insights_total",
			Help:      "Generated insights by kind and result.",
		}, []string{"kind", "result"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by method and result.",
		}, []string{"method", "result"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_published_total",
			Help:      "Notifications published by type.",
		}, []string{"type"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_dropped_total",
			Help:      "Notifications a slow subscriber missed.",
		}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploaded_files_total",
			Help:      "Uploaded files by outcome.",
		}, []string{"outcome"}),
	}

	toRegister := []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests, m.httpDuration,
		m.rosterLoads, m.rosterSize, m.studentsByRisk,
		m.insights, m.logins,
		m.notifications, m.dropped,
		m.uploads,
	}
	for _, c := range toRegister {
		if err := m.registry.Register(c); err != nil {
			return nil, fmt.Errorf("register collector: %w", err)
		}
	}
	return m, nil
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one served HTTP request
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RosterGenerated records a new roster and its composition
func (m *Metrics) RosterGenerated(students []models.Student) {
	if m == nil {
		return
	}
	counts := make(map[models.RiskLevel]int, len(models.RiskLevels))
	for _, s := range students {
		counts[s.RiskLevel]++
	}

	m.rosterLoads.Inc()
	m.rosterSize.Set(float64(len(students)))
	for _, level := range models.RiskLevels {
		m.studentsByRisk.WithLabelValues(string(level)).Set(float64(counts[level]))
	}
}

// InsightGenerated records an insight request outcome
func (m *Metrics) InsightGenerated(kind string, err error) {
	if m == nil {
		return
	}
	m.insights.WithLabelValues(kind, result(err)).Inc()
}

// LoginAttempt records a login outcome for a method (password, google, apple)
func (m *Metrics) LoginAttempt(method string, err error) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(method, result(err)).Inc()
}

// NotificationPublished counts a notification by type
func (m *Metrics) NotificationPublished(notificationType string) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(notificationType).Inc()
}

// NotificationDropped counts a notification a subscriber missed
func (m *Metrics) NotificationDropped() {
	if m == nil {
		return
	}
	m.dropped.Inc()
}

// FilesUploaded counts accepted and skipped files
func (m *Metrics) FilesUploaded(accepted, skipped int) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues("accepted").Add(float64(accepted))
	m.uploads.WithLabelValues("skipped").Add(float64(skipped))
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
