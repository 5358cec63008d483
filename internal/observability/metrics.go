package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process collectors. A nil *Metrics is valid and records
// nothing, so components can be built without one.
type Metrics struct {
	registry *prometheus.Registry

	jobRuns               *prometheus.CounterVec
	jobDuration           *prometheus.HistogramVec
	slaEvaluations        *prometheus.CounterVec
	notificationsEmitted  *prometheus.CounterVec
	notificationsSent     *prometheus.CounterVec
	deliverableVersions   prometheus.Counter
	retentionRowsAffected *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process-wide Metrics on first call and returns it.
func Init() *Metrics {
	initOnce.Do(func() {
		instance = NewMetrics(prometheus.NewRegistry())
	})
	return instance
}

func Current() *Metrics {
	return instance
}

// NewMetrics registers every collector on reg.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: reg,
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "job_runs_total",
			Help: "Scheduled job fires by job id and outcome.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "job_duration_seconds",
			Help:    "Wall time of one job fire.",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"job"}),
		slaEvaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_evaluations_total",
			Help: "SLA colors computed per pass.",
		}, []string{"pass", "color"}),
		notificationsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_emitted_total",
			Help: "Notification rows created by template.",
		}, []string{"template"}),
		notificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Notifications processed by the dispatcher by outcome.",
		}, []string{"outcome"}),
		deliverableVersions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deliverable_versions_created_total",
			Help: "Deliverable file versions created by rollover.",
		}),
		retentionRowsAffected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "retention_rows_total",
			Help: "Rows expired or purged by retention sweeps.",
		}, []string{"table", "action"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Ops HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Ops HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.jobRuns,
		m.jobDuration,
		m.slaEvaluations,
		m.notificationsEmitted,
		m.notificationsSent,
		m.deliverableVersions,
		m.retentionRowsAffected,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveJobRun(job, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.jobRuns.WithLabelValues(job, status).Inc()
	m.jobDuration.WithLabelValues(job).Observe(dur.Seconds())
}

func (m *Metrics) IncSlaEvaluation(pass, color string) {
	if m == nil {
		return
	}
	if color == "" {
		color = "UNSET"
	}
	m.slaEvaluations.WithLabelValues(pass, color).Inc()
}

func (m *Metrics) IncNotificationEmitted(template string) {
	if m == nil {
		return
	}
	m.notificationsEmitted.WithLabelValues(template).Inc()
}

func (m *Metrics) IncNotificationDispatched(outcome string) {
	if m == nil {
		return
	}
	m.notificationsSent.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncDeliverableVersion() {
	if m == nil {
		return
	}
	m.deliverableVersions.Inc()
}

func (m *Metrics) AddRetention(table, action string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.retentionRowsAffected.WithLabelValues(table, action).Add(float64(n))
}

func (m *Metrics) ObserveHTTP(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(dur.Seconds())
}
