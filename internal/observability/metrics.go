package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes Prometheus collectors for the HTTP layer and the
// notification pipeline.
type Metrics struct {
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec
	notificationsSent *prometheus.CounterVec
	eventsPublished   *prometheus.CounterVec
}

// NewMetrics registers collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"}),
		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_request_errors_total",
			Help: "HTTP requests that produced an application error.",
		}, []string{"path", "method", "code"}),
		notificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_sent_total",
			Help: "Notification delivery attempts by channel and outcome.",
		}, []string{"channel", "outcome"}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_events_published_total",
			Help: "Lifecycle events handed to the dispatcher, by kind.",
		}, []string{"kind"}),
	}
}

// RecordRequest observes one completed HTTP request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
}

// RecordError counts an application-level request error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(path, method, code).Inc()
}

// RecordNotification counts one delivery attempt on a channel.
func (m *Metrics) RecordNotification(channel, outcome string) {
	if m == nil {
		return
	}
	m.notificationsSent.WithLabelValues(channel, outcome).Inc()
}

// RecordEventPublished counts one dispatched lifecycle event.
func (m *Metrics) RecordEventPublished(kind string) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(kind).Inc()
}
