package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	Namespace = "cosmonaut_api"

	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation labels for errors_total.
const (
	OpList    = "list"
	OpCreate  = "create"
	OpPublish = "publish"
	OpUpdate  = "update"
	OpDelete  = "delete"
)

// Metrics holds the service collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	published       *prometheus.CounterVec
	errors          *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "requests_total",
			Help:      "HTTP requests by route pattern, method and status code",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"route", "method"}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "published_total",
			Help:      "Creation messages published by status",
		}, []string{"status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "errors_total",
			Help:      "Unhandled errors by operation",
		}, []string{"op"}),
	}

	err := errors.Join(
		reg.Register(m.requests),
		reg.Register(m.requestDuration),
		reg.Register(m.published),
		reg.Register(m.errors),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveRequest records a finished HTTP request. route is the chi route
// pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}

// RecordPublish counts a publish attempt.
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}
	m.published.WithLabelValues(status).Inc()
}

// IncError increments the error counter for op.
func (m *Metrics) IncError(op string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(op).Inc()
}
