package telemetry

import (
	"context"
	"strconv"
	"time"

	"github.com/erpsuite/backend/internal/domain/shared"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "erp"

// NewRegistry returns a registry carrying the Go runtime and process
// collectors. Each server instance owns its registry.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// HTTPMetrics records request counts, latencies and in-flight requests
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// NewHTTPMetrics registers the HTTP collectors on reg. A nil registerer
// yields a recorder that drops everything.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.inFlight)
	return m
}

// Start marks a request as in flight
func (m *HTTPMetrics) Start() {
	if m == nil || m.inFlight == nil {
		return
	}
	m.inFlight.Inc()
}

// Observe records a finished request
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.inFlight.Dec()
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// DomainEventMetrics counts published domain events by type. It subscribes
// to the event bus for every type.
type DomainEventMetrics struct {
	events *prometheus.CounterVec
}

// NewDomainEventMetrics registers the domain event counter on reg
func NewDomainEventMetrics(reg prometheus.Registerer) *DomainEventMetrics {
	m := &DomainEventMetrics{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "domain_events_total",
			Help:      "Domain events published by type.",
		}, []string{"event_type"}),
	}
	if reg != nil {
		reg.MustRegister(m.events)
	}
	return m
}

// EventTypes is empty so the bus delivers every event
func (m *DomainEventMetrics) EventTypes() []string { return nil }

// Handle counts e
func (m *DomainEventMetrics) Handle(_ context.Context, e shared.DomainEvent) error {
	m.events.WithLabelValues(e.EventType()).Inc()
	return nil
}

var _ shared.EventHandler = (*DomainEventMetrics)(nil)
