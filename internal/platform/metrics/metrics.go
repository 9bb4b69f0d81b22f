package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the rotation pipeline.
type Metrics struct {
	registry             *prometheus.Registry
	cyclesTotal          prometheus.Counter
	cycleErrorsTotal     prometheus.Counter
	rendersTotal         prometheus.Counter
	notificationsTotal   prometheus.Counter
	deliveryErrorsTotal  prometheus.Counter
	rotationEndTimestamp prometheus.Gauge
}

// New creates and registers Prometheus metrics for the scheduler.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	cyclesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salmon_cycles_total",
		Help: "Total number of scheduler cycles started",
	})
	cycleErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salmon_cycle_errors_total",
		Help: "Total number of scheduler cycles that failed and were retried",
	})
	rendersTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salmon_renders_total",
		Help: "Total number of images rendered",
	})
	notificationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salmon_notifications_sent_total",
		Help: "Total number of notifications delivered",
	})
	deliveryErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "salmon_delivery_errors_total",
		Help: "Total number of notifications that failed after retry",
	})
	rotationEndTimestamp := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "salmon_rotation_end_timestamp_seconds",
		Help: "Unix time at which the current rotation window ends",
	})

	registry.MustRegister(
		cyclesTotal,
		cycleErrorsTotal,
		rendersTotal,
		notificationsTotal,
		deliveryErrorsTotal,
		rotationEndTimestamp,
	)

	return &Metrics{
		registry:             registry,
		cyclesTotal:          cyclesTotal,
		cycleErrorsTotal:     cycleErrorsTotal,
		rendersTotal:         rendersTotal,
		notificationsTotal:   notificationsTotal,
		deliveryErrorsTotal:  deliveryErrorsTotal,
		rotationEndTimestamp: rotationEndTimestamp,
	}
}

// IncCycles increments the started-cycles counter.
func (m *Metrics) IncCycles() {
	m.cyclesTotal.Inc()
}

// IncCycleErrors increments the failed-cycles counter.
func (m *Metrics) IncCycleErrors() {
	m.cycleErrorsTotal.Inc()
}

// IncRenders increments the rendered-images counter.
func (m *Metrics) IncRenders() {
	m.rendersTotal.Inc()
}

// IncNotifications increments the delivered-notifications counter.
func (m *Metrics) IncNotifications() {
	m.notificationsTotal.Inc()
}

// IncDeliveryErrors increments the failed-deliveries counter.
func (m *Metrics) IncDeliveryErrors() {
	m.deliveryErrorsTotal.Inc()
}

// SetRotationEnd records when the current rotation window closes.
func (m *Metrics) SetRotationEnd(t time.Time) {
	m.rotationEndTimestamp.Set(float64(t.Unix()))
}

// Handler returns an http.Handler serving this registry's metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
