package eventbus

import "github.com/prometheus/client_golang/prometheus"

const metricsSubsystem = "eventbus"

type Metrics struct {
	Subscribers   prometheus.Gauge
	Published     *prometheus.CounterVec
	Delivered     *prometheus.CounterVec
	HandlerPanics *prometheus.CounterVec
}

// NewMetrics builds and registers the bus metrics on reg. Pass a private
// registry in tests to avoid duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Subsystem: metricsSubsystem,
			Name:      "subscribers",
			Help:      "Number of active bus subscriptions",
		}),
		Published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: metricsSubsystem,
			Name:      "events_published_total",
			Help:      "Events published, by kind",
		}, []string{"kind"}),
		Delivered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: metricsSubsystem,
			Name:      "events_delivered_total",
			Help:      "Per-subscriber deliveries that completed, by kind",
		}, []string{"kind"}),
		HandlerPanics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Subsystem: metricsSubsystem,
			Name:      "handler_panics_total",
			Help:      "Subscriber handlers that panicked during delivery, by kind",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.Subscribers, m.Published, m.Delivered, m.HandlerPanics)
	return m
}
