// Package observability exposes the Prometheus metrics of the signaling core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics aggregates the counters the registry, router, and call coordinator
// report into. A nil *Metrics is valid and records nothing, which keeps unit
// tests free of registry plumbing.
type Metrics struct {
	callsInitiated  *prometheus.CounterVec
	eventsDelivered prometheus.Counter
	eventsDropped   prometheus.Counter
	liveSessions    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		callsInitiated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "vchat_calls_initiated_total",
			Help: "Number of call attempts, by thread kind.",
		}, []string{"kind"}),
		eventsDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vchat_events_delivered_total",
			Help: "Events successfully pushed to a live endpoint.",
		}),
		eventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vchat_events_dropped_total",
			Help: "Events dropped because the endpoint was offline, slow, or closed.",
		}),
		liveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vchat_live_sessions",
			Help: "Currently bound connection endpoints.",
		}),
	}
	reg.MustRegister(m.callsInitiated, m.eventsDelivered, m.eventsDropped, m.liveSessions)
	return m
}

func (m *Metrics) CallInitiated(kind string) {
	if m == nil {
		return
	}
	m.callsInitiated.WithLabelValues(kind).Inc()
}

func (m *Metrics) EventDelivered() {
	if m == nil {
		return
	}
	m.eventsDelivered.Inc()
}

func (m *Metrics) EventDropped() {
	if m == nil {
		return
	}
	m.eventsDropped.Inc()
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.liveSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.liveSessions.Dec()
}
