package session

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters/gauges the server and client
// engines update as sessions come and go.
type Metrics struct {
	registry          *prometheus.Registry
	SessionsStarted   prometheus.Counter
	SessionsEnded     prometheus.Counter
	SessionsActive    prometheus.Gauge
	MessagesReceived  prometheus.Counter
	MessagesSent      prometheus.Counter
	FrameErrors       prometheus.Counter
	ReconnectAttempts prometheus.Counter
	ConnectFailures   prometheus.Counter
}

// NewMetrics builds a fresh registry and registers every session counter
// and gauge against it.
func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_started_total", Help: "Total sessions started.",
		}),
		SessionsEnded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sessions_ended_total", Help: "Total sessions ended.",
		}),
		SessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "sessions_active", Help: "Currently active sessions.",
		}),
		MessagesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_received_total", Help: "Total inbound frames decoded.",
		}),
		MessagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_sent_total", Help: "Total outbound frames written.",
		}),
		FrameErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "frame_errors_total", Help: "Total framing errors (oversized or malformed frames).",
		}),
		ReconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "client_reconnect_attempts_total", Help: "Total client reconnect attempts.",
		}),
		ConnectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "client_connect_failures_total", Help: "Total client connect failures.",
		}),
	}
	registry.MustRegister(
		m.SessionsStarted, m.SessionsEnded, m.SessionsActive,
		m.MessagesReceived, m.MessagesSent, m.FrameErrors,
		m.ReconnectAttempts, m.ConnectFailures,
	)
	return m
}

// Registry exposes the underlying Prometheus registry for a promhttp
// handler to scrape.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
