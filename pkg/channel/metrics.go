package channel

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/sbe/internal/obs/metric"
)

// Collector exports every counter in a metric.Registry as one Prometheus
// counter family, "sbe_channel_events_total", labelled by counter name
// ("counter"). Channel instances bump their
// allocation-free metric.Counter on the hot path and never touch
// Prometheus directly; a Collector is registered once per process and
// reads the registry at scrape time.
type Collector struct {
	registry *metric.Registry
	sent     *prometheus.Desc
}

// NewCollector wraps registry for Prometheus scraping.
func NewCollector(registry *metric.Registry) *Collector {
	return &Collector{
		registry: registry,
		sent: prometheus.NewDesc(
			"sbe_channel_events_total",
			"Total channel events by counter name.",
			[]string{"counter"},
			nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sent
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, name := range c.registry.Names() {
		count := c.registry.Counter(name).Count()
		ch <- prometheus.MustNewConstMetric(c.sent, prometheus.CounterValue, float64(count), name)
	}
}

// Names a channel's metric.Registry counters consistently, so Collector's
// "counter" label values are stable across channel instances.
const (
	CounterSent    = "sent"
	CounterRecv    = "recv"
	CounterFull    = "full"
	CounterDropped = "dropped"
	CounterClosed  = "closed"
)
