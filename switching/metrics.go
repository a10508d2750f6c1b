package switching

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts packets as they cross the switch. Drops are policy, not
// errors, so counters are the only place they show up.
type Metrics struct {
	Ingested          prometheus.Counter
	Delivered         prometheus.Counter
	DroppedUnresolved prometheus.Counter
	DroppedInactive   prometheus.Counter
}

// NewMetrics creates unregistered counters. Call Register to expose them.
func NewMetrics() *Metrics {
	return &Metrics{
		Ingested: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slipswitch",
			Name:      "packets_ingested_total",
			Help:      "Packets buffered into a VOQ at ingest.",
		}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slipswitch",
			Name:      "packets_delivered_total",
			Help:      "Packets handed to a host at egress.",
		}),
		DroppedUnresolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slipswitch",
			Name:      "packets_dropped_unresolved_total",
			Help:      "Packets dropped at ingest because the address bound no port.",
		}),
		DroppedInactive: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slipswitch",
			Name:      "packets_dropped_inactive_total",
			Help:      "Packets dropped at egress because the output port had no host.",
		}),
	}
}

// Register adds all counters to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.Ingested,
		m.Delivered,
		m.DroppedUnresolved,
		m.DroppedInactive,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}
