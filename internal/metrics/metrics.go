package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ComponentAlive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "panic_component_alive",
		Help: "Whether a component's heartbeat loop is currently running (1) or not (0)",
	}, []string{"component"})

	BusReconnectsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "panic_bus_reconnects_total",
		Help: "Total number of times the message bus connection reconnected",
	})
)
