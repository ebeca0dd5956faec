package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Alerting-pipeline metrics, replacing the teacher's trading-specific
// counters with the equivalents for this domain: alerts raised/resolved per
// subsystem and severity, and the health of the outbound publishing queue.
var (
	AlertsClassifiedTotal = NewCounterVec(
		"panic_alerts_classified_total",
		"Total number of alerts produced by the alerting factory, by subsystem and severity",
		[]string{"subsystem", "severity"},
	)

	ClassifyErrorsTotal = NewCounterVec(
		"panic_classify_errors_total",
		"Total number of envelopes a classifier failed to process, by subsystem",
		[]string{"subsystem"},
	)

	PublishQueueLength = NewGaugeVec(
		"panic_publish_queue_length",
		"Current number of alerts buffered in the outbound publisher queue",
		[]string{"subsystem"},
	)

	PublishEvictionsTotal = NewCounterVec(
		"panic_publish_evictions_total",
		"Total number of queued alerts dropped by the load-shedding publisher",
		[]string{"subsystem"},
	)
)

func init() {
	prometheus.MustRegister(
		AlertsClassifiedTotal,
		ClassifyErrorsTotal,
		PublishQueueLength,
		PublishEvictionsTotal,
	)
}
