// Package health implements the heartbeat/ping mechanism of SPEC_FULL.md
// §6: each alerter shell periodically publishes a liveness message on the
// health_check subject family so a monitoring manager (out of scope itself)
// can detect a wedged or crashed process.
package health

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/bus"
	"github.com/simplyvc/panic-alerter/internal/metrics"
)

// Beat is the JSON body published on each heartbeat.
type Beat struct {
	ComponentName string `json:"component_name"`
	IsAlive       bool   `json:"is_alive"`
	Timestamp     int64  `json:"timestamp"`
}

// Heartbeat publishes a Beat for componentName on subject every interval
// until ctx is cancelled.
type Heartbeat struct {
	bus           bus.Bus
	logger        *zap.Logger
	componentName string
	subject       string
	interval      time.Duration
	now           func() time.Time
}

// NewHeartbeat returns a Heartbeat. now defaults to time.Now when nil.
func NewHeartbeat(b bus.Bus, logger *zap.Logger, componentName, subject string, interval time.Duration, now func() time.Time) *Heartbeat {
	if now == nil {
		now = time.Now
	}
	return &Heartbeat{bus: b, logger: logger, componentName: componentName, subject: subject, interval: interval, now: now}
}

// Run publishes heartbeats until ctx is cancelled. Intended to be launched
// in its own goroutine, per SPEC_FULL.md §5's "one goroutine per
// long-running loop" convention.
func (h *Heartbeat) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	metrics.ComponentAlive.WithLabelValues(h.componentName).Set(1)
	defer metrics.ComponentAlive.WithLabelValues(h.componentName).Set(0)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

func (h *Heartbeat) beat(ctx context.Context) {
	payload, err := json.Marshal(Beat{
		ComponentName: h.componentName,
		IsAlive:       true,
		Timestamp:     h.now().Unix(),
	})
	if err != nil {
		h.logger.Error("heartbeat: marshal failed", zap.Error(err))
		return
	}

	if err := h.bus.Publish(ctx, h.subject, payload); err != nil {
		h.logger.Warn("heartbeat: publish failed", zap.Error(err), zap.String("subject", h.subject))
	}
}
