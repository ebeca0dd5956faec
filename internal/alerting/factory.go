package alerting

import (
	"time"

	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/timing"
)

// Factory implements the classifier protocols of SPEC_FULL.md §4.3. It is
// deliberately stateless itself (all mutable state lives in the Record the
// caller passes in via the Store) so one Factory can serve every
// monitorable a process is responsible for. The now supplier makes time
// injection trivial for tests, per Design Note "Global-state replacement".
type Factory struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewFactory builds a Factory. now defaults to time.Now when nil.
func NewFactory(logger *zap.Logger, now func() time.Time) *Factory {
	if now == nil {
		now = time.Now
	}
	return &Factory{logger: logger, now: now}
}

// Now returns the current instant, either from the injected clock or from
// a caller-supplied timestamp (the latter takes priority: per §5
// "Ordering guarantees", input timestamps are authoritative and wall clock
// is consulted only as a tiebreaker).
func (f *Factory) Now() time.Time {
	return f.now()
}

func secondsToDuration(secs int64) time.Duration {
	return time.Duration(secs) * time.Second
}

func timeFromUnixFloat(ts float64) time.Time {
	secs := int64(ts)
	nsec := int64((ts - float64(secs)) * float64(time.Second))
	return time.Unix(secs, nsec)
}

func unixFloat(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func getOrCreateTracker(m map[string]*timing.TaskTracker, metric string, duration time.Duration) *timing.TaskTracker {
	tr, ok := m[metric]
	if !ok {
		tr = timing.NewTaskTracker(duration)
		m[metric] = tr
	}
	return tr
}

func getOrCreateLimiter(m map[string]*timing.TaskLimiter, metric string, interval time.Duration, enabled bool) *timing.TaskLimiter {
	l, ok := m[metric]
	if !ok {
		if enabled {
			l = timing.NewTaskLimiter(interval)
		} else {
			l = timing.NewDisabledTaskLimiter()
		}
		m[metric] = l
	}
	return l
}

func getOrCreateOccurrences(m map[string]*timing.OccurrencesInPeriodTracker, metric string, period time.Duration) *timing.OccurrencesInPeriodTracker {
	o, ok := m[metric]
	if !ok {
		o = timing.NewOccurrencesInPeriodTracker(period)
		m[metric] = o
	}
	return o
}
