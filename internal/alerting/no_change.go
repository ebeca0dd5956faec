package alerting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/config"
	"github.com/simplyvc/panic-alerter/internal/timing"
)

// ClassifyNoChangeInValue implements SPEC_FULL.md §4.3.5: a metric expected
// to keep moving (e.g. chain height) that sits still for too long is itself
// the fault condition. Both severities share one raise constructor
// (severity is a parameter) and one resolve constructor, since "the value
// changed again" clears either severity identically.
func (f *Factory) ClassifyNoChangeInValue(
	rec *Record, cfg config.ThresholdConfig, current, previous decimal.Decimal,
	raise RaiseFunc, resolve ResolveFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	now := timeFromUnixFloat(timestamp)
	var alerts []Alert

	if !current.Equal(previous) {
		if rec.WarningSent[metricCode] || rec.CriticalSent[metricCode] {
			alerts = append(alerts, resolve(parentID, originID, current, timestamp))
			rec.WarningSent[metricCode] = false
			rec.CriticalSent[metricCode] = false
		}
		if nc, ok := rec.NoChangeTracker[metricCode]; ok {
			nc.warning.Reset()
			nc.critical.Reset()
			nc.repeat.Reset()
		}
		return alerts
	}

	if !cfg.WarningEnabled && !cfg.CriticalEnabled {
		return nil
	}

	// §4.3.5 / scenario S2: unlike the time-window protocol, no-change reads
	// its windows from warning_threshold/critical_threshold (seconds of
	// staleness), not warning_time_window/critical_time_window.
	nc := getOrCreateNoChangeTrackers(rec, metricCode,
		secondsToDuration(cfg.WarningThreshold.IntPart()),
		secondsToDuration(cfg.CriticalThreshold.IntPart()),
		secondsToDuration(cfg.CriticalRepeatSecs), cfg.CriticalRepeatEnabled)

	nc.warning.Start(now)
	nc.critical.Start(now)

	if cfg.WarningEnabled && !rec.WarningSent[metricCode] && nc.warning.DidElapse(now) {
		alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
		rec.WarningSent[metricCode] = true
	}

	if cfg.CriticalEnabled && nc.critical.DidElapse(now) {
		if !rec.CriticalSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, current, SeverityCritical, timestamp))
			rec.CriticalSent[metricCode] = true
			nc.repeat.DidTask(now)
			rec.WarningSent[metricCode] = false
		} else if cfg.CriticalRepeatEnabled && nc.repeat.CanDo(now) {
			alerts = append(alerts, raise(parentID, originID, current, SeverityCritical, timestamp))
			nc.repeat.DidTask(now)
		}
	}

	return alerts
}

func getOrCreateNoChangeTrackers(rec *Record, metric string, warningDur, criticalDur, repeatDur time.Duration, repeatEnabled bool) *noChangeTrackers {
	nc, ok := rec.NoChangeTracker[metric]
	if !ok {
		nc = &noChangeTrackers{
			warning:  timing.NewTaskTracker(warningDur),
			critical: timing.NewTaskTracker(criticalDur),
		}
		if repeatEnabled {
			nc.repeat = timing.NewTaskLimiter(repeatDur)
		} else {
			nc.repeat = timing.NewDisabledTaskLimiter()
		}
		rec.NoChangeTracker[metric] = nc
	}
	return nc
}
