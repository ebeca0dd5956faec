package alerting

import (
	"time"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// ClassifyDowntime implements SPEC_FULL.md §4.3.6: wentDownAt is nil while
// the monitorable is reachable, and holds the instant it was first observed
// unreachable otherwise. Only CRITICAL repeats (as a "still down" alert);
// WARNING is a one-shot per outage, matching the original source's
// node-is-down protocol.
func (f *Factory) ClassifyDowntime(
	rec *Record, cfg config.ThresholdConfig, wentDownAt *time.Time,
	wentDown WentDownFunc, stillDown StillDownFunc, backUp BackUpFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	var alerts []Alert
	limiter := getOrCreateLimiter(rec.CriticalRepeatTimer, metricCode,
		secondsToDuration(cfg.CriticalRepeatSecs), cfg.CriticalRepeatEnabled)

	if wentDownAt == nil {
		if rec.WarningSent[metricCode] || rec.CriticalSent[metricCode] {
			alerts = append(alerts, backUp(parentID, originID, timestamp))
			rec.WarningSent[metricCode] = false
			rec.CriticalSent[metricCode] = false
		}
		delete(rec.WentDownAt, metricCode)
		getOrCreateTracker(rec.WarningWindowTimer, metricCode, secondsToDuration(cfg.WarningTimeWindowSecs)).Reset()
		getOrCreateTracker(rec.CriticalWindowTimer, metricCode, secondsToDuration(cfg.CriticalTimeWindowSecs)).Reset()
		limiter.Reset()
		return alerts
	}

	if !cfg.WarningEnabled && !cfg.CriticalEnabled {
		return nil
	}

	down := *wentDownAt
	rec.WentDownAt[metricCode] = &down
	now := timeFromUnixFloat(timestamp)

	warnTracker := getOrCreateTracker(rec.WarningWindowTimer, metricCode, secondsToDuration(cfg.WarningTimeWindowSecs))
	critTracker := getOrCreateTracker(rec.CriticalWindowTimer, metricCode, secondsToDuration(cfg.CriticalTimeWindowSecs))
	warnTracker.Start(down)
	critTracker.Start(down)

	durationSecs := now.Sub(down).Seconds()

	switch {
	case cfg.CriticalEnabled && critTracker.DidElapse(now):
		if !rec.CriticalSent[metricCode] {
			alerts = append(alerts, wentDown(parentID, originID, SeverityCritical, timestamp))
			rec.CriticalSent[metricCode] = true
			limiter.DidTask(now)
		} else if cfg.CriticalRepeatEnabled && limiter.CanDo(now) {
			alerts = append(alerts, stillDown(parentID, originID, SeverityCritical, durationSecs, timestamp))
			limiter.DidTask(now)
		}
		if rec.WarningSent[metricCode] {
			rec.WarningSent[metricCode] = false
		}

	case cfg.WarningEnabled && warnTracker.DidElapse(now):
		if !rec.WarningSent[metricCode] {
			alerts = append(alerts, wentDown(parentID, originID, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}
	}

	return alerts
}
