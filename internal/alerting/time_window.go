package alerting

import (
	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// ClassifyTimeWindowThreshold implements SPEC_FULL.md §4.3.3: like
// ClassifyThreshold, but current must stay on the wrong side of a
// threshold continuously for the configured window before an alert fires.
// A per-severity TaskTracker starts the instant current first crosses its
// threshold and resets the instant it falls back, so a flapping metric
// never accumulates elapsed time across separate excursions.
func (f *Factory) ClassifyTimeWindowThreshold(
	rec *Record, cfg config.ThresholdConfig, current decimal.Decimal,
	raise RaiseFunc, resolve ResolveFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	if !cfg.WarningEnabled && !cfg.CriticalEnabled {
		return nil
	}

	now := timeFromUnixFloat(timestamp)
	warnTracker := getOrCreateTracker(rec.WarningWindowTimer, metricCode, secondsToDuration(cfg.WarningTimeWindowSecs))
	critTracker := getOrCreateTracker(rec.CriticalWindowTimer, metricCode, secondsToDuration(cfg.CriticalTimeWindowSecs))
	limiter := getOrCreateLimiter(rec.CriticalRepeatTimer, metricCode,
		secondsToDuration(cfg.CriticalRepeatSecs), cfg.CriticalRepeatEnabled)

	critAbove := current.GreaterThanOrEqual(cfg.CriticalThreshold)
	warnAbove := current.GreaterThanOrEqual(cfg.WarningThreshold)

	if critAbove {
		critTracker.Start(now)
	} else {
		critTracker.Reset()
	}
	if warnAbove {
		warnTracker.Start(now)
	} else {
		warnTracker.Reset()
	}

	critReady := cfg.CriticalEnabled && critAbove && critTracker.DidElapse(now)
	warnReady := cfg.WarningEnabled && warnAbove && warnTracker.DidElapse(now)

	var alerts []Alert

	switch {
	case rec.CriticalSent[metricCode] && current.LessThan(cfg.CriticalThreshold):
		alerts = append(alerts, resolve(parentID, originID, current, timestamp))
		rec.CriticalSent[metricCode] = false
		limiter.Reset()

		if warnReady {
			alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}

	case critReady:
		if !rec.CriticalSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, current, SeverityCritical, timestamp))
			rec.CriticalSent[metricCode] = true
			limiter.DidTask(now)
		} else if cfg.CriticalRepeatEnabled && limiter.CanDo(now) {
			alerts = append(alerts, raise(parentID, originID, current, SeverityCritical, timestamp))
			limiter.DidTask(now)
		}
		if rec.WarningSent[metricCode] {
			rec.WarningSent[metricCode] = false
		}

	case warnReady:
		if !rec.WarningSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}

	case rec.WarningSent[metricCode] && current.LessThan(cfg.WarningThreshold):
		alerts = append(alerts, resolve(parentID, originID, current, timestamp))
		rec.WarningSent[metricCode] = false
	}

	return alerts
}
