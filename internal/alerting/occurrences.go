package alerting

import (
	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// ClassifyOccurrencesInPeriod implements SPEC_FULL.md §4.3.4: a monotonic
// counter (e.g. errored job runs) is compared not by its raw value but by
// how many units it has grown within a trailing window. Each severity
// decays and resolves independently, since a burst that satisfied both
// thresholds can clear the warning window before the critical one.
func (f *Factory) ClassifyOccurrencesInPeriod(
	rec *Record, cfg config.ThresholdConfig, current, previous decimal.Decimal,
	raise RaiseFunc, resolve ResolveFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	if !cfg.WarningEnabled && !cfg.CriticalEnabled {
		return nil
	}

	now := timeFromUnixFloat(timestamp)
	warnTracker := getOrCreateOccurrences(rec.WarningOccurrences, metricCode, secondsToDuration(cfg.WarningTimeWindowSecs))
	critTracker := getOrCreateOccurrences(rec.CriticalOccurrences, metricCode, secondsToDuration(cfg.CriticalTimeWindowSecs))
	limiter := getOrCreateLimiter(rec.CriticalRepeatTimer, metricCode,
		secondsToDuration(cfg.CriticalRepeatSecs), cfg.CriticalRepeatEnabled)

	diff := current.Sub(previous)
	if diff.IsPositive() {
		n := int(diff.IntPart())
		for i := 0; i < n; i++ {
			warnTracker.AddOccurrence(now)
			critTracker.AddOccurrence(now)
		}
	}

	nWarn := decimal.NewFromInt(int64(warnTracker.NOccurrences(now)))
	nCrit := decimal.NewFromInt(int64(critTracker.NOccurrences(now)))

	var alerts []Alert

	if rec.CriticalSent[metricCode] && nCrit.LessThan(cfg.CriticalThreshold) {
		alerts = append(alerts, resolve(parentID, originID, nCrit, timestamp))
		rec.CriticalSent[metricCode] = false
		limiter.Reset()
	}
	if rec.WarningSent[metricCode] && nWarn.LessThan(cfg.WarningThreshold) {
		alerts = append(alerts, resolve(parentID, originID, nWarn, timestamp))
		rec.WarningSent[metricCode] = false
	}

	switch {
	case cfg.CriticalEnabled && nCrit.GreaterThanOrEqual(cfg.CriticalThreshold):
		if !rec.CriticalSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, nCrit, SeverityCritical, timestamp))
			rec.CriticalSent[metricCode] = true
			limiter.DidTask(now)
		} else if cfg.CriticalRepeatEnabled && limiter.CanDo(now) {
			alerts = append(alerts, raise(parentID, originID, nCrit, SeverityCritical, timestamp))
			limiter.DidTask(now)
		}

	case cfg.WarningEnabled && nWarn.GreaterThanOrEqual(cfg.WarningThreshold):
		if !rec.WarningSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, nWarn, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}
	}

	return alerts
}
