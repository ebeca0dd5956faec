package alerting

import (
	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// ClassifyThreshold implements the "higher is worse" protocol (SPEC_FULL.md
// §4.3.1): warning_threshold <= critical_threshold, raising WARNING/CRITICAL
// as current climbs and resolving with INFO as it falls back down.
func (f *Factory) ClassifyThreshold(
	rec *Record, cfg config.ThresholdConfig, current decimal.Decimal,
	raise RaiseFunc, resolve ResolveFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	if !cfg.WarningEnabled && !cfg.CriticalEnabled {
		return nil
	}

	var alerts []Alert
	limiter := getOrCreateLimiter(rec.CriticalRepeatTimer, metricCode,
		secondsToDuration(cfg.CriticalRepeatSecs), cfg.CriticalRepeatEnabled)
	now := timeFromUnixFloat(timestamp)

	switch {
	case rec.CriticalSent[metricCode] && current.LessThan(cfg.CriticalThreshold):
		alerts = append(alerts, resolve(parentID, originID, current, timestamp))
		rec.CriticalSent[metricCode] = false
		limiter.Reset()

		if cfg.WarningEnabled && current.GreaterThanOrEqual(cfg.WarningThreshold) {
			alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}

	case cfg.CriticalEnabled && current.GreaterThanOrEqual(cfg.CriticalThreshold):
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

	case cfg.WarningEnabled && current.GreaterThanOrEqual(cfg.WarningThreshold) && current.LessThan(cfg.CriticalThreshold):
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
