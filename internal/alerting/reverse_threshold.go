package alerting

import (
	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// ClassifyReverseThreshold implements the "lower is worse" protocol
// (SPEC_FULL.md §4.3.2) — e.g. a node balance running low — where
// critical_threshold <= warning_threshold and alerts raise as current falls.
func (f *Factory) ClassifyReverseThreshold(
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
	case rec.CriticalSent[metricCode] && current.GreaterThan(cfg.CriticalThreshold):
		alerts = append(alerts, resolve(parentID, originID, current, timestamp))
		rec.CriticalSent[metricCode] = false
		limiter.Reset()

		if cfg.WarningEnabled && current.LessThanOrEqual(cfg.WarningThreshold) {
			alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}

	case cfg.CriticalEnabled && current.LessThanOrEqual(cfg.CriticalThreshold):
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

	case cfg.WarningEnabled && current.LessThanOrEqual(cfg.WarningThreshold) && current.GreaterThan(cfg.CriticalThreshold):
		if !rec.WarningSent[metricCode] {
			alerts = append(alerts, raise(parentID, originID, current, SeverityWarning, timestamp))
			rec.WarningSent[metricCode] = true
		}

	case rec.WarningSent[metricCode] && current.GreaterThan(cfg.WarningThreshold):
		alerts = append(alerts, resolve(parentID, originID, current, timestamp))
		rec.WarningSent[metricCode] = false
	}

	return alerts
}
