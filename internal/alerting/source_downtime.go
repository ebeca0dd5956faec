package alerting

// ClassifySourceDowntime implements SPEC_FULL.md §4.3.10: a one-shot
// WARNING-only variant of the downtime protocol used for best-effort data
// sources (e.g. a Prometheus endpoint backing a node) where losing the
// source is a lesser problem than losing the node itself, so it never
// escalates to CRITICAL and never repeats. The resolve fires only when the
// warning flag is actually set, so a source that was never down never
// produces a spurious "back up".
func (f *Factory) ClassifySourceDowntime(
	rec *Record, sourceDown bool, wentDown WentDownFunc, backUp BackUpFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	if sourceDown {
		if !rec.WarningSent[metricCode] {
			rec.WarningSent[metricCode] = true
			return []Alert{wentDown(parentID, originID, SeverityWarning, timestamp)}
		}
		return nil
	}

	if rec.WarningSent[metricCode] {
		rec.WarningSent[metricCode] = false
		return []Alert{backUp(parentID, originID, timestamp)}
	}
	return nil
}
