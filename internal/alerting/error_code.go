package alerting

// ClassifyErrorCode implements SPEC_FULL.md §4.3.7: errorCode is nil when
// the last observation carried no error, or the code it carried otherwise.
// ErrorSent tracks "is there currently an unresolved ERROR alert for this
// specific code" — if the next observation carries a different code (or no
// code at all), this one resolves; a distinct code gets its own record via
// a distinct metricCode, so two overlapping error conditions on the same
// monitorable never tread on each other's state.
func (f *Factory) ClassifyErrorCode(
	rec *Record, errorCode *ErrorCode, targetCode ErrorCode,
	raise ErrorFunc, resolve ErrorResolveFunc,
	parentID, originID, metricCode string, timestamp float64,
) []Alert {
	var alerts []Alert
	wasSent := rec.ErrorSent[metricCode]

	if errorCode != nil && *errorCode == targetCode && !wasSent {
		alerts = append(alerts, raise(parentID, originID, timestamp))
		rec.ErrorSent[metricCode] = true
	}

	if wasSent && (errorCode == nil || *errorCode != targetCode) {
		alerts = append(alerts, resolve(parentID, originID, timestamp))
		rec.ErrorSent[metricCode] = false
	}

	return alerts
}
