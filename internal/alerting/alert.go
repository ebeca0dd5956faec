// Package alerting implements the stateful, per-(parent, monitorable)
// classifier protocols that turn timestamped metric observations into
// severity-graded alerts: the Alerting Factory described by SPEC_FULL.md §4.
package alerting

import "github.com/shopspring/decimal"

// Severity is one of the four alert severities the factory can emit.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
	SeverityError    Severity = "ERROR"
)

// Alert is the single flat record every classifier appends to its output,
// replacing the teacher-language's Alert -> PerMetricAlert -> SpecificAlert
// inheritance chain with one struct plus small free constructor functions.
// Two alerts are equal iff every field below is equal.
type Alert struct {
	AlertCode  string
	Severity   Severity
	Message    string
	Timestamp  float64
	ParentID   string
	OriginID   string
	MetricCode string
	Value      string
	Previous   *string
	AlertData  map[string]any
}

// RaiseFunc builds the alert emitted when a problem is first detected (or
// re-raised on a repeat timer). current is rendered into Value/message by
// the concrete constructor the caller supplies.
type RaiseFunc func(parentID, originID string, current decimal.Decimal, severity Severity, timestamp float64) Alert

// ResolveFunc builds the INFO alert emitted exactly once when a
// previously-raised problem clears.
type ResolveFunc func(parentID, originID string, current decimal.Decimal, timestamp float64) Alert

// WentDownFunc/StillDownFunc/BackUpFunc are the three-constructor family
// used by the downtime and source-downtime protocols (4.3.6, 4.3.10).
type WentDownFunc func(parentID, originID string, severity Severity, timestamp float64) Alert
type StillDownFunc func(parentID, originID string, severity Severity, durationSecs float64, timestamp float64) Alert
type BackUpFunc func(parentID, originID string, timestamp float64) Alert

// ErrorFunc/ErrorResolveFunc back the error-code protocol (4.3.7).
type ErrorFunc func(parentID, originID string, timestamp float64) Alert
type ErrorResolveFunc func(parentID, originID string, timestamp float64) Alert

// ConditionalFunc backs the one-shot and no-repeat conditional protocols
// (4.3.8, 4.3.9).
type ConditionalFunc func(parentID, originID string, timestamp float64) Alert
