// Package alerter provides the generic subscribe-classify-publish shell
// every alerter subsystem runs (SPEC_FULL.md §4.2 "Alerter (shell)"), plus
// the concrete chainlink/system/github subsystems built on it.
package alerter

import (
	"encoding/json"
	"fmt"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

// Envelope is the sum-type wire shape of spec.md §6's transformed-data
// messages: exactly one of Result or Error is set. This is the Go
// expression of Design Note "Exceptions-as-flow" — the data transformer
// (out of scope itself) catches domain exceptions and turns them into
// Error, so internal/alerting never sees a Go error, only this envelope.
type Envelope struct {
	Result *Result       `json:"result,omitempty"`
	Error  *ErrorPayload `json:"error,omitempty"`
}

// Result carries one successfully transformed observation.
type Result struct {
	MetaData MetaData        `json:"meta_data"`
	Data     json.RawMessage `json:"data"`
}

// ErrorPayload carries a failed observation's domain-exception details.
type ErrorPayload struct {
	MetaData MetaData `json:"meta_data"`
	Message  string   `json:"message"`
	Code     int      `json:"code"`
}

// MetaData identifies which monitorable a Result/ErrorPayload is about.
type MetaData struct {
	ParentID    string  `json:"parent_id"`
	MonitorName string  `json:"monitor_name"`
	Timestamp   float64 `json:"timestamp"`
}

// Decode parses raw into an Envelope and validates that exactly one of
// Result/Error was present, per the "two disjoint shapes" contract of §6.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, fmt.Errorf("alerter: decode envelope: %w", err)
	}
	if (env.Result == nil) == (env.Error == nil) {
		return Envelope{}, fmt.Errorf("alerter: envelope must set exactly one of result/error")
	}
	return env, nil
}

// wireAlert is the JSON shape published on the alert exchange (§6).
type wireAlert struct {
	AlertCode struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	} `json:"alert_code"`
	Severity   string         `json:"severity"`
	Message    string         `json:"message"`
	Timestamp  float64        `json:"timestamp"`
	ParentID   string         `json:"parent_id"`
	OriginID   string         `json:"origin_id"`
	MetricCode string         `json:"metric_code"`
	AlertData  map[string]any `json:"alert_data"`
}

// EncodeAlert renders a into the wire shape §6 specifies.
func EncodeAlert(a alerting.Alert) ([]byte, error) {
	w := wireAlert{
		Severity:   string(a.Severity),
		Message:    a.Message,
		Timestamp:  a.Timestamp,
		ParentID:   a.ParentID,
		OriginID:   a.OriginID,
		MetricCode: a.MetricCode,
		AlertData:  a.AlertData,
	}
	w.AlertCode.Name = a.AlertCode
	w.AlertCode.Value = a.Value

	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("alerter: encode alert: %w", err)
	}
	return data, nil
}
