package alerting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/config"
)

func occurrencesCfg() config.ThresholdConfig {
	return config.ThresholdConfig{
		WarningEnabled:         true,
		CriticalEnabled:        true,
		CriticalRepeatEnabled:  false,
		WarningThreshold:       decimal.NewFromInt(3),
		CriticalThreshold:      decimal.NewFromInt(5),
		WarningTimeWindowSecs:  3,
		CriticalTimeWindowSecs: 7,
	}
}

// TestClassifyOccurrencesInPeriod_S4 reproduces SPEC_FULL.md §8 scenario S4:
// a burst of errored job runs raises WARNING then CRITICAL, and both decay
// independently once the burst stops.
func TestClassifyOccurrencesInPeriod_S4(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := occurrencesCfg()

	alerts := f.ClassifyOccurrencesInPeriod(rec, cfg, decimal.NewFromInt(3), decimal.NewFromInt(0), testRaise, testResolve, "p", "o", "errors", 0)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	alerts = f.ClassifyOccurrencesInPeriod(rec, cfg, decimal.NewFromInt(5), decimal.NewFromInt(3), testRaise, testResolve, "p", "o", "errors", 1)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.True(t, rec.WarningSent["errors"], "occurrences protocol does not silently clear warning on escalation")

	alerts = f.ClassifyOccurrencesInPeriod(rec, cfg, decimal.NewFromInt(5), decimal.NewFromInt(5), testRaise, testResolve, "p", "o", "errors", 10)
	require.Len(t, alerts, 2)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.Equal(t, SeverityInfo, alerts[1].Severity)
	assert.False(t, rec.CriticalSent["errors"])
	assert.False(t, rec.WarningSent["errors"])
}

func TestClassifyOccurrencesInPeriod_NoOpWhenCounterUnchanged(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := occurrencesCfg()

	alerts := f.ClassifyOccurrencesInPeriod(rec, cfg, decimal.NewFromInt(0), decimal.NewFromInt(0), testRaise, testResolve, "p", "o", "errors", 0)
	assert.Empty(t, alerts)
}
