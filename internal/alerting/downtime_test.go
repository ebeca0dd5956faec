package alerting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/config"
)

func downtimeCfg() config.ThresholdConfig {
	return config.ThresholdConfig{
		WarningEnabled:         true,
		CriticalEnabled:        true,
		CriticalRepeatEnabled:  false,
		WarningTimeWindowSecs:  3,
		CriticalTimeWindowSecs: 5,
	}
}

func testWentDown(parentID, originID string, severity Severity, timestamp float64) Alert {
	return Alert{ParentID: parentID, OriginID: originID, Severity: severity, Timestamp: timestamp}
}

func testStillDown(parentID, originID string, severity Severity, durationSecs float64, timestamp float64) Alert {
	return Alert{ParentID: parentID, OriginID: originID, Severity: severity, Timestamp: timestamp}
}

func testBackUp(parentID, originID string, timestamp float64) Alert {
	return Alert{ParentID: parentID, OriginID: originID, Severity: SeverityInfo, Timestamp: timestamp}
}

// TestClassifyDowntime_S3 reproduces SPEC_FULL.md §8 scenario S3.
func TestClassifyDowntime_S3(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := downtimeCfg()
	wentDownAt := time.Unix(0, 0)

	alerts := f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 0)
	assert.Empty(t, alerts)

	alerts = f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 3)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	alerts = f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.False(t, rec.WarningSent["node"])

	alerts = f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 10)
	assert.Empty(t, alerts, "repeat disabled, no still-down alert")
}

func TestClassifyDowntime_ResolvesOnRecovery(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := downtimeCfg()
	wentDownAt := time.Unix(0, 0)

	_ = f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 5)

	alerts := f.ClassifyDowntime(rec, cfg, nil, testWentDown, testStillDown, testBackUp, "p", "o", "node", 6)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.False(t, rec.CriticalSent["node"])
}

func TestClassifyDowntime_RepeatElapsedEmitsStillDown(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := downtimeCfg()
	cfg.CriticalRepeatEnabled = true
	cfg.CriticalRepeatSecs = 10
	wentDownAt := time.Unix(0, 0)

	_ = f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 5)

	alerts := f.ClassifyDowntime(rec, cfg, &wentDownAt, testWentDown, testStillDown, testBackUp, "p", "o", "node", 15)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
}
