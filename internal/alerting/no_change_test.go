package alerting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/config"
)

func noChangeCfg() config.ThresholdConfig {
	return config.ThresholdConfig{
		WarningEnabled:        true,
		CriticalEnabled:       true,
		CriticalRepeatEnabled: true,
		WarningThreshold:      decimal.NewFromInt(5),
		CriticalThreshold:     decimal.NewFromInt(10),
		CriticalRepeatSecs:    20,
	}
}

func TestClassifyNoChangeInValue_RaisesWarningThenCritical(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := noChangeCfg()
	height := decimal.NewFromInt(100)

	alerts := f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 0)
	assert.Empty(t, alerts)

	alerts = f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 5)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	alerts = f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 10)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.False(t, rec.WarningSent["height"])
}

func TestClassifyNoChangeInValue_ResolvesOnChange(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := noChangeCfg()
	height := decimal.NewFromInt(100)

	_ = f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 0)
	_ = f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 5)

	alerts := f.ClassifyNoChangeInValue(rec, cfg, decimal.NewFromInt(101), height, testRaise, testResolve, "p", "o", "height", 6)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.False(t, rec.WarningSent["height"])
}

func TestClassifyNoChangeInValue_DisabledNeverStartsTimer(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := noChangeCfg()
	cfg.WarningEnabled = false
	cfg.CriticalEnabled = false
	height := decimal.NewFromInt(100)

	alerts := f.ClassifyNoChangeInValue(rec, cfg, height, height, testRaise, testResolve, "p", "o", "height", 100)
	assert.Empty(t, alerts)
	assert.Nil(t, rec.NoChangeTracker["height"])
}
