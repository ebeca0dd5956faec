package alerting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/config"
)

func reverseCfg() config.ThresholdConfig {
	return config.ThresholdConfig{
		WarningEnabled:        true,
		CriticalEnabled:       true,
		CriticalRepeatEnabled: true,
		WarningThreshold:      decimal.NewFromInt(10),
		CriticalThreshold:     decimal.NewFromInt(5),
		CriticalRepeatSecs:    60,
	}
}

func TestClassifyReverseThreshold_RaisesOnLowBalance(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := reverseCfg()

	alerts := f.ClassifyReverseThreshold(rec, cfg, decimal.NewFromInt(10), testRaise, testResolve, "p", "o", "balance", 0)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	alerts = f.ClassifyReverseThreshold(rec, cfg, decimal.NewFromInt(5), testRaise, testResolve, "p", "o", "balance", 1)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityCritical, alerts[0].Severity)
	assert.False(t, rec.WarningSent["balance"])
}

func TestClassifyReverseThreshold_ResolvesAsBalanceRecovers(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	cfg := reverseCfg()

	_ = f.ClassifyReverseThreshold(rec, cfg, decimal.NewFromInt(1), testRaise, testResolve, "p", "o", "balance", 0)

	alerts := f.ClassifyReverseThreshold(rec, cfg, decimal.NewFromInt(8), testRaise, testResolve, "p", "o", "balance", 1)
	require.Len(t, alerts, 2)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.Equal(t, SeverityWarning, alerts[1].Severity)

	alerts = f.ClassifyReverseThreshold(rec, cfg, decimal.NewFromInt(20), testRaise, testResolve, "p", "o", "balance", 2)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.False(t, rec.WarningSent["balance"])
}
