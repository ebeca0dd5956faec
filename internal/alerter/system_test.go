package alerter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/alerting"
	"github.com/simplyvc/panic-alerter/internal/config"
)

func systemThresholds() map[string]config.ThresholdConfig {
	return map[string]config.ThresholdConfig{
		"cpu_use_percentage": {WarningEnabled: true, CriticalEnabled: true,
			WarningThreshold: decimal.NewFromInt(80), CriticalThreshold: decimal.NewFromInt(95), CriticalRepeatSecs: 300},
		"ram_use_percentage": {WarningEnabled: true, CriticalEnabled: true,
			WarningThreshold: decimal.NewFromInt(80), CriticalThreshold: decimal.NewFromInt(95), CriticalRepeatSecs: 300},
		"storage_use_percentage": {WarningEnabled: true, CriticalEnabled: true,
			WarningThreshold: decimal.NewFromInt(85), CriticalThreshold: decimal.NewFromInt(97), CriticalRepeatSecs: 300},
		"is_down": {WarningEnabled: true, CriticalEnabled: true,
			WarningTimeWindowSecs: 0, CriticalTimeWindowSecs: 60, CriticalRepeatSecs: 300},
	}
}

func newSystemFixture(t *testing.T) Classifier {
	t.Helper()
	store := alerting.NewStore()
	store.CreateState("chain-1", "system-1", systemThresholds())
	return NewSystemClassifier(SystemClassifier{
		Factory:    alerting.NewFactory(nil, nil),
		Store:      store,
		Thresholds: systemThresholds(),
	})
}

func systemEnvelope(t *testing.T, obs SystemObservation, timestamp float64) Envelope {
	t.Helper()
	data, err := json.Marshal(obs)
	require.NoError(t, err)
	return Envelope{
		Result: &Result{
			MetaData: MetaData{ParentID: "chain-1", MonitorName: "system-1", Timestamp: timestamp},
			Data:     data,
		},
	}
}

func TestSystemClassifier_CPUAboveCriticalRaises(t *testing.T) {
	classifier := newSystemFixture(t)
	env := systemEnvelope(t, SystemObservation{CPUUsePercentage: decimal.NewFromInt(99)}, 1000)

	alerts, err := classifier(context.Background(), env)
	require.NoError(t, err)
	assertHasCode(t, alerts, systemAlertCPUThreshold)
}

func TestSystemClassifier_AllMetricsNormalIsSilent(t *testing.T) {
	classifier := newSystemFixture(t)
	env := systemEnvelope(t, SystemObservation{
		CPUUsePercentage:     decimal.NewFromInt(10),
		RAMUsePercentage:     decimal.NewFromInt(10),
		StorageUsePercentage: decimal.NewFromInt(10),
	}, 1000)

	alerts, err := classifier(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestSystemClassifier_RecoveryAfterCriticalResolves(t *testing.T) {
	classifier := newSystemFixture(t)

	hot := systemEnvelope(t, SystemObservation{RAMUsePercentage: decimal.NewFromInt(99)}, 1000)
	_, err := classifier(context.Background(), hot)
	require.NoError(t, err)

	cool := systemEnvelope(t, SystemObservation{RAMUsePercentage: decimal.NewFromInt(5)}, 1100)
	alerts, err := classifier(context.Background(), cool)
	require.NoError(t, err)
	assertHasCode(t, alerts, systemAlertRAMBack)
}
