package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifySourceDowntime_OneShotWarningAndResolve(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()

	alerts := f.ClassifySourceDowntime(rec, true, testWentDown, testBackUp, "p", "o", "prometheus", 0)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityWarning, alerts[0].Severity)

	alerts = f.ClassifySourceDowntime(rec, true, testWentDown, testBackUp, "p", "o", "prometheus", 1)
	assert.Empty(t, alerts, "one-shot: still down produces no repeat")

	alerts = f.ClassifySourceDowntime(rec, false, testWentDown, testBackUp, "p", "o", "prometheus", 2)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
}

func TestClassifySourceDowntime_NeverDownNeverResolves(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()

	alerts := f.ClassifySourceDowntime(rec, false, testWentDown, testBackUp, "p", "o", "prometheus", 0)
	assert.Empty(t, alerts)
}
