package alerting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testErrorRaise(parentID, originID string, timestamp float64) Alert {
	return Alert{ParentID: parentID, OriginID: originID, Severity: SeverityError, Timestamp: timestamp}
}

func testErrorResolve(parentID, originID string, timestamp float64) Alert {
	return Alert{ParentID: parentID, OriginID: originID, Severity: SeverityInfo, Timestamp: timestamp}
}

func TestClassifyErrorCode_RaisesOnMatchingCodeAndResolvesOnClear(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	target := ErrInvalidURL
	code := ErrInvalidURL

	alerts := f.ClassifyErrorCode(rec, &code, target, testErrorRaise, testErrorResolve, "p", "o", "url", 0)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityError, alerts[0].Severity)

	alerts = f.ClassifyErrorCode(rec, &code, target, testErrorRaise, testErrorResolve, "p", "o", "url", 1)
	assert.Empty(t, alerts, "same code re-observed does not re-raise")

	alerts = f.ClassifyErrorCode(rec, nil, target, testErrorRaise, testErrorResolve, "p", "o", "url", 2)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
}

func TestClassifyErrorCode_DifferentCodeAlsoResolves(t *testing.T) {
	f := NewFactory(nil, nil)
	rec := NewRecord()
	target := ErrInvalidURL
	matching := ErrInvalidURL
	other := ErrRepoAPICall

	_ = f.ClassifyErrorCode(rec, &matching, target, testErrorRaise, testErrorResolve, "p", "o", "url", 0)

	alerts := f.ClassifyErrorCode(rec, &other, target, testErrorRaise, testErrorResolve, "p", "o", "url", 1)
	require.Len(t, alerts, 1)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
}
