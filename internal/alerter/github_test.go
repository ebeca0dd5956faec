package alerter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

func githubEnvelope(t *testing.T, obs GithubObservation, timestamp float64) Envelope {
	t.Helper()
	data, err := json.Marshal(obs)
	require.NoError(t, err)
	return Envelope{
		Result: &Result{
			MetaData: MetaData{ParentID: "chain-1", MonitorName: "repo-1", Timestamp: timestamp},
			Data:     data,
		},
	}
}

func TestGithubClassifier_NewReleaseRaisesInfoAlert(t *testing.T) {
	store := alerting.NewStore()
	classifier := NewGithubClassifier(GithubClassifier{Factory: alerting.NewFactory(nil, nil), Store: store})

	env := githubEnvelope(t, GithubObservation{CurrentReleases: 2, PreviousReleases: 1, LatestReleaseName: "v2", LatestTagName: "v2.0.0"}, 1000)
	alerts, err := classifier(context.Background(), env)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, githubAlertNewRelease, alerts[0].AlertCode)
	assert.Equal(t, "v2.0.0", alerts[0].AlertData["tag_name"])
}

func TestGithubClassifier_UnchangedReleaseCountIsSilent(t *testing.T) {
	store := alerting.NewStore()
	classifier := NewGithubClassifier(GithubClassifier{Factory: alerting.NewFactory(nil, nil), Store: store})

	env := githubEnvelope(t, GithubObservation{CurrentReleases: 3, PreviousReleases: 3}, 1000)
	alerts, err := classifier(context.Background(), env)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGithubClassifier_ErrorEnvelopeRaisesThenResolves(t *testing.T) {
	store := alerting.NewStore()
	store.CreateState("chain-1", "repo-1", nil)
	classifier := NewGithubClassifier(GithubClassifier{Factory: alerting.NewFactory(nil, nil), Store: store})

	raiseEnv := Envelope{Error: &ErrorPayload{
		MetaData: MetaData{ParentID: "chain-1", MonitorName: "repo-1", Timestamp: 1000},
		Code:     int(alerting.ErrCannotAccessRepoPage),
	}}
	alerts, err := classifier(context.Background(), raiseEnv)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, githubAlertCannotAccessRepoPage, alerts[0].AlertCode)

	resolveEnv := githubEnvelope(t, GithubObservation{CurrentReleases: 1, PreviousReleases: 1}, 1100)
	alerts, err = classifier(context.Background(), resolveEnv)
	require.NoError(t, err)
	assert.Empty(t, alerts, "a successful result never resolves the error state on its own in this model")
}
