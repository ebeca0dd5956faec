package alerter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

// GithubObservation is the "data" payload on transformed_data.github
// results, grounded in github.py's _process_data: the transformer (out of
// scope here) already carries both the current and previous release count,
// so this alerter never needs its own prior-value store.
type GithubObservation struct {
	CurrentReleases   int    `json:"current_releases"`
	PreviousReleases  int    `json:"previous_releases"`
	LatestReleaseName string `json:"latest_release_name"`
	LatestTagName     string `json:"latest_tag_name"`
}

// GithubClassifier bundles what NewGithubClassifier's Classifier closure
// needs.
type GithubClassifier struct {
	Factory *alerting.Factory
	Store   *alerting.Store
}

// NewGithubClassifier builds the Classifier for the GitHub repository
// alerter named in SPEC_FULL.md §4.4: "new release" via ClassifyConditional,
// "cannot access repo page" via ClassifyErrorCode.
func NewGithubClassifier(c GithubClassifier) Classifier {
	return func(ctx context.Context, env Envelope) ([]alerting.Alert, error) {
		if env.Error != nil {
			return c.classifyError(env.Error), nil
		}

		var obs GithubObservation
		if err := json.Unmarshal(env.Result.Data, &obs); err != nil {
			return nil, fmt.Errorf("github: decode observation: %w", err)
		}

		parentID := env.Result.MetaData.ParentID
		repoID := env.Result.MetaData.MonitorName
		timestamp := env.Result.MetaData.Timestamp

		releaseObs := obs
		alerts := c.Factory.ClassifyConditional(
			obs.CurrentReleases != obs.PreviousReleases,
			func(parentID, originID string, timestamp float64) alerting.Alert {
				return newGithubReleaseAlert(parentID, originID, releaseObs, timestamp)
			},
			nil,
			parentID, repoID, timestamp,
		)
		return alerts, nil
	}
}

func (c GithubClassifier) classifyError(errPayload *ErrorPayload) []alerting.Alert {
	parentID := errPayload.MetaData.ParentID
	repoID := errPayload.MetaData.MonitorName
	if !c.Store.Has(parentID, repoID) {
		return nil
	}
	rec := c.Store.Get(parentID, repoID)

	code := alerting.ErrorCode(errPayload.Code)
	target := alerting.ErrCannotAccessRepoPage
	return c.Factory.ClassifyErrorCode(rec, &code, target, raiseCannotAccessRepoPage, resolveRepoPageAccessible,
		parentID, repoID, "repo_page_access", errPayload.MetaData.Timestamp)
}
