package alerter

import (
	"fmt"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

const (
	githubAlertNewRelease            = "github_alert_1"
	githubAlertCannotAccessRepoPage  = "github_alert_2"
	githubAlertRepoPageAccessible    = "github_alert_3"
)

func newGithubReleaseAlert(parentID, originID string, obs GithubObservation, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  githubAlertNewRelease,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("new release for %s: %s (%s)", originID, obs.LatestReleaseName, obs.LatestTagName),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "github_release",
		AlertData: map[string]any{
			"release_name": obs.LatestReleaseName,
			"tag_name":     obs.LatestTagName,
		},
	}
}

func raiseCannotAccessRepoPage(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  githubAlertCannotAccessRepoPage,
		Severity:   alerting.SeverityError,
		Message:    fmt.Sprintf(alerting.ErrCannotAccessRepoPage.Message(), originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "repo_page_access",
	}
}

func resolveRepoPageAccessible(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  githubAlertRepoPageAccessible,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("repository page for %s is accessible again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "repo_page_access",
	}
}
