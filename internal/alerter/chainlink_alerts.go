package alerter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

// Chainlink node alert codes, numbered in the same flat per-monitorable-kind
// scheme as the original source's CosmosNodeAlertCode.
const (
	chainlinkAlertNoChangeInHeight      = "chainlink_node_alert_1"
	chainlinkAlertBlockHeightUpdated    = "chainlink_node_alert_2"
	chainlinkAlertUnconfirmedBlocks     = "chainlink_node_alert_3"
	chainlinkAlertUnconfirmedBlocksBack = "chainlink_node_alert_4"
	chainlinkAlertBalanceThreshold      = "chainlink_node_alert_5"
	chainlinkAlertBalanceRestored       = "chainlink_node_alert_6"
	chainlinkAlertErroredJobRuns        = "chainlink_node_alert_7"
	chainlinkAlertErroredJobRunsBack    = "chainlink_node_alert_8"
	chainlinkAlertNodeWentDown          = "chainlink_node_alert_9"
	chainlinkAlertNodeStillDown         = "chainlink_node_alert_10"
	chainlinkAlertNodeBackUp            = "chainlink_node_alert_11"
	chainlinkAlertPrometheusSourceDown  = "chainlink_node_alert_12"
	chainlinkAlertPrometheusSourceBack  = "chainlink_node_alert_13"
	chainlinkAlertNodeIsSyncing         = "chainlink_node_alert_14"
	chainlinkAlertNodeNoLongerSyncing   = "chainlink_node_alert_15"
	chainlinkAlertInvalidURL            = "chainlink_node_alert_16"
	chainlinkAlertValidURL              = "chainlink_node_alert_17"
)

func raiseNoChangeInHeight(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNoChangeInHeight,
		Severity:  severity,
		Message:   fmt.Sprintf("node %s block height has not changed in some time, currently at %s", originID, current.String()),
		Timestamp: timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "height",
	}
}

func resolveHeightUpdated(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertBlockHeightUpdated,
		Severity:  alerting.SeverityInfo,
		Message:   fmt.Sprintf("node %s block height is now updating normally, currently at %s", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "height",
	}
}

func raiseMaxUnconfirmedBlocks(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertUnconfirmedBlocks,
		Severity:  severity,
		Message:   fmt.Sprintf("node %s has had %s unconfirmed blocks for longer than the configured time window", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "unconfirmed_blocks",
	}
}

func resolveMaxUnconfirmedBlocks(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertUnconfirmedBlocksBack,
		Severity:  alerting.SeverityInfo,
		Message:   fmt.Sprintf("node %s unconfirmed block count is back to normal, currently at %s", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "unconfirmed_blocks",
	}
}

func raiseBalanceThreshold(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertBalanceThreshold,
		Severity:  severity,
		Message:   fmt.Sprintf("node %s balance has dropped to %s", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "balance",
	}
}

func resolveBalanceThreshold(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertBalanceRestored,
		Severity:  alerting.SeverityInfo,
		Message:   fmt.Sprintf("node %s balance has been topped up, currently at %s", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "balance",
	}
}

func raiseErroredJobRuns(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertErroredJobRuns,
		Severity:  severity,
		Message:   fmt.Sprintf("node %s recorded %s errored job runs within the configured time window", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "errored_job_runs",
	}
}

func resolveErroredJobRuns(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertErroredJobRunsBack,
		Severity:  alerting.SeverityInfo,
		Message:   fmt.Sprintf("node %s errored job runs are back below threshold, currently at %s", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "errored_job_runs",
	}
}

func raiseNodeIsDown(parentID, originID string, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNodeWentDown,
		Severity:  severity,
		Message:    fmt.Sprintf("node %s is unreachable", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func stillDownNode(parentID, originID string, severity alerting.Severity, durationSecs float64, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNodeStillDown,
		Severity:  severity,
		Message:    fmt.Sprintf("node %s has been unreachable for %.0f seconds", originID, durationSecs),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func backUpNode(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNodeBackUp,
		Severity:  alerting.SeverityInfo,
		Message:    fmt.Sprintf("node %s is now accessible again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func raisePrometheusSourceDown(parentID, originID string, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertPrometheusSourceDown,
		Severity:  severity,
		Message:    fmt.Sprintf("node %s prometheus source is unreachable, falling back to other sources where possible", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "prometheus_source",
	}
}

func backUpPrometheusSource(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertPrometheusSourceBack,
		Severity:  alerting.SeverityInfo,
		Message:    fmt.Sprintf("node %s prometheus source is accessible again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "prometheus_source",
	}
}

func raiseNodeIsSyncing(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNodeIsSyncing,
		Severity:  alerting.SeverityWarning,
		Message:    fmt.Sprintf("node %s is syncing", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_syncing",
	}
}

func raiseNodeIsNoLongerSyncing(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode: chainlinkAlertNodeNoLongerSyncing,
		Severity:  alerting.SeverityInfo,
		Message:    fmt.Sprintf("node %s is no longer syncing", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_syncing",
	}
}

func raiseInvalidURL(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  chainlinkAlertInvalidURL,
		Severity:   alerting.SeverityError,
		Message:    fmt.Sprintf(alerting.ErrInvalidURL.Message(), originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "invalid_url",
	}
}

func resolveInvalidURL(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  chainlinkAlertValidURL,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("node %s prometheus URL is valid again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "invalid_url",
	}
}
