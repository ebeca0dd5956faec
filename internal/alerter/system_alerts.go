package alerter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/alerting"
)

const (
	systemAlertCPUThreshold         = "system_alert_1"
	systemAlertCPUBack              = "system_alert_2"
	systemAlertRAMThreshold         = "system_alert_3"
	systemAlertRAMBack              = "system_alert_4"
	systemAlertStorageThreshold     = "system_alert_5"
	systemAlertStorageBack          = "system_alert_6"
	systemAlertWentDown             = "system_alert_7"
	systemAlertStillDown            = "system_alert_8"
	systemAlertBackUp               = "system_alert_9"
	systemAlertMetricNotFound       = "system_alert_10"
	systemAlertMetricFound          = "system_alert_11"
)

func raiseCPUThreshold(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertCPUThreshold,
		Severity:   severity,
		Message:    fmt.Sprintf("system %s CPU usage is at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "cpu_use_percentage",
	}
}

func resolveCPUThreshold(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertCPUBack,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("system %s CPU usage back to normal, currently at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "cpu_use_percentage",
	}
}

func raiseRAMThreshold(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertRAMThreshold,
		Severity:   severity,
		Message:    fmt.Sprintf("system %s RAM usage is at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "ram_use_percentage",
	}
}

func resolveRAMThreshold(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertRAMBack,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("system %s RAM usage back to normal, currently at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "ram_use_percentage",
	}
}

func raiseStorageThreshold(parentID, originID string, current decimal.Decimal, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertStorageThreshold,
		Severity:   severity,
		Message:    fmt.Sprintf("system %s storage usage is at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "storage_use_percentage",
	}
}

func resolveStorageThreshold(parentID, originID string, current decimal.Decimal, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertStorageBack,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("system %s storage usage back to normal, currently at %s%%", originID, current.String()),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		Value:      current.String(),
		MetricCode: "storage_use_percentage",
	}
}

func raiseSystemIsDown(parentID, originID string, severity alerting.Severity, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertWentDown,
		Severity:   severity,
		Message:    fmt.Sprintf(alerting.ErrSystemIsDown.Message(), originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func stillDownSystem(parentID, originID string, severity alerting.Severity, durationSecs float64, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertStillDown,
		Severity:   severity,
		Message:    fmt.Sprintf("system %s has been unreachable for %.0f seconds", originID, durationSecs),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func backUpSystem(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertBackUp,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("system %s is now accessible again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "is_down",
	}
}

func raiseMetricNotFound(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertMetricNotFound,
		Severity:   alerting.SeverityError,
		Message:    fmt.Sprintf(alerting.ErrMetricNotFound.Message(), "system metric", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "metric_not_found",
	}
}

func resolveMetricFound(parentID, originID string, timestamp float64) alerting.Alert {
	return alerting.Alert{
		AlertCode:  systemAlertMetricFound,
		Severity:   alerting.SeverityInfo,
		Message:    fmt.Sprintf("system %s metrics are being reported normally again", originID),
		Timestamp:  timestamp,
		ParentID:   parentID,
		OriginID:   originID,
		MetricCode: "metric_not_found",
	}
}
