package alerter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/alerting"
	"github.com/simplyvc/panic-alerter/internal/config"
)

// SystemObservation is the "data" payload on transformed_data.system
// results: CPU/RAM/storage usage generalise directly onto the teacher's
// volume-surge / market-cap / drawdown / position-size threshold checks in
// internal/monitoring/alerts.go — the same "percentage against a
// configured limit" shape, just a different domain.
type SystemObservation struct {
	CPUUsePercentage     decimal.Decimal `json:"cpu_use_percentage"`
	RAMUsePercentage     decimal.Decimal `json:"ram_use_percentage"`
	StorageUsePercentage decimal.Decimal `json:"storage_use_percentage"`
	IsDown               bool            `json:"is_down"`
}

// SystemClassifier bundles what NewSystemClassifier's Classifier closure
// needs.
type SystemClassifier struct {
	Factory    *alerting.Factory
	Store      *alerting.Store
	Thresholds map[string]config.ThresholdConfig
}

// NewSystemClassifier builds the Classifier for the system alerter named in
// SPEC_FULL.md §4.4: CPU/RAM/storage threshold alerts via ClassifyThreshold,
// plus a downtime check for the system itself going unreachable.
func NewSystemClassifier(c SystemClassifier) Classifier {
	return func(ctx context.Context, env Envelope) ([]alerting.Alert, error) {
		if env.Error != nil {
			return c.classifyError(env.Error), nil
		}

		var obs SystemObservation
		if err := json.Unmarshal(env.Result.Data, &obs); err != nil {
			return nil, fmt.Errorf("system: decode observation: %w", err)
		}

		parentID := env.Result.MetaData.ParentID
		systemID := env.Result.MetaData.MonitorName
		timestamp := env.Result.MetaData.Timestamp
		rec := c.Store.Get(parentID, systemID)

		var alerts []alerting.Alert

		alerts = append(alerts, c.Factory.ClassifyThreshold(rec, c.Thresholds["cpu_use_percentage"], obs.CPUUsePercentage,
			raiseCPUThreshold, resolveCPUThreshold, parentID, systemID, "cpu_use_percentage", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyThreshold(rec, c.Thresholds["ram_use_percentage"], obs.RAMUsePercentage,
			raiseRAMThreshold, resolveRAMThreshold, parentID, systemID, "ram_use_percentage", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyThreshold(rec, c.Thresholds["storage_use_percentage"], obs.StorageUsePercentage,
			raiseStorageThreshold, resolveStorageThreshold, parentID, systemID, "storage_use_percentage", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyDowntime(rec, c.Thresholds["is_down"],
			downtimeMarker(rec, "is_down", obs.IsDown, timestamp),
			raiseSystemIsDown, stillDownSystem, backUpSystem, parentID, systemID, "is_down", timestamp)...)

		return alerts, nil
	}
}

func (c SystemClassifier) classifyError(errPayload *ErrorPayload) []alerting.Alert {
	parentID := errPayload.MetaData.ParentID
	systemID := errPayload.MetaData.MonitorName
	if !c.Store.Has(parentID, systemID) {
		return nil
	}
	rec := c.Store.Get(parentID, systemID)

	code := alerting.ErrorCode(errPayload.Code)
	target := alerting.ErrMetricNotFound
	return c.Factory.ClassifyErrorCode(rec, &code, target, raiseMetricNotFound, resolveMetricFound,
		parentID, systemID, "metric_not_found", errPayload.MetaData.Timestamp)
}
