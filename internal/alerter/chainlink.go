package alerter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/alerting"
	"github.com/simplyvc/panic-alerter/internal/config"
)

// ChainlinkObservation is the "data" payload on transformed_data.node.chainlink
// results: the exact metric family named in the original test suite
// (test_alerting_factory.py) — height continuity, unconfirmed-block lag,
// wallet balance, errored job runs, liveness, source liveness, and sync
// state.
type ChainlinkObservation struct {
	Height               int64           `json:"height"`
	UnconfirmedBlocks    decimal.Decimal `json:"unconfirmed_blocks"`
	Balance              decimal.Decimal `json:"balance"`
	TotalErroredJobRuns  decimal.Decimal `json:"total_errored_job_runs"`
	IsDown               bool            `json:"is_down"`
	PrometheusSourceDown bool            `json:"prometheus_source_down"`
	IsSyncing            bool            `json:"is_syncing"`
}

// ChainlinkClassifier bundles what NewChainlinkClassifier's Classifier
// closure needs: the shared factory/store/transformer, the chain this node
// belongs to (for kvstore namespacing), and the per-metric threshold table
// from that chain's config.
type ChainlinkClassifier struct {
	Factory    *alerting.Factory
	Store      *alerting.Store
	Transform  *Transformer
	Chain      string
	Thresholds map[string]config.ThresholdConfig
}

// NewChainlinkClassifier builds the Classifier exercising every protocol
// SPEC_FULL.md §4.4 names for the Chainlink node alerter.
func NewChainlinkClassifier(c ChainlinkClassifier) Classifier {
	return func(ctx context.Context, env Envelope) ([]alerting.Alert, error) {
		if env.Error != nil {
			return c.classifyError(env.Error), nil
		}

		var obs ChainlinkObservation
		if err := json.Unmarshal(env.Result.Data, &obs); err != nil {
			return nil, fmt.Errorf("chainlink: decode observation: %w", err)
		}

		parentID := env.Result.MetaData.ParentID
		nodeID := env.Result.MetaData.MonitorName
		timestamp := env.Result.MetaData.Timestamp
		rec := c.Store.Get(parentID, nodeID)

		var alerts []alerting.Alert

		currentHeight := decimal.NewFromInt(obs.Height)
		previousHeight := currentHeight
		if rec.CurrentHeight != nil {
			previousHeight = decimal.NewFromInt(*rec.CurrentHeight)
		}
		alerts = append(alerts, c.Factory.ClassifyNoChangeInValue(rec, c.Thresholds["height"], currentHeight, previousHeight,
			raiseNoChangeInHeight, resolveHeightUpdated, parentID, nodeID, "height", timestamp)...)
		height := obs.Height
		rec.CurrentHeight = &height

		alerts = append(alerts, c.Factory.ClassifyTimeWindowThreshold(rec, c.Thresholds["unconfirmed_blocks"], obs.UnconfirmedBlocks,
			raiseMaxUnconfirmedBlocks, resolveMaxUnconfirmedBlocks, parentID, nodeID, "unconfirmed_blocks", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyReverseThreshold(rec, c.Thresholds["balance"], obs.Balance,
			raiseBalanceThreshold, resolveBalanceThreshold, parentID, nodeID, "balance", timestamp)...)

		previousErrored, _, err := c.Transform.PriorThenStore(ctx, c.Chain, nodeID, "errored_job_runs", obs.TotalErroredJobRuns)
		if err != nil {
			return nil, fmt.Errorf("chainlink: prior errored job runs: %w", err)
		}
		alerts = append(alerts, c.Factory.ClassifyOccurrencesInPeriod(rec, c.Thresholds["errored_job_runs"], obs.TotalErroredJobRuns, previousErrored,
			raiseErroredJobRuns, resolveErroredJobRuns, parentID, nodeID, "errored_job_runs", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyDowntime(rec, c.Thresholds["is_down"],
			downtimeMarker(rec, "is_down", obs.IsDown, timestamp),
			raiseNodeIsDown, stillDownNode, backUpNode, parentID, nodeID, "is_down", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifySourceDowntime(rec, obs.PrometheusSourceDown,
			raisePrometheusSourceDown, backUpPrometheusSource, parentID, nodeID, "prometheus_source", timestamp)...)

		alerts = append(alerts, c.Factory.ClassifyConditionalNoRepeat(rec, obs.IsSyncing,
			raiseNodeIsSyncing, raiseNodeIsNoLongerSyncing, parentID, nodeID, "is_syncing", timestamp)...)

		return alerts, nil
	}
}

func (c ChainlinkClassifier) classifyError(errPayload *ErrorPayload) []alerting.Alert {
	parentID := errPayload.MetaData.ParentID
	nodeID := errPayload.MetaData.MonitorName
	if !c.Store.Has(parentID, nodeID) {
		return nil
	}
	rec := c.Store.Get(parentID, nodeID)

	code := alerting.ErrorCode(errPayload.Code)
	target := alerting.ErrInvalidURL
	return c.Factory.ClassifyErrorCode(rec, &code, target, raiseInvalidURL, resolveInvalidURL,
		parentID, nodeID, "invalid_url", errPayload.MetaData.Timestamp)
}

// downtimeMarker records the instant a metric was first observed down (if
// it wasn't already) and returns it, or nil once the metric recovers —
// exactly the wentDownAt contract ClassifyDowntime expects.
func downtimeMarker(rec *alerting.Record, metric string, isDown bool, timestamp float64) *time.Time {
	if !isDown {
		return nil
	}
	if existing, ok := rec.WentDownAt[metric]; ok {
		return existing
	}
	secs := int64(timestamp)
	nsec := int64((timestamp - float64(secs)) * float64(time.Second))
	down := time.Unix(secs, nsec)
	return &down
}
