package alerter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simplyvc/panic-alerter/internal/kvstore"
)

// storedValue is the opaque small-JSON-blob shape persisted per metric,
// per SPEC_FULL.md §6 "Persisted state layout".
type storedValue struct {
	Value string `json:"value"`
}

// Transformer resolves the "previous" value a classifier needs from the
// prior-metric KV store before handing (previous, current) to the
// alerting factory, and then persists current for the next observation.
// This keeps the factory's own contract — "prior state has already been
// resolved by the time a protocol is called" — true of every caller in
// this module, per SPEC_FULL.md §6's kvstore expansion.
type Transformer struct {
	store    kvstore.Store
	uniqueID string
}

// NewTransformer returns a Transformer backed by store, namespacing every
// key under uniqueID (the process's UNIQUE_ALERTER_IDENTIFIER).
func NewTransformer(store kvstore.Store, uniqueID string) *Transformer {
	return &Transformer{store: store, uniqueID: uniqueID}
}

// PriorThenStore returns the previously stored value for
// (chain, monitorable, metric) — zero and false if none is on record yet —
// then persists current as the new prior value.
func (t *Transformer) PriorThenStore(ctx context.Context, chain, monitorable, metric string, current decimal.Decimal) (decimal.Decimal, bool, error) {
	key := kvstore.Key(t.uniqueID, chain, monitorable, metric)

	var previous decimal.Decimal
	hasPrevious := false

	raw, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("transform: get prior %s: %w", key, err)
	}
	if ok {
		var sv storedValue
		if err := json.Unmarshal(raw, &sv); err != nil {
			return decimal.Zero, false, fmt.Errorf("transform: decode prior %s: %w", key, err)
		}
		previous, err = decimal.NewFromString(sv.Value)
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("transform: parse prior %s: %w", key, err)
		}
		hasPrevious = true
	}

	raw, err = json.Marshal(storedValue{Value: current.String()})
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("transform: encode current %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, raw); err != nil {
		return decimal.Zero, false, fmt.Errorf("transform: set current %s: %w", key, err)
	}

	return previous, hasPrevious, nil
}
