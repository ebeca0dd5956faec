// Package kvstore implements the prior-metric persistence layer of
// SPEC_FULL.md §6 "Persisted state layout": an opaque small-JSON-blob value
// stored under a namespaced composite key, so a data transformer can hand
// the alerting factory a (previous, current) pair without the factory ever
// touching storage itself.
package kvstore

import (
	"context"
	"fmt"
)

// Store is the prior-metric KV store interface. Production code uses
// Redis's implementation; tests use the in-memory double.
type Store interface {
	// Get returns the raw JSON blob stored at key, and false if absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the raw JSON blob at key, overwriting any prior value.
	Set(ctx context.Context, key string, value []byte) error
}

// Key builds the namespaced composite key described in §6:
// "<unique_id>:<chain>:<monitorable>:<metric>".
func Key(uniqueID, chain, monitorable, metric string) string {
	return fmt.Sprintf("%s:%s:%s:%s", uniqueID, chain, monitorable, metric)
}
