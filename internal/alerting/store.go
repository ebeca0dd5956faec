package alerting

import (
	"fmt"
	"sync"

	"github.com/simplyvc/panic-alerter/internal/config"
)

// monitorableKey identifies one alerting record: a chain's parent id plus
// the id of the node/repo/system within it.
type monitorableKey struct {
	parentID     string
	monitorableID string
}

// Store is the in-memory map of alerting records described in SPEC_FULL.md
// §4.2, keyed by (parent_id, monitorable_id). It resets on process restart
// by construction: there is no persistence layer behind it.
type Store struct {
	mu      sync.RWMutex
	records map[monitorableKey]*Record
	configs map[monitorableKey]map[string]config.ThresholdConfig
}

// NewStore returns an empty alerting state store.
func NewStore() *Store {
	return &Store{
		records: make(map[monitorableKey]*Record),
		configs: make(map[monitorableKey]map[string]config.ThresholdConfig),
	}
}

// CreateState creates the record for (parentID, monitorableID), seeded from
// thresholds (one ThresholdConfig per metric code), if one does not already
// exist. Re-invoking with an identical threshold config is a no-op
// (idempotent creation); re-invoking with a changed config replaces the
// record, since live reconfiguration of an individual record is out of
// scope (§5 "Config change").
func (s *Store) CreateState(parentID, monitorableID string, thresholds map[string]config.ThresholdConfig) {
	key := monitorableKey{parentID, monitorableID}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.configs[key]
	if ok && sameThresholds(existing, thresholds) {
		return
	}

	s.records[key] = NewRecord()
	s.configs[key] = thresholds
}

// RemoveState destroys the record for (parentID, monitorableID). Called
// when configuration removes the monitorable or the whole chain.
func (s *Store) RemoveState(parentID, monitorableID string) {
	key := monitorableKey{parentID, monitorableID}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	delete(s.configs, key)
}

// Get returns the record for (parentID, monitorableID). It panics if no
// record exists, per §7's "Propagation policy": a caller asking the factory
// to classify for a monitorable it never created a record for is a
// programming error, the one case the factory is permitted to raise.
func (s *Store) Get(parentID, monitorableID string) *Record {
	key := monitorableKey{parentID, monitorableID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[key]
	if !ok {
		panic(fmt.Sprintf("alerting: no record for parent=%s monitorable=%s; CreateState was never called", parentID, monitorableID))
	}
	return rec
}

// Has reports whether a record exists without panicking.
func (s *Store) Has(parentID, monitorableID string) bool {
	key := monitorableKey{parentID, monitorableID}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.records[key]
	return ok
}

func sameThresholds(a, b map[string]config.ThresholdConfig) bool {
	if len(a) != len(b) {
		return false
	}
	for metric, cfg := range a {
		other, ok := b[metric]
		if !ok || !cfg.Equal(other) {
			return false
		}
	}
	return true
}
