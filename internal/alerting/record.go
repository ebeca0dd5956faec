package alerting

import (
	"time"

	"github.com/simplyvc/panic-alerter/internal/timing"
)

// Record is the per-monitorable alerting state described in SPEC_FULL.md
// §3: the semantic containers every protocol reads and mutates, keyed by
// metric code. It is created lazily from config on first observation and
// mutated solely by Factory methods.
type Record struct {
	WarningSent     map[string]bool
	CriticalSent    map[string]bool
	ErrorSent       map[string]bool
	AnySeveritySent map[string]bool

	WarningWindowTimer  map[string]*timing.TaskTracker
	CriticalWindowTimer map[string]*timing.TaskTracker

	CriticalRepeatTimer map[string]*timing.TaskLimiter

	WarningOccurrences  map[string]*timing.OccurrencesInPeriodTracker
	CriticalOccurrences map[string]*timing.OccurrencesInPeriodTracker

	// Optional typed scalars carried by specific monitorable kinds.
	CurrentHeight *int64
	IsValidator   *bool
	WentDownAt    map[string]*time.Time
	LastErrorCode map[string]*int

	NoChangeTracker map[string]*noChangeTrackers
}

// noChangeTrackers bundles the warning/critical trackers the no-change
// protocol (4.3.5) needs per metric; kept distinct from the generic window
// timer maps above because no-change semantics reset on *any* observed
// change, not on crossing back below a threshold.
type noChangeTrackers struct {
	warning  *timing.TaskTracker
	critical *timing.TaskTracker
	repeat   *timing.TaskLimiter
}

// NewRecord returns an empty Record with every map initialised, ready for
// Factory methods to populate lazily per metric code as they first see it.
func NewRecord() *Record {
	return &Record{
		WarningSent:         make(map[string]bool),
		CriticalSent:        make(map[string]bool),
		ErrorSent:           make(map[string]bool),
		AnySeveritySent:     make(map[string]bool),
		WarningWindowTimer:  make(map[string]*timing.TaskTracker),
		CriticalWindowTimer: make(map[string]*timing.TaskTracker),
		CriticalRepeatTimer: make(map[string]*timing.TaskLimiter),
		WarningOccurrences:  make(map[string]*timing.OccurrencesInPeriodTracker),
		CriticalOccurrences: make(map[string]*timing.OccurrencesInPeriodTracker),
		WentDownAt:          make(map[string]*time.Time),
		LastErrorCode:       make(map[string]*int),
		NoChangeTracker:     make(map[string]*noChangeTrackers),
	}
}
