// Package timing provides the reusable timing primitives that every
// alerting-factory protocol is built on: a started-at tracker, a
// once-per-interval limiter, and a sliding occurrences-in-period counter.
package timing

import "time"

// TaskTracker records when a condition first became true and reports
// whether a configured duration has elapsed since. Starting an
// already-started tracker is a no-op, so repeated observations of the same
// ongoing condition never push the start instant forward.
type TaskTracker struct {
	duration time.Duration
	started  bool
	startAt  time.Time
}

// NewTaskTracker returns a tracker that considers its duration elapsed once
// now-startAt >= duration.
func NewTaskTracker(duration time.Duration) *TaskTracker {
	return &TaskTracker{duration: duration}
}

// Start marks the tracker started at now, unless it is already started.
func (t *TaskTracker) Start(now time.Time) {
	if t.started {
		return
	}
	t.started = true
	t.startAt = now
}

// Started reports whether the tracker currently has a start instant.
func (t *TaskTracker) Started() bool {
	return t.started
}

// StartedAt returns the instant the tracker was started. Only meaningful
// when Started reports true.
func (t *TaskTracker) StartedAt() time.Time {
	return t.startAt
}

// DidElapse reports whether the tracker is started and now-startAt is at
// least the configured duration. Elapsed is inclusive of the boundary.
func (t *TaskTracker) DidElapse(now time.Time) bool {
	if !t.started {
		return false
	}
	return now.Sub(t.startAt) >= t.duration
}

// Reset clears the started flag so the next Start begins a fresh window.
func (t *TaskTracker) Reset() {
	t.started = false
	t.startAt = time.Time{}
}
