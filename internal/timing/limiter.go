package timing

import "time"

// TaskLimiter gates an action so it may run at most once per configured
// interval. A zero-value interval combined with Disabled makes the limiter
// never admit, which is how critical_repeat_enabled=false is expressed.
type TaskLimiter struct {
	interval time.Duration
	disabled bool
	done     bool
	lastDone time.Time
}

// NewTaskLimiter returns a limiter that admits an action once every interval.
func NewTaskLimiter(interval time.Duration) *TaskLimiter {
	return &TaskLimiter{interval: interval}
}

// NewDisabledTaskLimiter returns a limiter whose CanDo always reports false,
// used to disable critical-repeat behavior entirely.
func NewDisabledTaskLimiter() *TaskLimiter {
	return &TaskLimiter{disabled: true}
}

// CanDo reports whether the action may run: true if disabled is false and
// either the action has never run or at least interval has passed since.
func (l *TaskLimiter) CanDo(now time.Time) bool {
	if l.disabled {
		return false
	}
	if !l.done {
		return true
	}
	return now.Sub(l.lastDone) >= l.interval
}

// DidTask stamps the last-done instant as now.
func (l *TaskLimiter) DidTask(now time.Time) {
	l.done = true
	l.lastDone = now
}

// Reset clears the last-done stamp.
func (l *TaskLimiter) Reset() {
	l.done = false
	l.lastDone = time.Time{}
}
