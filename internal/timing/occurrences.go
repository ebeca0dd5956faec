package timing

import "time"

// OccurrencesInPeriodTracker counts timestamped occurrences that fall
// within a trailing window. Entries older than the window are pruned on
// every read, so a quiet period implicitly decays the count without any
// explicit reset call.
type OccurrencesInPeriodTracker struct {
	period      time.Duration
	occurrences []time.Time
}

// NewOccurrencesInPeriodTracker returns a tracker over the given window.
func NewOccurrencesInPeriodTracker(period time.Duration) *OccurrencesInPeriodTracker {
	return &OccurrencesInPeriodTracker{period: period}
}

// AddOccurrence appends a timestamp to the tracked set.
func (o *OccurrencesInPeriodTracker) AddOccurrence(now time.Time) {
	o.occurrences = append(o.occurrences, now)
}

// NOccurrences prunes entries older than now-period and returns the count
// of what remains.
func (o *OccurrencesInPeriodTracker) NOccurrences(now time.Time) int {
	o.prune(now)
	return len(o.occurrences)
}

func (o *OccurrencesInPeriodTracker) prune(now time.Time) {
	cutoff := now.Add(-o.period)
	kept := o.occurrences[:0]
	for _, ts := range o.occurrences {
		if !ts.Before(cutoff) {
			kept = append(kept, ts)
		}
	}
	o.occurrences = kept
}

// Reset discards every tracked occurrence.
func (o *OccurrencesInPeriodTracker) Reset() {
	o.occurrences = nil
}
