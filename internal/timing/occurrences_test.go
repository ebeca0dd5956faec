package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOccurrencesInPeriodTrackerCounts(t *testing.T) {
	base := time.Now()
	o := NewOccurrencesInPeriodTracker(10 * time.Second)

	o.AddOccurrence(base)
	o.AddOccurrence(base.Add(2 * time.Second))
	o.AddOccurrence(base.Add(4 * time.Second))

	assert.Equal(t, 3, o.NOccurrences(base.Add(4*time.Second)))
}

func TestOccurrencesInPeriodTrackerDecaysWithTime(t *testing.T) {
	base := time.Now()
	o := NewOccurrencesInPeriodTracker(5 * time.Second)

	o.AddOccurrence(base)
	o.AddOccurrence(base.Add(time.Second))

	assert.Equal(t, 2, o.NOccurrences(base.Add(5*time.Second)))
	assert.Equal(t, 1, o.NOccurrences(base.Add(6*time.Second)), "oldest occurrence prunes out")
	assert.Equal(t, 0, o.NOccurrences(base.Add(7*time.Second)))
}

func TestOccurrencesInPeriodTrackerReset(t *testing.T) {
	base := time.Now()
	o := NewOccurrencesInPeriodTracker(time.Minute)

	o.AddOccurrence(base)
	o.Reset()

	assert.Equal(t, 0, o.NOccurrences(base))
}

func TestOccurrencesInPeriodTrackerMonotonicUnderReplay(t *testing.T) {
	base := time.Now()
	o := NewOccurrencesInPeriodTracker(10 * time.Second)

	stream := []time.Duration{0, time.Second, 2 * time.Second, 3 * time.Second}
	for _, d := range stream {
		o.AddOccurrence(base.Add(d))
	}

	firstRead := o.NOccurrences(base.Add(3 * time.Second))
	secondRead := o.NOccurrences(base.Add(3 * time.Second))
	assert.Equal(t, firstRead, secondRead)
	assert.Equal(t, len(stream), firstRead)
}
