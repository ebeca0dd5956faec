package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskLimiterCanDo(t *testing.T) {
	base := time.Now()
	l := NewTaskLimiter(time.Minute)

	assert.True(t, l.CanDo(base), "never having run admits immediately")

	l.DidTask(base)
	assert.False(t, l.CanDo(base.Add(30*time.Second)))
	assert.True(t, l.CanDo(base.Add(time.Minute)), "interval boundary is inclusive")
}

func TestTaskLimiterReset(t *testing.T) {
	base := time.Now()
	l := NewTaskLimiter(time.Minute)

	l.DidTask(base)
	l.Reset()

	assert.True(t, l.CanDo(base))
}

func TestDisabledTaskLimiterNeverAdmits(t *testing.T) {
	base := time.Now()
	l := NewDisabledTaskLimiter()

	assert.False(t, l.CanDo(base))
	l.DidTask(base)
	assert.False(t, l.CanDo(base.Add(24*time.Hour)))
}
