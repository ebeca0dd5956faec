package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestThresholdConfigEqual(t *testing.T) {
	base := ThresholdConfig{
		Enabled:           true,
		WarningEnabled:    true,
		CriticalEnabled:   true,
		WarningThreshold:  decimal.NewFromInt(10),
		CriticalThreshold: decimal.NewFromInt(20),
	}
	same := base
	same.WarningThreshold = decimal.NewFromInt(10)

	assert.True(t, base.Equal(same))

	different := base
	different.CriticalThreshold = decimal.NewFromInt(30)
	assert.False(t, base.Equal(different))
}
