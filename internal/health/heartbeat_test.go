package health

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/bus"
)

func TestHeartbeat_PublishesOnEachTick(t *testing.T) {
	m := bus.NewMemory()
	fixed := time.Unix(1000, 0)
	hb := NewHeartbeat(m, zap.NewNop(), "chainlink-alerter", bus.HeartbeatWorker, 5*time.Millisecond, func() time.Time { return fixed })

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	hb.Run(ctx)

	require.NotEmpty(t, m.Published)
	var beat Beat
	require.NoError(t, json.Unmarshal(m.Published[0].Data, &beat))
	assert.Equal(t, "chainlink-alerter", beat.ComponentName)
	assert.True(t, beat.IsAlive)
	assert.Equal(t, int64(1000), beat.Timestamp)
	assert.Equal(t, bus.HeartbeatWorker, m.Published[0].Subject)
}
