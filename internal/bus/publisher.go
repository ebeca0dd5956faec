package bus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/metrics"
)

// outboundItem is one queued publish.
type outboundItem struct {
	subject string
	data    []byte
}

// Publisher is the bounded outbound queue described in SPEC_FULL.md §5: a
// slow or disconnected bus must never let an alerter's memory grow
// unbounded, so once the queue reaches Capacity the oldest EvictCount
// entries are dropped (FIFO after eviction) to make room for the newest
// publish. Eviction is logged, never silent, per the "no silent caps"
// expectation carried into every bounded structure in this module.
type Publisher struct {
	mu        sync.Mutex
	bus       Bus
	logger    *zap.Logger
	capacity  int
	evictN    int
	queue     []outboundItem
	evictions int
	subsystem string
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithEvictCount overrides the default eviction batch size of 2.
func WithEvictCount(n int) PublisherOption {
	return func(p *Publisher) {
		if n > 0 {
			p.evictN = n
		}
	}
}

// WithSubsystemLabel sets the "subsystem" label Publisher reports its
// queue-length/eviction metrics under (e.g. "chainlink-node-alerter").
func WithSubsystemLabel(name string) PublisherOption {
	return func(p *Publisher) { p.subsystem = name }
}

// NewPublisher returns a Publisher backed by underlying with room for
// capacity queued-but-unsent messages.
func NewPublisher(underlying Bus, logger *zap.Logger, capacity int, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		bus:       underlying,
		logger:    logger,
		capacity:  capacity,
		evictN:    2,
		subsystem: "unlabeled",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Enqueue attempts an immediate publish; on failure the message is queued
// for Flush to retry later, evicting the oldest entries first if the queue
// is already at capacity.
func (p *Publisher) Enqueue(ctx context.Context, subject string, data []byte) error {
	if err := p.bus.Publish(ctx, subject, data); err == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) >= p.capacity {
		evict := p.evictN
		if evict > len(p.queue) {
			evict = len(p.queue)
		}
		p.evictions += evict
		p.logger.Warn("publisher queue full, evicting oldest entries",
			zap.Int("evicted", evict), zap.Int("capacity", p.capacity))
		p.queue = p.queue[evict:]
		metrics.PublishEvictionsTotal.WithLabelValues(p.subsystem).Add(float64(evict))
	}

	p.queue = append(p.queue, outboundItem{subject: subject, data: data})
	metrics.PublishQueueLength.WithLabelValues(p.subsystem).Set(float64(len(p.queue)))
	return nil
}

// Flush retries every queued publish in FIFO order, stopping at the first
// failure (the bus is presumably still down) and leaving the remainder
// queued for the next Flush.
func (p *Publisher) Flush(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := 0
	for ; i < len(p.queue); i++ {
		item := p.queue[i]
		if err := p.bus.Publish(ctx, item.subject, item.data); err != nil {
			break
		}
	}
	p.queue = p.queue[i:]
	metrics.PublishQueueLength.WithLabelValues(p.subsystem).Set(float64(len(p.queue)))
	return nil
}

// QueueLen reports how many messages are currently queued for retry.
func (p *Publisher) QueueLen() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue)
}

// Evictions reports the cumulative count of evicted queue entries.
func (p *Publisher) Evictions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.evictions
}
