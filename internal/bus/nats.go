package bus

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/metrics"
)

// NATSBus is the production Bus, standing in for the spec's topic-exchange
// bus (SPEC_FULL.md §6 "Bus transport"). Dots in a subject carry the same
// routing-key meaning the original RabbitMQ topic exchange gave them.
type NATSBus struct {
	conn   *nats.Conn
	logger *zap.Logger
}

// Dial connects to url (falling back to nats.DefaultURL when empty),
// retrying with exponential backoff (teacher idiom: this repo already
// carries github.com/cenkalti/backoff/v4 transitively; used directly here
// rather than hand-rolling a retry loop) until ctx is done.
func Dial(ctx context.Context, url string, logger *zap.Logger) (*NATSBus, error) {
	if url == "" {
		url = nats.DefaultURL
	}

	var conn *nats.Conn
	connect := func() error {
		c, err := nats.Connect(url,
			nats.MaxReconnects(-1),
			nats.ReconnectWait(2*time.Second),
			nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
				if err != nil {
					logger.Warn("bus disconnected", zap.Error(err))
				}
			}),
			nats.ReconnectHandler(func(_ *nats.Conn) {
				logger.Info("bus reconnected", zap.String("url", url))
				metrics.BusReconnectsTotal.Inc()
			}),
		)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, fmt.Errorf("bus: dial %s: %w", url, err)
	}

	return &NATSBus{conn: conn, logger: logger}, nil
}

func (b *NATSBus) Publish(_ context.Context, subject string, data []byte) error {
	if err := b.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("bus: publish %s: %w", subject, err)
	}
	return nil
}

func (b *NATSBus) Subscribe(_ context.Context, subject string, handler Handler) (func() error, error) {
	sub, err := b.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(Message{
			Subject: msg.Subject,
			Data:    msg.Data,
			Ack: func() {
				// NATS core pub/sub has no consumer-level ack; the
				// delivery is already durable from the publisher's
				// perspective once Publish returned. JetStream-backed
				// subjects would Ack here instead.
			},
		})
	})
	if err != nil {
		return nil, fmt.Errorf("bus: subscribe %s: %w", subject, err)
	}

	return sub.Unsubscribe, nil
}

func (b *NATSBus) Close() error {
	b.conn.Close()
	return nil
}
