package alerter

import (
	"context"

	"go.uber.org/zap"

	"github.com/simplyvc/panic-alerter/internal/alerting"
	"github.com/simplyvc/panic-alerter/internal/bus"
	"github.com/simplyvc/panic-alerter/internal/metrics"
)

// Classifier turns one decoded Envelope into zero or more alerts. Each
// concrete subsystem (chainlink.go, system.go, github.go) supplies its own
// Classifier, closing over an *alerting.Factory, an *alerting.Store, and a
// *Transformer.
type Classifier func(ctx context.Context, env Envelope) ([]alerting.Alert, error)

// Alerter is the generic subscribe-classify-publish loop of
// SPEC_FULL.md §2 item 5: it owns no domain knowledge itself, only the
// bus plumbing and the ack-after-publish-or-enqueue discipline of §5.
type Alerter struct {
	name         string
	bus          bus.Bus
	publisher    *bus.Publisher
	logger       *zap.Logger
	inputSubject string
	alertSubject string
	classify     Classifier
}

// NewAlerter builds an Alerter that subscribes on inputSubject and
// publishes produced alerts on alertSubject.
func NewAlerter(name string, b bus.Bus, publisher *bus.Publisher, logger *zap.Logger, inputSubject, alertSubject string, classify Classifier) *Alerter {
	return &Alerter{
		name:         name,
		bus:          b,
		publisher:    publisher,
		logger:       logger,
		inputSubject: inputSubject,
		alertSubject: alertSubject,
		classify:     classify,
	}
}

// Run subscribes and blocks until ctx is cancelled, at which point the
// subscription is torn down. Per SPEC_FULL.md §5, a config-driven restart
// is expressed by the caller cancelling ctx and constructing a fresh
// Alerter (and a fresh alerting.Store) rather than by mutating this one.
func (a *Alerter) Run(ctx context.Context) error {
	unsubscribe, err := a.bus.Subscribe(ctx, a.inputSubject, a.handle(ctx))
	if err != nil {
		return err
	}
	defer unsubscribe()

	<-ctx.Done()
	return nil
}

func (a *Alerter) handle(ctx context.Context) bus.Handler {
	return func(msg bus.Message) {
		defer msg.Ack()
		// §7 "Unexpected exception during processing": a malformed record
		// state (e.g. Store.Get for a monitorable whose state was removed by
		// a concurrent config reload, per §5 "Config change") must not crash
		// the process. Recovering here logs and leaves the delivery Ack'd
		// by the defer above, with the Record untouched since the panic
		// unwinds before any mutation this message would have made.
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("alerter: recovered from panic while processing message",
					zap.String("alerter", a.name), zap.Any("panic", r), zap.Stack("stack"))
			}
		}()

		env, err := Decode(msg.Data)
		if err != nil {
			a.logger.Error("alerter: malformed envelope, dropping",
				zap.String("alerter", a.name), zap.Error(err))
			return
		}

		alerts, err := a.classify(ctx, env)
		if err != nil {
			a.logger.Error("alerter: classify failed",
				zap.String("alerter", a.name), zap.Error(err))
			metrics.ClassifyErrorsTotal.WithLabelValues(a.name).Inc()
			return
		}

		for _, alert := range alerts {
			metrics.AlertsClassifiedTotal.WithLabelValues(a.name, string(alert.Severity)).Inc()

			data, err := EncodeAlert(alert)
			if err != nil {
				a.logger.Error("alerter: encode alert failed",
					zap.String("alerter", a.name), zap.Error(err))
				continue
			}
			if err := a.publisher.Enqueue(ctx, a.alertSubject, data); err != nil {
				a.logger.Error("alerter: enqueue alert failed",
					zap.String("alerter", a.name), zap.Error(err))
			}
		}
	}
}
