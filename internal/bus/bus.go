package bus

import "context"

// Message is one payload delivered on a subject, paired with the Ack
// callback the subscriber must invoke once it has durably handled (or
// discarded) the delivery — "ack only after publish confirm or enqueue",
// per SPEC_FULL.md §5.
type Message struct {
	Subject string
	Data    []byte
	Ack     func()
}

// Handler processes one delivered Message.
type Handler func(msg Message)

// Bus is the publish/subscribe transport every alerter subsystem is built
// against. Production code talks to nats.go's implementation; tests talk to
// memory.go's in-process double.
type Bus interface {
	// Publish sends data on subject. It returns once the transport has
	// confirmed (or durably queued) the send.
	Publish(ctx context.Context, subject string, data []byte) error

	// Subscribe registers handler for subject (which may contain NATS
	// wildcard tokens, e.g. "alert.*") and returns a function that cancels
	// the subscription.
	Subscribe(ctx context.Context, subject string, handler Handler) (unsubscribe func() error, err error)

	// Close releases the underlying connection.
	Close() error
}
