package bus

import (
	"context"
	"strings"
	"sync"
)

type subscription struct {
	id      int
	pattern string
	handler Handler
}

// Memory is an in-process Bus double used by internal/alerter's tests,
// grounded on the teacher's internal/market mock transport pattern of
// giving an external dependency an in-package fake rather than a generated
// mock. Subject matching supports the single "*" wildcard token NATS uses
// (one token per "*", no partial-token matches), the only wildcard shape
// the alerter subsystems rely on (e.g. "alert.*").
type Memory struct {
	mu     sync.Mutex
	subs   []subscription
	nextID int
	// Published records every call to Publish, for assertions in tests.
	Published []Message
}

// NewMemory returns an empty in-memory bus.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Publish(_ context.Context, subject string, data []byte) error {
	m.mu.Lock()
	var handlers []Handler
	for _, s := range m.subs {
		if subjectMatches(s.pattern, subject) {
			handlers = append(handlers, s.handler)
		}
	}
	m.Published = append(m.Published, Message{Subject: subject, Data: data})
	m.mu.Unlock()

	for _, h := range handlers {
		h(Message{Subject: subject, Data: data, Ack: func() {}})
	}
	return nil
}

func (m *Memory) Subscribe(_ context.Context, subject string, handler Handler) (func() error, error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs = append(m.subs, subscription{id: id, pattern: subject, handler: handler})
	m.mu.Unlock()

	return func() error {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i], m.subs[i+1:]...)
				break
			}
		}
		return nil
	}, nil
}

func (m *Memory) Close() error { return nil }

func subjectMatches(pattern, subject string) bool {
	pTokens := strings.Split(pattern, ".")
	sTokens := strings.Split(subject, ".")
	if len(pTokens) != len(sTokens) {
		return false
	}
	for i, tok := range pTokens {
		if tok != "*" && tok != sTokens[i] {
			return false
		}
	}
	return true
}
