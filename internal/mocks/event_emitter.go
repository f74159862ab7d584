package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/learning-tracker/internal/events"
)

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// MockEventEmitter records emitted events and returns Err from EmitEvent.
type MockEventEmitter struct {
	mu     sync.Mutex
	events []*events.Event
	Err    error
}

// EmitEvent implements events.EventEmitter.
func (m *MockEventEmitter) EmitEvent(_ context.Context, event *events.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return m.Err
}

// Events returns the events emitted so far.
func (m *MockEventEmitter) Events() []*events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.Event, len(m.events))
	copy(out, m.events)
	return out
}
