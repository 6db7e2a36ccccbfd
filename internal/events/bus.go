package events

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Event is a single notification delivered to subscribers of its type.
type Event struct {
	Type    string
	Payload map[string]any
}

// Handler reacts to a published event. Dispatch is synchronous: Publish does
// not return until every subscriber has run, which gives callers a cheap
// ordering guarantee between an action and the reactions it triggers.
type Handler func(ctx context.Context, event Event)

// Bus is an in-process publish/subscribe channel for cart notifications.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	log      *zap.Logger
}

func NewBus(log *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		log:      log.Named("events.bus"),
	}
}

// Subscribe registers a handler for an event type.
func (b *Bus) Subscribe(eventType string, handler Handler) error {
	if b == nil {
		return errors.New("bus_unavailable")
	}
	name := strings.TrimSpace(eventType)
	if name == "" {
		return errors.New("missing_event_type")
	}
	if handler == nil {
		return errors.New("missing_handler")
	}
	b.mu.Lock()
	b.handlers[name] = append(b.handlers[name], handler)
	b.mu.Unlock()
	return nil
}

// Publish delivers the event to all current subscribers of its type, in
// subscription order.
func (b *Bus) Publish(ctx context.Context, event Event) error {
	if b == nil {
		return errors.New("bus_unavailable")
	}
	name := strings.TrimSpace(event.Type)
	if name == "" {
		return errors.New("missing_event_type")
	}

	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[name]))
	copy(handlers, b.handlers[name])
	b.mu.RUnlock()

	if len(handlers) == 0 {
		b.log.Debug("event with no subscribers", zap.String("event_type", name))
		return nil
	}
	for _, handler := range handlers {
		handler(ctx, Event{Type: name, Payload: event.Payload})
	}
	return nil
}
