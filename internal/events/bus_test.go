package events

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	bus := NewBus(zap.NewNop())

	var order []string
	for _, name := range []string{"first", "second"} {
		name := name
		if err := bus.Subscribe(EventCartUpdated, func(context.Context, Event) {
			order = append(order, name)
		}); err != nil {
			t.Fatalf("subscribe: %v", err)
		}
	}

	if err := bus.Publish(context.Background(), Event{Type: EventCartUpdated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestPublishIsSynchronous(t *testing.T) {
	bus := NewBus(zap.NewNop())

	ran := false
	if err := bus.Subscribe(EventCartItemsAdded, func(context.Context, Event) {
		ran = true
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.Publish(context.Background(), Event{
		Type:    EventCartItemsAdded,
		Payload: ItemsAddedPayload{SessionID: "s1", PlanType: "double", ItemCount: 2}.ToMap(),
	}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !ran {
		t.Fatalf("handler must have run before Publish returned")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(zap.NewNop())
	if err := bus.Publish(context.Background(), Event{Type: EventCartUpdated}); err != nil {
		t.Fatalf("expected publish without subscribers to succeed, got %v", err)
	}
}

func TestSubscribeValidation(t *testing.T) {
	bus := NewBus(zap.NewNop())
	if err := bus.Subscribe("", func(context.Context, Event) {}); err == nil {
		t.Fatalf("expected error for empty event type")
	}
	if err := bus.Subscribe(EventCartUpdated, nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
	if err := bus.Publish(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error for event without type")
	}
}
