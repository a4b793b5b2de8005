package eventbus

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"multilabel-go/core/event"
)

// subscription represents a single event subscription.
type subscription struct {
	id        string
	handler   EventHandler
	eventName string // Empty string means subscribe to all events
}

// syncEventBus delivers events inline on the publishing goroutine.
type syncEventBus struct {
	subscriptions []*subscription
	mu            sync.RWMutex
	closed        atomic.Bool
	nextID        atomic.Uint64
	logger        *slog.Logger
}

// New creates a new synchronous EventBus. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) EventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &syncEventBus{logger: logger}
}

// Publish delivers an event to all matching subscribers.
func (b *syncEventBus) Publish(e event.Event) {
	if b.closed.Load() {
		return
	}

	b.mu.RLock()
	// Copy so handlers may subscribe, unsubscribe or publish re-entrantly
	subs := make([]*subscription, len(b.subscriptions))
	copy(subs, b.subscriptions)
	b.mu.RUnlock()

	for _, sub := range subs {
		if sub.eventName != "" && sub.eventName != e.EventName() {
			continue
		}
		b.deliver(sub, e)
	}
}

// deliver calls one handler, recovering from panics so other subscribers still run.
func (b *syncEventBus) deliver(sub *subscription, e event.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				"subscription", sub.id, "event", e.EventName(), "panic", fmt.Sprint(r))
		}
	}()
	sub.handler(e)
}

// Subscribe subscribes to all events.
func (b *syncEventBus) Subscribe(handler EventHandler) string {
	return b.subscribe("", handler)
}

// SubscribeEvent subscribes to events with a specific name.
func (b *syncEventBus) SubscribeEvent(name string, handler EventHandler) string {
	return b.subscribe(name, handler)
}

func (b *syncEventBus) subscribe(eventName string, handler EventHandler) string {
	id := fmt.Sprintf("sub-%d", b.nextID.Add(1))

	b.mu.Lock()
	b.subscriptions = append(b.subscriptions, &subscription{
		id:        id,
		handler:   handler,
		eventName: eventName,
	})
	b.mu.Unlock()

	return id
}

// Unsubscribe removes a subscription by its ID.
func (b *syncEventBus) Unsubscribe(subscriptionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, sub := range b.subscriptions {
		if sub.id == subscriptionID {
			b.subscriptions = append(b.subscriptions[:i:i], b.subscriptions[i+1:]...)
			return
		}
	}
}

// Close shuts down the event bus.
func (b *syncEventBus) Close() {
	if b.closed.Swap(true) {
		return // Already closed
	}

	b.mu.Lock()
	b.subscriptions = nil
	b.mu.Unlock()
}
