// Package eventbus provides the event bus for publishing and subscribing to events.
package eventbus

import (
	"multilabel-go/core/event"
)

// EventBus is the interface for the event bus.
type EventBus interface {
	// Publish publishes an event to all subscribers.
	// Handlers run on the caller's goroutine, in subscription order,
	// before Publish returns.
	Publish(e event.Event)

	// Subscribe subscribes to all events.
	// Returns a subscription ID that can be used to unsubscribe.
	Subscribe(handler EventHandler) string

	// SubscribeEvent subscribes to events with the given EventName only.
	// Returns a subscription ID that can be used to unsubscribe.
	SubscribeEvent(name string, handler EventHandler) string

	// Unsubscribe removes a subscription by its ID.
	Unsubscribe(subscriptionID string)

	// Close drops all subscriptions.
	// After Close is called, Publish will be a no-op.
	Close()
}

// EventHandler is a function that handles an event.
type EventHandler func(e event.Event)
