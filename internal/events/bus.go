// Package events provides an in-process publish/subscribe bus used to decouple
// domain side effects (audit logging, notifications) from the use cases that
// trigger them.
//
// Delivery contract: synchronous fan-out, best-effort. A listener error or
// panic is logged and never propagates to the publisher; publishing never
// fails. Listeners must therefore be idempotent with respect to redelivery
// and must not assume ordering across topics.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Topics published by the application.
const (
	TopicUserActivated     = "user.activated"
	TopicUserDeactivated   = "user.deactivated"
	TopicAuthReuseDetected = "auth.reuse_detected"
)

// Event carries a topic name and an arbitrary payload.
type Event struct {
	Topic      string
	Payload    map[string]any
	OccurredAt time.Time
}

// Listener handles a published event. Returned errors are logged, not propagated.
type Listener func(ctx context.Context, event Event) error

// Bus is a callback-list event publisher.
type Bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	logger    *slog.Logger
}

// NewBus creates a Bus that logs listener failures to the given logger.
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		listeners: make(map[string][]Listener),
		logger:    logger,
	}
}

// Subscribe registers a listener for a topic. Safe for concurrent use.
func (b *Bus) Subscribe(topic string, listener Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[topic] = append(b.listeners[topic], listener)
}

// Publish delivers the event to every listener of its topic, in subscription
// order. Listener errors and panics are logged and swallowed.
func (b *Bus) Publish(ctx context.Context, topic string, payload map[string]any) {
	event := Event{
		Topic:      topic,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}

	b.mu.RLock()
	listeners := make([]Listener, len(b.listeners[topic]))
	copy(listeners, b.listeners[topic])
	b.mu.RUnlock()

	for _, listener := range listeners {
		b.deliver(ctx, event, listener)
	}
}

// deliver invokes a single listener with panic recovery.
func (b *Bus) deliver(ctx context.Context, event Event, listener Listener) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event listener panicked",
				slog.String("topic", event.Topic),
				slog.Any("panic", r),
			)
		}
	}()

	if err := listener(ctx, event); err != nil {
		b.logger.Warn("event listener failed",
			slog.String("topic", event.Topic),
			slog.Any("error", err),
		)
	}
}
