// Package pubsub provides a generic publish/subscribe event system used to
// fan state changes out to bubbletea models and other observers.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// ChangedEvent reports a new value of some observed state.
	ChangedEvent EventType = "changed"
	// LoggedEvent carries a formatted log entry.
	LoggedEvent EventType = "logged"
	// InvalidatedEvent signals that cached data must be reloaded.
	InvalidatedEvent EventType = "invalidated"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
