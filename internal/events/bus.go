// Package events decouples mutations from the presentation surface: ride
// services publish change events, subscribers (the CLI today) refresh
// whatever they render, without the services knowing who listens.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Kind identifies what happened.
type Kind string

const (
	RideCreated   Kind = "ride.created"
	RideUpdated   Kind = "ride.updated"
	RideCompleted Kind = "ride.completed"
	RideCancelled Kind = "ride.cancelled"
	RideDeleted   Kind = "ride.deleted"
)

// Event carries the ride and owner affected by a mutation.
type Event struct {
	Kind   Kind
	RideID string
	UserID string
}

// Handler receives published events. Handlers run synchronously on the
// publishing goroutine and must not block.
type Handler func(Event)

// Bus is an ordered observer list. Subscribers are notified in subscription
// order.
type Bus struct {
	mu   sync.Mutex
	subs []subscription
}

type subscription struct {
	id      string
	handler Handler
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns an opaque handle for Unsubscribe.
func (b *Bus) Subscribe(h Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := uuid.NewString()
	b.subs = append(b.subs, subscription{id: id, handler: h})
	return id
}

// Unsubscribe removes the subscription with the given handle. Unknown
// handles are ignored.
func (b *Bus) Unsubscribe(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every subscriber in subscription order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	handlers := make([]Handler, len(b.subs))
	for i, s := range b.subs {
		handlers[i] = s.handler
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(e)
	}
}
