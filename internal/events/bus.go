// Package events provides the progress broadcast bus for generation requests.
//
// The bus is a plain observer registry: subscribers come and go at any time,
// publishers never block on a slow consumer, and a failed delivery removes
// only the failing subscriber. There is no persistence and no replay; events
// describe in-flight work and are worthless once the request completes.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Level classifies a progress event.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Event is a single progress notification.
type Event struct {
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Subscription is a registered listener. Receive events from C and call
// Close when done; Close is idempotent and safe to call concurrently with
// Publish.
type Subscription struct {
	id  string
	bus *Bus

	// C delivers events. It is closed when the subscription is removed.
	C <-chan Event

	ch chan Event
}

// ID returns the subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Close unsubscribes the listener and closes C.
func (s *Subscription) Close() {
	s.bus.remove(s.id)
}

// Bus broadcasts events to all current subscribers.
type Bus struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]*Subscription)}
}

// Subscribe registers a listener with the given channel buffer and returns
// its subscription handle.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	sub := &Subscription{
		id:  uuid.New().String(),
		bus: b,
		C:   ch,
		ch:  ch,
	}

	b.mu.Lock()
	b.subs[sub.id] = sub
	b.mu.Unlock()

	return sub
}

// Publish broadcasts an event to all current subscribers. Delivery is
// non-blocking: a subscriber whose buffer is full is dropped from the bus
// rather than stalling the publisher or the remaining subscribers. Removal
// happens after the delivery loop so iteration never observes a mutation.
func (b *Bus) Publish(level Level, message string, data map[string]any) {
	ev := Event{
		Level:     level,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}

	b.mu.Lock()
	snapshot := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		snapshot = append(snapshot, sub)
	}
	b.mu.Unlock()

	var dead []string
	for _, sub := range snapshot {
		select {
		case sub.ch <- ev:
		default:
			dead = append(dead, sub.id)
		}
	}

	for _, id := range dead {
		b.remove(id)
	}
}

// SubscriberCount returns the number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// remove deletes a subscription and closes its channel exactly once.
func (b *Bus) remove(id string) {
	b.mu.Lock()
	sub, ok := b.subs[id]
	if ok {
		delete(b.subs, id)
	}
	b.mu.Unlock()

	if ok {
		close(sub.ch)
	}
}
