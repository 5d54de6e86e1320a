package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishDeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)
	defer a.Close()
	defer b.Close()

	bus.Publish(LevelInfo, "starting generation", map[string]any{"chars": 42})

	for _, sub := range []*Subscription{a, b} {
		select {
		case ev := <-sub.C:
			assert.Equal(t, LevelInfo, ev.Level)
			assert.Equal(t, "starting generation", ev.Message)
			assert.Equal(t, 42, ev.Data["chars"])
			assert.False(t, ev.Timestamp.IsZero())
		case <-time.After(time.Second):
			t.Fatal("expected event delivery")
		}
	}
}

func TestBus_CloseUnsubscribes(t *testing.T) {
	bus := NewBus()
	sub := bus.Subscribe(1)
	require.Equal(t, 1, bus.SubscriberCount())

	sub.Close()
	assert.Equal(t, 0, bus.SubscriberCount())

	// Channel is closed after unsubscribe.
	_, open := <-sub.C
	assert.False(t, open)

	// Close is idempotent.
	sub.Close()
}

func TestBus_FullSubscriberIsDroppedOthersStillDelivered(t *testing.T) {
	bus := NewBus()
	slow := bus.Subscribe(1)
	fast := bus.Subscribe(8)
	defer fast.Close()

	// Fill the slow subscriber's buffer, then publish again: the slow
	// subscriber must be removed without affecting the fast one.
	bus.Publish(LevelInfo, "one", nil)
	bus.Publish(LevelInfo, "two", nil)

	assert.Equal(t, 1, bus.SubscriberCount())

	got := []string{}
	for ev := range fast.C {
		got = append(got, ev.Message)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"one", "two"}, got)

	// The slow subscriber still has its first event, then a closed channel.
	ev := <-slow.C
	assert.Equal(t, "one", ev.Message)
	_, open := <-slow.C
	assert.False(t, open)
}

func TestBus_PublishWithNoSubscribers(t *testing.T) {
	bus := NewBus()
	// Must not panic or block.
	bus.Publish(LevelError, "nobody listening", nil)
	assert.Equal(t, 0, bus.SubscriberCount())
}
