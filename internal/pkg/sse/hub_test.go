package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSubscribedTopics(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("user-1", "role:manager")
	defer cleanup()

	hub.Publish("role:manager", Event{Event: "vacation.submitted", Data: "payload"})
	hub.Publish("user-2", Event{Event: "vacation.reviewed"})
	hub.Publish("user-1", Event{Event: "vacation.reviewed"})

	got := <-ch
	assert.Equal(t, "role:manager", got.Topic)
	assert.Equal(t, "vacation.submitted", got.Event)
	assert.Equal(t, "payload", got.Data)

	got = <-ch
	assert.Equal(t, "user-1", got.Topic)
	assert.Equal(t, "vacation.reviewed", got.Event)

	assert.Empty(t, ch)
}

func TestHub_CleanupUnsubscribes(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe("a", "b")
	assert.Len(t, hub.subscribers["a"], 1)
	assert.Len(t, hub.subscribers["b"], 1)

	cleanup()
	cleanup() // idempotent

	assert.Empty(t, hub.subscribers)

	_, open := <-ch
	assert.False(t, open)

	// Publishing after cleanup must not panic.
	hub.Publish("a", Event{Event: "x"})
}

func TestHub_PublishDoesNotBlockOnFullChannel(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("slow")
	defer cleanup()

	for i := 0; i < hub.bufferSize+5; i++ {
		hub.Publish("slow", Event{Event: "tick", Data: i})
	}

	require.Len(t, ch, hub.bufferSize)
}
