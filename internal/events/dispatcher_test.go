package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversInSubscriptionOrder(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var order []string
	dispatcher.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		order = append(order, "first")
		return nil
	})
	dispatcher.Subscribe(EventProjectCreated, func(context.Context, Event) error {
		order = append(order, "second")
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventProjectCreated}))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestPublishIgnoresOtherTypes(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	called := false
	dispatcher.Subscribe(EventStatsUpdate, func(context.Context, Event) error {
		called = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventProjectDeleted}))
	assert.False(t, called)
}

func TestHandlerErrorDoesNotStopDelivery(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	reached := false
	dispatcher.Subscribe(EventApplicationCreated, func(context.Context, Event) error {
		return errors.New("boom")
	})
	dispatcher.Subscribe(EventApplicationCreated, func(context.Context, Event) error {
		reached = true
		return nil
	})

	require.NoError(t, dispatcher.Publish(context.Background(), Event{Type: EventApplicationCreated}))
	assert.True(t, reached)
}

func TestPublishIsSequentialPerMutation(t *testing.T) {
	dispatcher := NewInMemoryDispatcher()

	var seen []EventType
	for _, eventType := range AllEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e Event) error {
			seen = append(seen, e.Type)
			return nil
		})
	}

	_ = dispatcher.Publish(context.Background(), Event{Type: EventApplicationUpdated})
	_ = dispatcher.Publish(context.Background(), Event{Type: EventProjectUpdated})
	assert.Equal(t, []EventType{EventApplicationUpdated, EventProjectUpdated}, seen)
}
