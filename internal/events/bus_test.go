package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_DeliversToAllSubscribers(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Subscribe(OrderCreated, SubscriberFunc(func(event string, payload any) error {
		got = append(got, "first:"+payload.(string))
		return nil
	}))
	bus.Subscribe(OrderCreated, SubscriberFunc(func(event string, payload any) error {
		got = append(got, "second:"+payload.(string))
		return nil
	}))

	bus.Publish(OrderCreated, "o1")

	assert.ElementsMatch(t, []string{"first:o1", "second:o1"}, got)
}

func TestPublish_SubscriberErrorDoesNotStopDelivery(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe(OrderCreated, SubscriberFunc(func(event string, payload any) error {
		return errors.New("smtp down")
	}))
	bus.Subscribe(OrderCreated, SubscriberFunc(func(event string, payload any) error {
		delivered = true
		return nil
	}))

	bus.Publish(OrderCreated, "o1")

	assert.True(t, delivered, "second subscriber should still receive the event")
}

func TestPublish_SubscriberPanicIsContained(t *testing.T) {
	bus := NewBus()

	bus.Subscribe(OrderCreated, SubscriberFunc(func(event string, payload any) error {
		panic("boom")
	}))

	assert.NotPanics(t, func() {
		bus.Publish(OrderCreated, "o1")
	})
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewBus()

	assert.NotPanics(t, func() {
		bus.Publish("unknown_event", nil)
	})
}
