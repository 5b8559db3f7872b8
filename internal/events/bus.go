package events

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// Event names published by the app.
const OrderCreated = "order_created"

// Subscriber receives published events.
type Subscriber interface {
	Handle(event string, payload any) error
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(event string, payload any) error

func (f SubscriberFunc) Handle(event string, payload any) error {
	return f(event, payload)
}

// Bus is an in-process publish/subscribe dispatcher. Delivery is best
// effort: ordering across subscribers is unspecified and nothing is
// retried or persisted.
type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string][]Subscriber)}
}

func (b *Bus) Subscribe(event string, s Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[event] = append(b.subs[event], s)
}

// Publish delivers the event to every subscriber registered for it.
// Each delivery is individually guarded: a subscriber error or panic is
// logged and swallowed so it cannot affect other subscribers or the caller.
func (b *Bus) Publish(event string, payload any) {
	b.mu.RLock()
	subs := append([]Subscriber(nil), b.subs[event]...)
	b.mu.RUnlock()

	for _, s := range subs {
		deliver(event, payload, s)
	}
}

func deliver(event string, payload any, s Subscriber) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"event": event, "panic": r}).Error("event subscriber panicked")
		}
	}()

	if err := s.Handle(event, payload); err != nil {
		log.WithError(err).WithField("event", event).Error("event subscriber failed")
	}
}
