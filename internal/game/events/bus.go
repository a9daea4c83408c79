package events

import (
	"strconv"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TypeAny registers a handler for every event type
const TypeAny = "*"

type handlerEntry struct {
	id        string
	eventType string
	fn        EventHandler
}

// EventBus delivers events synchronously on the publishing goroutine.
// Subscribers and handlers run in registration order, so a turn's events are
// observed in the order the engine produced them.
type EventBus struct {
	mu          sync.RWMutex
	subscribers []Subscriber
	handlers    []handlerEntry
	nextID      int
	logger      zerolog.Logger
}

// NewEventBus creates an empty bus
func NewEventBus() *EventBus {
	return &EventBus{
		logger: log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber. A subscriber with the same ID is replaced in place.
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == subscriber.ID() {
			eb.subscribers[i] = subscriber
			return
		}
	}
	eb.subscribers = append(eb.subscribers, subscriber)
	eb.logger.Debug().Str("subscriber_id", subscriber.ID()).Msg("Subscriber added")
}

// SubscribeFunc registers fn for eventType (or TypeAny) and returns an ID
// usable with Unsubscribe
func (eb *EventBus) SubscribeFunc(eventType string, fn EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextID++
	id := eventType + "#" + strconv.Itoa(eb.nextID)
	eb.handlers = append(eb.handlers, handlerEntry{id: id, eventType: eventType, fn: fn})
	return id
}

// Unsubscribe removes the subscriber or handler registered under id
func (eb *EventBus) Unsubscribe(id string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for i, s := range eb.subscribers {
		if s.ID() == id {
			eb.subscribers = append(eb.subscribers[:i], eb.subscribers[i+1:]...)
			return
		}
	}
	for i, h := range eb.handlers {
		if h.id == id {
			eb.handlers = append(eb.handlers[:i], eb.handlers[i+1:]...)
			return
		}
	}
}

// Publish delivers event to every interested listener. Listeners may publish
// or subscribe from inside a handler.
func (eb *EventBus) Publish(event Event) {
	eventType := event.Type()

	eb.mu.RLock()
	subscribers := append([]Subscriber(nil), eb.subscribers...)
	handlers := make([]handlerEntry, 0, len(eb.handlers))
	for _, h := range eb.handlers {
		if h.eventType == eventType || h.eventType == TypeAny {
			handlers = append(handlers, h)
		}
	}
	eb.mu.RUnlock()

	for _, s := range subscribers {
		if s.InterestedIn(eventType) {
			eb.deliver(s.ID(), event, s.HandleEvent)
		}
	}
	for _, h := range handlers {
		eb.deliver(h.id, event, h.fn)
	}
}

// deliver runs one listener, containing any panic so the rest still run
func (eb *EventBus) deliver(id string, event Event, fn EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("listener_id", id).
				Str("event_type", event.Type()).
				Interface("panic", r).
				Msg("Event listener panicked")
		}
	}()
	fn(event)
}

// Len returns the number of registered subscribers and handlers
func (eb *EventBus) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers) + len(eb.handlers)
}
