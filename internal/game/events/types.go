package events

import (
	"time"
)

// Event is anything published on the bus during a session
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent carries the fields every event shares
type BaseEvent struct {
	Kind string    `json:"type"`
	At   time.Time `json:"timestamp"`
	Game string    `json:"game_id"`
}

func (e BaseEvent) Type() string         { return e.Kind }
func (e BaseEvent) Timestamp() time.Time { return e.At }
func (e BaseEvent) GameID() string       { return e.Game }

// EventHandler receives events registered through SubscribeFunc
type EventHandler func(Event)

// Subscriber is a long-lived listener that filters by event type
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher is the only part of the bus the planner and executor need
type Publisher interface {
	Publish(Event)
}
