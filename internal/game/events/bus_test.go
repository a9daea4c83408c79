package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

type testSubscriber struct {
	id       string
	only     map[string]bool
	received []Event
}

func (ts *testSubscriber) ID() string          { return ts.id }
func (ts *testSubscriber) HandleEvent(e Event) { ts.received = append(ts.received, e) }
func (ts *testSubscriber) InterestedIn(eventType string) bool {
	return ts.only == nil || ts.only[eventType]
}

func TestEventBus_SubscribeFunc(t *testing.T) {
	bus := NewEventBus()

	var got Event
	bus.SubscribeFunc(TypeGameStarted, func(e Event) { got = e })
	bus.Publish(NewTurnStartedEvent("test-game", 1, 4))
	assert.Nil(t, got, "other event types are not delivered")

	bus.Publish(NewGameStartedEvent("test-game", 20, 15, 6, 6, 2))
	require.NotNil(t, got)
	assert.Equal(t, TypeGameStarted, got.Type())
	assert.Equal(t, "test-game", got.GameID())
}

func TestEventBus_DeliveryOrder(t *testing.T) {
	bus := NewEventBus()

	var order []string
	bus.Subscribe(&orderSubscriber{id: "a", order: &order})
	id1 := bus.SubscribeFunc(TypeTurnStarted, func(Event) { order = append(order, "h1") })
	id2 := bus.SubscribeFunc(TypeAny, func(Event) { order = append(order, "any") })
	bus.Subscribe(&orderSubscriber{id: "b", order: &order})

	bus.Publish(NewTurnStartedEvent("test-game", 1, 4))

	assert.Equal(t, []string{"a", "b", "h1", "any"}, order)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 4, bus.Len())
}

type orderSubscriber struct {
	id    string
	order *[]string
}

func (o *orderSubscriber) ID() string                 { return o.id }
func (o *orderSubscriber) HandleEvent(Event)          { *o.order = append(*o.order, o.id) }
func (o *orderSubscriber) InterestedIn(_ string) bool { return true }

func TestEventBus_SubscriberFilterAndUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	sub := &testSubscriber{
		id:   "kills",
		only: map[string]bool{TypeUnitKilled: true, TypeBarbarianConverted: true},
	}
	bus.Subscribe(sub)

	at := core.Coordinate{X: 4, Y: 3}
	bus.Publish(NewUnitMovedEvent("test-game", core.TeamEnemy, core.Coordinate{X: 1, Y: 1}, at, at))
	bus.Publish(NewUnitKilledEvent("test-game", at, core.TeamBarbarian, core.ClassGuard, core.TeamEnemy))
	bus.Publish(NewBarbarianConvertedEvent("test-game", at, core.Coordinate{X: 6, Y: 3}, core.ClassMelee, 10))

	require.Len(t, sub.received, 2)
	assert.Equal(t, TypeUnitKilled, sub.received[0].Type())
	assert.Equal(t, TypeBarbarianConverted, sub.received[1].Type())

	bus.Unsubscribe(sub.ID())
	bus.Publish(NewUnitKilledEvent("test-game", at, core.TeamPlayer, core.ClassMage, core.TeamEnemy))
	assert.Len(t, sub.received, 2)
	assert.Equal(t, 0, bus.Len())
}

func TestEventBus_SubscribeReplacesSameID(t *testing.T) {
	bus := NewEventBus()
	first := &testSubscriber{id: "log"}
	second := &testSubscriber{id: "log"}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewTurnStartedEvent("g", 1, 1))
	assert.Empty(t, first.received)
	assert.Len(t, second.received, 1)
	assert.Equal(t, 1, bus.Len())
}

func TestEventBus_UnsubscribeHandler(t *testing.T) {
	bus := NewEventBus()
	calls := 0
	id := bus.SubscribeFunc(TypeAny, func(Event) { calls++ })

	bus.Publish(NewTurnStartedEvent("g", 1, 1))
	bus.Unsubscribe(id)
	bus.Publish(NewTurnStartedEvent("g", 2, 1))
	assert.Equal(t, 1, calls)
}

func TestEventBus_PublishFromHandler(t *testing.T) {
	bus := NewEventBus()
	ended := false
	bus.SubscribeFunc(TypeGameEnded, func(Event) { ended = true })
	bus.SubscribeFunc(TypeTurnEnded, func(Event) {
		bus.Publish(NewGameEndedEvent("g", core.TeamEnemy, 3, time.Second))
	})

	bus.Publish(NewTurnEndedEvent("g", 3, 1.5, 2, 0, time.Millisecond))
	assert.True(t, ended)
}

func TestEventBus_RecoversFromPanickingHandler(t *testing.T) {
	bus := NewEventBus()

	after := false
	bus.SubscribeFunc(TypeGameEnded, func(e Event) { panic("boom") })
	bus.SubscribeFunc(TypeGameEnded, func(e Event) { after = true })

	assert.NotPanics(t, func() {
		bus.Publish(NewGameEndedEvent("test-game", core.TeamEnemy, 12, time.Second))
	})
	assert.True(t, after, "later handlers still run")
}

func TestUnitMovedEventFallback(t *testing.T) {
	from := core.Coordinate{X: 1, Y: 1}
	want := core.Coordinate{X: 4, Y: 4}

	direct := NewUnitMovedEvent("g", core.TeamEnemy, from, want, want)
	assert.False(t, direct.Fallback)

	moved := NewUnitMovedEvent("g", core.TeamEnemy, from, core.Coordinate{X: 3, Y: 4}, want)
	assert.True(t, moved.Fallback)
	assert.Equal(t, TypeUnitMoved, moved.Type())
	assert.False(t, moved.Timestamp().IsZero())
}
