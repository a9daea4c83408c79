package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events/subscribers"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	return line
}

func TestLoggerSubscriber_InterestByLevel(t *testing.T) {
	info := subscribers.NewLoggerSubscriber("info", zerolog.Nop(), zerolog.InfoLevel)
	assert.Equal(t, "info", info.ID())
	assert.True(t, info.InterestedIn(events.TypeGameStarted))
	assert.True(t, info.InterestedIn(events.TypeUnitKilled))
	assert.True(t, info.InterestedIn("custom.event"), "unknown types log at info")
	assert.False(t, info.InterestedIn(events.TypeUnitMoved))
	assert.False(t, info.InterestedIn(events.TypeSearchGeneration))

	debug := subscribers.NewLoggerSubscriber("debug", zerolog.Nop(), zerolog.DebugLevel)
	assert.True(t, debug.InterestedIn(events.TypeUnitMoved))
	assert.True(t, debug.InterestedIn(events.TypePhaseChanged))
}

func TestLoggerSubscriber_EventFields(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.DebugLevel)

	from := core.Coordinate{X: 1, Y: 1}
	to := core.Coordinate{X: 3, Y: 4}
	desired := core.Coordinate{X: 4, Y: 4}

	testCases := []struct {
		name  string
		event events.Event
		level string
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("test-game-1", 20, 15, 6, 5, 2),
			level: "info",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(20), logLine["map_width"])
				assert.Equal(t, float64(15), logLine["map_height"])
				assert.Equal(t, float64(6), logLine["enemy_units"])
				assert.Equal(t, float64(2), logLine["camps"])
			},
		},
		{
			name:  "TurnEndedEvent",
			event: events.NewTurnEndedEvent("test-game-1", 5, 12.5, 6, 1, 40*time.Millisecond),
			level: "info",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["turn"])
				assert.Equal(t, 12.5, logLine["best_utility"])
				assert.Equal(t, float64(1), logLine["kills"])
				assert.Equal(t, float64(40), logLine["process_time"])
			},
		},
		{
			name:  "UnitMovedEvent with fallback",
			event: events.NewUnitMovedEvent("test-game-1", core.TeamEnemy, from, to, desired),
			level: "debug",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "enemy", logLine["team"])
				assert.Equal(t, "(1,1)", logLine["from"])
				assert.Equal(t, "(3,4)", logLine["to"])
				assert.Equal(t, "(4,4)", logLine["desired"])
				assert.Equal(t, true, logLine["fallback"])
			},
		},
		{
			name:  "UnitAttackedEvent miss",
			event: events.NewUnitAttackedEvent("test-game-1", from, to, core.TeamBarbarian, 0, 25, false),
			level: "debug",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(0), logLine["damage"])
				assert.Equal(t, float64(25), logLine["remaining_hp"])
				assert.Equal(t, "barbarian", logLine["target_team"])
				assert.Equal(t, false, logLine["killed"])
			},
		},
		{
			name:  "BarbarianConvertedEvent",
			event: events.NewBarbarianConvertedEvent("test-game-1", to, from, core.ClassMelee, 10),
			level: "info",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "melee", logLine["class"])
				assert.Equal(t, float64(10), logLine["roll"])
				assert.Equal(t, "(1,1)", logLine["spawned_at"])
			},
		},
		{
			name:  "PhaseChangedEvent",
			event: events.NewPhaseChangedEvent("test-game-1", "PlayerTurn", "EnemyTurn", "player ended turn"),
			level: "debug",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "PlayerTurn", logLine["from_phase"])
				assert.Equal(t, "EnemyTurn", logLine["to_phase"])
			},
		},
		{
			name:  "GameEndedEvent",
			event: events.NewGameEndedEvent("test-game-1", core.TeamEnemy, 30, 5*time.Minute),
			level: "info",
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "enemy", logLine["winner"])
				assert.Equal(t, float64(30), logLine["final_turn"])
				assert.Equal(t, float64(300000), logLine["duration"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf.Reset()
			logSub.HandleEvent(tc.event)

			logLine := decode(t, &buf)
			assert.Equal(t, tc.level, logLine["level"])
			assert.Equal(t, "Game event", logLine["message"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "test-game-1", logLine["game_id"])
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriber_OnBus(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("filtered-logger", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypeUnitKilled, events.TypeGameEnded})
	assert.False(t, logSub.InterestedIn(events.TypeTurnEnded))

	bus := events.NewEventBus()
	bus.Subscribe(logSub)
	bus.Publish(events.NewTurnEndedEvent("game1", 1, 2.0, 3, 0, time.Millisecond))
	assert.Empty(t, buf.String(), "filtered events never reach the subscriber")

	bus.Publish(events.NewUnitKilledEvent("game1", core.Coordinate{X: 2, Y: 2}, core.TeamPlayer, core.ClassMage, core.TeamEnemy))
	assert.Contains(t, buf.String(), `"class":"mage"`)

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTurnEnded))
}

func TestLoggerSubscriber_DevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev-logger", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetDevMode(true)

	at := core.Coordinate{X: 5, Y: 5}
	logSub.HandleEvent(events.NewUnitMovedEvent("dev-game", core.TeamEnemy, at, core.Coordinate{X: 6, Y: 5}, core.Coordinate{X: 6, Y: 5}))

	eventData, ok := decode(t, &buf)["event_data"]
	require.True(t, ok, "event_data should be present")

	raw, err := json.Marshal(eventData)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "unit.moved")
	assert.Contains(t, string(raw), "Desired")
}
