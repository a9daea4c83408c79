package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
)

// eventLevels is the level each event type is logged at. Per-unit and
// per-generation chatter stays at debug; outcomes are info.
var eventLevels = map[string]zerolog.Level{
	events.TypeGameStarted:        zerolog.InfoLevel,
	events.TypeGameEnded:          zerolog.InfoLevel,
	events.TypeTurnStarted:        zerolog.DebugLevel,
	events.TypeTurnEnded:          zerolog.InfoLevel,
	events.TypeUnitMoved:          zerolog.DebugLevel,
	events.TypeUnitAttacked:       zerolog.DebugLevel,
	events.TypeUnitKilled:         zerolog.InfoLevel,
	events.TypeBarbarianConverted: zerolog.InfoLevel,
	events.TypeSearchGeneration:   zerolog.DebugLevel,
	events.TypePhaseChanged:       zerolog.DebugLevel,
}

// LevelFor returns the level events of eventType are logged at
func LevelFor(eventType string) zerolog.Level {
	if l, ok := eventLevels[eventType]; ok {
		return l
	}
	return zerolog.InfoLevel
}

// LoggerSubscriber writes game events to a structured log
type LoggerSubscriber struct {
	id       string
	logger   zerolog.Logger
	minLevel zerolog.Level
	only     map[string]bool // nil logs every type at or above minLevel
	devMode  bool            // attach the full event as JSON
}

// NewLoggerSubscriber creates a subscriber that skips events whose level is below minLevel
func NewLoggerSubscriber(id string, logger zerolog.Logger, minLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		minLevel: minLevel,
	}
}

func (ls *LoggerSubscriber) ID() string { return ls.id }

// SetEventFilter restricts logging to eventTypes; an empty list logs everything
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.only = nil
		return
	}
	ls.only = make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		ls.only[t] = true
	}
}

// SetDevMode toggles dumping the whole event as JSON
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.only != nil && !ls.only[eventType] {
		return false
	}
	return LevelFor(eventType) >= ls.minLevel
}

// HandleEvent logs one event with its type-specific fields
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(LevelFor(event.Type())).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("enemy_units", e.EnemyUnits).
			Int("player_units", e.PlayerUnits).
			Int("camps", e.Camps)

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnStartedEvent:
		logEvent.Int("turn", e.TurnNumber).Int("units", e.Units)

	case *events.TurnEndedEvent:
		logEvent.
			Int("turn", e.TurnNumber).
			Float64("best_utility", e.BestUtility).
			Int("moves", e.Moves).
			Int("kills", e.Kills).
			Dur("process_time", e.ProcessedTime)

	case *events.UnitMovedEvent:
		logEvent.
			Str("team", e.Team.String()).
			Str("from", e.From.String()).
			Str("to", e.To.String()).
			Bool("fallback", e.Fallback)
		if e.Fallback {
			logEvent.Str("desired", e.Desired.String())
		}

	case *events.UnitAttackedEvent:
		logEvent.
			Str("attacker", e.Attacker.String()).
			Str("target", e.Target.String()).
			Str("target_team", e.TargetTeam.String()).
			Int("damage", e.Damage).
			Int("remaining_hp", e.RemainingHP).
			Bool("killed", e.Killed)

	case *events.UnitKilledEvent:
		logEvent.
			Str("location", e.Location.String()).
			Str("team", e.Team.String()).
			Str("class", e.Class.String()).
			Str("killed_by", e.KilledBy.String())

	case *events.BarbarianConvertedEvent:
		logEvent.
			Str("killed_at", e.KilledAt.String()).
			Str("spawned_at", e.SpawnedAt.String()).
			Str("class", e.Class.String()).
			Int("roll", e.Roll)

	case *events.SearchGenerationEvent:
		logEvent.Int("generation", e.Generation).Float64("best_utility", e.BestUtility)

	case *events.PhaseChangedEvent:
		logEvent.Str("from_phase", e.From).Str("to_phase", e.To).Str("reason", e.Reason)
	}

	if ls.devMode {
		if data, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", data)
		}
	}
	logEvent.Msg("Game event")
}
