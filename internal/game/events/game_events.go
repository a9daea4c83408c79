package events

import (
	"time"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted        = "game.started"
	TypeGameEnded          = "game.ended"
	TypeTurnStarted        = "turn.started"
	TypeTurnEnded          = "turn.ended"
	TypeUnitMoved          = "unit.moved"
	TypeUnitAttacked       = "unit.attacked"
	TypeUnitKilled         = "unit.killed"
	TypeBarbarianConverted = "barbarian.converted"
	TypeSearchGeneration   = "search.generation"
	TypePhaseChanged       = "phase.changed"
)

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{Kind: eventType, At: time.Now(), Game: gameID}
}

// GameStartedEvent is published when a session is ready to play
type GameStartedEvent struct {
	BaseEvent
	MapWidth    int
	MapHeight   int
	EnemyUnits  int
	PlayerUnits int
	Camps       int
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, width, height, enemies, players, camps int) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		MapWidth:    width,
		MapHeight:   height,
		EnemyUnits:  enemies,
		PlayerUnits: players,
		Camps:       camps,
	}
}

// GameEndedEvent is published when a castle falls
type GameEndedEvent struct {
	BaseEvent
	Winner    core.Team
	FinalTurn int
	Duration  time.Duration
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Team, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Winner:    winner,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// TurnStartedEvent is published before the AI plans a turn
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
	Units      int
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID string, turn, units int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID),
		TurnNumber: turn,
		Units:      units,
	}
}

// TurnEndedEvent is published once the plan has been applied
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber    int
	BestUtility   float64
	Moves         int
	Kills         int
	ProcessedTime time.Duration
}

// NewTurnEndedEvent creates a new TurnEndedEvent
func NewTurnEndedEvent(gameID string, turn int, bestUtility float64, moves, kills int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:     newBase(TypeTurnEnded, gameID),
		TurnNumber:    turn,
		BestUtility:   bestUtility,
		Moves:         moves,
		Kills:         kills,
		ProcessedTime: processedTime,
	}
}

// UnitMovedEvent records one executed move
type UnitMovedEvent struct {
	BaseEvent
	Team     core.Team
	From     core.Coordinate
	To       core.Coordinate
	Desired  core.Coordinate
	Fallback bool // the desired tile was taken and a closer free tile was used
}

// NewUnitMovedEvent creates a new UnitMovedEvent
func NewUnitMovedEvent(gameID string, team core.Team, from, to, desired core.Coordinate) *UnitMovedEvent {
	return &UnitMovedEvent{
		BaseEvent: newBase(TypeUnitMoved, gameID),
		Team:      team,
		From:      from,
		To:        to,
		Desired:   desired,
		Fallback:  to != desired,
	}
}

// UnitAttackedEvent is the damage indicator for one attack. Damage 0 is a miss.
type UnitAttackedEvent struct {
	BaseEvent
	Attacker    core.Coordinate
	Target      core.Coordinate
	TargetTeam  core.Team
	Damage      int
	RemainingHP int
	Killed      bool
}

// NewUnitAttackedEvent creates a new UnitAttackedEvent
func NewUnitAttackedEvent(gameID string, attacker, target core.Coordinate, targetTeam core.Team, damage, remaining int, killed bool) *UnitAttackedEvent {
	return &UnitAttackedEvent{
		BaseEvent:   newBase(TypeUnitAttacked, gameID),
		Attacker:    attacker,
		Target:      target,
		TargetTeam:  targetTeam,
		Damage:      damage,
		RemainingHP: remaining,
		Killed:      killed,
	}
}

// UnitKilledEvent is published when a unit is removed from the board
type UnitKilledEvent struct {
	BaseEvent
	Location core.Coordinate
	Team     core.Team
	Class    core.Class
	KilledBy core.Team
}

// NewUnitKilledEvent creates a new UnitKilledEvent
func NewUnitKilledEvent(gameID string, loc core.Coordinate, team core.Team, class core.Class, by core.Team) *UnitKilledEvent {
	return &UnitKilledEvent{
		BaseEvent: newBase(TypeUnitKilled, gameID),
		Location:  loc,
		Team:      team,
		Class:     class,
		KilledBy:  by,
	}
}

// BarbarianConvertedEvent is published when a killed barbarian rejoins as an enemy unit
type BarbarianConvertedEvent struct {
	BaseEvent
	KilledAt  core.Coordinate
	SpawnedAt core.Coordinate
	Class     core.Class
	Roll      int
}

// NewBarbarianConvertedEvent creates a new BarbarianConvertedEvent
func NewBarbarianConvertedEvent(gameID string, killedAt, spawnedAt core.Coordinate, class core.Class, roll int) *BarbarianConvertedEvent {
	return &BarbarianConvertedEvent{
		BaseEvent: newBase(TypeBarbarianConverted, gameID),
		KilledAt:  killedAt,
		SpawnedAt: spawnedAt,
		Class:     class,
		Roll:      roll,
	}
}

// SearchGenerationEvent reports search progress
type SearchGenerationEvent struct {
	BaseEvent
	Generation  int
	BestUtility float64
}

// NewSearchGenerationEvent creates a new SearchGenerationEvent
func NewSearchGenerationEvent(gameID string, generation int, best float64) *SearchGenerationEvent {
	return &SearchGenerationEvent{
		BaseEvent:   newBase(TypeSearchGeneration, gameID),
		Generation:  generation,
		BestUtility: best,
	}
}

// PhaseChangedEvent is published when the session moves between turn phases
type PhaseChangedEvent struct {
	BaseEvent
	From   string
	To     string
	Reason string
}

// NewPhaseChangedEvent creates a new PhaseChangedEvent
func NewPhaseChangedEvent(gameID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, gameID),
		From:      from,
		To:        to,
		Reason:    reason,
	}
}
