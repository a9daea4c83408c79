package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/ai"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/mapgen"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/rules"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/states"
)

var ErrGameOver = errors.New("game is over")

// GameConfig holds everything needed to start a session
type GameConfig struct {
	// Map is used as is when set. Otherwise MapPath is loaded, and with no
	// path a map of Width x Height is generated.
	Map           *mapgen.Map
	MapPath       string
	Width         int
	Height        int
	DistancesPath string // empty keeps the oracle in memory only
	MaxTurns      int
	Params        ai.Params
	Rng           *rand.Rand
	GameID        string
	Logger        zerolog.Logger
	EventBus      *events.EventBus
}

// Engine runs one Castle Quest session from the enemy side
type Engine struct {
	gameID       string
	state        *core.State
	oracle       *distance.Oracle
	planner      *ai.Planner
	rng          *rand.Rand
	eventBus     *events.EventBus
	winCondition *rules.WinConditionChecker
	phases       *states.StateMachine
	logger       zerolog.Logger

	turn      int
	maxTurns  int
	winner    core.Team
	startTime time.Time
}

// NewEngine creates and initializes a new game engine
func NewEngine(ctx context.Context, cfg GameConfig) (*Engine, error) {
	return NewEngineInitializer(cfg).Initialize(ctx)
}

// StepEnemy plays one enemy turn and checks whether a castle has fallen.
// Calling it ends the player's turn.
func (e *Engine) StepEnemy(ctx context.Context) (*ai.TurnReport, error) {
	if e.IsGameOver() {
		return nil, ErrGameOver
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.phases.TransitionTo(states.PhaseEnemyTurn, "player ended turn"); err != nil {
		return nil, err
	}

	e.turn++
	logger := e.logger.With().Int("turn", e.turn).Logger()
	e.eventBus.Publish(events.NewTurnStartedEvent(e.gameID, e.turn, e.state.Enemies.Len()))

	report, err := e.planner.TakeTurn(e.state)
	if err != nil {
		logger.Error().Err(err).Msg("Enemy turn failed")
		return nil, fmt.Errorf("turn %d: %w", e.turn, err)
	}
	if err := e.state.Validate(); err != nil {
		return nil, fmt.Errorf("turn %d left an inconsistent board: %w", e.turn, err)
	}

	e.eventBus.Publish(events.NewTurnEndedEvent(
		e.gameID,
		e.turn,
		report.Best.Utility,
		len(report.Execution.Moves),
		report.Execution.Kills(),
		report.Elapsed,
	))
	e.logStats()
	if !e.checkGameOver(logger) {
		if err := e.phases.TransitionTo(states.PhasePlayerTurn, "enemy turn done"); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// MovePlayer moves a player unit after checking it can legally walk there
func (e *Engine) MovePlayer(from, to core.Coordinate) error {
	if err := e.playerMayAct(); err != nil {
		return err
	}
	if err := rules.ValidateMove(e.state, core.TeamPlayer, from, to); err != nil {
		return err
	}
	if err := e.state.Relocate(core.TeamPlayer, from, to); err != nil {
		return err
	}
	e.eventBus.Publish(events.NewUnitMovedEvent(e.gameID, core.TeamPlayer, from, to, to))
	e.checkGameOver(e.logger)
	return nil
}

// PlayerAttack resolves an attack by the player unit at from on target
func (e *Engine) PlayerAttack(from, target core.Coordinate) (core.AttackResult, error) {
	if err := e.playerMayAct(); err != nil {
		return core.AttackResult{}, err
	}
	if err := rules.ValidateAttack(e.state, core.TeamPlayer, from, target); err != nil {
		return core.AttackResult{}, err
	}
	attacker := e.state.UnitAt(from)
	victim := e.state.UnitAt(target)

	res := e.planner.Params().Combat.Resolve(e.rng, attacker, victim)
	e.eventBus.Publish(events.NewUnitAttackedEvent(e.gameID, from, target, victim.Team, res.Damage, victim.HP, res.Killed))
	if res.Killed {
		e.state.Remove(target)
		e.eventBus.Publish(events.NewUnitKilledEvent(e.gameID, target, victim.Team, victim.Class, core.TeamPlayer))
	}
	return res, nil
}

func (e *Engine) playerMayAct() error {
	phase := e.phases.CurrentPhase()
	if phase.IsTerminal() {
		return ErrGameOver
	}
	if !phase.CanPlayerAct() {
		return fmt.Errorf("player action during %s: %w", phase, states.ErrInvalidTransition)
	}
	return nil
}

// checkGameOver ends the game when a castle falls or the turn limit is hit
func (e *Engine) checkGameOver(logger zerolog.Logger) bool {
	over, winner := e.winCondition.CheckGameOver(e.state)
	reason := winner.String() + " took a castle"
	if !over && e.maxTurns > 0 && e.turn >= e.maxTurns {
		logger.Info().Int("max_turns", e.maxTurns).Msg("Turn limit reached")
		over, reason = true, "turn limit"
	}
	if !over {
		return false
	}
	if err := e.phases.TransitionTo(states.PhaseEnded, reason); err != nil {
		logger.Error().Err(err).Msg("Could not end game")
		return false
	}
	e.winner = winner
	e.eventBus.Publish(events.NewGameEndedEvent(e.gameID, winner, e.turn, time.Since(e.startTime)))
	logger.Info().Str("winner", winner.String()).Msg("Game over")
	return true
}

// UpdateParams swaps the AI tuning from the next turn on. Invalid tunings are
// rejected and the game keeps its current parameters.
func (e *Engine) UpdateParams(params ai.Params) error {
	if err := e.planner.SetParams(params); err != nil {
		e.logger.Warn().Err(err).Msg("AI parameters rejected")
		return err
	}
	e.logger.Info().Int("pop_num", params.PopNum).Int("gen_num", params.GenNum).Msg("AI parameters updated")
	return nil
}

// Public accessors
func (e *Engine) GameID() string             { return e.gameID }
func (e *Engine) State() *core.State         { return e.state }
func (e *Engine) Oracle() *distance.Oracle   { return e.oracle }
func (e *Engine) EventBus() *events.EventBus { return e.eventBus }
func (e *Engine) Turn() int                  { return e.turn }
func (e *Engine) Phase() states.GamePhase    { return e.phases.CurrentPhase() }
func (e *Engine) IsGameOver() bool           { return e.phases.CurrentPhase().IsTerminal() }

// Winner returns the winning team, TeamNone while the game runs or after a turn-limit draw
func (e *Engine) Winner() core.Team {
	if !e.IsGameOver() {
		return core.TeamNone
	}
	return e.winner
}
