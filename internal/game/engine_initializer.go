package game

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/ai"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/mapgen"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/rules"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/states"
)

// EngineInitializer handles the initialization of a game engine
type EngineInitializer struct {
	config GameConfig
	logger zerolog.Logger
}

// NewEngineInitializer creates a new engine initializer
func NewEngineInitializer(cfg GameConfig) *EngineInitializer {
	logger := cfg.Logger.With().Str("component", "GameEngine").Logger()
	return &EngineInitializer{
		config: cfg,
		logger: logger,
	}
}

// Initialize loads the map, prepares the distance oracle and wires the planner
func (ei *EngineInitializer) Initialize(ctx context.Context) (*Engine, error) {
	select {
	case <-ctx.Done():
		ei.logger.Error().Err(ctx.Err()).Msg("Engine creation cancelled or timed out during initial phase")
		return nil, ctx.Err()
	default:
	}

	ei.setupDefaults()
	if err := ei.config.Params.Validate(); err != nil {
		return nil, err
	}

	m, err := ei.loadMap()
	if err != nil {
		return nil, fmt.Errorf("map setup failed: %w", err)
	}
	state, err := m.NewState()
	if err != nil {
		return nil, fmt.Errorf("placing starting units: %w", err)
	}

	oracle, err := PrepareOracle(ei.config.DistancesPath, state, ei.logger)
	if err != nil {
		return nil, err
	}

	engine := ei.createEngine(state, oracle)
	if err := engine.phases.TransitionTo(states.PhasePlayerTurn, "game started"); err != nil {
		return nil, err
	}

	engine.eventBus.Publish(events.NewGameStartedEvent(
		engine.gameID,
		state.Board.W,
		state.Board.H,
		state.Enemies.Len(),
		state.Players.Len(),
		len(state.Objectives.Camps),
	))

	ei.logger.Info().
		Str("game_id", engine.gameID).
		Int("width", state.Board.W).
		Int("height", state.Board.H).
		Int("enemy_units", state.Enemies.Len()).
		Int("oracle_entries", oracle.Size()).
		Msg("Engine created successfully")

	return engine, nil
}

// setupDefaults sets up default values for missing configuration
func (ei *EngineInitializer) setupDefaults() {
	if ei.config.Rng == nil {
		ei.logger.Debug().Msg("No RNG provided, creating new seeded RNG")
		ei.config.Rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if ei.config.GameID == "" {
		ei.config.GameID = uuid.New().String()
	}
	if ei.config.EventBus == nil {
		ei.config.EventBus = events.NewEventBus()
	}
	if ei.config.Params.PopNum == 0 {
		ei.config.Params = ai.DefaultParams()
	}
	if ei.config.Width == 0 || ei.config.Height == 0 {
		ei.config.Width, ei.config.Height = 16, 12
	}
}

func (ei *EngineInitializer) loadMap() (*mapgen.Map, error) {
	switch {
	case ei.config.Map != nil:
		return ei.config.Map, nil
	case ei.config.MapPath != "":
		ei.logger.Info().Str("path", ei.config.MapPath).Msg("Loading map")
		return mapgen.LoadFile(ei.config.MapPath)
	default:
		ei.logger.Info().Int("width", ei.config.Width).Int("height", ei.config.Height).Msg("Generating map")
		cfg := mapgen.DefaultMapConfig(ei.config.Width, ei.config.Height)
		return mapgen.NewGenerator(cfg, ei.config.Rng).GenerateMap(), nil
	}
}

// PrepareOracle loads the distance file at path, building and saving it when
// the file is missing or was built for another map. An empty path builds the
// oracle in memory.
func PrepareOracle(path string, s *core.State, logger zerolog.Logger) (*distance.Oracle, error) {
	if path == "" {
		return distance.Build(s.Board, s.Objectives, logger), nil
	}

	oracle, err := distance.LoadFile(path)
	switch {
	case err == nil:
		if err := oracle.Check(s.Board, s.Objectives); err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("Distance file belongs to another map, rebuilding it")
			break
		}
		logger.Info().Str("path", path).Int("entries", oracle.Size()).Msg("Loaded distance file")
		return oracle, nil
	case errors.Is(err, fs.ErrNotExist):
		logger.Info().Str("path", path).Msg("Distance file missing, building it")
	default:
		return nil, fmt.Errorf("load distance file: %w", err)
	}

	oracle = distance.Build(s.Board, s.Objectives, logger)
	if err := distance.SaveFile(path, oracle); err != nil {
		return nil, fmt.Errorf("save distance file: %w", err)
	}
	return oracle, nil
}

// createEngine creates the engine with all its components
func (ei *EngineInitializer) createEngine(state *core.State, oracle *distance.Oracle) *Engine {
	planner := ai.NewPlanner(ei.config.Params, oracle, ei.config.Rng, ei.logger).
		WithEvents(ei.config.EventBus, ei.config.GameID)

	return &Engine{
		gameID:       ei.config.GameID,
		state:        state,
		oracle:       oracle,
		planner:      planner,
		rng:          ei.config.Rng,
		eventBus:     ei.config.EventBus,
		winCondition: rules.NewWinConditionChecker(ei.logger),
		phases:       states.NewStateMachine(ei.config.GameID, ei.config.EventBus, ei.logger),
		logger:       ei.logger.With().Str("game_id", ei.config.GameID).Logger(),
		maxTurns:     ei.config.MaxTurns,
		startTime:    time.Now(),
	}
}
