// Package ai decides the simultaneous moves of the enemy army for one turn.
//
// A turn snapshots the enemy units in row-major order, runs a genetic search
// over joint move assignments scored by a handcrafted utility, and applies the
// best assignment to the live board. Every index-based step relies on the
// snapshot order staying fixed for the whole turn.
package ai

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
)

// TurnReport is the outcome of one planned turn
type TurnReport struct {
	Best       *Candidate
	Population int
	Execution  *Execution
	Elapsed    time.Duration
}

// Planner plays the enemy side. The oracle is shared read-only; the board
// passed to TakeTurn is mutated in place. Params may be swapped from another
// goroutine; a running turn keeps the values it started with.
type Planner struct {
	mu     sync.RWMutex
	params Params
	oracle *distance.Oracle
	rng    core.RNG
	bus    events.Publisher
	gameID string
	logger zerolog.Logger
}

// NewPlanner creates a planner for the enemy team
func NewPlanner(params Params, oracle *distance.Oracle, rng core.RNG, logger zerolog.Logger) *Planner {
	return &Planner{
		params: params,
		oracle: oracle,
		rng:    rng,
		logger: logger.With().Str("component", "ai_planner").Logger(),
	}
}

// WithEvents publishes move, attack and search events tagged with gameID
func (p *Planner) WithEvents(bus events.Publisher, gameID string) *Planner {
	p.bus = bus
	p.gameID = gameID
	return p
}

// SetParams swaps the tuning used from the next turn on. An invalid tuning is
// rejected and the current one kept.
func (p *Planner) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.params = params
	return nil
}

// Params returns the current tuning
func (p *Planner) Params() Params {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.params
}

// Plan runs the search without touching the board. It returns the enemy
// snapshot and the population sorted best first.
func (p *Planner) Plan(s *core.State) ([]*core.Unit, []*Candidate) {
	return p.plan(s, p.Params())
}

func (p *Planner) plan(s *core.State, params Params) ([]*core.Unit, []*Candidate) {
	eval := NewEvaluator(p.oracle, s.Board, s.Objectives, core.TeamEnemy, params.Utility, p.logger)
	units, succinct := Snapshot(s, core.TeamEnemy, eval)

	search := NewSearch(params, eval, succinct, p.rng, p.logger)
	if p.bus != nil {
		search.OnReport(func(gen int, best *Candidate) {
			p.bus.Publish(events.NewSearchGenerationEvent(p.gameID, gen, best.Utility))
		})
	}
	return units, search.Run()
}

// TakeTurn plans and applies one enemy turn
func (p *Planner) TakeTurn(s *core.State) (*TurnReport, error) {
	start := time.Now()
	params := p.Params()
	s.Players.ClearHits()
	s.Barbarians.ClearHits()

	units, pop := p.plan(s, params)
	best := pop[0]

	exec, err := NewExecutor(params, p.rng, p.bus, p.gameID, p.logger).Execute(s, units, best)
	if err != nil {
		return nil, fmt.Errorf("execute plan: %w", err)
	}

	report := &TurnReport{
		Best:       best,
		Population: len(pop),
		Execution:  exec,
		Elapsed:    time.Since(start),
	}
	p.logger.Info().
		Int("units", len(units)).
		Float64("best_utility", best.Utility).
		Int("kills", exec.Kills()).
		Int("conversions", len(exec.Conversions)).
		Dur("elapsed", report.Elapsed).
		Msg("Enemy turn complete")
	return report, nil
}
