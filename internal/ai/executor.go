package ai

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/common"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
)

// Move is one executed relocation
type Move struct {
	From    core.Coordinate
	To      core.Coordinate
	Desired core.Coordinate
}

// Attack is one resolved attack
type Attack struct {
	Attacker core.Coordinate
	Target   core.Coordinate
	Damage   int
	Killed   bool
}

// Conversion is a barbarian that rejoined as an enemy unit
type Conversion struct {
	KilledAt  core.Coordinate
	SpawnedAt core.Coordinate
	Class     core.Class
}

// Execution summarizes what a plan did to the board
type Execution struct {
	Moves       []Move
	Attacks     []Attack
	Conversions []Conversion
}

// Kills counts attacks that removed their target
func (x *Execution) Kills() int {
	n := 0
	for _, a := range x.Attacks {
		if a.Killed {
			n++
		}
	}
	return n
}

// Executor applies a chosen candidate to the live board
type Executor struct {
	params Params
	rng    core.RNG
	bus    events.Publisher
	gameID string
	logger zerolog.Logger
}

// NewExecutor creates an executor. bus may be nil.
func NewExecutor(params Params, rng core.RNG, bus events.Publisher, gameID string, logger zerolog.Logger) *Executor {
	return &Executor{
		params: params,
		rng:    rng,
		bus:    bus,
		gameID: gameID,
		logger: logger.With().Str("component", "plan_executor").Logger(),
	}
}

func (x *Executor) publish(e events.Event) {
	if x.bus != nil {
		x.bus.Publish(e)
	}
}

// Execute moves each unit to its planned tile in snapshot order, then attacks
// the weakest enemy in reach. units must be the snapshot the plan was built from.
func (x *Executor) Execute(s *core.State, units []*core.Unit, plan *Candidate) (*Execution, error) {
	if len(units) != len(plan.Genes) {
		return nil, fmt.Errorf("plan has %d genes for %d units", len(plan.Genes), len(units))
	}
	out := &Execution{}
	assigned := make(map[core.Coordinate]bool, len(units))

	for k, u := range units {
		origin := u.Pos
		desired := plan.Genes[k].Pos
		target := desired

		taken := assigned[desired] || (desired != origin && s.Board.TeamAt(desired) != core.TeamNone)
		if taken {
			target = x.closestMove(s.Board, u, desired, assigned)
			x.logger.Debug().
				Str("origin", origin.String()).
				Str("desired", desired.String()).
				Str("resolved", target.String()).
				Msg("Target taken, using closest free tile")
		}

		if err := s.Relocate(u.Team, origin, target); err != nil {
			return out, fmt.Errorf("unit %d: %w", k, err)
		}
		assigned[target] = true
		out.Moves = append(out.Moves, Move{From: origin, To: target, Desired: desired})
		x.publish(events.NewUnitMovedEvent(x.gameID, u.Team, origin, target, desired))

		if err := x.attack(s, u, out); err != nil {
			return out, err
		}
	}
	return out, nil
}

// closestMove walks back from the desired tile toward the unit's origin and
// returns the first free tile the unit can still reach. The unit stays put
// when none is found.
func (x *Executor) closestMove(b *core.Board, u *core.Unit, desired core.Coordinate, assigned map[core.Coordinate]bool) core.Coordinate {
	origin := u.Pos
	reach := make(map[core.Coordinate]bool)
	for _, c := range core.MovementRange(b, origin, u.MovementRange) {
		reach[c] = true
	}
	canMoveHere := func(c core.Coordinate) bool {
		if c == origin {
			return true
		}
		return reach[c] && !assigned[c] && b.TeamAt(c) == core.TeamNone
	}

	step := common.DirectionTo(origin, desired)
	cur := desired
	for cur != origin {
		candidates := [3]core.Coordinate{
			{X: cur.X - step.X, Y: cur.Y},
			{X: cur.X, Y: cur.Y - step.Y},
			{X: cur.X - step.X, Y: cur.Y - step.Y},
		}
		for _, c := range candidates {
			if c != cur && canMoveHere(c) {
				return c
			}
		}
		if cur.X != origin.X {
			cur.X -= step.X
		}
		if cur.Y != origin.Y {
			cur.Y -= step.Y
		}
	}
	return origin
}

func (x *Executor) attack(s *core.State, u *core.Unit, out *Execution) error {
	targets := core.AttackableTiles(s.Board, u)
	if len(targets) == 0 {
		return nil
	}
	var victim *core.Unit
	for _, c := range targets {
		v := s.UnitAt(c)
		if v != nil && (victim == nil || v.HP < victim.HP) {
			victim = v
		}
	}
	if victim == nil {
		return nil
	}

	res := x.params.Combat.Resolve(x.rng, u, victim)
	out.Attacks = append(out.Attacks, Attack{Attacker: u.Pos, Target: victim.Pos, Damage: res.Damage, Killed: res.Killed})
	x.publish(events.NewUnitAttackedEvent(x.gameID, u.Pos, victim.Pos, victim.Team, res.Damage, victim.HP, res.Killed))
	if !res.Killed {
		return nil
	}

	s.Remove(victim.Pos)
	x.logger.Info().
		Str("attacker", u.Pos.String()).
		Str("victim", victim.Pos.String()).
		Str("victim_team", victim.Team.String()).
		Msg("Unit killed")
	x.publish(events.NewUnitKilledEvent(x.gameID, victim.Pos, victim.Team, victim.Class, u.Team))

	if victim.Team == core.TeamBarbarian {
		return x.convert(s, victim.Pos, out)
	}
	return nil
}

// convert rolls whether a killed barbarian joins the enemy army. The same
// roll picks the class of the new unit.
func (x *Executor) convert(s *core.State, killedAt core.Coordinate, out *Execution) error {
	roll := x.rng.Intn(100)
	if roll >= x.params.ConversionPercent {
		return nil
	}
	class := core.ClassMage
	switch {
	case roll < 15:
		class = core.ClassMelee
	case roll < 30:
		class = core.ClassRanged
	}

	spawn, ok := x.spawnPoint(s.Board, s.Objectives.EnemyCastle)
	if !ok {
		x.logger.Warn().Str("castle", s.Objectives.EnemyCastle.String()).Msg("No free tile for converted barbarian")
		return nil
	}
	u, err := core.NewUnit(core.TeamEnemy, class, spawn)
	if err != nil {
		return err
	}
	if err := s.Place(u); err != nil {
		return fmt.Errorf("spawn converted barbarian: %w", err)
	}
	out.Conversions = append(out.Conversions, Conversion{KilledAt: killedAt, SpawnedAt: spawn, Class: class})
	x.logger.Info().
		Str("spawned_at", spawn.String()).
		Str("class", class.String()).
		Int("roll", roll).
		Msg("Barbarian converted")
	x.publish(events.NewBarbarianConvertedEvent(x.gameID, killedAt, spawn, class, roll))
	return nil
}

// spawnPoint walks diagonally from the nominal spawn point toward the castle
// and returns the first tile a new unit can stand on
func (x *Executor) spawnPoint(b *core.Board, castle core.Coordinate) (core.Coordinate, bool) {
	cur := castle.Add(x.params.SpawnOffset)
	for {
		if t := b.GetTile(cur); t != nil && t.CanEnter() {
			return cur, true
		}
		if cur == castle {
			return core.Coordinate{}, false
		}
		cur = cur.Add(common.DirectionTo(cur, castle))
	}
}
