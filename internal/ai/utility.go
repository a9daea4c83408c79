package ai

import (
	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/common"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
)

// UnitScore is the per-unit record of a candidate assignment
type UnitScore struct {
	Value         float64
	Defending     bool
	Sieging       bool
	CapturingCamp bool
	AbleToAttack  bool
}

type scoreKey struct {
	pos         core.Coordinate
	attackRange int
}

// Evaluator scores hypothetical unit positions against a frozen board.
// It caches per-position scores and is not safe for concurrent use.
type Evaluator struct {
	oracle  *distance.Oracle
	board   *core.Board
	obj     core.Objectives
	team    core.Team
	weights UtilityWeights
	logger  zerolog.Logger

	cache   map[scoreKey]UnitScore
	missing map[core.Coordinate]bool
}

// NewEvaluator creates an evaluator for units of team. The enemy castle is
// treated as the team's own castle and the player castle as the target.
func NewEvaluator(oracle *distance.Oracle, board *core.Board, obj core.Objectives, team core.Team, weights UtilityWeights, logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		oracle:  oracle,
		board:   board,
		obj:     obj,
		team:    team,
		weights: weights,
		logger:  logger.With().Str("component", "utility").Logger(),
		cache:   make(map[scoreKey]UnitScore),
		missing: make(map[core.Coordinate]bool),
	}
}

// lookup resolves a distance, logging the first miss for each tile
func (e *Evaluator) lookup(d int, ok bool, pos core.Coordinate, goal string) int {
	if ok {
		return d
	}
	if !e.missing[pos] {
		e.missing[pos] = true
		e.logger.Debug().Str("tile", pos.String()).Str("goal", goal).Msg("No distance entry, treating as unreachable")
	}
	return distance.Unreachable
}

// campDistance is the graph distance to the nearest camp by Manhattan distance,
// 0 on any camp footprint tile and -1 when the map has no camps
func (e *Evaluator) campDistance(pos core.Coordinate) int {
	if len(e.obj.Camps) == 0 {
		return -1
	}
	for _, camp := range e.obj.Camps {
		for _, c := range core.CampFootprint(camp) {
			if c == pos {
				return 0
			}
		}
	}
	camp := e.obj.Camps[common.Nearest(pos, e.obj.Camps)]
	d, ok := e.oracle.ToCamp(camp, pos)
	return e.lookup(d, ok, pos, "camp")
}

// ScoreUnit scores a unit standing at pos with the given attack range
func (e *Evaluator) ScoreUnit(pos core.Coordinate, attackRange int) UnitScore {
	key := scoreKey{pos: pos, attackRange: attackRange}
	if s, ok := e.cache[key]; ok {
		return s
	}

	w := e.weights
	d, ok := e.oracle.ToEnemyCastle(pos)
	dOwn := e.lookup(d, ok, pos, "enemy_castle")
	d, ok = e.oracle.ToPlayerCastle(pos)
	dFoe := e.lookup(d, ok, pos, "player_castle")
	dCamp := e.campDistance(pos)
	attackable := core.AttackableFrom(e.board, pos, attackRange, e.team)

	s := UnitScore{
		Defending:     dOwn <= w.MinDistance,
		Sieging:       dFoe == 0,
		CapturingCamp: dCamp == 0,
		AbleToAttack:  len(attackable) > 0,
	}

	if dFoe == 0 {
		s.Value += 2 * w.SiegingWeight
	} else {
		s.Value += w.SiegingWeight / float64(dFoe)
	}

	switch {
	case dCamp > 0:
		s.Value += w.CampWeight / float64(dCamp)
	case dCamp == 0:
		s.Value += 3 * w.CampWeight
	}

	if s.AbleToAttack {
		closest := attackable[0].Steps
		for _, r := range attackable[1:] {
			closest = min(closest, r.Steps)
		}
		s.Value += w.AttackValue * float64(closest)
	}

	e.cache[key] = s
	return s
}

// ScoreState aggregates per-unit scores, dividing the total when too few units defend
func (e *Evaluator) ScoreState(genes []Gene) float64 {
	total := 0.0
	defending := 0
	for _, g := range genes {
		total += g.Score.Value
		if g.Score.Defending {
			defending++
		}
	}
	if defending < e.weights.MinDefense {
		total /= e.weights.DefensePenalty
	}
	return total
}
