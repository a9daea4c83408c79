package ai

import "github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"

// SuccinctUnit is what the search needs to know about a unit
type SuccinctUnit struct {
	Origin      core.Coordinate
	Moves       []core.Coordinate // always contains Origin
	AttackRange int
	Locked      bool // sieging or holding a camp; Moves is just Origin
}

// Snapshot freezes team's units into row-major order and reduces each to its
// possible moves. A unit already sieging or capturing a camp may not leave.
func Snapshot(s *core.State, team core.Team, eval *Evaluator) ([]*core.Unit, []SuccinctUnit) {
	units := s.Roster(team).Snapshot()
	out := make([]SuccinctUnit, len(units))
	for i, u := range units {
		su := SuccinctUnit{Origin: u.Pos, AttackRange: u.AttackRange}
		score := eval.ScoreUnit(u.Pos, u.AttackRange)
		if score.Sieging || score.CapturingCamp {
			su.Moves = []core.Coordinate{u.Pos}
			su.Locked = true
		} else {
			su.Moves = core.MovementRange(s.Board, u.Pos, u.MovementRange)
		}
		out[i] = su
	}
	return units, out
}
