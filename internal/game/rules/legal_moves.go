package rules

import (
	"errors"
	"fmt"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

var (
	ErrNoUnit        = errors.New("no unit at origin")
	ErrWrongTeam     = errors.New("unit belongs to another team")
	ErrOutOfRange    = errors.New("target outside movement range")
	ErrNotAttackable = errors.New("target cannot be attacked from here")
)

// LegalMoves lists every tile the unit at from may move to this turn, its own tile included
func LegalMoves(s *core.State, from core.Coordinate) []core.Coordinate {
	u := s.UnitAt(from)
	if u == nil {
		return nil
	}
	return core.MovementRange(s.Board, u.Pos, u.MovementRange)
}

// ValidateMove checks that team owns the unit at from and that it can walk to to
func ValidateMove(s *core.State, team core.Team, from, to core.Coordinate) error {
	u := s.UnitAt(from)
	if u == nil {
		return fmt.Errorf("move %s: %w", from, ErrNoUnit)
	}
	if u.Team != team {
		return fmt.Errorf("move %s: %w", from, ErrWrongTeam)
	}
	if !core.InMovementRange(s.Board, from, u.MovementRange, to) {
		return fmt.Errorf("move %s to %s: %w", from, to, ErrOutOfRange)
	}
	return nil
}

// ValidateAttack checks that the unit at from can hit an opposing unit at target
func ValidateAttack(s *core.State, team core.Team, from, target core.Coordinate) error {
	u := s.UnitAt(from)
	if u == nil {
		return fmt.Errorf("attack from %s: %w", from, ErrNoUnit)
	}
	if u.Team != team {
		return fmt.Errorf("attack from %s: %w", from, ErrWrongTeam)
	}
	for _, c := range core.AttackableTiles(s.Board, u) {
		if c == target {
			return nil
		}
	}
	return fmt.Errorf("attack %s from %s: %w", target, from, ErrNotAttackable)
}
