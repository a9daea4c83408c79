// Package distance precomputes graph distances from every tile to each strategic
// objective and persists them in a line-oriented text file.
package distance

import (
	"errors"
	"fmt"
	"math"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Unreachable stands in for a missing entry. Callers treat it as infinity.
const Unreachable = math.MaxInt32

// ErrStaleOracle means the tables were built for a different map
var ErrStaleOracle = errors.New("distance tables do not match the map")

// Table maps a tile to its distance from one objective
type Table map[core.Coordinate]int

// Lookup returns the stored distance or Unreachable
func (t Table) Lookup(c core.Coordinate) (int, bool) {
	d, ok := t[c]
	if !ok {
		return Unreachable, false
	}
	return d, true
}

// Oracle holds the distance tables for one map. It is read-only once built and
// safe to share between goroutines.
type Oracle struct {
	PlayerCastle Table
	EnemyCastle  Table
	Camps        map[core.Coordinate]Table

	campOrder []core.Coordinate
}

// New returns an empty oracle
func New() *Oracle {
	return &Oracle{
		PlayerCastle: make(Table),
		EnemyCastle:  make(Table),
		Camps:        make(map[core.Coordinate]Table),
	}
}

// Camp returns the table for the camp anchored at c, creating it if needed.
// Camps keep the order in which they were first added.
func (o *Oracle) Camp(c core.Coordinate) Table {
	if t, ok := o.Camps[c]; ok {
		return t
	}
	t := make(Table)
	o.Camps[c] = t
	o.campOrder = append(o.campOrder, c)
	return t
}

// CampOrder lists camp anchors in insertion order
func (o *Oracle) CampOrder() []core.Coordinate {
	out := make([]core.Coordinate, len(o.campOrder))
	copy(out, o.campOrder)
	return out
}

// ToPlayerCastle is the distance from c to the player castle
func (o *Oracle) ToPlayerCastle(c core.Coordinate) (int, bool) {
	return o.PlayerCastle.Lookup(c)
}

// ToEnemyCastle is the distance from c to the enemy castle
func (o *Oracle) ToEnemyCastle(c core.Coordinate) (int, bool) {
	return o.EnemyCastle.Lookup(c)
}

// ToCamp is the distance from c to the camp anchored at camp
func (o *Oracle) ToCamp(camp, c core.Coordinate) (int, bool) {
	t, ok := o.Camps[camp]
	if !ok {
		return Unreachable, false
	}
	return t.Lookup(c)
}

// Size returns the total number of stored entries
func (o *Oracle) Size() int {
	n := len(o.PlayerCastle) + len(o.EnemyCastle)
	for _, t := range o.Camps {
		n += len(t)
	}
	return n
}

type goalTable struct {
	name string
	t    Table
	at   core.Coordinate
}

// Check reports ErrStaleOracle unless every objective of obj has a table with 0
// at the objective itself and no entry lies outside b
func (o *Oracle) Check(b *core.Board, obj core.Objectives) error {
	if len(o.Camps) != len(obj.Camps) {
		return fmt.Errorf("%d camp tables for %d camps: %w", len(o.Camps), len(obj.Camps), ErrStaleOracle)
	}
	goals := []goalTable{
		{headerPlayerCastle, o.PlayerCastle, obj.PlayerCastle},
		{headerEnemyCastle, o.EnemyCastle, obj.EnemyCastle},
	}
	for _, camp := range obj.Camps {
		t, ok := o.Camps[camp]
		if !ok {
			return fmt.Errorf("no table for camp %s: %w", camp, ErrStaleOracle)
		}
		goals = append(goals, goalTable{"camp " + camp.String(), t, camp})
	}

	for _, g := range goals {
		if d, ok := g.t.Lookup(g.at); !ok || d != 0 {
			return fmt.Errorf("%s is not at distance 0 from itself: %w", g.name, ErrStaleOracle)
		}
		for c := range g.t {
			if !b.InBounds(c) {
				return fmt.Errorf("%s entry %s is off a %dx%d board: %w", g.name, c, b.W, b.H, ErrStaleOracle)
			}
		}
	}
	return nil
}
