package core

import "sort"

// Roster is one team's units keyed by position.
// Snapshot gives the frozen iteration order that index-based planning relies on.
type Roster struct {
	units map[Coordinate]*Unit
}

func NewRoster() *Roster {
	return &Roster{units: make(map[Coordinate]*Unit)}
}

func (r *Roster) Len() int { return len(r.units) }

// At returns the unit standing at c, or nil
func (r *Roster) At(c Coordinate) *Unit { return r.units[c] }

func (r *Roster) Add(u *Unit) error {
	if _, ok := r.units[u.Pos]; ok {
		return ErrTileOccupied
	}
	r.units[u.Pos] = u
	return nil
}

// Remove drops the unit at c and returns it
func (r *Roster) Remove(c Coordinate) *Unit {
	u := r.units[c]
	delete(r.units, c)
	return u
}

// Move re-keys the unit at from to to and updates its position
func (r *Roster) Move(from, to Coordinate) error {
	u, ok := r.units[from]
	if !ok {
		return ErrTileEmpty
	}
	if from == to {
		return nil
	}
	if _, taken := r.units[to]; taken {
		return ErrTileOccupied
	}
	delete(r.units, from)
	u.Pos = to
	r.units[to] = u
	return nil
}

// Snapshot returns the units in row-major position order
func (r *Roster) Snapshot() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Pos, out[j].Pos
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}

// ClearHits resets the per-turn hit tint on every unit
func (r *Roster) ClearHits() {
	for _, u := range r.units {
		u.Hit = false
	}
}
