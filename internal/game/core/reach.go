package core

// Reach is a tile found by a range search with the number of steps taken from the origin
type Reach struct {
	Pos   Coordinate
	Steps int
}

// expand runs a budgeted search from origin. Steps with the most budget left are
// expanded first so every tile is settled on its cheapest visit and never revisited.
func expand(b *Board, origin Coordinate, budget int, pass func(*Tile) bool) []Reach {
	if !b.InBounds(origin) {
		return nil
	}
	visited := make([]bool, len(b.T))
	visited[origin.ToIndex(b.W)] = true
	out := []Reach{{Pos: origin}}

	f := NewMaxFrontier()
	f.Push(Step{Pos: origin, Cost: budget})
	for f.Len() > 0 {
		cur := f.Pop()
		if cur.Cost <= 0 {
			continue
		}
		for _, n := range cur.Pos.ValidNeighbors(b.W, b.H) {
			idx := n.ToIndex(b.W)
			if visited[idx] || !pass(&b.T[idx]) {
				continue
			}
			visited[idx] = true
			out = append(out, Reach{Pos: n, Steps: budget - cur.Cost + 1})
			f.Push(Step{Pos: n, Cost: cur.Cost - 1})
		}
	}
	return out
}

func positions(rs []Reach) []Coordinate {
	out := make([]Coordinate, len(rs))
	for i, r := range rs {
		out[i] = r.Pos
	}
	return out
}

// MovementRange returns every tile a unit at origin can walk to with the given budget.
// Only traversable, unoccupied tiles are entered; the origin is always included.
func MovementRange(b *Board, origin Coordinate, budget int) []Coordinate {
	return positions(expand(b, origin, budget, (*Tile).CanEnter))
}

// AttackRange returns every tile an attack from origin can reach
func AttackRange(b *Board, origin Coordinate, budget int) []Coordinate {
	return positions(AttackReach(b, origin, budget))
}

// AttackReach is AttackRange with step counts
func AttackReach(b *Board, origin Coordinate, budget int) []Reach {
	return expand(b, origin, budget, func(t *Tile) bool { return t.AttackThrough })
}

// AttackableFrom returns tiles in attack range from pos holding a unit of any team
// other than team. The tile at pos itself is never a target.
func AttackableFrom(b *Board, pos Coordinate, budget int, team Team) []Reach {
	var out []Reach
	for _, r := range AttackReach(b, pos, budget) {
		if r.Pos == pos {
			continue
		}
		tt := b.TeamAt(r.Pos)
		if tt != TeamNone && tt != team {
			out = append(out, r)
		}
	}
	return out
}

// AttackableTiles lists the enemies of u that it could attack from where it stands
func AttackableTiles(b *Board, u *Unit) []Coordinate {
	return positions(AttackableFrom(b, u.Pos, u.AttackRange, u.Team))
}

// InMovementRange reports whether target is reachable by a unit at origin
func InMovementRange(b *Board, origin Coordinate, budget int, target Coordinate) bool {
	for _, c := range MovementRange(b, origin, budget) {
		if c == target {
			return true
		}
	}
	return false
}
