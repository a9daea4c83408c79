package distance

import "github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"

// Between returns the walking distance from src to goal using a bidirectional
// search. Only traversable tiles are entered; units on the map are ignored.
// The second result is false when no path exists.
func Between(b *core.Board, src, goal core.Coordinate) (int, bool) {
	if !b.InBounds(src) || !b.InBounds(goal) {
		return Unreachable, false
	}
	if src == goal {
		return 0, true
	}

	seen := [2][]int{make([]int, len(b.T)), make([]int, len(b.T))}
	for i := range seen[0] {
		seen[0][i] = -1
		seen[1][i] = -1
	}
	frontiers := [2]*core.Frontier{core.NewMinFrontier(), core.NewMinFrontier()}
	for side, origin := range [2]core.Coordinate{src, goal} {
		seen[side][origin.ToIndex(b.W)] = 0
		frontiers[side].Push(core.Step{Pos: origin})
	}

	best := -1
	for frontiers[0].Len() > 0 && frontiers[1].Len() > 0 {
		headF, headB := frontiers[0].Peek().Cost, frontiers[1].Peek().Cost
		// no unexplored meeting can beat best once the heads sum past it
		if best >= 0 && headF+headB >= best {
			break
		}
		side := 0
		if headB < headF {
			side = 1
		}
		mine, other := seen[side], seen[1-side]

		cur := frontiers[side].Pop()
		for _, n := range cur.Pos.ValidNeighbors(b.W, b.H) {
			idx := n.ToIndex(b.W)
			if !b.T[idx].Traversable {
				continue
			}
			if c := other[idx]; c >= 0 {
				if d := cur.Cost + 1 + c; best < 0 || d < best {
					best = d
				}
			}
			if mine[idx] < 0 {
				mine[idx] = cur.Cost + 1
				frontiers[side].Push(core.Step{Pos: n, Cost: cur.Cost + 1})
			}
		}
	}

	if best < 0 {
		return Unreachable, false
	}
	return best, true
}
