package common

import (
	"golang.org/x/exp/constraints"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Sign returns -1, 0 or 1 according to the sign of x
func Sign[T constraints.Signed](x T) T {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// Clamp bounds x to [lo, hi]
func Clamp[T constraints.Ordered](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DirectionTo returns the per-axis unit step from one coordinate toward another
func DirectionTo(from, to core.Coordinate) core.Coordinate {
	return core.Coordinate{X: Sign(to.X - from.X), Y: Sign(to.Y - from.Y)}
}

// Nearest returns the index of the candidate closest to c by Manhattan distance,
// or -1 when there are no candidates. Ties keep the earliest candidate.
func Nearest(c core.Coordinate, candidates []core.Coordinate) int {
	best, bestDist := -1, 0
	for i, cand := range candidates {
		if d := c.DistanceTo(cand); best == -1 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
