package distance

import (
	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Build computes the distance from every tile to each objective.
// Unreachable pairs are left out.
func Build(b *core.Board, obj core.Objectives, logger zerolog.Logger) *Oracle {
	logger = logger.With().Str("component", "DistanceBuilder").Logger()
	o := New()

	fill := func(t Table, goal core.Coordinate) {
		for idx := range b.T {
			c := core.FromIndex(idx, b.W)
			if d, ok := Between(b, c, goal); ok {
				t[c] = d
			}
		}
	}

	fill(o.PlayerCastle, obj.PlayerCastle)
	fill(o.EnemyCastle, obj.EnemyCastle)
	for _, camp := range obj.Camps {
		fill(o.Camp(camp), camp)
	}

	logger.Info().
		Int("width", b.W).
		Int("height", b.H).
		Int("camps", len(obj.Camps)).
		Int("entries", o.Size()).
		Msg("Distance oracle built")
	return o
}
