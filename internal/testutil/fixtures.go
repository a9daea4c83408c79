package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/distance"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/mapgen"
)

// StateFromMap parses a map in the text format and places its units.
// Rows may be indented; leading whitespace is stripped from every line.
func StateFromMap(t *testing.T, text string) *core.State {
	t.Helper()
	m := ParseMap(t, text)
	s, err := m.NewState()
	require.NoError(t, err)
	return s
}

// ParseMap parses a map in the text format
func ParseMap(t *testing.T, text string) *mapgen.Map {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	m, err := mapgen.Parse(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	require.NoError(t, err)
	return m
}

// PlaceUnit adds a fresh unit of the given class to s
func PlaceUnit(t *testing.T, s *core.State, team core.Team, class core.Class, x, y int) *core.Unit {
	t.Helper()
	u, err := core.NewUnit(team, class, core.Coordinate{X: x, Y: y})
	require.NoError(t, err)
	require.NoError(t, s.Place(u))
	return u
}

// BuildOracle computes the distance oracle for s
func BuildOracle(s *core.State) *distance.Oracle {
	return distance.Build(s.Board, s.Objectives, NopLogger())
}
