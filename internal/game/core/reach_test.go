package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coordSet(cs []Coordinate) map[Coordinate]bool {
	out := make(map[Coordinate]bool, len(cs))
	for _, c := range cs {
		out[c] = true
	}
	return out
}

func TestMovementRange_OpenBoard(t *testing.T) {
	board := NewBoard(7, 7)
	origin := Coordinate{3, 3}

	got := MovementRange(board, origin, 2)

	require.NotEmpty(t, got)
	assert.Equal(t, origin, got[0], "origin comes first")
	assert.Len(t, got, 13, "a radius-2 diamond holds 13 tiles")
	for _, c := range got {
		assert.LessOrEqual(t, c.DistanceTo(origin), 2)
	}
	assert.Len(t, coordSet(got), len(got), "no tile is visited twice")
}

func TestMovementRange_ZeroBudgetKeepsOrigin(t *testing.T) {
	board := NewBoard(3, 3)
	board.SetTeam(Coordinate{1, 1}, TeamEnemy)

	assert.Equal(t, []Coordinate{{1, 1}}, MovementRange(board, Coordinate{1, 1}, 0))
}

func TestMovementRange_BlockedByTerrainAndUnits(t *testing.T) {
	board := NewBoard(5, 1)
	board.T[board.Idx(2, 0)].Traversable = false // mountain in the corridor
	board.SetTeam(Coordinate{0, 0}, TeamEnemy)

	got := coordSet(MovementRange(board, Coordinate{0, 0}, 10))
	assert.Equal(t, map[Coordinate]bool{{0, 0}: true, {1, 0}: true}, got)

	board.T[board.Idx(2, 0)].Traversable = true
	board.SetTeam(Coordinate{3, 0}, TeamPlayer)
	got = coordSet(MovementRange(board, Coordinate{0, 0}, 10))
	assert.False(t, got[Coordinate{3, 0}], "occupied tiles are not entered")
	assert.False(t, got[Coordinate{4, 0}], "units block the path behind them")
}

func TestMovementRange_Monotonic(t *testing.T) {
	board := NewBoard(9, 9)
	for _, c := range []Coordinate{{4, 2}, {4, 3}, {4, 4}, {2, 6}} {
		board.T[c.ToIndex(board.W)].Traversable = false
	}
	board.SetTeam(Coordinate{5, 5}, TeamBarbarian)
	origin := Coordinate{3, 3}

	for k := 0; k < 10; k++ {
		small := MovementRange(board, origin, k)
		large := coordSet(MovementRange(board, origin, k+1))
		for _, c := range small {
			assert.True(t, large[c], "budget %d reaches %s but budget %d does not", k, c, k+1)
		}
	}
}

func TestAttackRange_PassesWaterNotMountains(t *testing.T) {
	board := NewBoard(5, 1)
	water := &board.T[board.Idx(1, 0)]
	water.Traversable = false
	water.AttackThrough = true
	mountain := &board.T[board.Idx(3, 0)]
	mountain.Traversable = false
	mountain.AttackThrough = false

	got := coordSet(AttackRange(board, Coordinate{0, 0}, 4))
	assert.True(t, got[Coordinate{2, 0}], "attacks cross water")
	assert.False(t, got[Coordinate{3, 0}])
	assert.False(t, got[Coordinate{4, 0}])
}

func TestAttackableFrom_FiltersOwnTeamAndEmpty(t *testing.T) {
	board := NewBoard(5, 5)
	board.SetTeam(Coordinate{2, 1}, TeamEnemy)
	board.SetTeam(Coordinate{2, 3}, TeamPlayer)
	board.SetTeam(Coordinate{3, 2}, TeamBarbarian)
	board.SetTeam(Coordinate{2, 2}, TeamEnemy) // attacker's own tile

	got := AttackableFrom(board, Coordinate{2, 2}, 1, TeamEnemy)
	found := map[Coordinate]int{}
	for _, r := range got {
		found[r.Pos] = r.Steps
	}
	assert.Equal(t, map[Coordinate]int{{2, 3}: 1, {3, 2}: 1}, found)

	u := &Unit{Pos: Coordinate{2, 2}, Team: TeamEnemy, AttackRange: 1}
	assert.ElementsMatch(t, []Coordinate{{2, 3}, {3, 2}}, AttackableTiles(board, u))
}

func TestAttackableFrom_StepCounts(t *testing.T) {
	board := NewBoard(6, 1)
	board.SetTeam(Coordinate{4, 0}, TeamPlayer)

	got := AttackableFrom(board, Coordinate{0, 0}, 4, TeamEnemy)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Steps)

	assert.Empty(t, AttackableFrom(board, Coordinate{0, 0}, 3, TeamEnemy))
}

func TestAttackableFrom_SymmetricOnOpenGrid(t *testing.T) {
	board := NewBoard(11, 11)
	center := Coordinate{5, 5}
	for idx := range board.T {
		board.T[idx].Team = TeamPlayer
	}
	board.SetTeam(center, TeamEnemy)

	for budget := 0; budget <= 4; budget++ {
		got := AttackableFrom(board, center, budget, TeamEnemy)
		want := 0
		for idx := range board.T {
			d := FromIndex(idx, board.W).DistanceTo(center)
			if d > 0 && d <= budget {
				want++
			}
		}
		assert.Len(t, got, want, "budget %d", budget)
		for _, r := range got {
			assert.Equal(t, r.Pos.DistanceTo(center), r.Steps)
		}
	}
}

func TestInMovementRange(t *testing.T) {
	board := NewBoard(4, 4)
	assert.True(t, InMovementRange(board, Coordinate{0, 0}, 3, Coordinate{1, 2}))
	assert.False(t, InMovementRange(board, Coordinate{0, 0}, 3, Coordinate{3, 3}))
}
