package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/testutil"
)

type recorder struct {
	events []events.Event
}

func (r *recorder) Publish(e events.Event) { r.events = append(r.events, e) }

func (r *recorder) ofType(eventType string) []events.Event {
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func planFor(positions ...core.Coordinate) *Candidate {
	c := &Candidate{Genes: make([]Gene, len(positions))}
	for i, p := range positions {
		c.Genes[i].Pos = p
	}
	return c
}

// assertEnemyTags checks that enemy units and enemy-tagged tiles match one to one
func assertEnemyTags(t *testing.T, s *core.State) {
	t.Helper()
	require.NoError(t, s.Validate())
	tagged := 0
	for idx := range s.Board.T {
		if s.Board.T[idx].Team == core.TeamEnemy {
			tagged++
		}
	}
	assert.Equal(t, s.Enemies.Len(), tagged)
}

func TestExecute_ClosestMoveFallback(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.....P
		......
		......
		......
		......
		E.....

		enemy scout 2 0
		enemy scout 1 1
	`)
	units := s.Enemies.Snapshot()
	want := core.Coordinate{X: 4, Y: 4}
	rec := &recorder{}

	x := NewExecutor(DefaultParams(), testutil.NewTestRNG(1), rec, "g", testutil.NopLogger())
	exec, err := x.Execute(s, units, planFor(want, want))
	require.NoError(t, err)

	require.Len(t, exec.Moves, 2)
	assert.Equal(t, want, exec.Moves[0].To)
	assert.Equal(t, core.Coordinate{X: 3, Y: 4}, exec.Moves[1].To)
	assert.Equal(t, want, exec.Moves[1].Desired)

	assert.Equal(t, core.TeamEnemy, s.Board.TeamAt(want))
	assert.Equal(t, core.TeamEnemy, s.Board.TeamAt(core.Coordinate{X: 3, Y: 4}))
	assert.Equal(t, core.TeamNone, s.Board.TeamAt(core.Coordinate{X: 2, Y: 0}))
	assertEnemyTags(t, s)

	moved := rec.ofType(events.TypeUnitMoved)
	require.Len(t, moved, 2)
	assert.False(t, moved[0].(*events.UnitMovedEvent).Fallback)
	assert.True(t, moved[1].(*events.UnitMovedEvent).Fallback)
}

func TestClosestMove_StaysPutWhenNothingFits(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.#..P
		#...#
		.....
		E....

		enemy melee 0 0
	`)
	u := s.Enemies.At(core.Coordinate{X: 0, Y: 0})
	x := NewExecutor(DefaultParams(), testutil.NewTestRNG(1), nil, "g", testutil.NopLogger())

	got := x.closestMove(s.Board, u, core.Coordinate{X: 2, Y: 2}, map[core.Coordinate]bool{})
	assert.Equal(t, u.Pos, got)
}

func TestExecute_DesiredTileHeldByLaterUnit(t *testing.T) {
	s := testutil.StateFromMap(t, `
		....P
		.....
		.....
		E....

		enemy melee 1 1
		enemy melee 3 2
	`)
	units := s.Enemies.Snapshot()
	x := NewExecutor(DefaultParams(), testutil.NewTestRNG(1), nil, "g", testutil.NopLogger())

	// the first unit wants the second unit's tile before it has moved
	exec, err := x.Execute(s, units, planFor(core.Coordinate{X: 3, Y: 2}, core.Coordinate{X: 3, Y: 3}))
	require.NoError(t, err)
	assert.Equal(t, core.Coordinate{X: 2, Y: 2}, exec.Moves[0].To)
	assert.Equal(t, core.Coordinate{X: 3, Y: 3}, exec.Moves[1].To)
	assertEnemyTags(t, s)
}

func TestExecute_KillAndConversion(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.......P
		........
		........
		........
		........
		........
		........
		E.......

		enemy melee 3 3
		barbarian scout 4 3
	`)
	s.Barbarians.At(core.Coordinate{X: 4, Y: 3}).HP = 3
	units := s.Enemies.Snapshot()
	rec := &recorder{}

	// accuracy roll 0 hits; damage roll lands on 3; conversion roll 10 spawns a melee unit
	rng := testutil.NewScriptedRNG(0, 0, 10)
	x := NewExecutor(DefaultParams(), rng, rec, "g", testutil.NopLogger())
	exec, err := x.Execute(s, units, planFor(core.Coordinate{X: 3, Y: 3}))
	require.NoError(t, err)
	assert.Zero(t, rng.Remaining())

	require.Len(t, exec.Attacks, 1)
	assert.Equal(t, 3, exec.Attacks[0].Damage)
	assert.True(t, exec.Attacks[0].Killed)
	assert.Equal(t, 0, s.Barbarians.Len())
	assert.Equal(t, core.TeamNone, s.Board.TeamAt(core.Coordinate{X: 4, Y: 3}))

	spawn := core.Coordinate{X: 5, Y: 2}
	require.Len(t, exec.Conversions, 1)
	assert.Equal(t, spawn, exec.Conversions[0].SpawnedAt)
	assert.Equal(t, core.ClassMelee, exec.Conversions[0].Class)

	spawned := s.Enemies.At(spawn)
	require.NotNil(t, spawned)
	assert.Equal(t, core.ClassMelee, spawned.Class)
	assert.Equal(t, 2, s.Enemies.Len())
	assertEnemyTags(t, s)

	assert.Len(t, rec.ofType(events.TypeUnitKilled), 1)
	assert.Len(t, rec.ofType(events.TypeBarbarianConverted), 1)
}

func TestExecute_ConversionClasses(t *testing.T) {
	tests := []struct {
		roll    int
		want    core.Class
		convert bool
	}{
		{roll: 0, want: core.ClassMelee, convert: true},
		{roll: 14, want: core.ClassMelee, convert: true},
		{roll: 15, want: core.ClassRanged, convert: true},
		{roll: 29, want: core.ClassRanged, convert: true},
		{roll: 30, want: core.ClassMage, convert: true},
		{roll: 44, want: core.ClassMage, convert: true},
		{roll: 45, convert: false},
		{roll: 99, convert: false},
	}
	for _, tt := range tests {
		s := testutil.StateFromMap(t, `
			.......P
			........
			........
			........
			........
			........
			........
			E.......

			enemy melee 3 3
			barbarian scout 4 3
		`)
		s.Barbarians.At(core.Coordinate{X: 4, Y: 3}).HP = 1
		x := NewExecutor(DefaultParams(), testutil.NewScriptedRNG(0, 0, tt.roll), nil, "g", testutil.NopLogger())

		exec, err := x.Execute(s, s.Enemies.Snapshot(), planFor(core.Coordinate{X: 3, Y: 3}))
		require.NoError(t, err)
		if !tt.convert {
			assert.Empty(t, exec.Conversions, "roll %d", tt.roll)
			assert.Equal(t, 1, s.Enemies.Len())
			continue
		}
		require.Len(t, exec.Conversions, 1, "roll %d", tt.roll)
		assert.Equal(t, tt.want, exec.Conversions[0].Class, "roll %d", tt.roll)
	}
}

func TestExecute_SpawnWalksTowardCastle(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.......P
		........
		.....#..
		....~...
		........
		........
		........
		E.......

		enemy melee 1 1
		barbarian scout 2 1
	`)
	s.Barbarians.At(core.Coordinate{X: 2, Y: 1}).HP = 1
	x := NewExecutor(DefaultParams(), testutil.NewScriptedRNG(0, 0, 40), nil, "g", testutil.NopLogger())

	exec, err := x.Execute(s, s.Enemies.Snapshot(), planFor(core.Coordinate{X: 1, Y: 1}))
	require.NoError(t, err)

	// (5,2) is a mountain and (4,3) is water
	require.Len(t, exec.Conversions, 1)
	assert.Equal(t, core.Coordinate{X: 3, Y: 4}, exec.Conversions[0].SpawnedAt)
}

func TestExecute_AccuracyMissOnGuard(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.......P
		........
		........
		........
		E.......

		enemy ranged 1 1
		barbarian guard 4 1
	`)
	guard := s.Barbarians.At(core.Coordinate{X: 4, Y: 1})
	rec := &recorder{}

	// 85 accuracy less the guard penalty leaves 65, so a roll of 70 misses
	x := NewExecutor(DefaultParams(), testutil.NewScriptedRNG(70), rec, "g", testutil.NopLogger())
	exec, err := x.Execute(s, s.Enemies.Snapshot(), planFor(core.Coordinate{X: 1, Y: 1}))
	require.NoError(t, err)

	require.Len(t, exec.Attacks, 1)
	assert.Equal(t, 0, exec.Attacks[0].Damage)
	assert.False(t, exec.Attacks[0].Killed)
	assert.Equal(t, core.GuardHP, guard.HP)
	assert.True(t, guard.Hit, "a miss still tints the target")

	attacked := rec.ofType(events.TypeUnitAttacked)
	require.Len(t, attacked, 1)
	assert.Equal(t, 0, attacked[0].(*events.UnitAttackedEvent).Damage)
}

func TestExecute_TargetsWeakestEnemy(t *testing.T) {
	s := testutil.StateFromMap(t, `
		.......P
		........
		........
		........
		E.......

		enemy ranged 3 2
		player melee 3 0
		player mage 5 2
		barbarian guard 3 4
	`)
	s.Players.At(core.Coordinate{X: 5, Y: 2}).HP = 4
	x := NewExecutor(DefaultParams(), testutil.NewScriptedRNG(0, 0), nil, "g", testutil.NopLogger())

	exec, err := x.Execute(s, s.Enemies.Snapshot(), planFor(core.Coordinate{X: 3, Y: 2}))
	require.NoError(t, err)
	require.Len(t, exec.Attacks, 1)
	assert.Equal(t, core.Coordinate{X: 5, Y: 2}, exec.Attacks[0].Target)
}

func TestExecute_PlanLengthMismatch(t *testing.T) {
	s := testutil.StateFromMap(t, campMap)
	x := NewExecutor(DefaultParams(), testutil.NewTestRNG(1), nil, "g", testutil.NopLogger())

	_, err := x.Execute(s, nil, planFor(core.Coordinate{}))
	assert.Error(t, err)
}
