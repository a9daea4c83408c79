package ai

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/testutil"
)

const skirmishMap = `
	.........P
	..........
	...Cc.....
	...cc..#..
	.......#..
	..~.......
	..........
	E.........

	enemy melee 1 6
	enemy ranged 2 7
	enemy mage 1 5
	enemy melee 3 6
	player melee 8 1
	barbarian guard 3 2
	barbarian scout 4 3
`

func testParams() Params {
	p := DefaultParams()
	p.PopNum = 30
	p.GenNum = 12
	p.MutNum = 2
	p.ReportInterval = 1
	return p
}

func newSearch(t *testing.T, s *core.State, params Params, rng core.RNG) (*Search, []SuccinctUnit) {
	t.Helper()
	eval := newEvaluator(t, s)
	_, units := Snapshot(s, core.TeamEnemy, eval)
	return NewSearch(params, eval, units, rng, testutil.NopLogger()), units
}

func TestBoltzmannWeights(t *testing.T) {
	rng := testutil.NewTestRNG(7)
	pop := make([]*Candidate, 25)
	for i := range pop {
		pop[i] = &Candidate{Utility: rng.Float64()*20 - 5}
	}

	weights := BoltzmannWeights(pop)

	sum := 0.0
	for i := range pop {
		sum += weights[i]
		for j := range pop {
			if pop[i].Utility > pop[j].Utility {
				assert.GreaterOrEqual(t, weights[i], weights[j])
			}
		}
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestBoltzmannWeights_EqualUtilities(t *testing.T) {
	pop := []*Candidate{{Utility: 3}, {Utility: 3}, {Utility: 3}, {Utility: 3}}
	for _, w := range BoltzmannWeights(pop) {
		assert.InDelta(t, 0.25, w, 1e-12)
	}
}

func TestPickParents(t *testing.T) {
	s := &Search{params: DefaultParams()}

	s.rng = &testutil.ScriptedRNG{Floats: []float64{0.2, 0.7}}
	i, j := s.pickParents([]float64{0.5, 0.5})
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)

	// every draw lands on index 0, so the clamp picks its neighbor
	s.rng = testutil.NewScriptedRNG()
	i, j = s.pickParents([]float64{0.25, 0.25, 0.25, 0.25})
	assert.Equal(t, 0, i)
	assert.Equal(t, 1, j)

	i, j = s.pickParents([]float64{1})
	assert.Equal(t, 0, i)
	assert.Equal(t, 0, j)
}

func TestCrossover_SwapsMiddleSegment(t *testing.T) {
	s := testutil.StateFromMap(t, skirmishMap)
	search, units := newSearch(t, s, testParams(), testutil.NewScriptedRNG(1, 2))
	require.Len(t, units, 4)

	p1 := &Candidate{Genes: make([]Gene, 4)}
	p2 := &Candidate{Genes: make([]Gene, 4)}
	for k := range units {
		p1.Genes[k].Pos = units[k].Origin
		p2.Genes[k].Pos = units[k].Moves[len(units[k].Moves)-1]
	}

	// endpoints 1 and 3: genes 1 and 2 come from the first parent
	c1, c2 := search.crossover(p1, p2)
	assert.Equal(t, []core.Coordinate{p2.Genes[0].Pos, p1.Genes[1].Pos, p1.Genes[2].Pos, p2.Genes[3].Pos}, c1.Positions())
	assert.Equal(t, []core.Coordinate{p1.Genes[0].Pos, p2.Genes[1].Pos, p2.Genes[2].Pos, p1.Genes[3].Pos}, c2.Positions())

	assert.Equal(t, search.eval.ScoreState(c1.Genes), c1.Utility)
	for k, g := range c1.Genes {
		assert.Equal(t, search.eval.ScoreUnit(g.Pos, units[k].AttackRange), g.Score)
	}
}

func TestMutate_SkipsUnitsHoldingObjectives(t *testing.T) {
	s := testutil.StateFromMap(t, skirmishMap)
	search, units := newSearch(t, s, testParams(), testutil.NewTestRNG(3))

	c := search.stayStill()
	for k := range c.Genes {
		c.Genes[k].Score.Sieging = k%2 == 0
		c.Genes[k].Score.CapturingCamp = k%2 == 1
	}
	before := c.Positions()

	search.params.MutNum = len(units)
	search.mutate(c)
	assert.Equal(t, before, c.Positions())
}

func TestMutate_EscapeHatchTakesNeighborMove(t *testing.T) {
	a := core.Coordinate{X: 0, Y: 0}
	b := core.Coordinate{X: 1, Y: 0}
	s := testutil.StateFromMap(t, `
		...P
		E...
	`)
	eval := newEvaluator(t, s)
	units := []SuccinctUnit{
		{Origin: a, Moves: []core.Coordinate{a, b}, AttackRange: 1},
		{Origin: b, Moves: []core.Coordinate{b}, AttackRange: 1},
	}
	params := testParams()
	params.MutNum = 1
	search := NewSearch(params, eval, units, testutil.NewScriptedRNG(), testutil.NopLogger())

	c := search.stayStill()
	search.mutate(c)

	// every retry draws the current tile, so the neighbor index wins even though it is taken
	assert.Equal(t, b, c.Genes[0].Pos)
	assert.Equal(t, eval.ScoreState(c.Genes), c.Utility)
}

func TestRun_Population(t *testing.T) {
	s := testutil.StateFromMap(t, skirmishMap)
	params := testParams()
	params.GenNum = 0
	search, units := newSearch(t, s, params, testutil.NewTestRNG(42))

	pop := search.Run()
	require.Len(t, pop, params.PopNum)

	stay := false
	for i, c := range pop {
		if i > 0 {
			assert.GreaterOrEqual(t, pop[i-1].Utility, c.Utility, "sorted best first")
		}
		require.Len(t, c.Genes, len(units))
		origins := true
		for k, g := range c.Genes {
			assert.Contains(t, units[k].Moves, g.Pos)
			origins = origins && g.Pos == units[k].Origin
		}
		stay = stay || origins
	}
	assert.True(t, stay, "the stay-still candidate is seeded")
}

func TestRun_GenesStayWithinMoves(t *testing.T) {
	s := testutil.StateFromMap(t, skirmishMap)
	search, units := newSearch(t, s, testParams(), testutil.NewTestRNG(5))

	for _, c := range search.Run() {
		for k, g := range c.Genes {
			assert.Contains(t, units[k].Moves, g.Pos)
		}
	}
}

func TestRun_EliteDominance(t *testing.T) {
	for _, seed := range []int64{1, 2, 3} {
		s := testutil.StateFromMap(t, skirmishMap)
		search, _ := newSearch(t, s, testParams(), rand.New(rand.NewSource(seed)))

		var best []float64
		search.OnReport(func(gen int, c *Candidate) {
			best = append(best, c.Utility)
		})
		pop := search.Run()

		require.Len(t, best, testParams().GenNum)
		for i := 1; i < len(best); i++ {
			assert.GreaterOrEqual(t, best[i], best[i-1], "seed %d generation %d", seed, i+1)
		}
		assert.Equal(t, best[len(best)-1], pop[0].Utility)
	}
}

func TestRun_NoUnits(t *testing.T) {
	s := testutil.StateFromMap(t, campMap)
	search, units := newSearch(t, s, testParams(), testutil.NewTestRNG(1))
	require.Empty(t, units)

	pop := search.Run()
	require.NotEmpty(t, pop)
	assert.Empty(t, pop[0].Genes)
}
