package ai

import (
	"math"
	"sort"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/common"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// Gene is one unit's chosen position and its score there
type Gene struct {
	Pos   core.Coordinate
	Score UnitScore
}

// Candidate is a joint assignment of one move per unit. Genes line up with
// the unit snapshot the search was built from.
type Candidate struct {
	Genes   []Gene
	Utility float64
}

func (c *Candidate) clone() *Candidate {
	genes := make([]Gene, len(c.Genes))
	copy(genes, c.Genes)
	return &Candidate{Genes: genes, Utility: c.Utility}
}

// Positions lists the chosen tile of every unit in snapshot order
func (c *Candidate) Positions() []core.Coordinate {
	out := make([]core.Coordinate, len(c.Genes))
	for i, g := range c.Genes {
		out[i] = g.Pos
	}
	return out
}

// ReportFunc observes the best candidate of a generation
type ReportFunc func(generation int, best *Candidate)

// Search is the population-based optimizer over joint unit assignments
type Search struct {
	params   Params
	eval     *Evaluator
	units    []SuccinctUnit
	rng      core.RNG
	logger   zerolog.Logger
	onReport ReportFunc
}

// NewSearch creates a search over the given unit snapshot
func NewSearch(params Params, eval *Evaluator, units []SuccinctUnit, rng core.RNG, logger zerolog.Logger) *Search {
	return &Search{
		params: params,
		eval:   eval,
		units:  units,
		rng:    rng,
		logger: logger.With().Str("component", "genetic_search").Logger(),
	}
}

// OnReport installs a hook called every ReportInterval generations
func (s *Search) OnReport(fn ReportFunc) {
	s.onReport = fn
}

func (s *Search) score(c *Candidate) {
	for i := range c.Genes {
		c.Genes[i].Score = s.eval.ScoreUnit(c.Genes[i].Pos, s.units[i].AttackRange)
	}
	c.Utility = s.eval.ScoreState(c.Genes)
}

func (s *Search) randomCandidate() *Candidate {
	c := &Candidate{Genes: make([]Gene, len(s.units))}
	for i, u := range s.units {
		c.Genes[i].Pos = u.Moves[s.rng.Intn(len(u.Moves))]
	}
	s.score(c)
	return c
}

func (s *Search) stayStill() *Candidate {
	c := &Candidate{Genes: make([]Gene, len(s.units))}
	for i, u := range s.units {
		c.Genes[i].Pos = u.Origin
	}
	s.score(c)
	return c
}

func sortDescending(pop []*Candidate) {
	sort.SliceStable(pop, func(i, j int) bool { return pop[i].Utility > pop[j].Utility })
}

func roundCount(fraction float64, n int) int {
	return int(math.Round(fraction * float64(n)))
}

// Run evolves the population and returns it sorted best first
func (s *Search) Run() []*Candidate {
	pop := make([]*Candidate, 0, s.params.PopNum)
	for i := 0; i < s.params.PopNum-1; i++ {
		pop = append(pop, s.randomCandidate())
	}
	pop = append(pop, s.stayStill())

	if len(s.units) == 0 {
		sortDescending(pop)
		return pop
	}

	for gen := 1; gen <= s.params.GenNum; gen++ {
		pop = s.nextGeneration(pop)
		if s.params.ReportInterval > 0 && gen%s.params.ReportInterval == 0 {
			s.report(gen, pop)
		}
	}
	sortDescending(pop)
	return pop
}

func (s *Search) report(gen int, pop []*Candidate) {
	best := pop[0]
	for _, c := range pop[1:] {
		if c.Utility > best.Utility {
			best = c
		}
	}
	s.logger.Debug().
		Int("generation", gen).
		Float64("best_utility", best.Utility).
		Int("population", len(pop)).
		Msg("Generation complete")
	if s.onReport != nil {
		s.onReport(gen, best)
	}
}

func (s *Search) nextGeneration(pop []*Candidate) []*Candidate {
	sortDescending(pop)

	elite := common.Clamp(roundCount(s.params.EliteFraction, len(pop)), 0, s.params.PopNum)
	next := make([]*Candidate, 0, s.params.PopNum)
	next = append(next, pop[:elite]...)

	survivors := pop[:len(pop)-roundCount(s.params.CullFraction, len(pop))]
	if len(survivors) == 0 {
		survivors = pop[:1]
	}
	weights := BoltzmannWeights(survivors)

	for len(next) < s.params.PopNum {
		i, j := s.pickParents(weights)
		c1, c2 := s.crossover(survivors[i], survivors[j])
		next = append(next, c1)
		if len(next) < s.params.PopNum {
			next = append(next, c2)
		}
	}

	// elites are shared with the previous generation and never mutated
	mutable := len(next) - elite
	count := common.Clamp(roundCount(s.params.MutProb, len(next)), 0, mutable)
	for _, idx := range s.distinct(count, mutable) {
		s.mutate(next[elite+idx])
	}
	return next
}

// BoltzmannWeights turns survivor utilities into a sampling distribution.
// Higher utility never gets a lower weight. Equal utilities give a uniform distribution.
func BoltzmannWeights(pop []*Candidate) []float64 {
	weights := make([]float64, len(pop))
	if len(pop) == 0 {
		return weights
	}
	uMax, uMin := pop[0].Utility, pop[0].Utility
	for _, c := range pop[1:] {
		uMax = max(uMax, c.Utility)
		uMin = min(uMin, c.Utility)
	}
	temp := uMax - uMin
	total := 0.0
	for i, c := range pop {
		if temp == 0 {
			weights[i] = 1
		} else {
			weights[i] = math.Exp(-(uMax - c.Utility) / temp)
		}
		total += weights[i]
	}
	for i := range weights {
		weights[i] /= total
	}
	return weights
}

// sample returns the first index whose prefix sum reaches a uniform draw, or -1
func (s *Search) sample(weights []float64) int {
	r := s.rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if acc >= r {
			return i
		}
	}
	return -1
}

// pickParents draws two distinct survivor indices. After SampleRetries failed
// draws the second parent is clamped to a neighbor of the first.
func (s *Search) pickParents(weights []float64) (int, int) {
	if len(weights) == 1 {
		return 0, 0
	}
	i, j := -1, -1
	for attempt := 0; attempt < s.params.SampleRetries; attempt++ {
		i, j = s.sample(weights), s.sample(weights)
		if i >= 0 && j >= 0 && i != j {
			return i, j
		}
	}
	if i < 0 {
		i = len(weights) - 1
	}
	if i+1 < len(weights) {
		return i, i + 1
	}
	return i, i - 1
}

// crossover swaps the segment [lo, hi) between two parents
func (s *Search) crossover(p1, p2 *Candidate) (*Candidate, *Candidate) {
	n := len(s.units)
	if n < 2 {
		return p1.clone(), p2.clone()
	}
	a := s.rng.Intn(n)
	b := s.rng.Intn(n - 1)
	if b >= a {
		b++
	}
	lo, hi := min(a, b), max(a, b)

	c1 := &Candidate{Genes: make([]Gene, n)}
	c2 := &Candidate{Genes: make([]Gene, n)}
	for k := 0; k < n; k++ {
		if k >= lo && k < hi {
			c1.Genes[k], c2.Genes[k] = p1.Genes[k], p2.Genes[k]
		} else {
			c1.Genes[k], c2.Genes[k] = p2.Genes[k], p1.Genes[k]
		}
	}
	s.score(c1)
	s.score(c2)
	return c1, c2
}

// distinct picks count distinct indices from [0, n) uniformly
func (s *Search) distinct(count, n int) []int {
	if count <= 0 || n <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	count = min(count, n)
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx[:count]
}

func (c *Candidate) occupiedByOther(self int, pos core.Coordinate) bool {
	for k, g := range c.Genes {
		if k != self && g.Pos == pos {
			return true
		}
	}
	return false
}

// mutate reassigns up to MutNum units. Units holding an objective keep their tile.
func (s *Search) mutate(c *Candidate) {
	for _, k := range s.distinct(s.params.MutNum, len(s.units)) {
		moves := s.units[k].Moves
		if len(moves) == 1 {
			continue
		}
		cur := c.Genes[k]
		if cur.Score.Sieging || cur.Score.CapturingCamp {
			continue
		}

		pick := -1
		last := 0
		for attempt := 0; attempt < s.params.MutationRetries; attempt++ {
			last = s.rng.Intn(len(moves))
			if moves[last] != cur.Pos && !c.occupiedByOther(k, moves[last]) {
				pick = last
				break
			}
		}
		if pick < 0 {
			pick = (last + 1) % len(moves)
		}
		c.Genes[k].Pos = moves[pick]
		c.Genes[k].Score = s.eval.ScoreUnit(moves[pick], s.units[k].AttackRange)
	}
	c.Utility = s.eval.ScoreState(c.Genes)
}
