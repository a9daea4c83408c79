package ai

import (
	"errors"
	"fmt"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

var ErrInvalidParams = errors.New("invalid ai parameters")

// UtilityWeights are the constants of the scoring function
type UtilityWeights struct {
	MinDistance    int // a unit this close to its own castle counts as defending
	SiegingWeight  float64
	CampWeight     float64
	AttackValue    float64
	MinDefense     int // fewer defenders than this divides the state score
	DefensePenalty float64
}

// Params holds every tunable of one AI turn
type Params struct {
	PopNum          int
	GenNum          int
	MutProb         float64
	MutNum          int
	EliteFraction   float64
	CullFraction    float64
	ReportInterval  int
	SampleRetries   int
	MutationRetries int

	Utility UtilityWeights
	Combat  core.CombatRules

	// ConversionPercent is the chance a killed barbarian joins the enemy army
	ConversionPercent int
	// SpawnOffset places converted units relative to the enemy castle
	SpawnOffset core.Coordinate
}

// DefaultWeights returns the stock scoring constants
func DefaultWeights() UtilityWeights {
	return UtilityWeights{
		MinDistance:    5,
		SiegingWeight:  7.5,
		CampWeight:     2.5,
		AttackValue:    1.0,
		MinDefense:     5,
		DefensePenalty: 5,
	}
}

// DefaultParams returns the stock tuning
func DefaultParams() Params {
	return Params{
		PopNum:            120,
		GenNum:            60,
		MutProb:           0.3,
		MutNum:            6,
		EliteFraction:     0.1,
		CullFraction:      0.2,
		ReportInterval:    5,
		SampleRetries:     10,
		MutationRetries:   10,
		Utility:           DefaultWeights(),
		Combat:            core.DefaultCombatRules(),
		ConversionPercent: 45,
		SpawnOffset:       core.Coordinate{X: 5, Y: -5},
	}
}

// Validate rejects tunings the search cannot run with
func (p Params) Validate() error {
	var reason string
	switch {
	case p.PopNum < 1:
		reason = "population must hold at least one candidate"
	case p.GenNum < 0:
		reason = "generation count is negative"
	case p.MutProb < 0 || p.MutProb > 1:
		reason = "mutation probability is outside [0, 1]"
	case p.MutNum < 0:
		reason = "mutation count is negative"
	case p.EliteFraction < 0 || p.EliteFraction > 1:
		reason = "elite fraction is outside [0, 1]"
	case p.CullFraction < 0 || p.CullFraction >= 1:
		reason = "cull fraction is outside [0, 1)"
	case p.ReportInterval < 0:
		reason = "report interval is negative"
	case p.SampleRetries < 1 || p.MutationRetries < 1:
		reason = "retry counts must be positive"
	case p.Utility.DefensePenalty <= 0:
		reason = "defense penalty must be positive"
	case p.ConversionPercent < 0 || p.ConversionPercent > 100:
		reason = "conversion percent is outside [0, 100]"
	case p.Combat.GuardAccuracyPenalty < 0:
		reason = "guard accuracy penalty is negative"
	default:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidParams, reason)
}
