package game

import (
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/ai"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/config"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// ParamsFromConfig maps the ai and combat config sections onto search parameters
func ParamsFromConfig(cfg *config.Config) ai.Params {
	u := cfg.AI.Utility
	return ai.Params{
		PopNum:          cfg.AI.PopNum,
		GenNum:          cfg.AI.GenNum,
		MutProb:         cfg.AI.MutProb,
		MutNum:          cfg.AI.MutNum,
		EliteFraction:   cfg.AI.EliteFraction,
		CullFraction:    cfg.AI.CullFraction,
		ReportInterval:  cfg.AI.ReportInterval,
		SampleRetries:   cfg.AI.SampleRetries,
		MutationRetries: cfg.AI.MutationRetries,
		Utility: ai.UtilityWeights{
			MinDistance:    u.MinDistance,
			SiegingWeight:  u.SiegingWeight,
			CampWeight:     u.CampWeight,
			AttackValue:    u.AttackValue,
			MinDefense:     u.MinDefense,
			DefensePenalty: u.DefensePenalty,
		},
		Combat: core.CombatRules{
			GuardAccuracyPenalty: cfg.Combat.GuardAccuracyPenalty,
		},
		ConversionPercent: cfg.Combat.ConversionPercent,
		SpawnOffset:       core.Coordinate{X: cfg.Combat.SpawnOffsetX, Y: cfg.Combat.SpawnOffsetY},
	}
}

// GameConfigFromConfig fills the file and turn settings of a GameConfig.
// Logger, Rng and EventBus are left for the caller.
func GameConfigFromConfig(cfg *config.Config) GameConfig {
	return GameConfig{
		MapPath:       cfg.Game.MapPath,
		DistancesPath: cfg.Game.DistancesPath,
		MaxTurns:      cfg.Game.MaxTurns,
		Params:        ParamsFromConfig(cfg),
	}
}
