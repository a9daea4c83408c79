package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Game        GameConfig        `mapstructure:"game"`
	AI          AIConfig          `mapstructure:"ai"`
	Combat      CombatConfig      `mapstructure:"combat"`
	Logging     LoggingConfig     `mapstructure:"logging"`
	Development DevelopmentConfig `mapstructure:"development"`
}

// GameConfig holds map and session settings
type GameConfig struct {
	MapPath       string `mapstructure:"map_path"`
	DistancesPath string `mapstructure:"distances_path"`
	MaxTurns      int    `mapstructure:"max_turns"`
}

// AIConfig holds the genetic search tunables
type AIConfig struct {
	PopNum          int           `mapstructure:"pop_num"`
	GenNum          int           `mapstructure:"gen_num"`
	MutProb         float64       `mapstructure:"mut_prob"`
	MutNum          int           `mapstructure:"mut_num"`
	EliteFraction   float64       `mapstructure:"elite_fraction"`
	CullFraction    float64       `mapstructure:"cull_fraction"`
	ReportInterval  int           `mapstructure:"report_interval"`
	SampleRetries   int           `mapstructure:"sample_retries"`
	MutationRetries int           `mapstructure:"mutation_retries"`
	Utility         UtilityConfig `mapstructure:"utility"`
}

// UtilityConfig holds the scoring weights
type UtilityConfig struct {
	MinDistance    int     `mapstructure:"min_distance"`
	SiegingWeight  float64 `mapstructure:"sieging_weight"`
	CampWeight     float64 `mapstructure:"camp_weight"`
	AttackValue    float64 `mapstructure:"attack_value"`
	MinDefense     int     `mapstructure:"min_defense"`
	DefensePenalty float64 `mapstructure:"defense_penalty"`
}

// CombatConfig holds attack and conversion constants
type CombatConfig struct {
	GuardAccuracyPenalty int `mapstructure:"guard_accuracy_penalty"`
	ConversionPercent    int `mapstructure:"conversion_percent"`
	SpawnOffsetX         int `mapstructure:"spawn_offset_x"`
	SpawnOffsetY         int `mapstructure:"spawn_offset_y"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DevelopmentConfig holds development/debug settings
type DevelopmentConfig struct {
	VerboseLogging bool `mapstructure:"verbose_logging"`
	ShowBoard      bool `mapstructure:"show_board"`
}

var (
	// Global config instance. A published *Config is never written again;
	// reloads swap in a new one under mu.
	mu  sync.RWMutex
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("game.map_path", "maps/default.map")
	v.SetDefault("game.distances_path", "distances.txt")
	v.SetDefault("game.max_turns", 50)

	// Genetic search defaults
	v.SetDefault("ai.pop_num", 120)
	v.SetDefault("ai.gen_num", 60)
	v.SetDefault("ai.mut_prob", 0.3)
	v.SetDefault("ai.mut_num", 6)
	v.SetDefault("ai.elite_fraction", 0.1)
	v.SetDefault("ai.cull_fraction", 0.2)
	v.SetDefault("ai.report_interval", 5)
	v.SetDefault("ai.sample_retries", 10)
	v.SetDefault("ai.mutation_retries", 10)

	// Utility defaults
	v.SetDefault("ai.utility.min_distance", 5)
	v.SetDefault("ai.utility.sieging_weight", 7.5)
	v.SetDefault("ai.utility.camp_weight", 2.5)
	v.SetDefault("ai.utility.attack_value", 1.0)
	v.SetDefault("ai.utility.min_defense", 5)
	v.SetDefault("ai.utility.defense_penalty", 5.0)

	// Combat defaults
	v.SetDefault("combat.guard_accuracy_penalty", 20)
	v.SetDefault("combat.conversion_percent", 45)
	v.SetDefault("combat.spawn_offset_x", 5)
	v.SetDefault("combat.spawn_offset_y", -5)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("development.verbose_logging", false)
	v.SetDefault("development.show_board", true)
}

// Init initializes the configuration
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/castlequest")
	}

	// CQ_AI_POP_NUM overrides ai.pop_num
	v.SetEnvPrefix("CQ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// A missing file (explicit or default) falls back to defaults
	}

	return apply()
}

// decode builds a fresh Config from the current viper state and validates it
func decode() (*Config, error) {
	next := &Config{}
	if err := v.Unmarshal(next); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(next); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return next, nil
}

// apply publishes the current viper state. On error the previous Config stays.
func apply() error {
	next, err := decode()
	if err != nil {
		return err
	}
	mu.Lock()
	cfg = next
	mu.Unlock()
	return nil
}

// Get returns the global config instance
func Get() *Config {
	mu.RLock()
	c := cfg
	mu.RUnlock()
	if c != nil {
		return c
	}
	if err := Init(""); err != nil {
		panic("failed to initialize config with defaults: " + err.Error())
	}
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}

// LoadEnvironmentConfig loads environment-specific config overlay
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	return apply()
}

// Set allows runtime config updates. A value that fails validation is
// reported and not applied.
func Set(key string, value interface{}) error {
	prev := v.Get(key)
	v.Set(key, value)
	if err := apply(); err != nil {
		v.Set(key, prev)
		return err
	}
	return nil
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig enables hot-reloading of config file. onChange runs only after
// an edit that passes Validate; invalid edits are logged and ignored.
func WatchConfig(onChange func()) {
	v.OnConfigChange(changeHandler(onChange))
	v.WatchConfig()
}

func changeHandler(onChange func()) func(fsnotify.Event) {
	return func(e fsnotify.Event) {
		if err := apply(); err != nil {
			log.Error().Err(err).Str("file", e.Name).Msg("Ignoring invalid config change")
			return
		}
		log.Info().Str("file", e.Name).Msg("Config reloaded")
		if onChange != nil {
			onChange()
		}
	}
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Game.DistancesPath == "" {
		return fmt.Errorf("game.distances_path must be set")
	}
	if c.Game.MaxTurns <= 0 {
		return fmt.Errorf("game.max_turns must be positive")
	}

	if c.AI.PopNum < 2 {
		return fmt.Errorf("ai.pop_num must be at least 2")
	}
	if c.AI.GenNum < 0 {
		return fmt.Errorf("ai.gen_num must be non-negative")
	}
	if c.AI.MutProb < 0 || c.AI.MutProb > 1 {
		return fmt.Errorf("ai.mut_prob must be between 0 and 1")
	}
	if c.AI.MutNum < 0 {
		return fmt.Errorf("ai.mut_num must be non-negative")
	}
	if c.AI.EliteFraction < 0 || c.AI.EliteFraction > 1 {
		return fmt.Errorf("ai.elite_fraction must be between 0 and 1")
	}
	if c.AI.CullFraction < 0 || c.AI.CullFraction >= 1 {
		return fmt.Errorf("ai.cull_fraction must be in [0, 1)")
	}
	if c.AI.ReportInterval <= 0 {
		return fmt.Errorf("ai.report_interval must be positive")
	}
	if c.AI.SampleRetries <= 0 || c.AI.MutationRetries <= 0 {
		return fmt.Errorf("ai retry counts must be positive")
	}

	if c.AI.Utility.DefensePenalty <= 0 {
		return fmt.Errorf("ai.utility.defense_penalty must be positive")
	}
	if c.AI.Utility.MinDistance < 0 || c.AI.Utility.MinDefense < 0 {
		return fmt.Errorf("ai.utility thresholds must be non-negative")
	}

	if c.Combat.ConversionPercent < 0 || c.Combat.ConversionPercent > 100 {
		return fmt.Errorf("combat.conversion_percent must be between 0 and 100")
	}
	if c.Combat.GuardAccuracyPenalty < 0 {
		return fmt.Errorf("combat.guard_accuracy_penalty must be non-negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}

	return nil
}
