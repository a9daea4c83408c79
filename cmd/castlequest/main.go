package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/config"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events/subscribers"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	env := flag.String("env", os.Getenv("APP_ENV"), "Environment overlay (loads config.<env>.yaml)")
	mapPath := flag.String("map", "", "Map file (empty to use config default)")
	generate := flag.Bool("generate", false, "Generate a random map instead of loading one")
	width := flag.Int("width", 16, "Generated map width")
	height := flag.Int("height", 12, "Generated map height")
	distances := flag.String("distances", "", "Distance file (empty to use config default)")
	turns := flag.Int("turns", -1, "Maximum enemy turns (-1 to use config default)")
	seed := flag.Int64("seed", 0, "RNG seed (0 for time based)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error) (empty to use config default)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := config.LoadEnvironmentConfig(*env); err != nil {
		log.Fatal().Err(err).Str("env", *env).Msg("Failed to load environment config")
	}
	// cfg is a snapshot; hot reloads publish a new Config and only reach the
	// game through UpdateParams
	cfg := config.Get()
	showBoard := cfg.Development.ShowBoard

	if *logLevel == "" {
		*logLevel = cfg.Logging.Level
	}
	setupLogging(*logLevel, cfg.Logging.Format)

	gameCfg := game.GameConfigFromConfig(cfg)
	if *mapPath != "" {
		gameCfg.MapPath = *mapPath
	}
	if *generate {
		gameCfg.MapPath = ""
		gameCfg.Width, gameCfg.Height = *width, *height
		// a cached oracle belongs to one map
		gameCfg.DistancesPath = ""
	}
	if *distances != "" {
		gameCfg.DistancesPath = *distances
	}
	if *turns != -1 {
		gameCfg.MaxTurns = *turns
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	gameCfg.Rng = rand.New(rand.NewSource(*seed))
	gameCfg.Logger = log.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := game.NewEngine(ctx, gameCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	eventLevel := zerolog.InfoLevel
	if cfg.Development.VerboseLogging {
		eventLevel = zerolog.DebugLevel
	}
	eventLog := subscribers.NewLoggerSubscriber("cli", log.Logger, eventLevel)
	eventLog.SetDevMode(cfg.Development.VerboseLogging)
	engine.EventBus().Subscribe(eventLog)

	config.WatchConfig(func() {
		// the engine logs and drops a rejected tuning
		_ = engine.UpdateParams(game.ParamsFromConfig(config.Get()))
	})

	log.Info().
		Int64("seed", *seed).
		Str("game_id", engine.GameID()).
		Int("max_turns", gameCfg.MaxTurns).
		Msg("Starting Castle Quest")

	if showBoard {
		fmt.Printf("Initial board:\n%s\n", engine.Board())
	}

	for !engine.IsGameOver() {
		playerVolley(engine)
		if engine.IsGameOver() {
			break
		}

		report, err := engine.StepEnemy(ctx)
		if err != nil {
			log.Error().Err(err).Int("turn", engine.Turn()).Msg("Stopping game")
			break
		}
		if showBoard {
			fmt.Printf("Turn %d (best utility %.2f, %d kills):\n%s\n",
				engine.Turn(), report.Best.Utility, report.Execution.Kills(), engine.Board())
		}
	}

	for team, st := range engine.Stats() {
		fmt.Printf("%-9s units=%d hp=%d/%d camps=%d\n", team, st.Units, st.HP, st.MaxHP, st.CampsHeld)
	}
	switch winner := engine.Winner(); winner {
	case core.TeamNone:
		fmt.Printf("Game over after %d turns with no winner\n", engine.Turn())
	default:
		fmt.Printf("Game over after %d turns: %s wins\n", engine.Turn(), winner)
	}
}

// playerVolley stands in for the human side: every player unit that has a
// target in range attacks it without moving.
func playerVolley(engine *game.Engine) {
	s := engine.State()
	for _, u := range s.Players.Snapshot() {
		if s.Players.At(u.Pos) != u {
			continue
		}
		targets := core.AttackableTiles(s.Board, u)
		if len(targets) == 0 {
			continue
		}
		if _, err := engine.PlayerAttack(u.Pos, targets[0]); err != nil {
			log.Warn().Err(err).Str("from", u.Pos.String()).Msg("Player attack rejected")
		}
	}
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	if format == "json" {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}
