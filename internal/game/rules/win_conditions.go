package rules

import (
	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// CheckWinner reports which team, if any, holds the opposing castle.
// An enemy unit on the player castle wins for the enemy and vice versa.
// When both castles fall in the same turn the enemy, who moved last, wins.
func CheckWinner(s *core.State) (core.Team, bool) {
	if s.Board.TeamAt(s.Objectives.PlayerCastle) == core.TeamEnemy {
		return core.TeamEnemy, true
	}
	if s.Board.TeamAt(s.Objectives.EnemyCastle) == core.TeamPlayer {
		return core.TeamPlayer, true
	}
	return core.TeamNone, false
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver determines whether a castle has fallen
// Returns (isGameOver, winner)
func (wc *WinConditionChecker) CheckGameOver(s *core.State) (bool, core.Team) {
	wc.logger.Debug().Msg("Checking game over conditions")

	winner, over := CheckWinner(s)
	if over {
		wc.logger.Info().Str("winner", winner.String()).Msg("Winner determined")
	}

	wc.logger.Debug().
		Bool("is_game_over", over).
		Int("player_units", s.Players.Len()).
		Int("enemy_units", s.Enemies.Len()).
		Msg("Game over check complete")
	return over, winner
}
