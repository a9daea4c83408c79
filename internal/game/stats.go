package game

import (
	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/core"
)

// TeamStats summarizes one side of the board
type TeamStats struct {
	Units     int
	HP        int
	MaxHP     int
	Hit       int
	CampsHeld int  // camps with at least one footprint tile under this team
	Sieging   bool // a unit stands on the opposing castle
}

// Stats returns per-team summaries of the current state
func (e *Engine) Stats() map[core.Team]TeamStats {
	return ComputeStats(e.state)
}

// ComputeStats scans the rosters and objectives of s
func ComputeStats(s *core.State) map[core.Team]TeamStats {
	out := make(map[core.Team]TeamStats, 3)
	for _, team := range []core.Team{core.TeamPlayer, core.TeamEnemy, core.TeamBarbarian} {
		st := TeamStats{}
		for _, u := range s.Roster(team).Snapshot() {
			st.Units++
			st.HP += u.HP
			st.MaxHP += u.MaxHP
			if u.Hit {
				st.Hit++
			}
		}
		for _, camp := range s.Objectives.Camps {
			for _, c := range core.CampFootprint(camp) {
				if s.Board.TeamAt(c) == team {
					st.CampsHeld++
					break
				}
			}
		}
		out[team] = st
	}

	players := out[core.TeamPlayer]
	players.Sieging = s.Board.TeamAt(s.Objectives.EnemyCastle) == core.TeamPlayer
	out[core.TeamPlayer] = players

	enemies := out[core.TeamEnemy]
	enemies.Sieging = s.Board.TeamAt(s.Objectives.PlayerCastle) == core.TeamEnemy
	out[core.TeamEnemy] = enemies
	return out
}

// logStats writes the per-team summary at debug level
func (e *Engine) logStats() {
	for team, st := range e.Stats() {
		e.logger.Debug().
			Str("team", team.String()).
			Int("units", st.Units).
			Int("hp", st.HP).
			Int("camps_held", st.CampsHeld).
			Bool("sieging", st.Sieging).
			Msg("Team stats")
	}
}
