package states

import "strconv"

// GamePhase is where a session stands in the turn cycle
type GamePhase int

const (
	PhaseInitializing GamePhase = iota // map and distance oracle loading
	PhasePlayerTurn                    // the human side moves and attacks
	PhaseEnemyTurn                     // the planner searches and executes
	PhaseEnded                         // a castle fell or the turn limit ran out
)

var phaseNames = [...]string{"Initializing", "PlayerTurn", "EnemyTurn", "Ended"}

// cycle lists the phases reachable from each phase. Ended has no exits.
var cycle = map[GamePhase][]GamePhase{
	PhaseInitializing: {PhasePlayerTurn},
	PhasePlayerTurn:   {PhaseEnemyTurn, PhaseEnded},
	PhaseEnemyTurn:    {PhasePlayerTurn, PhaseEnded},
}

func (p GamePhase) String() string {
	if p >= 0 && int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown(" + strconv.Itoa(int(p)) + ")"
}

func (p GamePhase) IsTerminal() bool { return p == PhaseEnded }

// CanPlayerAct reports whether player moves and attacks are accepted
func (p GamePhase) CanPlayerAct() bool { return p == PhasePlayerTurn }

// AllowedTransitions returns the phases p may move to, never nil
func (p GamePhase) AllowedTransitions() []GamePhase {
	next := cycle[p]
	out := make([]GamePhase, len(next))
	copy(out, next)
	return out
}

func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, n := range cycle[p] {
		if n == target {
			return true
		}
	}
	return false
}
