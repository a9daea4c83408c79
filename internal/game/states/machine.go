package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/KalebRaymond/CS1666-Tactical-RPG-sub000/internal/game/events"
)

var ErrInvalidTransition = errors.New("invalid phase transition")

// defaultHistoryLimit caps the transitions a machine remembers; a long game
// makes two per turn
const defaultHistoryLimit = 1000

// Transition is one recorded phase change
type Transition struct {
	From   GamePhase
	To     GamePhase
	At     time.Time
	Reason string
}

// StateMachine guards the turn cycle of one session and announces every
// change on the event bus
type StateMachine struct {
	mu      sync.RWMutex
	phase   GamePhase
	history []Transition
	limit   int

	gameID string
	pub    events.Publisher
	logger zerolog.Logger
}

// NewStateMachine starts in PhaseInitializing. pub may be nil.
func NewStateMachine(gameID string, pub events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		phase:  PhaseInitializing,
		limit:  defaultHistoryLimit,
		gameID: gameID,
		pub:    pub,
		logger: logger.With().Str("component", "StateMachine").Logger(),
	}
}

func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// CanTransitionTo reports whether TransitionTo(target) would succeed now
func (sm *StateMachine) CanTransitionTo(target GamePhase) bool {
	return sm.CurrentPhase().CanTransitionTo(target)
}

// TransitionTo moves to target, failing with ErrInvalidTransition when the
// cycle does not allow it
func (sm *StateMachine) TransitionTo(target GamePhase, reason string) error {
	sm.mu.Lock()
	from := sm.phase
	if !from.CanTransitionTo(target) {
		sm.mu.Unlock()
		return fmt.Errorf("%s to %s: %w", from, target, ErrInvalidTransition)
	}
	sm.phase = target
	sm.record(Transition{From: from, To: target, At: time.Now(), Reason: reason})
	sm.mu.Unlock()

	// handlers may call back into the machine
	if sm.pub != nil {
		sm.pub.Publish(events.NewPhaseChangedEvent(sm.gameID, from.String(), target.String(), reason))
	}
	sm.logger.Debug().
		Stringer("from_phase", from).
		Stringer("to_phase", target).
		Str("reason", reason).
		Msg("Phase changed")
	return nil
}

// record appends t, dropping the oldest entries past the limit. Caller holds mu.
func (sm *StateMachine) record(t Transition) {
	sm.history = append(sm.history, t)
	if over := len(sm.history) - sm.limit; over > 0 {
		sm.history = append(sm.history[:0], sm.history[over:]...)
	}
}

// History returns the remembered transitions, oldest first
func (sm *StateMachine) History() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return append([]Transition(nil), sm.history...)
}
