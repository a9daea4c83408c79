package testutil

import (
	"math/rand"

	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// ScriptedRNG replays fixed rolls so combat outcomes can be pinned down.
// Intn returns the next scripted int modulo n; Float64 the next scripted float.
// Both return 0 once their script runs out.
type ScriptedRNG struct {
	Ints   []int
	Floats []float64
}

// NewScriptedRNG scripts the given Intn rolls
func NewScriptedRNG(ints ...int) *ScriptedRNG {
	return &ScriptedRNG{Ints: ints}
}

func (s *ScriptedRNG) Intn(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	return v % n
}

func (s *ScriptedRNG) Float64() float64 {
	if len(s.Floats) == 0 {
		return 0
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// Remaining reports how many scripted ints are left unconsumed
func (s *ScriptedRNG) Remaining() int {
	return len(s.Ints)
}
