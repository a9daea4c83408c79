package core

// RNG is the random source threaded through combat and search.
// *math/rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
	Float64() float64
}
