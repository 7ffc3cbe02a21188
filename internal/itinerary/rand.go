package itinerary

import "math/rand/v2"

// Rand is the source of randomness used for selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// GlobalRand returns a Rand backed by the math/rand/v2 top-level functions.
// It is safe for concurrent use.
func GlobalRand() Rand {
	return globalRand{}
}

// NewRand returns a seeded Rand for reproducible runs. It is not safe for
// concurrent use.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
