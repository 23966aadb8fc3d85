package sim

import (
	"math/rand"
	"time"
)

// Random is the only source of randomness the simulation consumes.
// Generators, zones, physics (chaos flips) and the camera take one through
// their constructors so tests can substitute a fixed sequence.
type Random interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRandom returns a math/rand source. A zero seed uses the current time.
func NewRandom(seed int64) Random {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// uniform maps a [0, 1) draw onto [lo, hi).
func uniform(r Random, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
