// Package dice wraps a seeded random source with the handful of rolls the
// simulation makes: uniform floats, percentage chances, weighted picks and
// headings. Every random decision in a session goes through one Roller so a
// seed reproduces the whole run.
package dice

import (
	"math"
	"math/rand"
)

// Roller handles random rolls with a configurable random source
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a new Roller with the given random source
func NewRoller(rng *rand.Rand) *Roller {
	return &Roller{rng: rng}
}

// Seeded creates a Roller over a fresh source seeded with seed.
func Seeded(seed int64) *Roller {
	return NewRoller(rand.New(rand.NewSource(seed)))
}

// Source exposes the underlying generator for callers that need an
// io.Reader (ID generation reads from it).
func (r *Roller) Source() *rand.Rand {
	return r.rng
}

// Float64 returns a uniform value in [0, 1).
func (r *Roller) Float64() float64 {
	return r.rng.Float64()
}

// Chance reports true with probability p.
func (r *Roller) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Intn returns a uniform index in [0, n). n must be positive.
func (r *Roller) Intn(n int) int {
	return r.rng.Intn(n)
}

// Between returns a uniform value in [lo, hi).
func (r *Roller) Between(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// Heading returns a uniform angle in [0, 2π).
func (r *Roller) Heading() float64 {
	return r.rng.Float64() * 2 * math.Pi
}

// Pick draws an index from weights by subtracting each weight from a uniform
// roll over their sum until it drops to zero or below. Float rounding can
// leave the roll fractionally positive after the last entry, in which case
// the last index wins.
func (r *Roller) Pick(weights []float64) int {
	if len(weights) == 0 {
		return -1
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := r.rng.Float64() * total
	for i, w := range weights {
		roll -= w
		if roll <= 0 {
			return i
		}
	}
	return len(weights) - 1
}
