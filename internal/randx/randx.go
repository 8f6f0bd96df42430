// Package randx provides the randomness source behind price, driver and
// vehicle synthesis. The source is injectable so tests can seed it and
// assert bounds deterministically.
package randx

import (
	"math/rand/v2"
	"time"
)

// Source is the subset of math/rand used by ride synthesis.
type Source interface {
	// IntN returns a uniform int in [0, n).
	IntN(n int) int
	// Float64 returns a uniform float64 in [0.0, 1.0).
	Float64() float64
}

type pcgSource struct {
	r *rand.Rand
}

// New returns a Source seeded from the current time.
func New() Source {
	return NewSeeded(uint64(time.Now().UnixNano()))
}

// NewSeeded returns a deterministic Source for the given seed.
func NewSeeded(seed uint64) Source {
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed<<32|1))}
}

func (s *pcgSource) IntN(n int) int   { return s.r.IntN(n) }
func (s *pcgSource) Float64() float64 { return s.r.Float64() }

// IntInRange draws a uniform int in the inclusive range [min, max].
func IntInRange(s Source, min, max int) int {
	return min + s.IntN(max-min+1)
}
