package core

import (
	"math"
	"math/rand"
)

// Sampler provides the random numbers consumed while drawing free-flight
// distances and phase-function directions. Workers own their own Sampler
// so that SampleTMaj and phase-function sampling are pure with respect to
// any shared state.
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// Get2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Get2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleExponential draws a distance from an Exponential(rate) distribution
// given a uniform sample u in [0, 1), via inversion of the CDF.
func SampleExponential(u, rate float64) float64 {
	return -math.Log(1-u) / rate
}
