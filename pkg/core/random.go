package core

import (
	"math"
	"math/rand"
)

// Random is the source of uniform randomness used while rendering.
// Can be swapped out for deterministic testing.
type Random interface {
	Float64() float64               // uniform in [0, 1)
	Range(min, max float64) float64 // uniform in [min, max)
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler seeded with seed
func NewRandomSampler(seed int64) *RandomSampler {
	return &RandomSampler{random: rand.New(rand.NewSource(seed))}
}

// NewRandomSamplerFrom creates a sampler from an existing Go random generator
func NewRandomSamplerFrom(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// Float64 returns a random float64 in [0, 1)
func (r *RandomSampler) Float64() float64 {
	return r.random.Float64()
}

// Range returns a random float64 in [min, max)
func (r *RandomSampler) Range(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// RandomVec3 returns a vector with each component uniform in [0, 1)
func RandomVec3(random Random) Vec3 {
	return NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// RandomVec3Range returns a vector with each component uniform in [min, max)
func RandomVec3Range(random Random, min, max float64) Vec3 {
	return NewVec3(random.Range(min, max), random.Range(min, max), random.Range(min, max))
}

// RandomUnitVector generates a uniform random direction on the unit sphere
func RandomUnitVector(random Random) Vec3 {
	a := random.Range(0, 2*math.Pi)
	z := random.Range(-1, 1)
	r := math.Sqrt(1 - z*z)
	return NewVec3(r*math.Cos(a), r*math.Sin(a), z)
}
