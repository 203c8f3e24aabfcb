package core

import (
	"math/rand"
)

// Sampler provides uniform random numbers for the scatter and sampling helpers.
// Can be swapped out for deterministic testing.
type Sampler interface {
	// Get1D returns a value in [0, 1)
	Get1D() float64
	// GetRange returns a value in [min, max)
	GetRange(min, max float64) float64
}

// RandomSampler wraps a standard Go random generator. Not safe for concurrent use.
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// GetRange returns a random float64 in [min, max)
func (r *RandomSampler) GetRange(min, max float64) float64 {
	return min + (max-min)*r.random.Float64()
}

// RandomVec3 returns a vector with every component in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3Range returns a vector with every component in [min, max)
func RandomVec3Range(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(
		sampler.GetRange(min, max),
		sampler.GetRange(min, max),
		sampler.GetRange(min, max),
	)
}

// RandomInUnitSphere returns a point strictly inside the unit sphere by rejection sampling
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := RandomVec3Range(sampler, -1, 1)
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomUnitVector returns a direction on the unit sphere
func RandomUnitVector(sampler Sampler) Vec3 {
	for {
		p := RandomInUnitSphere(sampler)
		// The origin itself has no direction; draw again
		if p.LengthSquared() > 0 {
			return p.UnitVector()
		}
	}
}

// RandomInHemisphere returns a point in the unit sphere on the same side as normal
func RandomInHemisphere(normal Vec3, sampler Sampler) Vec3 {
	inUnitSphere := RandomInUnitSphere(sampler)
	if inUnitSphere.Dot(normal) > 0.0 {
		return inUnitSphere
	}
	return inUnitSphere.Negate()
}
