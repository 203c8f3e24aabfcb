package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// sequenceSampler replays fixed values, cycling when exhausted
type sequenceSampler struct {
	values []float64
	next   int
}

func (s *sequenceSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *sequenceSampler) GetRange(min, max float64) float64 {
	return s.Get1D()
}

func TestLambertian_AlwaysScattersFromHitPoint(t *testing.T) {
	albedo := core.NewVec3(0.7, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	hit := HitRecord{
		Point:  core.NewVec3(1, 2, 3),
		Normal: core.NewVec3(0, 0, 1),
	}
	ray := core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1))

	for i := 0; i < 500; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if !scatter.Scattered.Origin.Equals(hit.Point) {
			t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
		if !scatter.Attenuation.Equals(albedo) {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Fatalf("Scatter direction %v points into the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: normal,
	}

	// The in-sphere sample (0, 0, -0.5) normalizes to exactly -normal
	sampler := &sequenceSampler{values: []float64{0, 0, -0.5}}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if !scatter.Scattered.Direction.Equals(normal) {
		t.Errorf("Degenerate scatter should use the normal exactly, got %v", scatter.Scattered.Direction)
	}
}

func TestLambertian_NonDegenerateDirection(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Normal: normal}

	// (0.5, 0, 0) normalizes to (1, 0, 0)
	sampler := &sequenceSampler{values: []float64{0.5, 0, 0}}
	scatter, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), hit, sampler)

	expected := core.NewVec3(1, 1, 0)
	if !scatter.Scattered.Direction.Equals(expected) {
		t.Errorf("Expected direction %v, got %v", expected, scatter.Scattered.Direction)
	}
}
