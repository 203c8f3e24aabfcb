package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
)

// MockMaterial implements material.Material for testing
type MockMaterial struct {
	scatterFn func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool)
}

func (m MockMaterial) Scatter(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
	return m.scatterFn(rayIn, hit, sampler)
}

// countingShape counts Hit queries against the wrapped shape
type countingShape struct {
	geometry.Shape
	calls int
}

func (c *countingShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	c.calls++
	return c.Shape.Hit(ray, tMin, tMax)
}

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	return sphere
}

func newSampler() core.Sampler {
	return core.NewRandomSampler(rand.New(rand.NewSource(42)))
}

func TestRayColor_ZeroDepthIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator()
	black := core.NewVec3(0, 0, 0)

	worlds := map[string]geometry.Shape{
		"empty": geometry.NewHittableList(),
		"sphere": geometry.NewHittableList(
			mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(1, 1, 1))),
		),
	}

	for name, world := range worlds {
		for _, depth := range []int{0, -1, -50} {
			counter := &countingShape{Shape: world}
			color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), counter, newSampler(), depth)
			if !color.Equals(black) {
				t.Errorf("%s depth %d: expected black, got %v", name, depth, color)
			}
			if counter.calls != 0 {
				t.Errorf("%s depth %d: scene should not be queried, got %d queries", name, depth, counter.calls)
			}
		}
	}
}

func TestRayColor_EmptySceneBackground(t *testing.T) {
	pt := NewPathTracingIntegrator()
	world := geometry.NewHittableList()

	tests := []struct {
		name      string
		direction core.Vec3
		expected  core.Vec3
	}{
		{"straight down", core.NewVec3(0, -1, 0), core.NewVec3(1, 1, 1)},
		{"straight down unnormalized", core.NewVec3(0, -7, 0), core.NewVec3(1, 1, 1)},
		{"straight up", core.NewVec3(0, 1, 0), core.NewVec3(0.5, 0.7, 1.0)},
		{"horizon", core.NewVec3(0, 0, -1), core.NewVec3(0.75, 0.85, 1.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), world, newSampler(), 50)
			if color.Subtract(tt.expected).Length() > 1e-12 {
				t.Errorf("Expected %v, got %v", tt.expected, color)
			}
		})
	}

	// The end points are exact
	if got := BackgroundGradient(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, -1, 0))); !got.Equals(SkyWhite) {
		t.Errorf("Straight down should be exactly white, got %v", got)
	}
	if got := BackgroundGradient(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))); !got.Equals(SkyBlue) {
		t.Errorf("Straight up should be exactly sky blue, got %v", got)
	}
}

func TestRayColor_AbsorbedIsBlack(t *testing.T) {
	pt := NewPathTracingIntegrator()
	absorber := MockMaterial{scatterFn: func(core.Ray, material.HitRecord, core.Sampler) (material.ScatterResult, bool) {
		return material.ScatterResult{}, false
	}}
	world := geometry.NewHittableList(mustSphere(t, core.NewVec3(0, 0, -1), 0.5, absorber))

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, newSampler(), 10)
	if !color.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Absorbed ray should be black, got %v", color)
	}
}

func TestRayColor_AttenuationMultipliesBackground(t *testing.T) {
	pt := NewPathTracingIntegrator()
	attenuation := core.NewVec3(0.5, 0.25, 0.8)

	// Scatters once straight up into the sky
	mat := MockMaterial{scatterFn: func(rayIn core.Ray, hit material.HitRecord, sampler core.Sampler) (material.ScatterResult, bool) {
		return material.ScatterResult{
			Scattered:   core.NewRay(hit.Point, core.NewVec3(0, 1, 0)),
			Attenuation: attenuation,
		}, true
	}}
	world := geometry.NewHittableList(mustSphere(t, core.NewVec3(0, 0, -1), 0.5, mat))

	color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, newSampler(), 5)
	expected := attenuation.MultiplyVec(SkyBlue)
	if color.Subtract(expected).Length() > 1e-12 {
		t.Errorf("Expected %v, got %v", expected, color)
	}

	// With a single bounce of budget the scattered ray is never traced
	color = pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), world, newSampler(), 1)
	if !color.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Depth 1 with a hit should be black, got %v", color)
	}
}

func TestRayColor_MirrorSpheresTerminate(t *testing.T) {
	pt := NewPathTracingIntegrator()
	mirror := material.NewMetal(core.NewVec3(1, 1, 1))

	// A ray bouncing between two facing mirrors along the x axis never escapes
	world := &countingShape{Shape: geometry.NewHittableList(
		mustSphere(t, core.NewVec3(-2, 0, 0), 1, mirror),
		mustSphere(t, core.NewVec3(2, 0, 0), 1, mirror),
	)}

	for _, maxDepth := range []int{1, 2, 10, 50, 500} {
		world.calls = 0
		color := pt.RayColor(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), world, newSampler(), maxDepth)
		if world.calls > maxDepth {
			t.Errorf("depth %d: %d scene queries exceed the bounce budget", maxDepth, world.calls)
		}
		if !color.Equals(core.NewVec3(0, 0, 0)) {
			t.Errorf("depth %d: trapped ray should return black, got %v", maxDepth, color)
		}
	}
}

func TestRayColor_TerminatesWithinDepthInRandomScenes(t *testing.T) {
	pt := NewPathTracingIntegrator()
	random := rand.New(rand.NewSource(7))
	sampler := core.NewRandomSampler(random)

	list := geometry.NewHittableList()
	for i := 0; i < 20; i++ {
		var mat material.Material = material.NewLambertian(core.RandomVec3(sampler))
		if i%2 == 0 {
			mat = material.NewMetal(core.RandomVec3(sampler))
		}
		list.Add(mustSphere(t, core.RandomVec3Range(sampler, -3, 3), 0.2+random.Float64(), mat))
	}
	world := &countingShape{Shape: list}

	for i := 0; i < 200; i++ {
		world.calls = 0
		depth := 1 + random.Intn(30)
		ray := core.NewRay(core.RandomVec3Range(sampler, -4, 4), core.RandomUnitVector(sampler))
		color := pt.RayColor(ray, world, sampler, depth)

		if world.calls > depth {
			t.Fatalf("ray %d: %d queries for depth %d", i, world.calls, depth)
		}
		// Albedos are in [0,1) and the sky is at most white
		if color.X < 0 || color.X > 1 || color.Y < 0 || color.Y > 1 || color.Z < 0 || color.Z > 1 {
			t.Fatalf("ray %d: color %v outside [0,1]", i, color)
		}
	}
}

// recursiveRayColor is the textbook recursive formulation used as a reference
func recursiveRayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	if depth <= 0 {
		return core.NewVec3(0, 0, 0)
	}
	hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return BackgroundGradient(ray)
	}
	scatter, ok := hit.Material.Scatter(ray, *hit, sampler)
	if !ok {
		return core.NewVec3(0, 0, 0)
	}
	return scatter.Attenuation.MultiplyVec(recursiveRayColor(scatter.Scattered, world, sampler, depth-1))
}

func TestRayColor_MatchesRecursiveDefinition(t *testing.T) {
	pt := NewPathTracingIntegrator()
	world := geometry.NewHittableList(
		mustSphere(t, core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		mustSphere(t, core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		mustSphere(t, core.NewVec3(-1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.8, 0.8))),
		mustSphere(t, core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2))),
	)

	iterative := core.NewRandomSampler(rand.New(rand.NewSource(3)))
	recursive := core.NewRandomSampler(rand.New(rand.NewSource(3)))
	directions := core.NewRandomSampler(rand.New(rand.NewSource(4)))

	for i := 0; i < 500; i++ {
		ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(directions.GetRange(-1.5, 1.5), directions.GetRange(-1, 1), -1))
		a := pt.RayColor(ray, world, iterative, 50)
		b := recursiveRayColor(ray, world, recursive, 50)
		if a.Subtract(b).Length() > 1e-12 {
			t.Fatalf("ray %d: iterative %v != recursive %v", i, a, b)
		}
	}
}
