package integrator

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
)

// ShadowAcneEpsilon is the lower bound of the hit search window. Bounced rays start
// on a surface, and rounding would otherwise let them hit that surface again.
const ShadowAcneEpsilon = 0.001

var (
	// SkyWhite is the background color straight down
	SkyWhite = core.NewVec3(1.0, 1.0, 1.0)
	// SkyBlue is the background color straight up
	SkyBlue = core.NewVec3(0.5, 0.7, 1.0)
)

// PathTracingIntegrator follows a single path per camera ray through diffuse and
// specular bounces until it escapes to the sky, is absorbed, or runs out of depth.
type PathTracingIntegrator struct{}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator() *PathTracingIntegrator {
	return &PathTracingIntegrator{}
}

// RayColor computes the color for a single ray.
//
// It is the loop form of the recursion color(r, d) = attenuation * color(scattered, d-1):
// attenuations are multiplied into a running throughput, so the call stack stays flat
// and at most depth bounces are traced.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, sampler core.Sampler, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for remaining := depth; remaining > 0; remaining-- {
		hit, isHit := world.Hit(ray, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(BackgroundGradient(ray))
		}

		scatter, didScatter := hit.Material.Scatter(ray, *hit, sampler)
		if !didScatter {
			// Material absorbed the ray
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		ray = scatter.Scattered
	}

	// If we've exceeded the ray bounce limit, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// BackgroundGradient returns the sky color for an escaping ray: white at the bottom
// blending to blue at the top, driven by the y component of the unit direction
func BackgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map y from [-1,1] to [0,1]
	t := 0.5 * (unitDirection.Y + 1.0)

	return SkyWhite.Lerp(SkyBlue, t)
}
