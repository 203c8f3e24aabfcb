package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// DefaultAspectRatio matches the default 400x225 render
const DefaultAspectRatio = 16.0 / 9.0

// Camera generates rays for rendering
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
}

// NewCamera creates a camera at the origin looking down -Z through a viewport
// two units tall, one unit away
func NewCamera(aspectRatio float64) *Camera {
	if aspectRatio <= 0 {
		aspectRatio = DefaultAspectRatio
	}
	viewportHeight := 2.0
	viewportWidth := aspectRatio * viewportHeight
	focalLength := 1.0

	origin := core.NewVec3(0, 0, 0)
	horizontal := core.NewVec3(viewportWidth, 0, 0)
	vertical := core.NewVec3(0, viewportHeight, 0)
	lowerLeftCorner := origin.Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(core.NewVec3(0, 0, focalLength))

	return &Camera{
		origin:          origin,
		horizontal:      horizontal,
		vertical:        vertical,
		lowerLeftCorner: lowerLeftCorner,
	}
}

// NewCameraForImage creates a camera whose viewport matches the image aspect ratio
func NewCameraForImage(width, height int) *Camera {
	if width <= 0 || height <= 0 {
		return NewCamera(DefaultAspectRatio)
	}
	return NewCamera(float64(width) / float64(height))
}

// GetRay generates a ray for screen coordinates (u, v) where 0 <= u,v <= 1
// and (0, 0) is the lower left corner
func (c *Camera) GetRay(u, v float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(u)).
		Add(c.vertical.Multiply(v)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction)
}
