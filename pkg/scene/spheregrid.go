package scene

import (
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

const (
	gridColumns = 7
	gridRows    = 4
	gridRadius  = 0.22
)

// hueToRGB converts a hue in degrees to a fully saturated RGB color scaled by value
func hueToRGB(hue, value float64) core.Vec3 {
	h := math.Mod(hue, 360) / 60
	x := 1 - math.Abs(math.Mod(h, 2)-1)

	var rgb core.Vec3
	switch {
	case h < 1:
		rgb = core.NewVec3(1, x, 0)
	case h < 2:
		rgb = core.NewVec3(x, 1, 0)
	case h < 3:
		rgb = core.NewVec3(0, 1, x)
	case h < 4:
		rgb = core.NewVec3(0, x, 1)
	case h < 5:
		rgb = core.NewVec3(x, 0, 1)
	default:
		rgb = core.NewVec3(1, 0, x)
	}
	return rgb.Multiply(value)
}

// NewSphereGridScene creates rows of small spheres receding from the camera.
// Materials alternate between diffuse and metal in a checkerboard and the hue
// sweeps across the columns.
func NewSphereGridScene() (*Scene, error) {
	defs := []sphereDef{
		{core.NewVec3(0, -100.5, -3), 100, material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6))},
	}

	spacing := 2.6 / float64(gridColumns-1)
	for row := 0; row < gridRows; row++ {
		z := -1.4 - float64(row)*0.7
		for col := 0; col < gridColumns; col++ {
			x := -1.3 + float64(col)*spacing
			albedo := hueToRGB(float64(col)*360/gridColumns, 0.85)

			var mat material.Material
			if (row+col)%2 == 0 {
				mat = material.NewLambertian(albedo)
			} else {
				mat = material.NewMetal(albedo.Multiply(0.5).Add(core.NewVec3(0.4, 0.4, 0.4)))
			}
			defs = append(defs, sphereDef{core.NewVec3(x, -0.5+gridRadius, z), gridRadius, mat})
		}
	}

	return newScene("spheregrid", 400, 225, renderer.SamplingConfig{
		SamplesPerPixel: 64,
		MaxDepth:        40,
	}, defs)
}
