package scene

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// NewDefaultScene creates the four sphere scene: a diffuse sphere between two metal
// spheres on a large diffuse ground sphere
func NewDefaultScene() (*Scene, error) {
	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))
	materialLeft := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8))
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2))

	return newScene("default", 400, 225, renderer.SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}, []sphereDef{
		{core.NewVec3(0, 0, -1), 0.5, materialCenter},
		{core.NewVec3(0, -100.5, -1), 100, materialGround},
		{core.NewVec3(-1, 0, -1), 0.5, materialLeft},
		{core.NewVec3(1, 0, 1), 0.5, materialRight},
	})
}

// NewMetalPairScene creates two facing mirror spheres above a diffuse ground,
// so most camera rays bounce between them until the depth budget runs out
func NewMetalPairScene() (*Scene, error) {
	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	mirror := material.NewMetal(core.NewVec3(0.95, 0.95, 0.95))
	gold := material.NewMetal(core.NewVec3(0.9, 0.7, 0.3))

	return newScene("metal-pair", 400, 225, renderer.SamplingConfig{
		SamplesPerPixel: 50,
		MaxDepth:        100,
	}, []sphereDef{
		{core.NewVec3(0, -100.5, -1.5), 100, ground},
		{core.NewVec3(-0.55, 0, -1.5), 0.5, mirror},
		{core.NewVec3(0.55, 0, -1.5), 0.5, gold},
	})
}
