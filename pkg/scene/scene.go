package scene

import (
	"fmt"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/material"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	Camera         *renderer.Camera
	World          *geometry.HittableList // Objects in the scene
	SamplingConfig renderer.SamplingConfig
	Width          int // Recommended image width
	Height         int // Recommended image height
}

// GetCamera implements renderer.Scene
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetWorld implements renderer.Scene
func (s *Scene) GetWorld() geometry.Shape {
	return s.World
}

// Resize changes the output size and rebuilds the camera for the new aspect ratio
func (s *Scene) Resize(width, height int) {
	s.Width = width
	s.Height = height
	s.Camera = renderer.NewCameraForImage(width, height)
}

// sphereDef is one row of a scene table
type sphereDef struct {
	center core.Vec3
	radius float64
	mat    material.Material
}

// buildWorld validates every sphere and collects them in order
func buildWorld(defs []sphereDef) (*geometry.HittableList, error) {
	world := geometry.NewHittableList()
	for i, def := range defs {
		sphere, err := geometry.NewSphere(def.center, def.radius, def.mat)
		if err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
		world.Add(sphere)
	}
	return world, nil
}

func newScene(name string, width, height int, config renderer.SamplingConfig, defs []sphereDef) (*Scene, error) {
	world, err := buildWorld(defs)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return &Scene{
		Name:           name,
		Camera:         renderer.NewCameraForImage(width, height),
		World:          world,
		SamplingConfig: config,
		Width:          width,
		Height:         height,
	}, nil
}
