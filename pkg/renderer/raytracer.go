package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/geometry"
	"github.com/df07/go-sphere-raytracer/pkg/integrator"
)

var (
	// ErrInvalidSamplingConfig is returned for non-positive sample counts or depths
	ErrInvalidSamplingConfig = errors.New("invalid sampling config")
	// ErrInvalidImageSize is returned for non-positive image dimensions
	ErrInvalidImageSize = errors.New("invalid image size")
)

// DefaultSeed keeps renders reproducible unless a seed is chosen
const DefaultSeed = 42

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Validate rejects configurations that would divide by zero or trace nothing
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidSamplingConfig, c.SamplesPerPixel)
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w: max depth must be positive, got %d", ErrInvalidSamplingConfig, c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetWorld() geometry.Shape
}

// Raytracer handles the rendering process
type Raytracer struct {
	scene      Scene
	width      int
	height     int
	config     SamplingConfig
	sampler    core.Sampler
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:      scene,
		width:      width,
		height:     height,
		config:     DefaultSamplingConfig(),
		sampler:    core.NewSeededSampler(DefaultSeed), // Deterministic for testing
		integrator: integrator.NewPathTracingIntegrator(),
		logger:     NewNopLogger(),
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// SetSampler replaces the random source
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger replaces the progress logger
func (rt *Raytracer) SetLogger(logger core.Logger) {
	rt.logger = logger
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integratorInst integrator.Integrator) {
	rt.integrator = integratorInst
}

// RenderPass renders the full image with multi-sampling.
// Rows are traced from the top of the image (j = height-1) down.
// The context is checked before every scanline; cancellation returns ctx.Err().
func (rt *Raytracer) RenderPass(ctx context.Context) (*Image, RenderStats, error) {
	if rt.width <= 0 || rt.height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, rt.width, rt.height)
	}
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	startTime := time.Now()
	img := NewImage(rt.width, rt.height)
	camera := rt.scene.GetCamera()
	world := rt.scene.GetWorld()

	// A single row or column still maps to u or v in [0, 1]
	denomU := float64(max(rt.width-1, 1))
	denomV := float64(max(rt.height-1, 1))

	stats := RenderStats{
		TotalPixels:     rt.width * rt.height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		MaxDepth:        rt.config.MaxDepth,
	}

	for j := rt.height - 1; j >= 0; j-- {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, err
		}
		rt.logger.Printf("Scanlines remaining: %d\n", j)
		for i := 0; i < rt.width; i++ {
			var pixel PixelStats

			for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
				// Jitter within the pixel
				u := (float64(i) + rt.sampler.Get1D()) / denomU
				v := (float64(j) + rt.sampler.Get1D()) / denomV

				ray := camera.GetRay(u, v)
				pixel.AddSample(rt.integrator.RayColor(ray, world, rt.sampler, rt.config.MaxDepth))
			}

			stats.TotalSamples += pixel.SampleCount
			img.Set(i, rt.height-1-j, pixel.GetColor())
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.Duration = time.Since(startTime)
	rt.logger.Printf("Done.\n")

	return img, stats, nil
}
