package output

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// maxIntensity keeps int(256*x) below 256
const maxIntensity = 0.999

// sanitize maps NaN and negative channels to 0 so gamma correction stays finite
func sanitize(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	return x
}

// QuantizeColor converts a linear color to 8-bit gamma corrected channels
func QuantizeColor(c core.Vec3) (r, g, b uint8) {
	c = core.NewVec3(sanitize(c.X), sanitize(c.Y), sanitize(c.Z)).
		GammaCorrect(2).
		Clamp(0, maxIntensity)
	return uint8(256 * c.X), uint8(256 * c.Y), uint8(256 * c.Z)
}

// ToRGBA converts a rendered image into an opaque *image.RGBA
func ToRGBA(img *renderer.Image) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			r, g, b := QuantizeColor(img.At(x, y))
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return out
}
