package renderer

import (
	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Image holds averaged linear colors, row 0 at the top.
// Values are neither gamma corrected nor clamped.
type Image struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At returns the color at column x, row y
func (img *Image) At(x, y int) core.Vec3 {
	return img.Pixels[y*img.Width+x]
}

// Set stores the color at column x, row y
func (img *Image) Set(x, y int, color core.Vec3) {
	img.Pixels[y*img.Width+x] = color
}
