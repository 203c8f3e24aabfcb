package output

import (
	"image"

	"github.com/nfnt/resize"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Preview returns a thumbnail of the image that is width pixels wide, keeping the
// aspect ratio. Images already narrower than width are returned at full size.
func Preview(img *renderer.Image, width int) image.Image {
	rgba := ToRGBA(img)
	if width <= 0 || width >= img.Width {
		return rgba
	}
	return resize.Resize(uint(width), 0, rgba, resize.Bilinear)
}
