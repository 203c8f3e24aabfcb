package output

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// ErrUnsupportedFormat is returned for file extensions with no known encoder
var ErrUnsupportedFormat = errors.New("unsupported image format")

// SaveImage writes the image to path, choosing the encoder from the extension.
// Parent directories are created as needed.
func SaveImage(path string, img *renderer.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".ppm") {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		if err := WritePPM(file, img); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	return saveRGBA(path, ToRGBA(img))
}

// SaveRGBA writes an already quantized image, used for preview thumbnails
func SaveRGBA(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return saveRGBA(path, img)
}

func saveRGBA(path string, img image.Image) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG encodes the rendered image as PNG bytes
func EncodePNG(img *renderer.Image) ([]byte, error) {
	return encodeImage(ToRGBA(img), imaging.PNG)
}

func encodeImage(img image.Image, format imaging.Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
