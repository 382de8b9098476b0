package testutil

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Tech/panoroll/internal/imageio"
	"github.com/stretchr/testify/require"
)

// StripePano returns a w x h NRGBA panorama with a distinct color per
// column, so any horizontal shift is visible in a single pixel probe.
func StripePano(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := color.NRGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(x), B: uint8(255 - x), A: 255}
		for y := 0; y < h; y++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// GrayStripePano is StripePano for single-channel images.
func GrayStripePano(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		c := color.Gray{Y: uint8(x * 255 / max(w-1, 1))}
		for y := 0; y < h; y++ {
			img.SetGray(x, y, c)
		}
	}
	return img
}

// SavePano encodes img into dir under the given name, picking the format
// from the extension's canonical codec (.png -> png etc.), and returns the
// full path.
func SavePano(dir, name string, img image.Image) (string, error) {
	format := map[string]string{
		".png":  "png",
		".jpg":  "jpeg",
		".jpeg": "jpeg",
		".bmp":  "bmp",
		".tif":  "tiff",
		".tiff": "tiff",
	}[filepath.Ext(name)]
	if format == "" {
		return "", fmt.Errorf("no test codec for %s", name)
	}

	path := filepath.Join(dir, name)
	if err := imageio.Save(path, img, format); err != nil {
		return "", err
	}
	return path, nil
}

// WritePano is SavePano for tests, failing the test on error.
func WritePano(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()

	path, err := SavePano(dir, name, img)
	require.NoError(t, err)
	return path
}

// SaveCorruptPano writes a file that carries an image extension but is not
// a decodable image.
func SaveCorruptPano(dir, name string) (string, error) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("not an image at all"), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// WriteCorruptPano is SaveCorruptPano for tests.
func WriteCorruptPano(t *testing.T, dir, name string) string {
	t.Helper()

	path, err := SaveCorruptPano(dir, name)
	require.NoError(t, err)
	return path
}
