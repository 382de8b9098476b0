package imageio

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}

func TestIsSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"pano.jpg", true},
		{"pano.JPG", true},
		{"pano.jpeg", true},
		{"pano.png", true},
		{"pano.bmp", true},
		{"pano.tiff", true},
		{"pano.tif", true},
		{"pano.webp", true},
		{"pano.gif", false},
		{"pano.txt", false},
		{"pano", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSupported(tt.path), tt.path)
	}
}

func TestDecode_FormatFromContainerNotExtension(t *testing.T) {
	// A PNG payload behind a .jpg extension must decode with format "png".
	dir := t.TempDir()
	path := filepath.Join(dir, "mislabeled.jpg")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testImage(8, 4), "png"))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	_, meta, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, "png", meta.Format)
}

func TestDecode_Metadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pano.png")
	require.NoError(t, Save(path, testImage(16, 8), "png"))

	img, meta, err := Decode(path)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, path, meta.Path)
	assert.Equal(t, "png", meta.Format)
	assert.Equal(t, 16, meta.Width)
	assert.Equal(t, 8, meta.Height)
	assert.Positive(t, meta.SizeBytes)
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("empty path", func(t *testing.T) {
		_, _, err := Decode("")
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "decode", cerr.Op)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, _, err := Decode(filepath.Join(dir, "pano.gif"))
		require.ErrorContains(t, err, "unsupported format")
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := Decode(filepath.Join(dir, "missing.png"))
		require.Error(t, err)
	})

	t.Run("corrupt payload", func(t *testing.T) {
		path := filepath.Join(dir, "corrupt.png")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
		_, _, err := Decode(path)
		var cerr *Error
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, "decode", cerr.Op)
		assert.Equal(t, path, cerr.Path)
	})
}

func TestSaveDecode_RoundTripsEveryWritableFormat(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 4)

	for _, format := range []string{"png", "bmp", "tiff", "jpeg"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "pano."+format)
			require.NoError(t, Save(path, src, format))

			_, meta, err := Decode(path)
			require.NoError(t, err)
			assert.Equal(t, format, meta.Format)
			assert.Equal(t, 8, meta.Width)
			assert.Equal(t, 4, meta.Height)
		})
	}
}

func TestSave_LosslessFormatsPreservePixels(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 4)

	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "exact."+format)
			require.NoError(t, Save(path, src, format))

			img, _, err := Decode(path)
			require.NoError(t, err)
			for x := 0; x < 8; x++ {
				for y := 0; y < 4; y++ {
					want := src.NRGBAAt(x, y)
					r, g, b, a := img.At(x, y).RGBA()
					got := color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
					assert.Equal(t, want, got, "%s pixel (%d,%d)", format, x, y)
				}
			}
		})
	}
}

func TestEncode_NoWebpEncoder(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testImage(4, 4), "webp")
	require.ErrorContains(t, err, "no encoder")
}

func TestSave_RemovesPartialFileOnEncodeFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pano.webp")

	err := Save(path, testImage(4, 4), "webp")
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "encode", cerr.Op)
	assert.NoFileExists(t, path)
}
