// Package imageio loads and saves panorama images while preserving their
// container format. The format tag travels with the decoded image: a file
// decoded as PNG is always written back as PNG, never re-inferred from the
// output extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode only; see Encode
)

// SupportedExtensions lists the file extensions accepted for loading.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".tif", ".webp"}

// jpegQuality matches the save quality used for rotated panoramas.
const jpegQuality = 95

// Error describes a failed codec operation on a single file.
type Error struct {
	Op   string // "decode" or "encode"
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsSupported reports whether the path has a supported image extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Metadata captures lightweight file and pixel information.
type Metadata struct {
	Path      string
	Format    string
	SizeBytes int64
	Width     int
	Height    int
}

// Decode opens and decodes an image file, returning the image and metadata.
// The Format field is the registered name reported by the decoder ("jpeg",
// "png", "bmp", "tiff", "webp"), not the file extension.
func Decode(path string) (image.Image, Metadata, error) {
	if path == "" {
		return nil, Metadata{}, &Error{Op: "decode", Path: path, Err: errors.New("empty path")}
	}
	if !IsSupported(path) {
		return nil, Metadata{}, &Error{
			Op: "decode", Path: path,
			Err: fmt.Errorf("unsupported format: %q", filepath.Ext(path)),
		}
	}

	f, err := os.Open(path) //nolint:gosec // G304: reading user-provided image paths is the point
	if err != nil {
		return nil, Metadata{}, &Error{Op: "decode", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, Metadata{}, &Error{Op: "decode", Path: path, Err: err}
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, Metadata{}, &Error{Op: "decode", Path: path, Err: err}
	}

	b := img.Bounds()
	meta := Metadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	return img, meta, nil
}

// Encode writes img in the given container format with the save options used
// for panoramas: high-quality JPEG, best-compression PNG, deflate TIFF.
// WebP can be decoded but the stack carries no webp encoder, so re-encoding
// a webp input fails.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case "jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case "png":
		enc := &png.Encoder{CompressionLevel: png.BestCompression}
		return enc.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("no encoder for format %q", format)
	}
}

// Save writes img to path in the given format, removing any partial file when
// encoding fails. The parent directory must already exist.
func Save(path string, img image.Image, format string) error {
	f, err := os.Create(path) //nolint:gosec // G304: output path derives from user-chosen directory
	if err != nil {
		return &Error{Op: "encode", Path: path, Err: err}
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return &Error{Op: "encode", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &Error{Op: "encode", Path: path, Err: err}
	}
	return nil
}
