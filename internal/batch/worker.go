package batch

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/MeKo-Tech/panoroll/internal/imageio"
	"github.com/MeKo-Tech/panoroll/internal/rotate"
)

// processItem runs one WorkItem end to end: decode, shift, encode. Every
// failure is downgraded to a Failure result; nothing escapes to the
// dispatcher or to sibling workers. The worker holds no state between items.
func processItem(item WorkItem) (res WorkResult) {
	res = WorkResult{Path: item.Path}

	img, meta, err := imageio.Decode(item.Path)
	if err != nil {
		res.Err = &FileError{Kind: DecodeError, Path: item.Path, Err: err}
		return res
	}

	rotated, err := shiftImage(img, item.Angle)
	if err != nil {
		res.Err = &FileError{Kind: TransformError, Path: item.Path, Err: err}
		return res
	}

	// Same base filename as the input. Inputs from different directories
	// that share a name silently overwrite each other; known limitation.
	outPath := filepath.Join(item.OutputDir, filepath.Base(item.Path))
	if err := imageio.Save(outPath, rotated, meta.Format); err != nil {
		res.Err = &FileError{Kind: EncodeError, Path: item.Path, Err: err}
		return res
	}
	return res
}

// shiftImage wraps the transform so that a panic on a malformed pixel buffer
// becomes an error instead of taking down the worker pool. A correct decoder
// never produces such a buffer. The decoded image is private to this worker,
// so the in-place variant is safe and skips the full-image copy.
func shiftImage(img image.Image, angle float64) (out image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("shift panicked: %v", r)
		}
	}()
	return rotate.ShiftInPlace(img, angle), nil
}
