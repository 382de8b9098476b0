// Package rotate implements yaw rotation of equirectangular panoramas.
//
// An equirectangular image maps 360 degrees of yaw onto its horizontal axis,
// so rotating the viewpoint by an angle is a circular horizontal shift of
// every pixel row. No resampling is involved: the shift is an exact pixel
// permutation, so rotating by an angle and then by its negation restores the
// original image whenever the angle corresponds to a whole number of columns.
package rotate

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/panoroll/internal/mempool"
)

// ShiftColumns returns the column shift corresponding to angleDegrees for an
// image of the given width. The result is reduced to [0, width), so negative
// angles and angles beyond a full turn are handled. Fractional shifts are
// rounded to the nearest column; at such angles the rotation is not perfectly
// invertible (the rounding loses less than half a column of precision).
func ShiftColumns(width int, angleDegrees float64) int {
	if width <= 0 {
		return 0
	}
	shift := int(math.Round(angleDegrees / 360.0 * float64(width)))
	shift %= width
	if shift < 0 {
		shift += width
	}
	return shift
}

// Shift rotates an equirectangular panorama by angleDegrees of yaw.
//
// Width, height and channel layout are preserved. When the effective column
// shift is zero (including angleDegrees == 0) the input image is returned
// unchanged, so callers can skip re-encoding entirely.
//
// Images whose decoded representation carries a packed pixel buffer (RGBA,
// NRGBA, Gray and friends) are shifted in place on a copy of that buffer.
// Other representations, notably the YCbCr planes produced by the JPEG
// decoder, are first cloned to NRGBA.
func Shift(img image.Image, angleDegrees float64) image.Image {
	if img == nil {
		return nil
	}
	width := img.Bounds().Dx()
	shift := ShiftColumns(width, angleDegrees)
	if shift == 0 {
		return img
	}

	if pix, stride, bpp, ok := pixelBuffer(img); ok {
		out := shiftPacked(pix, stride, bpp, img.Bounds(), shift)
		return clonePacked(img, out)
	}

	// Planar or exotic color models: normalize to NRGBA first.
	nrgba := imaging.Clone(img)
	out := shiftPacked(nrgba.Pix, nrgba.Stride, 4, nrgba.Bounds(), shift)
	return &image.NRGBA{Pix: out, Stride: nrgba.Stride, Rect: nrgba.Rect}
}

// ShiftInPlace rotates like Shift but mutates img's pixel buffer when it is
// packed, avoiding the full-image copy. Only a single row of scratch space is
// allocated, from a shared pool. Callers must own the image exclusively.
// Images without a packed buffer fall back to Shift's cloning path.
func ShiftInPlace(img image.Image, angleDegrees float64) image.Image {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	shift := ShiftColumns(bounds.Dx(), angleDegrees)
	if shift == 0 {
		return img
	}

	pix, stride, bpp, ok := pixelBuffer(img)
	if !ok {
		return Shift(img, angleDegrees)
	}

	rowBytes := bounds.Dx() * bpp
	cut := (bounds.Dx() - shift) * bpp
	tmp := mempool.GetBytes(rowBytes)
	defer mempool.PutBytes(tmp)

	for y := 0; y < bounds.Dy(); y++ {
		row := pix[y*stride : y*stride+rowBytes]
		copy(tmp, row)
		copy(row, tmp[cut:])
		copy(row[rowBytes-cut:], tmp[:cut])
	}
	return img
}

// shiftPacked circularly rotates each row of a packed pixel buffer to the
// right by shift columns, returning a new buffer of the same size.
func shiftPacked(pix []byte, stride, bpp int, bounds image.Rectangle, shift int) []byte {
	width := bounds.Dx()
	height := bounds.Dy()
	out := make([]byte, len(pix))
	copy(out, pix)

	rowBytes := width * bpp
	cut := (width - shift) * bpp
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+rowBytes]
		dst := out[y*stride : y*stride+rowBytes]
		copy(dst, row[cut:])
		copy(dst[rowBytes-cut:], row[:cut])
	}
	return out
}

// pixelBuffer returns the packed buffer, stride and bytes-per-pixel for image
// types that store pixels row-major in a single slice.
func pixelBuffer(img image.Image) (pix []byte, stride, bpp int, ok bool) {
	switch im := img.(type) {
	case *image.NRGBA:
		return im.Pix, im.Stride, 4, true
	case *image.RGBA:
		return im.Pix, im.Stride, 4, true
	case *image.Gray:
		return im.Pix, im.Stride, 1, true
	case *image.Alpha:
		return im.Pix, im.Stride, 1, true
	case *image.CMYK:
		return im.Pix, im.Stride, 4, true
	case *image.NRGBA64:
		return im.Pix, im.Stride, 8, true
	case *image.RGBA64:
		return im.Pix, im.Stride, 8, true
	case *image.Gray16:
		return im.Pix, im.Stride, 2, true
	case *image.Alpha16:
		return im.Pix, im.Stride, 2, true
	default:
		return nil, 0, 0, false
	}
}

// clonePacked wraps a shifted pixel buffer in the same concrete image type as
// the source, so the color model of the decoded file is preserved.
func clonePacked(src image.Image, pix []byte) image.Image {
	switch im := src.(type) {
	case *image.NRGBA:
		return &image.NRGBA{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.RGBA:
		return &image.RGBA{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.Gray:
		return &image.Gray{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.Alpha:
		return &image.Alpha{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.CMYK:
		return &image.CMYK{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.NRGBA64:
		return &image.NRGBA64{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.RGBA64:
		return &image.RGBA64{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.Gray16:
		return &image.Gray16{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	case *image.Alpha16:
		return &image.Alpha16{Pix: pix, Stride: im.Stride, Rect: im.Rect}
	default:
		return src
	}
}
