// Package imageio decodes, encodes and reshapes the pixel buffers that move
// through the grayscale pipeline. Device buffers are always 4-channel; files
// on disk are treated as 3-channel color.
package imageio

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

// Format describes the channel layout of a PixelBuffer.
type Format int

const (
	// FormatRGB is 3 bytes per pixel, the on-disk layout.
	FormatRGB Format = iota
	// FormatRGBA is 4 bytes per pixel with trailing alpha, the device layout.
	FormatRGBA
	// FormatBGRA is FormatRGBA with red and blue swapped, as produced by
	// OpenCV-style loaders.
	FormatBGRA
)

// Channels returns the number of bytes per pixel for the format.
func (f Format) Channels() int {
	if f == FormatRGB {
		return 3
	}
	return 4
}

func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	case FormatBGRA:
		return "bgra"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// PixelBuffer is a contiguous row-major pixel grid. Stride is always
// Width*Format.Channels(); there is no padding.
type PixelBuffer struct {
	Width  int
	Height int
	Format Format
	Pix    []byte
}

// SizeBytes returns the expected length of Pix.
func (p *PixelBuffer) SizeBytes() int {
	return p.Width * p.Height * p.Format.Channels()
}

// Load decodes the image at path into a 3-channel RGB buffer. Format is
// auto-detected from the file contents (jpeg, png, gif, bmp and tiff).
func Load(path string) (*PixelBuffer, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading input image %q: %w", path, err)
	}
	return fromImage(img), nil
}

// Save encodes a 3-channel buffer to path, choosing the format from the file
// extension. Unlike the reference behavior, write and encode failures are
// surfaced to the caller.
func Save(path string, buf *PixelBuffer) error {
	if buf.Format != FormatRGB {
		return fmt.Errorf("saving %q: expected rgb buffer, got %s", path, buf.Format)
	}
	if len(buf.Pix) != buf.SizeBytes() {
		return fmt.Errorf("saving %q: pixel data is %d bytes, want %d", path, len(buf.Pix), buf.SizeBytes())
	}
	if err := imaging.Save(toImage(buf), path); err != nil {
		return fmt.Errorf("saving output image %q: %w", path, err)
	}
	return nil
}

// ConvertChannels reorders or pads channel data into the requested layout.
// Padding to a 4-channel layout fills alpha with 255; stripping drops it.
// The input is never mutated; the result is a fresh allocation.
func ConvertChannels(src *PixelBuffer, dst Format) (*PixelBuffer, error) {
	if len(src.Pix) != src.SizeBytes() {
		return nil, fmt.Errorf("convert %s to %s: pixel data is %d bytes, want %d",
			src.Format, dst, len(src.Pix), src.SizeBytes())
	}

	out := &PixelBuffer{
		Width:  src.Width,
		Height: src.Height,
		Format: dst,
	}
	out.Pix = make([]byte, out.SizeBytes())

	n := src.Width * src.Height
	sc := src.Format.Channels()
	dc := dst.Channels()
	srcSwap := src.Format == FormatBGRA
	dstSwap := dst == FormatBGRA

	for i := 0; i < n; i++ {
		s := i * sc
		d := i * dc

		r, g, b := src.Pix[s], src.Pix[s+1], src.Pix[s+2]
		if srcSwap {
			r, b = b, r
		}
		a := byte(255)
		if sc == 4 {
			a = src.Pix[s+3]
		}

		if dstSwap {
			r, b = b, r
		}
		out.Pix[d], out.Pix[d+1], out.Pix[d+2] = r, g, b
		if dc == 4 {
			out.Pix[d+3] = a
		}
	}

	return out, nil
}

// Clamp downscales 3-channel buffers whose longest side exceeds maxDim,
// preserving the aspect ratio. A maxDim of zero or a buffer already within
// bounds is returned unchanged.
func Clamp(src *PixelBuffer, maxDim int) *PixelBuffer {
	if maxDim <= 0 || src.Format != FormatRGB || (src.Width <= maxDim && src.Height <= maxDim) {
		return src
	}
	scaled := resize.Thumbnail(uint(maxDim), uint(maxDim), toImage(src), resize.Lanczos3)
	return fromImage(scaled)
}

func fromImage(img image.Image) *PixelBuffer {
	nrgba := imaging.Clone(img)
	w := nrgba.Rect.Dx()
	h := nrgba.Rect.Dy()

	buf := &PixelBuffer{Width: w, Height: h, Format: FormatRGB}
	buf.Pix = make([]byte, buf.SizeBytes())
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s := y*nrgba.Stride + x*4
			d := (y*w + x) * 3
			copy(buf.Pix[d:d+3], nrgba.Pix[s:s+3])
		}
	}
	return buf
}

func toImage(buf *PixelBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, buf.Width, buf.Height))
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			s := (y*buf.Width + x) * 3
			d := y*img.Stride + x*4
			copy(img.Pix[d:d+3], buf.Pix[s:s+3])
			img.Pix[d+3] = 255
		}
	}
	return img
}
