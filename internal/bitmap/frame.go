// Package bitmap holds the immutable raster frames the editor works on.
package bitmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/bethropolis/pixide/internal/types"
)

var (
	ErrInvalidDimensions = errors.New("invalid frame dimensions")
	ErrOutOfBounds       = errors.New("pixel out of bounds")
	ErrInvalidColor      = errors.New("invalid palette index")
)

// Frame is a single raster buffer of palette indices. A Frame is never
// modified after construction; edits return a new Frame.
type Frame struct {
	width  int
	height int
	pixels []uint8 // row-major, len == width*height
}

// NewFrame returns a fully transparent frame.
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("new frame %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	return &Frame{width: width, height: height, pixels: make([]uint8, width*height)}, nil
}

// FromPixels builds a frame from a copy of pixels.
func FromPixels(width, height int, pixels []uint8) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame %dx%d: %w", width, height, ErrInvalidDimensions)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("frame %dx%d has %d pixels: %w", width, height, len(pixels), ErrInvalidDimensions)
	}
	for i, c := range pixels {
		if int(c) >= PaletteSize {
			return nil, fmt.Errorf("pixel %d has color %d: %w", i, c, ErrInvalidColor)
		}
	}
	p := make([]uint8, len(pixels))
	copy(p, pixels)
	return &Frame{width: width, height: height, pixels: p}, nil
}

func (f *Frame) Width() int  { return f.width }
func (f *Frame) Height() int { return f.height }

// Dimensions returns the frame size.
func (f *Frame) Dimensions() types.Dimensions {
	return types.Dimensions{Width: f.width, Height: f.height}
}

// At returns the palette index at (x, y), or 0 outside the frame.
func (f *Frame) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return Transparent
	}
	return f.pixels[y*f.width+x]
}

// Pixels returns a copy of the pixel buffer.
func (f *Frame) Pixels() []uint8 {
	p := make([]uint8, len(f.pixels))
	copy(p, f.pixels)
	return p
}

// WithPixel returns a new frame with (x, y) set to color. The receiver is
// returned unchanged when the pixel already has that color.
func (f *Frame) WithPixel(x, y int, color uint8) (*Frame, error) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return nil, fmt.Errorf("set (%d,%d) on %dx%d frame: %w", x, y, f.width, f.height, ErrOutOfBounds)
	}
	if int(color) >= PaletteSize {
		return nil, fmt.Errorf("set (%d,%d): %w", x, y, ErrInvalidColor)
	}
	if f.pixels[y*f.width+x] == color {
		return f, nil
	}
	p := f.Pixels()
	p[y*f.width+x] = color
	return &Frame{width: f.width, height: f.height, pixels: p}, nil
}

// Equal reports whether both frames have the same size and pixels.
func (f *Frame) Equal(o *Frame) bool {
	if f == o {
		return true
	}
	if f == nil || o == nil || f.width != o.width || f.height != o.height {
		return false
	}
	for i := range f.pixels {
		if f.pixels[i] != o.pixels[i] {
			return false
		}
	}
	return true
}

// Painted counts the non-transparent pixels.
func (f *Frame) Painted() int {
	n := 0
	for _, c := range f.pixels {
		if c != Transparent {
			n++
		}
	}
	return n
}

// ToImage converts the frame to a paletted image using Palette.
func (f *Frame) ToImage() *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, f.width, f.height), Palette)
	for y := 0; y < f.height; y++ {
		copy(img.Pix[y*img.Stride:y*img.Stride+f.width], f.pixels[y*f.width:(y+1)*f.width])
	}
	return img
}

// FromImage converts a paletted image back into a frame. Indices outside
// the editor palette are rejected.
func FromImage(img *image.Paletted) (*Frame, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pixels := make([]uint8, 0, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		pixels = append(pixels, row...)
	}
	return FromPixels(w, h, pixels)
}
