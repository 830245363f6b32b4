package bitmap

import (
	"errors"
	"fmt"
	"image"

	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/types"
	"golang.org/x/image/draw"
)

// ErrResourceLimit is returned when a resize would exceed the pixel budget.
var ErrResourceLimit = errors.New("resize exceeds pixel budget")

// Resizer produces a resized copy of a frame set. Implementations must not
// modify the input frames and must return frames of exactly size.
type Resizer interface {
	Resize(frames []*Frame, size types.Dimensions) ([]*Frame, error)
}

// ResizeMode names a built-in Resizer.
type ResizeMode string

const (
	ResizeCrop  ResizeMode = "crop"
	ResizeScale ResizeMode = "scale"
)

// NewResizer returns the built-in resizer for mode. maxPixels <= 0 disables
// the budget.
func NewResizer(mode ResizeMode, maxPixels int) (Resizer, error) {
	switch mode {
	case ResizeCrop, "":
		return CropResizer{MaxPixels: maxPixels}, nil
	case ResizeScale:
		return ScaleResizer{MaxPixels: maxPixels}, nil
	}
	return nil, fmt.Errorf("unknown resize mode %q", mode)
}

func checkBudget(frames []*Frame, size types.Dimensions, maxPixels int) error {
	if !size.Valid() {
		return fmt.Errorf("resize to %s: %w", size, ErrInvalidDimensions)
	}
	if maxPixels > 0 && size.Area()*len(frames) > maxPixels {
		return fmt.Errorf("%d frames at %s: %w", len(frames), size, ErrResourceLimit)
	}
	return nil
}

// CropResizer keeps content anchored at the top-left corner, cropping or
// padding with transparent pixels.
type CropResizer struct {
	MaxPixels int
}

func (r CropResizer) Resize(frames []*Frame, size types.Dimensions) ([]*Frame, error) {
	if err := checkBudget(frames, size, r.MaxPixels); err != nil {
		return nil, err
	}
	out := make([]*Frame, len(frames))
	for i, f := range frames {
		pixels := make([]uint8, size.Area())
		cw, ch := min(f.width, size.Width), min(f.height, size.Height)
		for y := 0; y < ch; y++ {
			copy(pixels[y*size.Width:y*size.Width+cw], f.pixels[y*f.width:y*f.width+cw])
		}
		out[i] = &Frame{width: size.Width, height: size.Height, pixels: pixels}
	}
	logger.Debugf("CropResizer: %d frame(s) -> %s", len(frames), size)
	return out, nil
}

// ScaleResizer resamples every frame with nearest-neighbour scaling so that
// palette indices are preserved.
type ScaleResizer struct {
	MaxPixels int
}

func (r ScaleResizer) Resize(frames []*Frame, size types.Dimensions) ([]*Frame, error) {
	if err := checkBudget(frames, size, r.MaxPixels); err != nil {
		return nil, err
	}
	out := make([]*Frame, len(frames))
	for i, f := range frames {
		src := f.ToImage()
		dst := image.NewPaletted(image.Rect(0, 0, size.Width, size.Height), Palette)
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		scaled, err := FromImage(dst)
		if err != nil {
			return nil, fmt.Errorf("scale frame %d: %w", i, err)
		}
		out[i] = scaled
	}
	logger.Debugf("ScaleResizer: %d frame(s) -> %s", len(frames), size)
	return out, nil
}
