package types

import "fmt"

// Dimension limits accepted by the editor, inclusive.
const (
	MinDimension = 1
	MaxDimension = 999
)

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width  int
	Height int
}

// Valid reports whether both axes are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// Area returns Width*Height.
func (d Dimensions) Area() int {
	return d.Width * d.Height
}

// Contains reports whether p lies inside a Width x Height grid.
func (d Dimensions) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < d.Width && p.Y < d.Height
}

func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// ClampDimension limits v to [MinDimension, MaxDimension].
func ClampDimension(v int) int {
	if v < MinDimension {
		return MinDimension
	}
	if v > MaxDimension {
		return MaxDimension
	}
	return v
}

// Clamp clamps both axes with ClampDimension.
func (d Dimensions) Clamp() Dimensions {
	return Dimensions{Width: ClampDimension(d.Width), Height: ClampDimension(d.Height)}
}
