// internal/types/point.go
package types

import "fmt"

// Point is a pixel coordinate. X is the 0-based column, Y the 0-based row.
type Point struct {
	X int
	Y int
}

// String renders the point the way the bottom bar shows it ("x, y").
func (p Point) String() string {
	return fmt.Sprintf("%d, %d", p.X, p.Y)
}
