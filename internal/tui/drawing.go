// internal/tui/drawing.go
package tui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

const (
	// CellsPerPixel is the number of terminal columns per pixel at scale 1;
	// terminal cells are roughly twice as tall as they are wide.
	CellsPerPixel = 2
	MaxScale      = 8
)

// PixelScale maps a zoom level to a whole-number pixel scale in [1, MaxScale].
func PixelScale(zoom int) int {
	return min(max(zoom+1, 1), MaxScale)
}

// Layout places an image on the screen.
type Layout struct {
	OriginX, OriginY int // screen cell of pixel (0, 0); may be negative when scrolled
	Scale            int
	Image            types.Dimensions
	AreaWidth        int
	AreaHeight       int
}

func (l Layout) pixelWidth() int  { return l.Scale * CellsPerPixel }
func (l Layout) pixelHeight() int { return l.Scale }

// ComputeLayout centres the image in the area. An image larger than the
// area is scrolled so that focus (if any) stays visible.
func ComputeLayout(areaWidth, areaHeight int, image types.Dimensions, zoom int, focus *types.Point) Layout {
	l := Layout{Scale: PixelScale(zoom), Image: image, AreaWidth: areaWidth, AreaHeight: areaHeight}
	l.OriginX = place(areaWidth, image.Width*l.pixelWidth(), l.pixelWidth(), focus, func(p types.Point) int { return p.X })
	l.OriginY = place(areaHeight, image.Height*l.pixelHeight(), l.pixelHeight(), focus, func(p types.Point) int { return p.Y })
	return l
}

func place(area, size, step int, focus *types.Point, axis func(types.Point) int) int {
	if size <= area {
		return (area - size) / 2
	}
	scroll := 0
	if focus != nil {
		scroll = axis(*focus)*step - area/2
		scroll = min(max(scroll, 0), size-area)
	}
	return -scroll
}

// PixelAt maps a screen cell to an image pixel.
func (l Layout) PixelAt(x, y int) (types.Point, bool) {
	if x < l.OriginX || y < l.OriginY || x >= l.AreaWidth || y >= l.AreaHeight {
		return types.Point{}, false
	}
	p := types.Point{X: (x - l.OriginX) / l.pixelWidth(), Y: (y - l.OriginY) / l.pixelHeight()}
	return p, l.Image.Contains(p)
}

// DrawCanvas draws the current frame into the top areaHeight rows and
// returns the layout used. Transparent pixels show the previous frame
// dimmed when onion skin is on, otherwise a checkerboard.
func DrawCanvas(screen tcell.Screen, areaWidth, areaHeight int, doc *document.Snapshot, props view.Props, th *theme.Theme) Layout {
	layout := ComputeLayout(areaWidth, areaHeight, doc.Dimensions(), props.ZoomLevel, props.CursorLocation)
	if areaWidth <= 0 || areaHeight <= 0 {
		return layout
	}

	canvas := th.GetStyle("Canvas")
	checker := th.GetStyle("CanvasChecker")
	onion := th.GetStyle("OnionSkin")
	cursor := th.GetStyle("Cursor")

	for y := 0; y < areaHeight; y++ {
		for x := 0; x < areaWidth; x++ {
			screen.SetContent(x, y, ' ', nil, th.GetStyle("Default"))
		}
	}

	frame := doc.CurrentFrame()
	var ghost *bitmap.Frame
	if props.OnionSkinEnabled {
		ghost = doc.PreviousFrame()
	}

	for py := 0; py < layout.Image.Height; py++ {
		for px := 0; px < layout.Image.Width; px++ {
			r, style := ' ', canvas
			if c := frame.At(px, py); c != bitmap.Transparent {
				style = canvas.Background(th.PixelColor(c))
			} else if ghost != nil && ghost.At(px, py) != bitmap.Transparent {
				r, style = '░', onion.Foreground(th.PixelColor(ghost.At(px, py)))
			} else if (px+py)%2 == 1 {
				style = checker
			}
			if props.CursorLocation != nil && *props.CursorLocation == (types.Point{X: px, Y: py}) {
				r, style = '+', cursor
			}
			fillPixel(screen, layout, px, py, r, style)
		}
	}
	return layout
}

func fillPixel(screen tcell.Screen, l Layout, px, py int, r rune, style tcell.Style) {
	x0 := l.OriginX + px*l.pixelWidth()
	y0 := l.OriginY + py*l.pixelHeight()
	for y := y0; y < y0+l.pixelHeight(); y++ {
		if y < 0 || y >= l.AreaHeight {
			continue
		}
		for x := x0; x < x0+l.pixelWidth(); x++ {
			if x < 0 || x >= l.AreaWidth {
				continue
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
}
