// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/logger"
)

// Theme maps UI element names to styles and palette indices to terminal
// colours.
type Theme struct {
	Name    string
	IsDark  bool
	Styles  map[string]tcell.Style
	Palette [bitmap.PaletteSize]tcell.Color
}

// GetStyle returns the named style, falling back to the part before the
// first dot and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		if style, ok := t.Styles[name[:dotIndex]]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// PixelColor returns the terminal colour for a palette index. Transparent
// and out-of-range indices yield tcell.ColorReset.
func (t *Theme) PixelColor(index uint8) tcell.Color {
	if index == bitmap.Transparent || int(index) >= len(t.Palette) {
		return tcell.ColorReset
	}
	return t.Palette[index]
}

// defaultPalette converts the document palette to terminal colours.
func defaultPalette() [bitmap.PaletteSize]tcell.Color {
	var p [bitmap.PaletteSize]tcell.Color
	for i, c := range bitmap.Palette {
		r, g, b, a := c.RGBA()
		if a == 0 {
			p[i] = tcell.ColorReset
			continue
		}
		p[i] = tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	}
	return p
}

var (
	Dark  Theme
	Light Theme
)

func init() {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	checker := tcell.NewHexColor(0x353b45)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	bar := tcell.StyleDefault.Background(bg).Foreground(fg)

	Dark = Theme{
		Name:    "Dark",
		IsDark:  true,
		Palette: defaultPalette(),
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Canvas":            base,
			"CanvasChecker":     base.Background(checker),
			"Cursor":            base.Reverse(true),
			"OnionSkin":         base.Foreground(muted),
			"StatusBar":         bar,
			"StatusBarField":    bar.Underline(true),
			"StatusBarFocused":  bar.Foreground(yellow).Underline(true).Bold(true),
			"StatusBarActive":   bar.Foreground(green).Bold(true),
			"StatusBarDisabled": bar.Foreground(muted),
			"StatusBarModified": bar.Foreground(yellow),
			"StatusBarMessage":  bar.Bold(true),
			"StatusBarCommand":  bar.Foreground(green).Bold(true),

			"keyword":  base.Foreground(blue).Bold(true),
			"string":   base.Foreground(green),
			"comment":  base.Foreground(muted).Italic(true),
			"number":   base.Foreground(orange),
			"constant": base.Foreground(orange),
			"type":     base.Foreground(cyan),
			"function": base.Foreground(yellow),
			"property": base.Foreground(fg),
		},
	}

	lbg := tcell.NewHexColor(0xe8e8e8)
	lfg := tcell.NewHexColor(0x383a42)
	lmuted := tcell.NewHexColor(0xa0a1a7)
	lbase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lfg)
	lbar := tcell.StyleDefault.Background(lbg).Foreground(lfg)

	Light = Theme{
		Name:    "Light",
		Palette: defaultPalette(),
		Styles: map[string]tcell.Style{
			"Default":           lbase,
			"Canvas":            lbase,
			"CanvasChecker":     lbase.Background(tcell.NewHexColor(0xd0d0d0)),
			"Cursor":            lbase.Reverse(true),
			"OnionSkin":         lbase.Foreground(lmuted),
			"StatusBar":         lbar,
			"StatusBarField":    lbar.Underline(true),
			"StatusBarFocused":  lbar.Foreground(tcell.NewHexColor(0x986801)).Underline(true).Bold(true),
			"StatusBarActive":   lbar.Foreground(tcell.NewHexColor(0x50a14f)).Bold(true),
			"StatusBarDisabled": lbar.Foreground(lmuted),
			"StatusBarModified": lbar.Foreground(tcell.NewHexColor(0x986801)),
			"StatusBarMessage":  lbar.Bold(true),
			"StatusBarCommand":  lbar.Foreground(tcell.NewHexColor(0x50a14f)).Bold(true),

			"keyword":  lbase.Foreground(tcell.NewHexColor(0xa626a4)).Bold(true),
			"string":   lbase.Foreground(tcell.NewHexColor(0x50a14f)),
			"comment":  lbase.Foreground(lmuted).Italic(true),
			"number":   lbase.Foreground(tcell.NewHexColor(0x986801)),
			"constant": lbase.Foreground(tcell.NewHexColor(0x986801)),
			"type":     lbase.Foreground(tcell.NewHexColor(0x0184bc)),
			"function": lbase.Foreground(tcell.NewHexColor(0x4078f2)),
			"property": lbase.Foreground(lfg),
		},
	}
}
