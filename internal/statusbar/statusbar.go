// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/pixide/internal/view"
)

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style
	StyleField     tcell.Style // dimension inputs
	StyleFocused   tcell.Style // the input being edited
	StyleActive    tcell.Style // toggles that are on
	StyleDisabled  tcell.Style // undo/redo with nothing to do
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleCommand   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	base := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue)
	return Config{
		StyleDefault:   base,
		StyleField:     base.Underline(true),
		StyleFocused:   base.Foreground(tcell.ColorYellow).Underline(true).Bold(true),
		StyleActive:    base.Foreground(tcell.ColorWhite).Bold(true),
		StyleDisabled:  base.Foreground(tcell.ColorGray),
		StyleModified:  base.Foreground(tcell.ColorYellow).Bold(true),
		StyleMessage:   base.Foreground(tcell.ColorWhite).Bold(true),
		StyleCommand:   base.Foreground(tcell.ColorGreen).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// Control identifies a clickable element of the bar.
type Control int

const (
	ControlNone Control = iota
	ControlWidth
	ControlLock
	ControlHeight
	ControlOnion
	ControlUndo
	ControlRedo
	ControlZoomOut
	ControlZoomIn
	ControlPrevFrame
	ControlNextFrame
)

type styleKind int

const (
	kindDefault styleKind = iota
	kindField
	kindFocused
	kindActive
	kindDisabled
)

// Segment is one run of text in the bar.
type Segment struct {
	Text    string
	Control Control
	kind    styleKind
}

// Segments lays out the controls for props. The onion-skin toggle is
// omitted for single-frame documents and the cursor preview only appears
// when a location is known.
func Segments(props view.Props, focus view.Field) []Segment {
	field := func(f view.Field) styleKind {
		if focus == f {
			return kindFocused
		}
		return kindField
	}
	enabled := func(on bool) styleKind {
		if on {
			return kindDefault
		}
		return kindDisabled
	}
	active := func(on bool) styleKind {
		if on {
			return kindActive
		}
		return kindDefault
	}

	lock := "🔓"
	if props.AspectRatioLocked {
		lock = "🔒"
	}

	segs := []Segment{
		{Text: " W "},
		{Text: props.WidthText, Control: ControlWidth, kind: field(view.FieldWidth)},
		{Text: " "},
		{Text: lock, Control: ControlLock, kind: active(props.AspectRatioLocked)},
		{Text: " H "},
		{Text: props.HeightText, Control: ControlHeight, kind: field(view.FieldHeight)},
	}
	if !props.SingleFrame {
		segs = append(segs,
			Segment{Text: "  "},
			Segment{Text: "◐ onion", Control: ControlOnion, kind: active(props.OnionSkinEnabled)},
		)
	}
	if props.CursorLocation != nil {
		segs = append(segs, Segment{Text: "  " + props.CursorLocation.String()})
	}
	segs = append(segs,
		Segment{Text: "  "},
		Segment{Text: "↶ undo", Control: ControlUndo, kind: enabled(props.HasUndo)},
		Segment{Text: " "},
		Segment{Text: "↷ redo", Control: ControlRedo, kind: enabled(props.HasRedo)},
		Segment{Text: "  "},
		Segment{Text: "−", Control: ControlZoomOut},
		Segment{Text: " zoom " + strconv.Itoa(props.ZoomLevel) + " "},
		Segment{Text: "+", Control: ControlZoomIn},
		Segment{Text: "  "},
		Segment{Text: "◀", Control: ControlPrevFrame, kind: enabled(!props.SingleFrame)},
		Segment{Text: fmt.Sprintf(" %d/%d ", props.FrameIndex+1, props.FrameCount)},
		Segment{Text: "▶", Control: ControlNextFrame, kind: enabled(!props.SingleFrame)},
	)
	return segs
}

type region struct {
	start, end int
	control    Control
}

// StatusBar represents the UI component for the bottom control surface.
type StatusBar struct {
	config Config
	mu     sync.RWMutex

	props    view.Props
	focus    view.Field
	filePath string

	commandActive bool
	commandText   string

	tempMessage     string
	tempMessageTime time.Time

	row     int
	regions []region
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, row: -1}
}

// SetConfig replaces the styles, e.g. after a theme change.
func (sb *StatusBar) SetConfig(config Config) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.config = config
}

// SetProps updates the state the controls render from.
func (sb *StatusBar) SetProps(props view.Props) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.props = props
}

// SetFocus marks which dimension input is being edited.
func (sb *StatusBar) SetFocus(f view.Field) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.focus = f
}

// SetFilePath updates the document name shown on the right.
func (sb *StatusBar) SetFilePath(path string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
}

// SetCommandLine shows text as the command being typed; inactive restores
// the controls.
func (sb *StatusBar) SetCommandLine(text string, active bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.commandText = text
	sb.commandActive = active
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// HitTest returns the control drawn at screen cell (x, y).
func (sb *StatusBar) HitTest(x, y int) Control {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if y != sb.row {
		return ControlNone
	}
	for _, r := range sb.regions {
		if x >= r.start && x < r.end {
			return r.control
		}
	}
	return ControlNone
}

func (sb *StatusBar) style(kind styleKind) tcell.Style {
	switch kind {
	case kindField:
		return sb.config.StyleField
	case kindFocused:
		return sb.config.StyleFocused
	case kindActive:
		return sb.config.StyleActive
	case kindDisabled:
		return sb.config.StyleDisabled
	}
	return sb.config.StyleDefault
}

// Draw renders the status bar on the last line of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	defer sb.mu.Unlock()

	if !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) > sb.config.MessageTimeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, sb.config.StyleDefault)
	}
	sb.row = y
	sb.regions = sb.regions[:0]

	if sb.commandActive {
		drawText(screen, 0, y, width, ":"+sb.commandText, sb.config.StyleCommand)
		return
	}

	x := 0
	for _, seg := range Segments(sb.props, sb.focus) {
		end := drawText(screen, x, y, width, seg.Text, sb.style(seg.kind))
		if seg.Control != ControlNone {
			sb.regions = append(sb.regions, region{start: x, end: end, control: seg.Control})
		}
		x = end
	}

	// Right side: temporary message, or the file name.
	right, style := sb.tempMessage, sb.config.StyleMessage
	if right == "" {
		right = sb.filePath
		if right == "" {
			right = "[No Name]"
		}
		style = sb.config.StyleDefault
		if sb.props.Modified {
			right += " [+]"
			style = sb.config.StyleModified
		}
	}
	right += " "
	start := width - uniseg.StringWidth(right)
	if start < x+2 {
		start = x + 2
	}
	drawText(screen, start, y, width, right, style)
}

// drawText draws text from x using grapheme widths and returns the column
// after the last cluster drawn.
func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusterWidth := gr.Width()
		if x+clusterWidth > width {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += clusterWidth
	}
	return x
}
