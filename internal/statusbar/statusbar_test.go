package statusbar

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; {
		mainc, combc, _, w := s.GetContent(x, y)
		sb.WriteRune(mainc)
		for _, r := range combc {
			sb.WriteRune(r)
		}
		x += max(w, 1)
	}
	return sb.String()
}

func baseProps() view.Props {
	return view.Props{
		ImageDimensions: types.Dimensions{Width: 16, Height: 8},
		WidthText:       "16",
		HeightText:      "8",
		FrameCount:      1,
		SingleFrame:     true,
	}
}

func hasControl(segs []Segment, c Control) bool {
	for _, s := range segs {
		if s.Control == c {
			return true
		}
	}
	return false
}

func TestOnionToggleHiddenForSingleFrame(t *testing.T) {
	p := baseProps()
	if hasControl(Segments(p, view.FieldNone), ControlOnion) {
		t.Fatalf("onion toggle shown for a single-frame document")
	}
	p.SingleFrame = false
	p.FrameCount = 2
	if !hasControl(Segments(p, view.FieldNone), ControlOnion) {
		t.Fatalf("onion toggle missing for a multi-frame document")
	}
}

func TestUndoRedoDisabledStyles(t *testing.T) {
	p := baseProps()
	p.HasUndo = true
	for _, s := range Segments(p, view.FieldWidth) {
		switch s.Control {
		case ControlUndo:
			if s.kind != kindDefault {
				t.Fatalf("undo rendered disabled while available")
			}
		case ControlRedo:
			if s.kind != kindDisabled {
				t.Fatalf("redo rendered enabled while unavailable")
			}
		case ControlWidth:
			if s.kind != kindFocused {
				t.Fatalf("focused width field not highlighted")
			}
		}
	}
}

func TestDrawShowsFieldsAndCursor(t *testing.T) {
	s := newScreen(t, 100, 3)
	sb := New(DefaultConfig())
	p := baseProps()
	p.WidthText = "20"
	p.CursorLocation = &types.Point{X: 3, Y: 4}
	p.ZoomLevel = 2
	p.Modified = true
	sb.SetProps(p)
	sb.SetFilePath("hero.pxd")

	sb.Draw(s, 100, 3)
	row := rowText(s, 2, 100)
	for _, want := range []string{" W 20 ", " H 8", "  3, 4", "zoom 2", " 1/1 ", "hero.pxd [+]"} {
		if !strings.Contains(row, want) {
			t.Fatalf("row %q missing %q", row, want)
		}
	}
}

func TestDrawOmitsCursorWhenUnknown(t *testing.T) {
	s := newScreen(t, 100, 1)
	sb := New(DefaultConfig())
	sb.SetProps(baseProps())
	sb.Draw(s, 100, 1)
	if row := rowText(s, 0, 100); strings.Contains(row, ",") {
		t.Fatalf("cursor preview drawn without a location: %q", row)
	}
}

func TestHitTestFindsControls(t *testing.T) {
	s := newScreen(t, 100, 2)
	sb := New(DefaultConfig())
	sb.SetProps(baseProps())
	sb.Draw(s, 100, 2)

	// " W " occupies columns 0-2, the width text starts at column 3.
	if got := sb.HitTest(3, 1); got != ControlWidth {
		t.Fatalf("HitTest(3,1) = %v, want width field", got)
	}
	if got := sb.HitTest(3, 0); got != ControlNone {
		t.Fatalf("HitTest above the bar = %v", got)
	}
	row := rowText(s, 1, 100)
	if i := strings.Index(row, "+"); i < 0 {
		t.Fatalf("zoom-in button missing: %q", row)
	}
}

func TestCommandLineAndMessages(t *testing.T) {
	s := newScreen(t, 80, 1)
	sb := New(DefaultConfig())
	sb.SetProps(baseProps())

	sb.SetCommandLine("resize 32 32", true)
	sb.Draw(s, 80, 1)
	if row := rowText(s, 0, 80); !strings.HasPrefix(row, ":resize 32 32") {
		t.Fatalf("command line not drawn: %q", row)
	}

	sb.SetCommandLine("", false)
	sb.SetTemporaryMessage("Saved %s", "a.pxd")
	sb.Draw(s, 80, 1)
	if row := rowText(s, 0, 80); !strings.Contains(row, "Saved a.pxd") {
		t.Fatalf("message not drawn: %q", row)
	}
	sb.ResetTemporaryMessage()
	sb.Draw(s, 80, 1)
	if row := rowText(s, 0, 80); !strings.Contains(row, "[No Name]") {
		t.Fatalf("file name not restored: %q", row)
	}
}
