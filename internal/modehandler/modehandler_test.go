package modehandler

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/core/clipboard"
	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

type fixture struct {
	mh     *ModeHandler
	editor *core.Editor
	quit   chan struct{}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	doc, err := document.Blank(types.Dimensions{Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("Blank: %v", err)
	}
	ed, err := core.NewEditor(doc, nil, 0)
	if err != nil {
		t.Fatalf("NewEditor: %v", err)
	}
	em := event.NewManager()
	ed.SetEventManager(em)
	quit := make(chan struct{})
	mh := New(Config{
		Editor:         ed,
		Clipboard:      clipboard.NewManager(ed, false),
		InputProcessor: input.NewInputProcessor(),
		EventManager:   em,
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		QuitSignal:     quit,
	})
	return &fixture{mh: mh, editor: ed, quit: quit}
}

func (f *fixture) runes(s string) {
	for _, r := range s {
		f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (f *fixture) key(k tcell.Key) {
	f.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
}

func (f *fixture) quitClosed() bool {
	select {
	case <-f.quit:
		return true
	default:
		return false
	}
}

func TestWidthFieldCommitsOnEnter(t *testing.T) {
	f := newFixture(t)
	f.runes("w")
	if f.mh.GetCurrentMode() != ModeField || f.mh.Focus() != view.FieldWidth {
		t.Fatalf("mode %v focus %v", f.mh.GetCurrentMode(), f.mh.Focus())
	}
	f.key(tcell.KeyBackspace2)
	f.runes("12")
	f.key(tcell.KeyEnter)

	if got := f.editor.Present().Dimensions(); got != (types.Dimensions{Width: 12, Height: 8}) {
		t.Fatalf("dimensions = %s", got)
	}
	if f.mh.GetCurrentMode() != ModeNormal || f.mh.Focus() != view.FieldNone {
		t.Fatalf("field still focused after Enter")
	}
}

func TestLockedFieldCouplesOtherAxis(t *testing.T) {
	f := newFixture(t)
	f.runes("l")
	if !f.editor.Present().AspectRatioLocked() {
		t.Fatalf("lock not toggled")
	}
	f.runes("w")
	f.key(tcell.KeyBackspace2)
	f.runes("16")
	if p := f.editor.Props(); p.WidthText != "16" || p.HeightText != "16" {
		t.Fatalf("pending texts = %q/%q", p.WidthText, p.HeightText)
	}
	f.key(tcell.KeyEnter)
	if got := f.editor.Present().Dimensions(); got != (types.Dimensions{Width: 16, Height: 16}) {
		t.Fatalf("dimensions = %s", got)
	}
}

func TestEscapeCancelsFieldEdit(t *testing.T) {
	f := newFixture(t)
	f.runes("h9")
	f.key(tcell.KeyEscape)

	if got := f.editor.Present().Dimensions(); got != (types.Dimensions{Width: 8, Height: 8}) {
		t.Fatalf("dimensions changed to %s", got)
	}
	if f.editor.View().HasPending() {
		t.Fatalf("pending text survived cancel")
	}
	if f.quitClosed() {
		t.Fatalf("escape in a field quit the app")
	}
}

func TestTabCommitsAndMovesFocus(t *testing.T) {
	f := newFixture(t)
	f.runes("w")
	f.key(tcell.KeyBackspace2)
	f.runes("4")
	f.key(tcell.KeyTab)

	if got := f.editor.Present().Dimensions().Width; got != 4 {
		t.Fatalf("width = %d", got)
	}
	if f.mh.Focus() != view.FieldHeight {
		t.Fatalf("focus = %v", f.mh.Focus())
	}
}

func TestCommandModeRunsRegisteredCommand(t *testing.T) {
	f := newFixture(t)
	var got []string
	if err := f.mh.RegisterCommand("hello", func(args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatalf("RegisterCommand: %v", err)
	}
	if err := f.mh.RegisterCommand("hello", nil); err == nil {
		t.Fatalf("duplicate registration accepted")
	}

	f.runes(":hello x")
	if f.mh.GetCommandBuffer() != "hello x" {
		t.Fatalf("buffer = %q", f.mh.GetCommandBuffer())
	}
	f.key(tcell.KeyEnter)
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("args = %v", got)
	}
	if f.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("still in command mode")
	}
	if err := f.mh.ExecuteCommandLine("nope"); err == nil {
		t.Fatalf("unknown command ran")
	}
}

func TestPaintUndoAndQuitPrompt(t *testing.T) {
	f := newFixture(t)
	f.runes(" ")
	if f.editor.IsModified() {
		t.Fatalf("painted without a cursor")
	}

	f.key(tcell.KeyRight)
	f.runes("c ")
	if got := f.editor.CurrentFrame().At(1, 0); got != 2 {
		t.Fatalf("pixel = %d, want colour 2", got)
	}

	f.key(tcell.KeyEscape)
	if f.quitClosed() {
		t.Fatalf("quit with unsaved changes")
	}
	f.runes("u")
	if f.editor.IsModified() {
		t.Fatalf("undo did not restore the saved snapshot")
	}
	f.key(tcell.KeyEscape)
	if !f.quitClosed() {
		t.Fatalf("expected quit after undo")
	}
	f.key(tcell.KeyEscape) // a second close must not panic
}

func TestSaveKeyRunsWriteCommand(t *testing.T) {
	f := newFixture(t)
	saves := 0
	_ = f.mh.RegisterCommand(SaveCommand, func([]string) error {
		saves++
		return nil
	})
	f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if saves != 1 {
		t.Fatalf("saves = %d", saves)
	}
}

func TestOnionControlNeedsFrames(t *testing.T) {
	f := newFixture(t)
	if f.mh.ActivateControl(statusbar.ControlOnion) {
		t.Fatalf("onion toggled on a single frame")
	}
	f.runes("n")
	if f.editor.Present().FrameCount() != 2 {
		t.Fatalf("frame not added")
	}
	if !f.mh.ActivateControl(statusbar.ControlOnion) || !f.editor.View().OnionSkinEnabled {
		t.Fatalf("onion skin not enabled")
	}
}

func TestCopyPasteFrame(t *testing.T) {
	f := newFixture(t)
	f.mh.PaintAt(types.Point{X: 3, Y: 3})
	f.runes("yn")
	f.mh.PaintAt(types.Point{X: 0, Y: 0})
	f.runes("p")
	if got := f.editor.CurrentFrame().At(0, 0); got != 0 {
		t.Fatalf("paste left pixel 0,0 = %d", got)
	}
	if got := f.editor.CurrentFrame().At(3, 3); got != 1 {
		t.Fatalf("paste lost pixel 3,3 = %d", got)
	}
}
