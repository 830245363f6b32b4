package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/config"
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/types"
)

func newTestApp(t *testing.T, path string) *App {
	t.Helper()
	cfg := config.NewDefaultConfig()
	cfg.Editor.DefaultWidth = 4
	cfg.Editor.DefaultHeight = 4

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen Init: %v", err)
	}
	screen.SetSize(40, 12)

	a, err := New(cfg, path, screen)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		a.pluginManager.ShutdownPlugins()
		screen.Fini()
	})
	return a
}

func mouse(a *App, x, y int, buttons tcell.ButtonMask) bool {
	return a.handleEvent(tcell.NewEventMouse(x, y, buttons, tcell.ModNone))
}

func TestMissingFileStartsBlankAndSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprite.pxd")
	a := newTestApp(t, path)

	if got := a.editor.Present().Dimensions(); got != (types.Dimensions{Width: 4, Height: 4}) {
		t.Fatalf("dimensions = %s", got)
	}
	a.modeHandler.PaintAt(types.Point{X: 1, Y: 2})
	if !a.editor.IsModified() {
		t.Fatalf("paint did not mark the document modified")
	}

	saved, err := a.SaveDocumentAs("")
	if err != nil || saved != path {
		t.Fatalf("SaveDocumentAs = %q, %v", saved, err)
	}
	if a.editor.IsModified() {
		t.Fatalf("document still modified after save")
	}

	b := newTestApp(t, path)
	if got := b.editor.CurrentFrame().At(1, 2); got != 1 {
		t.Fatalf("reopened pixel = %d, want 1", got)
	}
}

func TestSaveUnnamedDocumentNeedsName(t *testing.T) {
	a := newTestApp(t, "")
	if _, err := a.SaveDocumentAs(""); !errors.Is(err, ErrNoFileName) {
		t.Fatalf("expected ErrNoFileName, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "named.pxd")
	if err := a.modeHandler.ExecuteCommandLine("w " + path); err != nil {
		t.Fatalf(":w FILE: %v", err)
	}
	if a.FilePath() != path {
		t.Fatalf("file path = %q", a.FilePath())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("file not written: %v", err)
	}
}

func TestMouseDrivesCursorPaintAndControls(t *testing.T) {
	a := newTestApp(t, "")
	a.drawEditor()

	// 40x11 canvas, 4x4 image at scale 1: origin (16, 3).
	mouse(a, 18, 3, tcell.ButtonNone)
	if c := a.editor.View().CursorLocation; c == nil || *c != (types.Point{X: 1, Y: 0}) {
		t.Fatalf("cursor = %v", c)
	}

	mouse(a, 16, 3, tcell.Button1)
	mouse(a, 16, 3, tcell.ButtonNone)
	if got := a.editor.CurrentFrame().At(0, 0); got != 1 {
		t.Fatalf("click did not paint: %d", got)
	}

	mouse(a, 0, 0, tcell.ButtonNone)
	if a.editor.View().CursorLocation != nil {
		t.Fatalf("cursor kept off the image")
	}

	a.drawEditor()
	undoX := -1
	for x := 0; x < 40; x++ {
		if a.statusBar.HitTest(x, 11) == statusbar.ControlUndo {
			undoX = x
			break
		}
	}
	if undoX < 0 {
		t.Fatalf("undo control not drawn")
	}
	mouse(a, undoX, 11, tcell.Button1)
	mouse(a, undoX, 11, tcell.ButtonNone)
	if got := a.editor.CurrentFrame().At(0, 0); got != 0 {
		t.Fatalf("undo click did not revert the paint: %d", got)
	}
}

func TestQuitRefusedWithUnsavedChanges(t *testing.T) {
	a := newTestApp(t, "")
	a.modeHandler.PaintAt(types.Point{})

	if err := a.RequestQuit(false); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("expected ErrUnsavedChanges, got %v", err)
	}
	if err := a.NewDocument(types.Dimensions{Width: 2, Height: 2}); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("new document discarded changes: %v", err)
	}
	if err := a.modeHandler.ExecuteCommandLine("q!"); err != nil {
		t.Fatalf(":q!: %v", err)
	}
	select {
	case <-a.quit:
	default:
		t.Fatalf("quit channel not closed")
	}
}

func TestBuiltinAndPluginCommands(t *testing.T) {
	a := newTestApp(t, "")
	names := strings.Join(a.modeHandler.Commands(), " ")
	for _, want := range []string{"w", "q", "new", "resize", "theme", "snippets", "stats"} {
		if !strings.Contains(" "+names+" ", " "+want+" ") {
			t.Fatalf("command %q missing from %q", want, names)
		}
	}

	if err := a.modeHandler.ExecuteCommandLine("theme light"); err != nil {
		t.Fatalf(":theme light: %v", err)
	}
	if a.GetTheme().Name != "Light" {
		t.Fatalf("theme = %s", a.GetTheme().Name)
	}

	if err := a.modeHandler.ExecuteCommandLine("resize 8 2"); err != nil {
		t.Fatalf(":resize: %v", err)
	}
	if got := a.editor.Present().Dimensions(); got != (types.Dimensions{Width: 8, Height: 2}) {
		t.Fatalf("dimensions = %s", got)
	}
	if !a.editor.Props().HasUndo {
		t.Fatalf(":resize is not undoable")
	}
}

func TestExpandSnippetsRendersImageBlocks(t *testing.T) {
	a := newTestApp(t, "")
	md := "# Sprites\n\n```img\n. 1\n2 .\n```\n\n```img\nnot a literal\n```\n"
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte(md), 0o644); err != nil {
		t.Fatal(err)
	}

	blocks, err := a.ExpandSnippets(path)
	if err != nil {
		t.Fatalf("ExpandSnippets: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	if !strings.HasPrefix(blocks[0].Rendered, "2x2 image, 2 painted\n·█\n█·") {
		t.Fatalf("rendered = %q", blocks[0].Rendered)
	}
	if blocks[1].Err == nil || blocks[1].Rendered != blocks[1].Code {
		t.Fatalf("bad literal should fall back to code: %+v", blocks[1])
	}
	if a.snippetCache.Len() != 1 {
		t.Fatalf("cache len = %d", a.snippetCache.Len())
	}

	if err := a.NewDocument(types.Dimensions{Width: 2, Height: 2}); err != nil {
		t.Fatalf("NewDocument: %v", err)
	}
	if a.snippetCache.Len() != 0 {
		t.Fatalf("new document did not clear the snippet cache")
	}
}
