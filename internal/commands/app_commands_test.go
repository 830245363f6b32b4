package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bethropolis/pixide/internal/plugin/plugintest"
	"github.com/bethropolis/pixide/internal/snippet"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/types"
)

type fakeApp struct {
	messages []string
	saved    []string
	opened   string
	created  types.Dimensions
	resized  types.Dimensions
	quit     []bool
	modified bool
	theme    string
	blocks   []snippet.Block
}

func (f *fakeApp) SetTheme(name string) error {
	if name != "Dark" && name != "Light" {
		return errors.New("no such theme")
	}
	f.theme = name
	return nil
}
func (f *fakeApp) GetTheme() *theme.Theme { return &theme.Dark }
func (f *fakeApp) ListThemes() []string   { return []string{"Dark", "Light"} }
func (f *fakeApp) SetStatusMessage(format string, args ...interface{}) {
	f.messages = append(f.messages, fmt.Sprintf(format, args...))
}
func (f *fakeApp) SaveDocumentAs(path string) (string, error) {
	if path == "" {
		path = "current.pxd"
	}
	f.saved = append(f.saved, path)
	f.modified = false
	return path, nil
}
func (f *fakeApp) OpenDocument(path string) error         { f.opened = path; return nil }
func (f *fakeApp) NewDocument(size types.Dimensions) error { f.created = size; return nil }
func (f *fakeApp) ResizeDocument(size types.Dimensions) (bool, error) {
	f.resized = size
	return true, nil
}
func (f *fakeApp) ExpandSnippets(string) ([]snippet.Block, error) { return f.blocks, nil }
func (f *fakeApp) RequestQuit(force bool) error {
	if f.modified && !force {
		return errors.New("unsaved changes")
	}
	f.quit = append(f.quit, force)
	return nil
}

func (f *fakeApp) lastMessage() string {
	if len(f.messages) == 0 {
		return ""
	}
	return f.messages[len(f.messages)-1]
}

func setup(t *testing.T) (*plugintest.API, *fakeApp) {
	t.Helper()
	api := &plugintest.API{}
	app := &fakeApp{}
	RegisterAppCommands(api, app)
	return api, app
}

func run(t *testing.T, api *plugintest.API, name string, args ...string) error {
	t.Helper()
	fn, ok := api.Commands[name]
	if !ok {
		t.Fatalf("command %q not registered", name)
	}
	return fn(args)
}

func TestSaveAndQuitCommands(t *testing.T) {
	api, app := setup(t)
	app.modified = true

	if err := run(t, api, "q"); err == nil {
		t.Fatalf(":q succeeded with unsaved changes")
	}
	if err := run(t, api, "w", "out.pxd"); err != nil {
		t.Fatalf(":w: %v", err)
	}
	if app.saved[0] != "out.pxd" || app.lastMessage() != "Saved out.pxd" {
		t.Fatalf("saved %v, message %q", app.saved, app.lastMessage())
	}
	if err := run(t, api, "q"); err != nil {
		t.Fatalf(":q after save: %v", err)
	}

	app.modified = true
	if err := run(t, api, "q!"); err != nil || !app.quit[len(app.quit)-1] {
		t.Fatalf(":q! did not force: %v %v", err, app.quit)
	}
}

func TestSizeCommandsUseFieldParsing(t *testing.T) {
	api, app := setup(t)

	if err := run(t, api, "new", "32", " 24px"); err != nil {
		t.Fatalf(":new: %v", err)
	}
	if app.created != (types.Dimensions{Width: 32, Height: 24}) {
		t.Fatalf("created %s", app.created)
	}
	if err := run(t, api, "resize", "5000", "0"); err != nil {
		t.Fatalf(":resize: %v", err)
	}
	if app.lastMessage() != "Resized to 999x1" {
		t.Fatalf("message = %q", app.lastMessage())
	}
	if err := run(t, api, "resize", "abc", "3"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(t, api, "new", "3"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestThemeCommands(t *testing.T) {
	api, app := setup(t)
	if err := run(t, api, "theme", "Light"); err != nil || app.theme != "Light" {
		t.Fatalf(":theme Light: %v (theme %q)", err, app.theme)
	}
	if err := run(t, api, "theme", "Solarized"); err == nil || !strings.Contains(err.Error(), "Dark, Light") {
		t.Fatalf("unknown theme error = %v", err)
	}
	_ = run(t, api, "themes")
	if app.lastMessage() != "Available themes: Dark, Light" {
		t.Fatalf("message = %q", app.lastMessage())
	}
}

func TestSnippetsSummary(t *testing.T) {
	api, app := setup(t)
	app.blocks = []snippet.Block{
		{Language: "typescript", Lines: [][]snippet.Run{{}}},
		{Language: "img", Err: errors.New("bad literal")},
		{Language: "sh"},
	}
	if err := run(t, api, "snippets", "README.md"); err != nil {
		t.Fatalf(":snippets: %v", err)
	}
	if want := "Snippets: 3 blocks, 1 highlighted, 1 failed"; app.lastMessage() != want {
		t.Fatalf("message = %q, want %q", app.lastMessage(), want)
	}
	if err := run(t, api, "snippets"); !errors.Is(err, ErrUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
