// internal/app/app.go
package app

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/commands"
	"github.com/bethropolis/pixide/internal/config"
	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/core/clipboard"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/modehandler"
	"github.com/bethropolis/pixide/internal/plugin"
	"github.com/bethropolis/pixide/internal/snippet"
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/tui"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg           *config.Config
	tuiManager    *tui.TUI
	editor        *core.Editor
	clipboard     *clipboard.Manager
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	snippetCache  *snippet.Cache
	expander      *snippet.Expander
	editorAPI     *appEditorAPI

	mu          sync.Mutex // guards filePath, layout and lastButtons
	filePath    string
	layout      tui.Layout
	lastButtons tcell.ButtonMask

	// Channels managed by the App
	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates the application on the real terminal.
func NewApp(cfg *config.Config, filePath string) (*App, error) {
	tuiManager, err := tui.New(theme.Dark.GetStyle("Default"))
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(cfg, filePath, tuiManager)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	return a, nil
}

// New creates the application on an initialised screen, e.g. a simulation
// screen in tests.
func New(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	return newApp(cfg, filePath, tui.NewWithScreen(screen, theme.Dark.GetStyle("Default")))
}

func newApp(cfg *config.Config, filePath string, tuiManager *tui.TUI) (*App, error) {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	doc, err := loadDocument(filePath, cfg.DefaultDocumentSize())
	if err != nil {
		return nil, err
	}

	resizer, err := bitmap.NewResizer(bitmap.ResizeMode(cfg.Editor.ResizeMode), cfg.Editor.MaxPixels)
	if err != nil {
		return nil, fmt.Errorf("resizer: %w", err)
	}
	editor, err := core.NewEditor(doc, resizer, cfg.Editor.MaxHistory)
	if err != nil {
		return nil, err
	}

	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	themesDir := ""
	if dir, err := config.Dir(); err == nil {
		themesDir = filepath.Join(dir, config.ThemesDirName)
	}
	themeManager := theme.NewManager(themesDir)
	if err := themeManager.SetTheme(cfg.Theme); err != nil {
		logger.Warnf("App: %v, keeping %s", err, themeManager.Current().Name)
	}

	clip := clipboard.NewManager(editor, cfg.Editor.SystemClipboard)
	sbConfig := statusBarConfig(themeManager.Current())
	sbConfig.MessageTimeout = config.MessageTimeout
	statusBar := statusbar.New(sbConfig)
	statusBar.SetFilePath(filePath)
	quitChan := make(chan struct{})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		Clipboard:      clip,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		QuitSignal:     quitChan,
	})

	highlighter, err := snippet.NewHighlighter()
	if err != nil {
		logger.Warnf("App: Snippet highlighting unavailable: %v", err)
		highlighter = nil
	}
	cache := snippet.NewCache()
	cache.Attach(eventManager)
	expander := snippet.NewExpander(cache, highlighter)
	expander.Register("img", snippet.RendererFunc(renderImageLiteral))

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		editor:        editor,
		clipboard:     clip,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		snippetCache:  cache,
		expander:      expander,
		filePath:      filePath,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}
	tuiManager.SetStyle(themeManager.Current().GetStyle("Default"))
	a.editorAPI = newEditorAPI(a)

	a.subscribeEvents()
	commands.RegisterAppCommands(a.editorAPI, a.editorAPI)

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	statusBar.SetProps(editor.Props())
	return a, nil
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("%s %s - :w save | :q quit | w/h resize | l lock", config.AppName, config.Version)
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			if a.editor.IsModified() {
				logger.Warnf("Exited with unsaved changes.")
			}
			logger.Infof("Exiting application.")
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// eventLoop handles TUI events.
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		if a.handleEvent(ev) {
			a.requestRedraw()
		}
	}
}

// handleEvent routes one terminal event and reports whether a redraw is
// needed.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.GetScreen().Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(e)
	case *tcell.EventMouse:
		return a.handleMouse(e)
	}
	return false
}

// handleMouse maps the pointer to a pixel for live cursor feedback and
// paints while the primary button is held. Clicks on the bottom bar
// activate its controls.
func (a *App) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()

	a.mu.Lock()
	pressed := buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = buttons
	layout := a.layout
	a.mu.Unlock()

	if control := a.statusBar.HitTest(x, y); control != statusbar.ControlNone {
		if pressed {
			return a.modeHandler.ActivateControl(control)
		}
		return false
	}

	p, ok := layout.PixelAt(x, y)
	if !ok {
		if a.editor.View().CursorLocation == nil {
			return false
		}
		a.editor.ClearCursorLocation()
		return true
	}
	if buttons&tcell.Button1 != 0 {
		if pressed {
			a.modeHandler.Blur()
		}
		a.modeHandler.PaintAt(p)
		return true
	}
	a.editor.SetCursorLocation(p)
	return true
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default: // Don't block if a redraw is already pending
	}
}

// FilePath returns the document path, empty for an unnamed document.
func (a *App) FilePath() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.filePath
}

func (a *App) setFilePath(path string) {
	a.mu.Lock()
	a.filePath = path
	a.mu.Unlock()
	a.statusBar.SetFilePath(path)
}

// GetModeHandler allows the API adapter to access the mode handler for command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetTheme returns the app's active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme changes the app's active theme and triggers a redraw.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	t := a.themeManager.Current()
	cfg := statusBarConfig(t)
	cfg.MessageTimeout = config.MessageTimeout
	a.statusBar.SetConfig(cfg)
	a.tuiManager.SetStyle(t.GetStyle("Default"))
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
	a.requestRedraw()
	return nil
}
