package app

import (
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/tui"
)

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()
	viewHeight := max(height-a.cfg.Editor.StatusBarHeight, 0)

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), StatusBarHeight: %d, Calculated ViewHeight: %d",
		width, height, a.cfg.Editor.StatusBarHeight, viewHeight)

	props := a.editor.Props()
	a.tuiManager.Clear()
	layout := tui.DrawCanvas(screen, width, viewHeight, a.editor.Present(), props, currentTheme)

	a.mu.Lock()
	a.layout = layout
	a.mu.Unlock()

	a.statusBar.SetProps(props)
	a.statusBar.Draw(screen, width, height)
	a.tuiManager.Show()
}

// statusBarConfig derives the bottom-bar styles from a theme.
func statusBarConfig(t *theme.Theme) statusbar.Config {
	cfg := statusbar.DefaultConfig()
	cfg.StyleDefault = t.GetStyle("StatusBar")
	cfg.StyleField = t.GetStyle("StatusBarField")
	cfg.StyleFocused = t.GetStyle("StatusBarFocused")
	cfg.StyleActive = t.GetStyle("StatusBarActive")
	cfg.StyleDisabled = t.GetStyle("StatusBarDisabled")
	cfg.StyleModified = t.GetStyle("StatusBarModified")
	cfg.StyleMessage = t.GetStyle("StatusBarMessage")
	cfg.StyleCommand = t.GetStyle("StatusBarCommand")
	return cfg
}
