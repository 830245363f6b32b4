// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/commands"
	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/plugin"
	"github.com/bethropolis/pixide/internal/snippet"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

// Ensure appEditorAPI implements the plugin and command interfaces.
var (
	_ plugin.EditorAPI = (*appEditorAPI)(nil)
	_ commands.AppAPI  = (*appEditorAPI)(nil)
)

// appEditorAPI provides the concrete implementation of the EditorAPI interface.
type appEditorAPI struct {
	app *App // Reference back to the main application
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Document Access ---

func (api *appEditorAPI) GetDocument() *document.Snapshot {
	return api.app.editor.Present()
}

func (api *appEditorAPI) GetDocumentFilePath() string {
	return api.app.FilePath()
}

func (api *appEditorAPI) IsDocumentModified() bool {
	return api.app.editor.IsModified()
}

func (api *appEditorAPI) GetProps() view.Props {
	return api.app.editor.Props()
}

func (api *appEditorAPI) HistoryDepth() (past, future int) {
	return api.app.editor.GetHistoryManager().Depth()
}

// --- Persistence ---

// SaveDocument saves to the current path; it fails for unnamed documents.
func (api *appEditorAPI) SaveDocument() error {
	_, err := api.app.SaveDocumentAs("")
	if err == nil {
		api.app.requestRedraw()
	}
	return err
}

func (api *appEditorAPI) SaveDocumentAs(path string) (string, error) {
	return api.app.SaveDocumentAs(path)
}

func (api *appEditorAPI) OpenDocument(path string) error {
	return api.app.OpenDocument(path)
}

func (api *appEditorAPI) NewDocument(size types.Dimensions) error {
	return api.app.NewDocument(size)
}

func (api *appEditorAPI) ResizeDocument(size types.Dimensions) (bool, error) {
	return api.app.ResizeDocument(size)
}

func (api *appEditorAPI) ExpandSnippets(path string) ([]snippet.Block, error) {
	return api.app.ExpandSnippets(path)
}

func (api *appEditorAPI) RequestQuit(force bool) error {
	logger.Debugf("API: Quit requested (force=%v)", force)
	return api.app.RequestQuit(force)
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if api.app == nil || api.app.GetModeHandler() == nil {
		logger.Debugf("ERROR: appEditorAPI cannot register command '%s', app or modeHandler is nil", name)
		return fmt.Errorf("internal error: API cannot access command registration")
	}
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.GetTheme().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	if err := api.app.SetTheme(name); err != nil {
		return err
	}
	logger.Debugf("Theme changed to '%s', redraw requested", name)
	return nil
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.GetTheme()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := api.app.cfg.PluginConfig(pluginName)[key]
	return v, ok
}
