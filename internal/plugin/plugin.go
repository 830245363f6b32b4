// internal/plugin/plugin.go
package plugin

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/view"
)

// CommandFunc defines the signature for commands registered by plugins.
type CommandFunc func(args []string) error

// EditorAPI defines the methods plugins can use to interact with the editor.
type EditorAPI interface {
	// --- Document Access (read-only) ---
	GetDocument() *document.Snapshot
	GetDocumentFilePath() string
	IsDocumentModified() bool
	GetProps() view.Props
	HistoryDepth() (past, future int)

	// --- Persistence ---
	SaveDocument() error

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})

	// --- Theme Access ---
	GetThemeStyle(styleName string) tcell.Style
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string

	// --- Configuration ---
	// GetPluginConfigValue reads a key from the [plugins.<name>] table.
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
