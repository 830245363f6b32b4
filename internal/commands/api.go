package commands

import (
	"github.com/bethropolis/pixide/internal/snippet"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/types"
)

// ThemeAPI extends the commands functionality to support theme operations
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// AppAPI is the application surface behind the built-in commands.
type AppAPI interface {
	ThemeAPI

	// SaveDocumentAs writes the document to path, or to its current path
	// when path is empty, and returns the path written.
	SaveDocumentAs(path string) (string, error)
	OpenDocument(path string) error
	NewDocument(size types.Dimensions) error
	ResizeDocument(size types.Dimensions) (bool, error)
	ExpandSnippets(path string) ([]snippet.Block, error)

	// RequestQuit stops the app. Without force it refuses while the
	// document has unsaved changes.
	RequestQuit(force bool) error
}
