// internal/event/event.go
package event

import (
	"github.com/bethropolis/pixide/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Document and history
	TypeDocumentCommitted // A new snapshot became the present
	TypeHistoryChanged    // Undo or redo moved the present
	TypeDocumentReset     // A document was opened or created; history is empty
	TypeDocumentSaved     // The present snapshot was written to disk

	// Transient view state
	TypeViewChanged  // Pending dimension text, zoom or onion skin changed
	TypeCursorMoved  // The cursor location changed or was cleared
	TypeKeyPressed   // Raw key press forwarded from the terminal
	TypeThemeChanged // The active theme changed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeDocumentCommitted:
		return "DocumentCommitted"
	case TypeHistoryChanged:
		return "HistoryChanged"
	case TypeDocumentReset:
		return "DocumentReset"
	case TypeDocumentSaved:
		return "DocumentSaved"
	case TypeViewChanged:
		return "ViewChanged"
	case TypeCursorMoved:
		return "CursorMoved"
	case TypeKeyPressed:
		return "KeyPressed"
	case TypeThemeChanged:
		return "ThemeChanged"
	case TypeAppReady:
		return "AppReady"
	case TypeAppQuit:
		return "AppQuit"
	}
	return "Unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// DocumentCommittedData describes the edit that produced a snapshot.
type DocumentCommittedData struct {
	Reason     string // "resize", "lock", "frame", "paint", ...
	Dimensions types.Dimensions
}

// HistoryChangedData reports an undo or redo.
type HistoryChangedData struct {
	Undo    bool // false for redo
	HasUndo bool
	HasRedo bool
}

// DocumentResetData carries the path of a loaded document, empty for new.
type DocumentResetData struct {
	FilePath string
}

// DocumentSavedData carries the save path.
type DocumentSavedData struct {
	FilePath string
}

// CursorMovedData carries the new cursor location; nil means cleared.
type CursorMovedData struct {
	Location *types.Point
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ThemeChangedData carries the new theme name.
type ThemeChangedData struct {
	Name string
}

type AppQuitData struct{}

type AppReadyData struct{}
