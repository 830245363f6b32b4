// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

const (
	// --- Meta Actions ---
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// --- Text entry (fields and command line) ---
	ActionInsertRune
	ActionConfirm // Enter
	ActionNextField
	ActionDeleteCharBackward
	ActionCancel

	// --- Editor Mode ---
	ActionEnterCommandMode
	ActionEditWidth
	ActionEditHeight

	// --- History ---
	ActionUndo
	ActionRedo

	// --- View ---
	ActionZoomIn
	ActionZoomOut
	ActionToggleOnion

	// --- Document ---
	ActionToggleLock
	ActionPrevFrame
	ActionNextFrame
	ActionAddFrame
	ActionDeleteFrame
	ActionPaint
	ActionErase
	ActionNextColor
	ActionCopyFrame
	ActionPasteFrame
)

// ActionEvent represents a decoded input event resulting in an action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
