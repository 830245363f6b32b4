package modehandler

import (
	"errors"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/core/clipboard"
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

// executeAction handles actions when in ModeNormal.
func (mh *ModeHandler) executeAction(actionEvent input.ActionEvent) bool {
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetCommandLine("", true)
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionEditWidth:
		mh.FocusField(view.FieldWidth)
	case input.ActionEditHeight:
		mh.FocusField(view.FieldHeight)

	case input.ActionQuit:
		if mh.editor.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.Quit()
		return false
	case input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionSave:
		if err := mh.ExecuteCommandLine(SaveCommand); err != nil {
			mh.statusBar.SetTemporaryMessage("Save FAILED: %v", err)
		}

	case input.ActionMoveUp:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(1, 0)

	case input.ActionPaint:
		actionProcessed = mh.paintAtCursor(mh.color)
	case input.ActionErase:
		actionProcessed = mh.paintAtCursor(bitmap.Transparent)
	case input.ActionNextColor:
		mh.color = mh.color%(bitmap.PaletteSize-1) + 1
		mh.statusBar.SetTemporaryMessage("Colour %d", mh.color)

	case input.ActionCopyFrame:
		actionProcessed = mh.copyFrame()
	case input.ActionPasteFrame:
		actionProcessed = mh.pasteFrame()

	case input.ActionUndo:
		actionProcessed = mh.ActivateControl(statusbar.ControlUndo)
	case input.ActionRedo:
		actionProcessed = mh.ActivateControl(statusbar.ControlRedo)
	case input.ActionZoomIn:
		mh.ActivateControl(statusbar.ControlZoomIn)
	case input.ActionZoomOut:
		mh.ActivateControl(statusbar.ControlZoomOut)
	case input.ActionToggleOnion:
		actionProcessed = mh.ActivateControl(statusbar.ControlOnion)
	case input.ActionToggleLock:
		mh.ActivateControl(statusbar.ControlLock)
	case input.ActionPrevFrame:
		actionProcessed = mh.ActivateControl(statusbar.ControlPrevFrame)
	case input.ActionNextFrame:
		actionProcessed = mh.ActivateControl(statusbar.ControlNextFrame)

	case input.ActionAddFrame:
		actionProcessed = mh.report(mh.editor.AddFrame())
	case input.ActionDeleteFrame:
		changed, err := mh.editor.DeleteFrame()
		if errors.Is(err, core.ErrLastFrame) {
			mh.statusBar.SetTemporaryMessage("Cannot delete the only frame")
			break
		}
		actionProcessed = mh.report(changed, err)

	default:
		actionProcessed = false
	}

	if actionEvent.Action != input.ActionUnknown && actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// ActivateControl performs the action of a bottom-bar control, whether it
// was clicked or reached through a key binding.
func (mh *ModeHandler) ActivateControl(c statusbar.Control) bool {
	if c != statusbar.ControlWidth && c != statusbar.ControlHeight {
		mh.Blur()
	}
	switch c {
	case statusbar.ControlWidth:
		mh.FocusField(view.FieldWidth)
	case statusbar.ControlHeight:
		mh.FocusField(view.FieldHeight)
	case statusbar.ControlLock:
		mh.editor.ToggleAspectRatioLocked()
	case statusbar.ControlOnion:
		if mh.editor.Props().SingleFrame {
			return false
		}
		mh.editor.ToggleOnionSkinEnabled()
	case statusbar.ControlUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
			return false
		}
	case statusbar.ControlRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
			return false
		}
	case statusbar.ControlZoomIn:
		mh.editor.ChangeZoom(1)
	case statusbar.ControlZoomOut:
		mh.editor.ChangeZoom(-1)
	case statusbar.ControlPrevFrame:
		return mh.report(mh.editor.PreviousFrame())
	case statusbar.ControlNextFrame:
		return mh.report(mh.editor.NextFrame())
	default:
		return false
	}
	mh.statusBar.SetProps(mh.editor.Props())
	return true
}

// report shows an edit error and passes the changed flag through.
func (mh *ModeHandler) report(changed bool, err error) bool {
	if err != nil {
		mh.statusBar.SetTemporaryMessage("Edit failed: %v", err)
		logger.Debugf("ModeHandler: edit error: %v", err)
		return true
	}
	return changed
}

// PaintAt sets pixel p of the current frame to the current colour.
func (mh *ModeHandler) PaintAt(p types.Point) bool {
	mh.editor.SetCursorLocation(p)
	return mh.paintAtCursor(mh.color)
}

func (mh *ModeHandler) paintAtCursor(color uint8) bool {
	cursor := mh.editor.View().CursorLocation
	if cursor == nil {
		mh.statusBar.SetTemporaryMessage("Move the cursor onto the image first")
		return true
	}
	return mh.report(mh.editor.Paint(*cursor, color))
}

func (mh *ModeHandler) copyFrame() bool {
	if mh.clipboard == nil {
		mh.statusBar.SetTemporaryMessage("Clipboard unavailable")
		return true
	}
	if _, err := mh.clipboard.CopyFrame(); err != nil {
		mh.statusBar.SetTemporaryMessage("Copy failed: %v", err)
		return true
	}
	mh.statusBar.SetTemporaryMessage("Frame copied to clipboard")
	return true
}

func (mh *ModeHandler) pasteFrame() bool {
	if mh.clipboard == nil {
		mh.statusBar.SetTemporaryMessage("Clipboard unavailable")
		return true
	}
	pasted, err := mh.clipboard.PasteFrame()
	switch {
	case errors.Is(err, clipboard.ErrEmpty):
		mh.statusBar.SetTemporaryMessage("Clipboard empty - nothing to paste")
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Paste failed: %v", err)
	case pasted:
		mh.statusBar.SetTemporaryMessage("Frame pasted from clipboard")
	}
	return true
}
