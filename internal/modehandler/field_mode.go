package modehandler

import (
	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/view"
)

// FocusField starts editing a dimension input. The text starts as what the
// input currently shows.
func (mh *ModeHandler) FocusField(f view.Field) {
	if f == view.FieldNone {
		return
	}
	mh.currentMode = ModeField
	mh.focus = f
	mh.syncFieldText()
	mh.statusBar.SetFocus(f)
	logger.DebugTagf("dimensions", "ModeHandler: Editing %s", f)
}

// syncFieldText reads the focused input back from the editor, which may
// have normalised it when the aspect ratio is locked.
func (mh *ModeHandler) syncFieldText() {
	props := mh.editor.Props()
	if mh.focus == view.FieldWidth {
		mh.fieldText = props.WidthText
	} else {
		mh.fieldText = props.HeightText
	}
}

func (mh *ModeHandler) setFieldText(text string) {
	if mh.focus == view.FieldWidth {
		mh.editor.EditWidthText(text)
	} else {
		mh.editor.EditHeightText(text)
	}
	mh.syncFieldText()
}

// handleActionField handles typing into a dimension input.
func (mh *ModeHandler) handleActionField(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.setFieldText(mh.fieldText + string(actionEvent.Rune))

	case input.ActionDeleteCharBackward:
		if mh.fieldText != "" {
			mh.setFieldText(dropLastRune(mh.fieldText))
		}

	case input.ActionConfirm:
		mh.commitField()
		mh.leaveField()

	case input.ActionNextField:
		next := view.FieldHeight
		if mh.focus == view.FieldHeight {
			next = view.FieldWidth
		}
		mh.commitField()
		mh.FocusField(next)

	case input.ActionCancel:
		mh.editor.CancelDimensions()
		mh.leaveField()

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		return false
	}
	return true
}

// commitField resolves the pending inputs into a resize.
func (mh *ModeHandler) commitField() {
	changed, err := mh.editor.CommitDimensions()
	switch {
	case core.IsResourceLimit(err):
		mh.statusBar.SetTemporaryMessage("Image too large: %v", err)
	case err != nil:
		mh.statusBar.SetTemporaryMessage("Resize failed: %v", err)
	case changed:
		mh.statusBar.SetTemporaryMessage("Resized to %s", mh.editor.Present().Dimensions())
	}
}

func (mh *ModeHandler) leaveField() {
	mh.currentMode = ModeNormal
	mh.focus = view.FieldNone
	mh.fieldText = ""
	mh.statusBar.SetFocus(view.FieldNone)
}

// Blur commits and leaves the focused input, as when the user clicks
// elsewhere.
func (mh *ModeHandler) Blur() {
	if mh.currentMode != ModeField {
		return
	}
	mh.commitField()
	mh.leaveField()
}
