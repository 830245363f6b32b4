package modehandler

import (
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)

	case input.ActionDeleteCharBackward:
		if mh.cmdBuffer == "" {
			mh.exitCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}
		mh.cmdBuffer = dropLastRune(mh.cmdBuffer)

	case input.ActionConfirm:
		line := mh.cmdBuffer
		mh.exitCommandMode()
		mh.executeCommand(line)
		return true

	case input.ActionCancel:
		mh.exitCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	case input.ActionForceQuit:
		mh.Quit()
		return false

	default:
		return false
	}

	mh.statusBar.SetCommandLine(mh.cmdBuffer, true)
	return true
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = ""
	mh.statusBar.SetCommandLine("", false)
}

// executeCommand runs line and reports failures on the status bar.
func (mh *ModeHandler) executeCommand(line string) {
	if err := mh.ExecuteCommandLine(line); err != nil {
		mh.statusBar.SetTemporaryMessage("Error: %v", err)
	}
}

func dropLastRune(s string) string {
	r := []rune(s)
	return string(r[:len(r)-1])
}
