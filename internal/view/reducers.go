package view

import "github.com/bethropolis/pixide/internal/types"

// SetPendingWidth records in-progress width text, leaving height alone.
func SetPendingWidth(s State, text string) State {
	s.PendingWidthText = &text
	return s
}

// SetPendingHeight records in-progress height text, leaving width alone.
func SetPendingHeight(s State, text string) State {
	s.PendingHeightText = &text
	return s
}

// SetPendingDimensions records both pending texts, as a locked edit does.
func SetPendingDimensions(s State, width, height string) State {
	s.PendingWidthText = &width
	s.PendingHeightText = &height
	return s
}

// ClearPending drops both pending texts.
func ClearPending(s State) State {
	s.PendingWidthText = nil
	s.PendingHeightText = nil
	return s
}

// ChangeZoom adds delta to the zoom level. There are no bounds here; the
// renderer decides how to draw extreme levels.
func ChangeZoom(s State, delta int) State {
	s.ZoomLevel += delta
	return s
}

// ToggleOnionSkin flips onion-skin visibility.
func ToggleOnionSkin(s State) State {
	s.OnionSkinEnabled = !s.OnionSkinEnabled
	return s
}

// SetCursor records the pixel under the pointer.
func SetCursor(s State, p types.Point) State {
	s.CursorLocation = &p
	return s
}

// ClearCursor forgets the cursor location.
func ClearCursor(s State) State {
	s.CursorLocation = nil
	return s
}

// Reset returns the state a freshly opened document starts with, keeping
// the zoom level.
func Reset(s State) State {
	return State{ZoomLevel: s.ZoomLevel}
}
