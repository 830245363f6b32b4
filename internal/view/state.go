// Package view holds the transient, non-undoable editor state and the
// read-only tuple the bottom bar renders from.
package view

import (
	"strconv"

	"github.com/bethropolis/pixide/internal/types"
)

// Field identifies a dimension input.
type Field int

const (
	FieldNone Field = iota
	FieldWidth
	FieldHeight
)

func (f Field) String() string {
	switch f {
	case FieldWidth:
		return "width"
	case FieldHeight:
		return "height"
	}
	return "none"
}

// State is UI-session data that never enters the history. The pending
// texts are nil unless a dimension field is mid-edit; they are cleared
// together.
type State struct {
	PendingWidthText  *string
	PendingHeightText *string

	ZoomLevel        int
	OnionSkinEnabled bool
	CursorLocation   *types.Point
}

// Props is everything the bottom bar needs, derived from the present
// snapshot, the history stacks and State.
type Props struct {
	ImageDimensions   types.Dimensions
	CursorLocation    *types.Point
	HasUndo           bool
	HasRedo           bool
	AspectRatioLocked bool
	OnionSkinEnabled  bool

	// WidthText and HeightText are the pending text when a field is being
	// edited and the committed value otherwise.
	WidthText  string
	HeightText string

	ZoomLevel   int
	FrameIndex  int
	FrameCount  int
	SingleFrame bool
	Modified    bool
}

// DisplayText returns the text shown in the width and height inputs.
func (s State) DisplayText(committed types.Dimensions) (width, height string) {
	width = strconv.Itoa(committed.Width)
	height = strconv.Itoa(committed.Height)
	if s.PendingWidthText != nil {
		width = *s.PendingWidthText
	}
	if s.PendingHeightText != nil {
		height = *s.PendingHeightText
	}
	return width, height
}

// HasPending reports whether either dimension field holds uncommitted text.
func (s State) HasPending() bool {
	return s.PendingWidthText != nil || s.PendingHeightText != nil
}
