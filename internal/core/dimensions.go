package core

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

// maxParsed saturates absurdly long digit runs; anything this large is
// clamped to MaxDimension on commit anyway.
const maxParsed = 1 << 30

// ParseDimensionText reads an integer the forgiving way browsers do:
// leading whitespace, an optional sign, then as many digits as follow.
// Trailing garbage is ignored. No digits at all is a failed parse.
func ParseDimensionText(text string) (int, bool) {
	s := strings.TrimLeft(text, " \t\n\r\f\v\u00a0\ufeff")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil || v > maxParsed {
		v = maxParsed
	}
	if negative {
		v = -v
	}
	return v, true
}

// coupledAxis returns floor(v * other/this).
func coupledAxis(v, this, other int) int {
	return int(math.Floor(float64(v) * (float64(other) / float64(this))))
}

// EditWidthText records a keystroke in the width field.
func (e *Editor) EditWidthText(text string) {
	e.editDimensionText(view.FieldWidth, text)
}

// EditHeightText records a keystroke in the height field.
func (e *Editor) EditHeightText(text string) {
	e.editDimensionText(view.FieldHeight, text)
}

func (e *Editor) editDimensionText(field view.Field, text string) {
	e.mu.Lock()
	present := e.history.Present()
	v, ok := ParseDimensionText(text)
	switch {
	case ok && present.AspectRatioLocked():
		dims := present.Dimensions()
		if field == view.FieldWidth {
			h := coupledAxis(v, dims.Width, dims.Height)
			e.view = view.SetPendingDimensions(e.view, strconv.Itoa(v), strconv.Itoa(h))
		} else {
			w := coupledAxis(v, dims.Height, dims.Width)
			e.view = view.SetPendingDimensions(e.view, strconv.Itoa(w), strconv.Itoa(v))
		}
	case field == view.FieldWidth:
		e.view = view.SetPendingWidth(e.view, text)
	default:
		e.view = view.SetPendingHeight(e.view, text)
	}
	e.mu.Unlock()

	logger.DebugTagf("dimensions", "Editor: %s text %q", field, text)
	e.dispatch(event.TypeViewChanged, nil)
}

// resolveAxis turns pending text into a clamped dimension, falling back to
// the committed value when there is no text or it does not parse.
func resolveAxis(text *string, committed int) int {
	if text == nil {
		return committed
	}
	v, ok := ParseDimensionText(*text)
	if !ok {
		return committed
	}
	return types.ClampDimension(v)
}

// CommitDimensions handles a field losing focus. Pending texts are always
// cleared. It reports whether a new snapshot was committed.
func (e *Editor) CommitDimensions() (bool, error) {
	e.mu.Lock()
	current := e.history.Present().Dimensions()
	target := types.Dimensions{
		Width:  resolveAxis(e.view.PendingWidthText, current.Width),
		Height: resolveAxis(e.view.PendingHeightText, current.Height),
	}
	e.view = view.ClearPending(e.view)
	changed, err := e.resizeLocked(target)
	e.mu.Unlock()

	e.dispatch(event.TypeViewChanged, nil)
	if changed {
		e.committed("resize")
	}
	return changed, err
}

// CancelDimensions discards both pending texts without committing.
func (e *Editor) CancelDimensions() {
	e.mu.Lock()
	had := e.view.HasPending()
	e.view = view.ClearPending(e.view)
	e.mu.Unlock()
	if had {
		e.dispatch(event.TypeViewChanged, nil)
	}
}

// ChangeDimensions resizes every frame to d (clamped). Nothing is
// committed when the size is unchanged or the resize fails.
func (e *Editor) ChangeDimensions(d types.Dimensions) (bool, error) {
	e.mu.Lock()
	changed, err := e.resizeLocked(d)
	e.mu.Unlock()
	if changed {
		e.committed("resize")
	}
	return changed, err
}

// resizeLocked must be called with e.mu held.
func (e *Editor) resizeLocked(target types.Dimensions) (bool, error) {
	target = target.Clamp()
	present := e.history.Present()
	if target == present.Dimensions() {
		return false, nil
	}

	frames, err := e.resizer.Resize(present.Frames(), target)
	if err != nil {
		logger.Warnf("Editor: Resize to %s failed: %v", target, err)
		return false, fmt.Errorf("resize to %s: %w", target, err)
	}
	if len(frames) != present.FrameCount() {
		return false, fmt.Errorf("resize to %s: got %d frames, want %d: %w",
			target, len(frames), present.FrameCount(), ErrResizeContract)
	}
	for _, f := range frames {
		if f == nil || f.Dimensions() != target {
			return false, fmt.Errorf("resize to %s: %w", target, ErrResizeContract)
		}
	}

	next, err := present.WithFrames(frames)
	if err != nil {
		return false, fmt.Errorf("resize to %s: %w", target, err)
	}
	if err := e.commitLocked(next, "resize"); err != nil {
		return false, err
	}
	return true, nil
}

// IsResourceLimit reports whether err came from the resize pixel budget.
func IsResourceLimit(err error) bool {
	return errors.Is(err, bitmap.ErrResourceLimit)
}
