package core

import (
	"fmt"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/types"
)

// FrameEdit produces a replacement for the current frame. Returning the
// input frame (or nil) means nothing changed.
type FrameEdit = func(current *bitmap.Frame) (*bitmap.Frame, error)

// editSnapshot runs build against the present snapshot and commits its
// result. A nil result is a no-op.
func (e *Editor) editSnapshot(reason string, build func(*document.Snapshot) (*document.Snapshot, error)) (bool, error) {
	e.mu.Lock()
	present := e.history.Present()
	next, err := build(present)
	if err == nil && next != nil && next != present {
		err = e.commitLocked(next, reason)
	}
	e.mu.Unlock()

	if err != nil {
		return false, fmt.Errorf("%s: %w", reason, err)
	}
	if next == nil || next == present {
		return false, nil
	}
	e.committed(reason)
	return true, nil
}

// CurrentFrame returns the selected frame of the present snapshot.
func (e *Editor) CurrentFrame() *bitmap.Frame {
	return e.history.Present().CurrentFrame()
}

// SelectFrame makes frame i current.
func (e *Editor) SelectFrame(i int) (bool, error) {
	return e.editSnapshot("select frame", func(s *document.Snapshot) (*document.Snapshot, error) {
		if i == s.CurrentFrameIndex() {
			return nil, nil
		}
		return s.WithCurrentFrame(i)
	})
}

// NextFrame selects the following frame, wrapping to the first.
func (e *Editor) NextFrame() (bool, error) {
	return e.stepFrame(1)
}

// PreviousFrame selects the preceding frame, wrapping to the last.
func (e *Editor) PreviousFrame() (bool, error) {
	return e.stepFrame(-1)
}

func (e *Editor) stepFrame(delta int) (bool, error) {
	return e.editSnapshot("select frame", func(s *document.Snapshot) (*document.Snapshot, error) {
		n := s.FrameCount()
		if n == 1 {
			return nil, nil
		}
		return s.WithCurrentFrame(((s.CurrentFrameIndex()+delta)%n + n) % n)
	})
}

// AddFrame duplicates the current frame after itself and selects the copy.
func (e *Editor) AddFrame() (bool, error) {
	return e.editSnapshot("add frame", func(s *document.Snapshot) (*document.Snapshot, error) {
		return s.InsertFrame(s.CurrentFrameIndex()+1, s.CurrentFrame())
	})
}

// DeleteFrame removes the current frame. The last frame cannot be removed.
func (e *Editor) DeleteFrame() (bool, error) {
	return e.editSnapshot("delete frame", func(s *document.Snapshot) (*document.Snapshot, error) {
		if s.FrameCount() == 1 {
			return nil, ErrLastFrame
		}
		return s.RemoveFrame(s.CurrentFrameIndex())
	})
}

// ApplyFrameEdit replaces the current frame with the output of fn. Edits
// that change the frame size are rejected.
func (e *Editor) ApplyFrameEdit(reason string, fn FrameEdit) (bool, error) {
	return e.editSnapshot(reason, func(s *document.Snapshot) (*document.Snapshot, error) {
		cur := s.CurrentFrame()
		next, err := fn(cur)
		if err != nil {
			return nil, err
		}
		if next == nil || next == cur || next.Equal(cur) {
			return nil, nil
		}
		if next.Dimensions() != cur.Dimensions() {
			return nil, fmt.Errorf("%s -> %s: %w", cur.Dimensions(), next.Dimensions(), ErrDimensionMismatch)
		}
		return s.WithFrame(s.CurrentFrameIndex(), next)
	})
}

// Paint sets one pixel of the current frame.
func (e *Editor) Paint(p types.Point, color uint8) (bool, error) {
	logger.DebugTagf("paint", "Editor: Paint %s colour %d", p, color)
	return e.ApplyFrameEdit("paint", func(f *bitmap.Frame) (*bitmap.Frame, error) {
		return f.WithPixel(p.X, p.Y, color)
	})
}
