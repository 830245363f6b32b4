// Package document defines the immutable document snapshot the history
// store records.
package document

import (
	"errors"
	"fmt"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/types"
)

var (
	ErrNoFrames        = errors.New("document needs at least one frame")
	ErrFrameIndex      = errors.New("frame index out of range")
	ErrMixedDimensions = errors.New("frames differ in dimensions")
)

// Snapshot is one complete, immutable state of the document: every frame,
// the selected frame and the aspect-ratio lock. Snapshots share unchanged
// frames with each other.
type Snapshot struct {
	frames            []*bitmap.Frame
	currentFrame      int
	aspectRatioLocked bool
}

// New validates and builds a snapshot. The frames slice is copied.
func New(frames []*bitmap.Frame, currentFrame int, aspectRatioLocked bool) (*Snapshot, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if currentFrame < 0 || currentFrame >= len(frames) {
		return nil, fmt.Errorf("current frame %d of %d: %w", currentFrame, len(frames), ErrFrameIndex)
	}
	dims := frames[0].Dimensions()
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("frame %d is nil: %w", i, ErrNoFrames)
		}
		if f.Dimensions() != dims {
			return nil, fmt.Errorf("frame %d is %s, frame 0 is %s: %w", i, f.Dimensions(), dims, ErrMixedDimensions)
		}
	}
	fs := make([]*bitmap.Frame, len(frames))
	copy(fs, frames)
	return &Snapshot{frames: fs, currentFrame: currentFrame, aspectRatioLocked: aspectRatioLocked}, nil
}

// Blank returns a single transparent frame of size dims.
func Blank(dims types.Dimensions) (*Snapshot, error) {
	f, err := bitmap.NewFrame(dims.Width, dims.Height)
	if err != nil {
		return nil, err
	}
	return New([]*bitmap.Frame{f}, 0, false)
}

// Frames returns a copy of the frame list.
func (s *Snapshot) Frames() []*bitmap.Frame {
	fs := make([]*bitmap.Frame, len(s.frames))
	copy(fs, s.frames)
	return fs
}

func (s *Snapshot) FrameCount() int           { return len(s.frames) }
func (s *Snapshot) CurrentFrameIndex() int    { return s.currentFrame }
func (s *Snapshot) AspectRatioLocked() bool   { return s.aspectRatioLocked }
func (s *Snapshot) Frame(i int) *bitmap.Frame { return s.frames[i] }

// CurrentFrame returns the selected frame.
func (s *Snapshot) CurrentFrame() *bitmap.Frame {
	return s.frames[s.currentFrame]
}

// PreviousFrame returns the frame before the selected one, or nil on the
// first frame. It is the onion-skin source.
func (s *Snapshot) PreviousFrame() *bitmap.Frame {
	if s.currentFrame == 0 {
		return nil
	}
	return s.frames[s.currentFrame-1]
}

// Dimensions returns the size shared by every frame.
func (s *Snapshot) Dimensions() types.Dimensions {
	return s.frames[0].Dimensions()
}

// WithFrames replaces the frame set, keeping the selected index when it is
// still valid and clamping it otherwise.
func (s *Snapshot) WithFrames(frames []*bitmap.Frame) (*Snapshot, error) {
	cur := s.currentFrame
	if cur >= len(frames) {
		cur = len(frames) - 1
	}
	if cur < 0 {
		cur = 0
	}
	return New(frames, cur, s.aspectRatioLocked)
}

// WithFrame replaces frame i.
func (s *Snapshot) WithFrame(i int, f *bitmap.Frame) (*Snapshot, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, fmt.Errorf("replace frame %d: %w", i, ErrFrameIndex)
	}
	fs := s.Frames()
	fs[i] = f
	return New(fs, s.currentFrame, s.aspectRatioLocked)
}

// WithCurrentFrame selects frame i.
func (s *Snapshot) WithCurrentFrame(i int) (*Snapshot, error) {
	return New(s.frames, i, s.aspectRatioLocked)
}

// WithAspectRatioLocked sets the lock flag, sharing all frames.
func (s *Snapshot) WithAspectRatioLocked(locked bool) *Snapshot {
	return &Snapshot{frames: s.frames, currentFrame: s.currentFrame, aspectRatioLocked: locked}
}

// InsertFrame inserts f at index i and selects it.
func (s *Snapshot) InsertFrame(i int, f *bitmap.Frame) (*Snapshot, error) {
	if i < 0 || i > len(s.frames) {
		return nil, fmt.Errorf("insert frame at %d: %w", i, ErrFrameIndex)
	}
	fs := make([]*bitmap.Frame, 0, len(s.frames)+1)
	fs = append(fs, s.frames[:i]...)
	fs = append(fs, f)
	fs = append(fs, s.frames[i:]...)
	return New(fs, i, s.aspectRatioLocked)
}

// RemoveFrame deletes frame i. The selection moves to the previous frame
// when the selected frame or an earlier one is removed.
func (s *Snapshot) RemoveFrame(i int) (*Snapshot, error) {
	if i < 0 || i >= len(s.frames) {
		return nil, fmt.Errorf("remove frame %d: %w", i, ErrFrameIndex)
	}
	if len(s.frames) == 1 {
		return nil, fmt.Errorf("remove frame %d: %w", i, ErrNoFrames)
	}
	fs := make([]*bitmap.Frame, 0, len(s.frames)-1)
	fs = append(fs, s.frames[:i]...)
	fs = append(fs, s.frames[i+1:]...)
	cur := s.currentFrame
	if i <= cur && cur > 0 {
		cur--
	}
	return New(fs, cur, s.aspectRatioLocked)
}
