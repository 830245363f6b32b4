// internal/core/editor.go
package core

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/core/history"
	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/types"
	"github.com/bethropolis/pixide/internal/view"
)

var (
	ErrLastFrame         = errors.New("cannot delete the only frame")
	ErrDimensionMismatch = errors.New("edited frame changed dimensions")
	ErrResizeContract    = errors.New("resizer returned frames of the wrong size")
)

// Editor is the edit dispatcher. It owns the history store and the
// transient view state and is the only code that commits snapshots.
type Editor struct {
	mu           sync.Mutex // serialises intents; never held while dispatching
	history      *history.Manager
	view         view.State
	resizer      bitmap.Resizer
	saved        *document.Snapshot
	eventManager *event.Manager
}

// NewEditor creates an editor for doc. A nil resizer selects cropping.
func NewEditor(doc *document.Snapshot, resizer bitmap.Resizer, maxHistory int) (*Editor, error) {
	h, err := history.NewManager(doc, maxHistory)
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	if resizer == nil {
		resizer = bitmap.CropResizer{}
	}
	return &Editor{
		history: h,
		resizer: resizer,
		saved:   doc,
	}, nil
}

// SetEventManager sets the event manager used to announce state changes.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the editor's event manager (may be nil).
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetHistoryManager exposes the history store for read-only inspection.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.history
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// Present returns the committed snapshot.
func (e *Editor) Present() *document.Snapshot {
	return e.history.Present()
}

// View returns a copy of the transient state.
func (e *Editor) View() view.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.view
}

// Props derives the bottom bar tuple from the present snapshot, the
// history stacks and the view state.
func (e *Editor) Props() view.Props {
	e.mu.Lock()
	defer e.mu.Unlock()

	present := e.history.Present()
	dims := present.Dimensions()
	widthText, heightText := e.view.DisplayText(dims)
	var cursor *types.Point
	if e.view.CursorLocation != nil {
		p := *e.view.CursorLocation
		cursor = &p
	}
	return view.Props{
		ImageDimensions:   dims,
		CursorLocation:    cursor,
		HasUndo:           e.history.CanUndo(),
		HasRedo:           e.history.CanRedo(),
		AspectRatioLocked: present.AspectRatioLocked(),
		OnionSkinEnabled:  e.view.OnionSkinEnabled,
		WidthText:         widthText,
		HeightText:        heightText,
		ZoomLevel:         e.view.ZoomLevel,
		FrameIndex:        present.CurrentFrameIndex(),
		FrameCount:        present.FrameCount(),
		SingleFrame:       present.FrameCount() == 1,
		Modified:          present != e.saved,
	}
}

// commitLocked pushes next into the history. e.mu must be held.
func (e *Editor) commitLocked(next *document.Snapshot, reason string) error {
	if err := e.history.Commit(next); err != nil {
		return err
	}
	e.dropCursorOutsideLocked()
	logger.Debugf("Editor: Committed %s edit, document is %s", reason, next.Dimensions())
	return nil
}

// dropCursorOutsideLocked clears a cursor location that no longer lies on
// the image. e.mu must be held.
func (e *Editor) dropCursorOutsideLocked() {
	if e.view.CursorLocation == nil {
		return
	}
	if !e.history.Present().Dimensions().Contains(*e.view.CursorLocation) {
		e.view = view.ClearCursor(e.view)
	}
}

func (e *Editor) committed(reason string) {
	e.dispatch(event.TypeDocumentCommitted, event.DocumentCommittedData{
		Reason:     reason,
		Dimensions: e.history.Present().Dimensions(),
	})
}

// Undo restores the previous snapshot. Calling it with nothing to undo is
// a silent no-op that returns false.
func (e *Editor) Undo() bool {
	return e.navigate(true)
}

// Redo re-applies the next snapshot. Calling it with nothing to redo is a
// silent no-op that returns false.
func (e *Editor) Redo() bool {
	return e.navigate(false)
}

func (e *Editor) navigate(undo bool) bool {
	e.mu.Lock()
	var moved bool
	if undo {
		moved = e.history.Undo()
	} else {
		moved = e.history.Redo()
	}
	if moved {
		e.dropCursorOutsideLocked()
	}
	e.mu.Unlock()

	if moved {
		e.dispatch(event.TypeHistoryChanged, event.HistoryChangedData{
			Undo:    undo,
			HasUndo: e.history.CanUndo(),
			HasRedo: e.history.CanRedo(),
		})
	}
	return moved
}

// ToggleAspectRatioLocked flips the lock. The lock is a document property,
// so the toggle is committed and can be undone.
func (e *Editor) ToggleAspectRatioLocked() {
	e.mu.Lock()
	present := e.history.Present()
	err := e.commitLocked(present.WithAspectRatioLocked(!present.AspectRatioLocked()), "lock")
	e.mu.Unlock()
	if err != nil {
		logger.Errorf("Editor: Toggling aspect ratio lock failed: %v", err)
		return
	}
	e.committed("lock")
}

// ToggleOnionSkinEnabled flips onion-skin visibility. Never undoable.
func (e *Editor) ToggleOnionSkinEnabled() {
	e.mu.Lock()
	e.view = view.ToggleOnionSkin(e.view)
	e.mu.Unlock()
	e.dispatch(event.TypeViewChanged, nil)
}

// ChangeZoom adds delta to the zoom level. Never undoable.
func (e *Editor) ChangeZoom(delta int) {
	e.mu.Lock()
	e.view = view.ChangeZoom(e.view, delta)
	zoom := e.view.ZoomLevel
	e.mu.Unlock()
	logger.Debugf("Editor: Zoom level %d", zoom)
	e.dispatch(event.TypeViewChanged, nil)
}

// SetCursorLocation records the pixel under the pointer. Points off the
// image clear the location.
func (e *Editor) SetCursorLocation(p types.Point) {
	e.mu.Lock()
	before := e.view.CursorLocation
	if e.history.Present().Dimensions().Contains(p) {
		e.view = view.SetCursor(e.view, p)
	} else {
		e.view = view.ClearCursor(e.view)
	}
	after := e.view.CursorLocation
	e.mu.Unlock()

	if !samePoint(before, after) {
		e.dispatch(event.TypeCursorMoved, event.CursorMovedData{Location: after})
	}
}

// ClearCursorLocation forgets the cursor location.
func (e *Editor) ClearCursorLocation() {
	e.mu.Lock()
	had := e.view.CursorLocation != nil
	e.view = view.ClearCursor(e.view)
	e.mu.Unlock()
	if had {
		e.dispatch(event.TypeCursorMoved, event.CursorMovedData{})
	}
}

// MoveCursor shifts the cursor by (dx, dy), clamped to the image. Without
// a cursor the shift starts from the top-left pixel.
func (e *Editor) MoveCursor(dx, dy int) {
	e.mu.Lock()
	dims := e.history.Present().Dimensions()
	var p types.Point
	if e.view.CursorLocation != nil {
		p = *e.view.CursorLocation
	}
	p.X = min(max(p.X+dx, 0), dims.Width-1)
	p.Y = min(max(p.Y+dy, 0), dims.Height-1)
	e.mu.Unlock()
	e.SetCursorLocation(p)
}

func samePoint(a, b *types.Point) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// LoadDocument replaces the document, empties the history and resets the
// transient state. path is informational and may be empty.
func (e *Editor) LoadDocument(doc *document.Snapshot, path string) error {
	e.mu.Lock()
	if err := e.history.Reset(doc); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("load document: %w", err)
	}
	e.view = view.Reset(e.view)
	e.saved = doc
	e.mu.Unlock()

	logger.Infof("Editor: Loaded %s document with %d frame(s)", doc.Dimensions(), doc.FrameCount())
	e.dispatch(event.TypeDocumentReset, event.DocumentResetData{FilePath: path})
	return nil
}

// MarkSaved records the present snapshot as the saved state.
func (e *Editor) MarkSaved() {
	e.mu.Lock()
	e.saved = e.history.Present()
	e.mu.Unlock()
}

// MarkSnapshotSaved records s, typically the snapshot just written to disk,
// as the saved state. Edits committed while s was being written keep the
// document modified.
func (e *Editor) MarkSnapshotSaved(s *document.Snapshot) {
	e.mu.Lock()
	e.saved = s
	e.mu.Unlock()
}

// IsModified reports whether the present differs from the last saved or
// loaded snapshot.
func (e *Editor) IsModified() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Present() != e.saved
}
