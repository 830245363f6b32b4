// Package history keeps the present document snapshot together with the
// past and future stacks used for undo and redo.
package history

import (
	"errors"
	"sync"

	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/logger"
)

// DefaultMaxHistory is the number of past snapshots retained when no
// explicit limit is configured.
const DefaultMaxHistory = 100

// Unbounded disables eviction of past snapshots.
const Unbounded = -1

// ErrNilSnapshot is returned when committing or resetting to nil.
var ErrNilSnapshot = errors.New("history: nil snapshot")

// Manager is the history store. past runs oldest to newest; future runs
// from the next redo to the farthest one.
type Manager struct {
	mutex      sync.Mutex
	present    *document.Snapshot
	past       []*document.Snapshot
	future     []*document.Snapshot
	maxHistory int
}

// NewManager creates a store whose present is initial. maxHistory == 0
// selects DefaultMaxHistory and a negative value disables the limit.
func NewManager(initial *document.Snapshot, maxHistory int) (*Manager, error) {
	if initial == nil {
		return nil, ErrNilSnapshot
	}
	if maxHistory == 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{present: initial, maxHistory: maxHistory}, nil
}

// Commit makes s the present, pushing the old present onto past and
// discarding any redo branch.
func (m *Manager) Commit(s *document.Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.past = append(m.past, m.present)
	if m.maxHistory > 0 && len(m.past) > m.maxHistory {
		// FIFO eviction of the oldest snapshots
		evict := len(m.past) - m.maxHistory
		clear(m.past[:evict])
		m.past = m.past[evict:]
	}
	m.present = s
	clear(m.future)
	m.future = m.future[:0]

	logger.DebugTagf("history", "History: Committed snapshot. Past: %d, Future: 0", len(m.past))
	return nil
}

// Undo moves the newest past snapshot into present. It reports false and
// changes nothing when there is nothing to undo.
func (m *Manager) Undo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.past) == 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return false
	}
	last := len(m.past) - 1
	prev := m.past[last]
	m.past[last] = nil
	m.past = m.past[:last]

	// future is kept nearest-first; the slice tail is the nearest entry
	m.future = append(m.future, m.present)
	m.present = prev

	logger.DebugTagf("history", "History: Undo. Past: %d, Future: %d", len(m.past), len(m.future))
	return true
}

// Redo moves the nearest future snapshot into present. It reports false
// and changes nothing when there is nothing to redo.
func (m *Manager) Redo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if len(m.future) == 0 {
		logger.DebugTagf("history", "History: Nothing to redo.")
		return false
	}
	last := len(m.future) - 1
	next := m.future[last]
	m.future[last] = nil
	m.future = m.future[:last]

	m.past = append(m.past, m.present)
	m.present = next

	logger.DebugTagf("history", "History: Redo. Past: %d, Future: %d", len(m.past), len(m.future))
	return true
}

// Reset replaces the present and empties both stacks. Call on document
// load.
func (m *Manager) Reset(s *document.Snapshot) error {
	if s == nil {
		return ErrNilSnapshot
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.present = s
	m.past = nil
	m.future = nil
	logger.DebugTagf("history", "History: Reset.")
	return nil
}

// Present returns the current snapshot.
func (m *Manager) Present() *document.Snapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.present
}

// CanUndo returns true if there are snapshots to undo to.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.past) > 0
}

// CanRedo returns true if there are snapshots to redo to.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.future) > 0
}

// Depth returns the lengths of the past and future stacks.
func (m *Manager) Depth() (past, future int) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.past), len(m.future)
}

// Past returns the past stack, oldest first.
func (m *Manager) Past() []*document.Snapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return append([]*document.Snapshot(nil), m.past...)
}

// Future returns the future stack, nearest redo first.
func (m *Manager) Future() []*document.Snapshot {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	out := make([]*document.Snapshot, len(m.future))
	for i, s := range m.future {
		out[len(m.future)-1-i] = s
	}
	return out
}

// MaxHistory returns the configured past-stack limit, or Unbounded.
func (m *Manager) MaxHistory() int {
	if m.maxHistory < 0 {
		return Unbounded
	}
	return m.maxHistory
}
