// Package clipboard copies frames to and from the clipboard as image
// literals.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/pixide/internal/bitmap"
	"github.com/bethropolis/pixide/internal/logger"
)

var ErrEmpty = errors.New("clipboard is empty")

// EditorInterface defines the editor methods the clipboard needs.
type EditorInterface interface {
	CurrentFrame() *bitmap.Frame
	ApplyFrameEdit(reason string, fn func(*bitmap.Frame) (*bitmap.Frame, error)) (bool, error)
}

// Manager handles clipboard operations. The internal register is always
// written; the system clipboard is used too when enabled and available.
type Manager struct {
	editor EditorInterface
	system bool

	mu       sync.Mutex
	register string
}

// NewManager creates a new clipboard manager.
func NewManager(editor EditorInterface, useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("ClipboardManager: System clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{editor: editor, system: useSystem}
}

// CopyFrame stores the current frame as an image literal.
func (m *Manager) CopyFrame() (string, error) {
	text := bitmap.FormatLiteral(m.editor.CurrentFrame())

	m.mu.Lock()
	m.register = text
	m.mu.Unlock()

	if m.system {
		if err := clipboard.WriteAll(text); err != nil {
			logger.Warnf("ClipboardManager: System clipboard write failed: %v", err)
		}
	}
	logger.Debugf("ClipboardManager: Copied %d bytes", len(text))
	return text, nil
}

// read returns the system clipboard if it holds a literal, falling back to
// the internal register.
func (m *Manager) read() (string, error) {
	if m.system {
		text, err := clipboard.ReadAll()
		if err == nil && text != "" {
			if _, perr := bitmap.ParseLiteral(text); perr == nil {
				return text, nil
			}
			logger.Debugf("ClipboardManager: System clipboard holds no image literal")
		} else if err != nil {
			logger.Warnf("ClipboardManager: System clipboard read failed: %v", err)
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.register == "" {
		return "", ErrEmpty
	}
	return m.register, nil
}

// PasteFrame replaces the current frame with the clipboard literal. The
// pasted image is anchored top-left and cropped or padded to the frame size.
func (m *Manager) PasteFrame() (bool, error) {
	text, err := m.read()
	if err != nil {
		return false, err
	}
	pasted, err := bitmap.ParseLiteral(text)
	if err != nil {
		return false, fmt.Errorf("paste: %w", err)
	}
	return m.editor.ApplyFrameEdit("paste", func(cur *bitmap.Frame) (*bitmap.Frame, error) {
		if pasted.Dimensions() == cur.Dimensions() {
			return pasted, nil
		}
		fitted, err := bitmap.CropResizer{}.Resize([]*bitmap.Frame{pasted}, cur.Dimensions())
		if err != nil {
			return nil, err
		}
		return fitted[0], nil
	})
}
