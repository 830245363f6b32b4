package app

import (
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
)

// subscribeEvents wires editor state changes to redraw requests.
func (a *App) subscribeEvents() {
	for _, t := range []event.Type{
		event.TypeDocumentCommitted,
		event.TypeHistoryChanged,
		event.TypeViewChanged,
		event.TypeCursorMoved,
		event.TypeDocumentSaved,
	} {
		a.eventManager.Subscribe(t, a.handleStateChanged)
	}
	a.eventManager.Subscribe(event.TypeDocumentReset, a.handleDocumentReset)
}

// handleStateChanged refreshes the bottom bar and requests a redraw.
func (a *App) handleStateChanged(e event.Event) bool {
	a.statusBar.SetProps(a.editor.Props())
	a.requestRedraw()
	return false // Not consumed
}

// handleDocumentReset follows a newly opened or created document.
func (a *App) handleDocumentReset(e event.Event) bool {
	if data, ok := e.Data.(event.DocumentResetData); ok {
		logger.Debugf("App: Document reset (%q)", data.FilePath)
	}
	a.statusBar.SetProps(a.editor.Props())
	a.requestRedraw()
	return false
}
