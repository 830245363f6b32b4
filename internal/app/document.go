package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/snippet"
	"github.com/bethropolis/pixide/internal/types"
)

var (
	ErrNoFileName     = errors.New("no file name (use :w FILE)")
	ErrUnsavedChanges = errors.New("unsaved changes (use :q! to discard)")
)

const snippetTimeout = 5 * time.Second

// loadDocument reads path, or returns a blank document of size fallback
// when path is empty or does not exist yet.
func loadDocument(path string, fallback types.Dimensions) (*document.Snapshot, error) {
	if path == "" {
		return document.Blank(fallback.Clamp())
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Infof("App: %s does not exist, starting a new %s image", path, fallback.Clamp())
		return document.Blank(fallback.Clamp())
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	doc, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return doc, nil
}

// SaveDocumentAs writes the present snapshot to path (the current path when
// empty) and adopts path as the document name.
func (a *App) SaveDocumentAs(path string) (string, error) {
	if path == "" {
		path = a.FilePath()
	}
	if path == "" {
		return "", ErrNoFileName
	}

	snap := a.editor.Present()
	if err := os.WriteFile(path, document.Encode(snap), 0o644); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	a.editor.MarkSnapshotSaved(snap)
	a.setFilePath(path)

	logger.Infof("App: Saved %s document to %s", snap.Dimensions(), path)
	a.eventManager.Dispatch(event.TypeDocumentSaved, event.DocumentSavedData{FilePath: path})
	return path, nil
}

// OpenDocument replaces the document with the file at path.
func (a *App) OpenDocument(path string) error {
	if a.editor.IsModified() {
		return ErrUnsavedChanges
	}
	doc, err := loadDocument(path, a.cfg.DefaultDocumentSize())
	if err != nil {
		return err
	}
	a.setFilePath(path)
	return a.editor.LoadDocument(doc, path)
}

// NewDocument replaces the document with a blank unnamed one.
func (a *App) NewDocument(size types.Dimensions) error {
	if a.editor.IsModified() {
		return ErrUnsavedChanges
	}
	doc, err := document.Blank(size.Clamp())
	if err != nil {
		return err
	}
	a.setFilePath("")
	return a.editor.LoadDocument(doc, "")
}

// ResizeDocument resizes every frame, as committing the bottom-bar inputs
// would.
func (a *App) ResizeDocument(size types.Dimensions) (bool, error) {
	return a.editor.ChangeDimensions(size)
}

// RequestQuit stops the app, refusing while there are unsaved changes
// unless forced.
func (a *App) RequestQuit(force bool) error {
	if !force && a.editor.IsModified() {
		return ErrUnsavedChanges
	}
	a.modeHandler.Quit()
	return nil
}

// ExpandSnippets expands the fenced code blocks of a markdown file.
func (a *App) ExpandSnippets(path string) ([]snippet.Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snippets: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), snippetTimeout)
	defer cancel()
	return a.expander.Expand(ctx, data)
}
