// Package plugintest provides an in-memory EditorAPI for plugin tests.
package plugintest

import (
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/pixide/internal/document"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/plugin"
	"github.com/bethropolis/pixide/internal/theme"
	"github.com/bethropolis/pixide/internal/view"
)

// API is a scriptable plugin.EditorAPI. Zero value is usable.
type API struct {
	mu sync.Mutex

	Document  *document.Snapshot
	FilePath  string
	Modified  bool
	Past      int
	Future    int
	Config    map[string]map[string]interface{}
	SaveErr   error
	Saves     int
	Messages  []string
	Commands  map[string]plugin.CommandFunc
	Events    *event.Manager
	ThemeName string
}

var _ plugin.EditorAPI = (*API)(nil)

func (a *API) GetDocument() *document.Snapshot { return a.Document }
func (a *API) GetDocumentFilePath() string     { return a.FilePath }
func (a *API) GetProps() view.Props            { return view.Props{} }

func (a *API) IsDocumentModified() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Modified
}

func (a *API) HistoryDepth() (int, int) { return a.Past, a.Future }

// SaveDocument counts the call and clears Modified unless SaveErr is set.
func (a *API) SaveDocument() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Saves++
	if a.SaveErr != nil {
		return a.SaveErr
	}
	a.Modified = false
	return nil
}

// SaveCount returns the number of SaveDocument calls.
func (a *API) SaveCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Saves
}

// SetModified marks the document dirty.
func (a *API) SetModified(m bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Modified = m
}

func (a *API) DispatchEvent(t event.Type, data interface{}) {
	if a.Events != nil {
		a.Events.Dispatch(t, data)
	}
}

func (a *API) SubscribeEvent(t event.Type, h event.Handler) {
	if a.Events == nil {
		a.Events = event.NewManager()
	}
	a.Events.Subscribe(t, h)
}

func (a *API) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if a.Commands == nil {
		a.Commands = make(map[string]plugin.CommandFunc)
	}
	if _, ok := a.Commands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	a.Commands[name] = fn
	return nil
}

func (a *API) SetStatusMessage(format string, args ...interface{}) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Messages = append(a.Messages, fmt.Sprintf(format, args...))
}

// LastMessage returns the most recent status message.
func (a *API) LastMessage() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.Messages) == 0 {
		return ""
	}
	return a.Messages[len(a.Messages)-1]
}

func (a *API) GetThemeStyle(name string) tcell.Style { return theme.Dark.GetStyle(name) }
func (a *API) GetTheme() *theme.Theme                { return &theme.Dark }
func (a *API) ListThemes() []string                  { return []string{theme.Dark.Name} }

func (a *API) SetTheme(name string) error {
	a.ThemeName = name
	return nil
}

func (a *API) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	v, ok := a.Config[pluginName][key]
	return v, ok
}
