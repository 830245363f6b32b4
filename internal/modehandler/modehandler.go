// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/pixide/internal/core"
	"github.com/bethropolis/pixide/internal/core/clipboard"
	"github.com/bethropolis/pixide/internal/event"
	"github.com/bethropolis/pixide/internal/input"
	"github.com/bethropolis/pixide/internal/logger"
	"github.com/bethropolis/pixide/internal/plugin" // For CommandFunc type
	"github.com/bethropolis/pixide/internal/statusbar"
	"github.com/bethropolis/pixide/internal/view"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeField            // a dimension input has focus
	ModeCommand
)

func (m InputMode) String() string {
	switch m {
	case ModeField:
		return "field"
	case ModeCommand:
		return "command"
	}
	return "normal"
}

// SaveCommand is the command run by the save key binding.
const SaveCommand = "w"

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	editor         *core.Editor
	clipboard      *clipboard.Manager
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}

	currentMode      InputMode
	focus            view.Field
	fieldText        string
	cmdBuffer        string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
	quitting         bool
	color            uint8 // paint colour, 1..PaletteSize-1
}

// Config holds dependencies for the ModeHandler. Clipboard may be nil.
type Config struct {
	Editor         *core.Editor
	Clipboard      *clipboard.Manager
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{}
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		clipboard:      cfg.Clipboard,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
		color:          1,
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	var actionEvent input.ActionEvent
	if mh.currentMode == ModeNormal {
		actionEvent = mh.inputProcessor.ProcessEvent(ev)
	} else {
		actionEvent = mh.inputProcessor.ProcessTextEvent(ev)
	}

	var actionProcessed bool
	switch mh.currentMode {
	case ModeNormal:
		actionProcessed = mh.executeAction(actionEvent)
	case ModeField:
		actionProcessed = mh.handleActionField(actionEvent)
	case ModeCommand:
		actionProcessed = mh.handleActionCommand(actionEvent)
	default:
		logger.Debugf("Warning: Unknown input mode: %v", mh.currentMode)
	}

	mh.statusBar.SetProps(mh.editor.Props())
	return actionProcessed || mh.forceQuitPending
}

// Quit signals the app to stop. Safe to call more than once.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	mh.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
	close(mh.quitSignal)
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands lists the registered command names.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteCommandLine parses and runs a command line such as "resize 8 8".
func (mh *ModeHandler) ExecuteCommandLine(line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil
	}
	cmdFunc, exists := mh.commands[parts[0]]
	if !exists {
		return fmt.Errorf("unknown command: %s", parts[0])
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", parts[0], parts[1:])
	return cmdFunc(parts[1:])
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, empty outside command mode.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// Focus returns the dimension input being edited.
func (mh *ModeHandler) Focus() view.Field {
	return mh.focus
}

// Color returns the current paint colour index.
func (mh *ModeHandler) Color() uint8 {
	return mh.color
}
