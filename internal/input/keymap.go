// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

type Keymap map[tcell.Key]Action        // For special keys (Enter, Arrows, etc.)
type RuneKeymap map[rune]Action         // For single-key commands
type ModKeymap map[tcell.ModMask]Keymap // For keys combined with modifiers (Ctrl, Alt, Shift)

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
	textKeymap Keymap // keys with a meaning while typing text
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
		textKeymap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyBackspace] = ActionErase
	p.keymap[tcell.KeyBackspace2] = ActionErase
	p.keymap[tcell.KeyDelete] = ActionErase
	p.keymap[tcell.KeyEscape] = ActionQuit // checks modified
	p.keymap[tcell.KeyCtrlC] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlS] = ActionSave
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEnterCommandMode
	p.runeKeymap['+'] = ActionZoomIn
	p.runeKeymap['='] = ActionZoomIn
	p.runeKeymap['-'] = ActionZoomOut
	p.runeKeymap['l'] = ActionToggleLock
	p.runeKeymap['o'] = ActionToggleOnion
	p.runeKeymap['w'] = ActionEditWidth
	p.runeKeymap['h'] = ActionEditHeight
	p.runeKeymap['['] = ActionPrevFrame
	p.runeKeymap[']'] = ActionNextFrame
	p.runeKeymap['n'] = ActionAddFrame
	p.runeKeymap['x'] = ActionDeleteFrame
	p.runeKeymap[' '] = ActionPaint
	p.runeKeymap['c'] = ActionNextColor
	p.runeKeymap['y'] = ActionCopyFrame
	p.runeKeymap['p'] = ActionPasteFrame
	p.runeKeymap['u'] = ActionUndo
	p.runeKeymap['U'] = ActionRedo

	p.textKeymap[tcell.KeyEnter] = ActionConfirm
	p.textKeymap[tcell.KeyTab] = ActionNextField
	p.textKeymap[tcell.KeyBacktab] = ActionNextField
	p.textKeymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.textKeymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.textKeymap[tcell.KeyEscape] = ActionCancel
	p.textKeymap[tcell.KeyCtrlC] = ActionCancel
}

// ProcessEvent maps a key event in normal mode.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// 1. Check Modifier + Key combinations
	if modKeyMap, modOk := p.modKeymap[mod]; modOk {
		if action, keyOk := modKeyMap[key]; keyOk {
			return ActionEvent{Action: action}
		}
	}
	// Ctrl+letter keys already carry the modifier in the key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if action, ok := p.modKeymap[tcell.ModCtrl][key]; ok {
			return ActionEvent{Action: action}
		}
		mod &^= tcell.ModCtrl
	}

	// 2. Check simple Key mappings
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// 3. Check Rune mappings; Shift is allowed since '+' and 'U' need it.
	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		if action, ok := p.runeKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	return ActionEvent{Action: ActionUnknown}
}

// ProcessTextEvent maps a key event while a field or the command line has
// focus: printable runes are text, editing keys keep their meaning.
func (p *InputProcessor) ProcessTextEvent(ev *tcell.EventKey) ActionEvent {
	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	if action, ok := p.textKeymap[ev.Key()]; ok {
		return ActionEvent{Action: action}
	}
	if ev.Key() == tcell.KeyCtrlQ {
		return ActionEvent{Action: ActionForceQuit}
	}
	return ActionEvent{Action: ActionUnknown}
}
