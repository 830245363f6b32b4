package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEventNormalMode(t *testing.T) {
	p := NewInputProcessor()
	cases := []struct {
		name string
		ev   *tcell.EventKey
		want Action
	}{
		{"ctrl+z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), ActionUndo},
		{"ctrl+y", tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ActionRedo},
		{"ctrl+s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), ActionSave},
		{"ctrl+q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), ActionForceQuit},
		{"esc", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), ActionQuit},
		{"plus", tcell.NewEventKey(tcell.KeyRune, '+', tcell.ModShift), ActionZoomIn},
		{"equals", tcell.NewEventKey(tcell.KeyRune, '=', tcell.ModNone), ActionZoomIn},
		{"minus", tcell.NewEventKey(tcell.KeyRune, '-', tcell.ModNone), ActionZoomOut},
		{"lock", tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), ActionToggleLock},
		{"width", tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), ActionEditWidth},
		{"paint", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), ActionPaint},
		{"colon", tcell.NewEventKey(tcell.KeyRune, ':', tcell.ModShift), ActionEnterCommandMode},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), ActionMoveLeft},
		{"unbound", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), ActionUnknown},
	}
	for _, c := range cases {
		if got := p.ProcessEvent(c.ev).Action; got != c.want {
			t.Fatalf("%s: got %v, want %v", c.name, got, c.want)
		}
	}
}

func TestProcessTextEvent(t *testing.T) {
	p := NewInputProcessor()

	ae := p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	if ae.Action != ActionInsertRune || ae.Rune != 'w' {
		t.Fatalf("rune in text mode = %+v", ae)
	}
	if a := p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)).Action; a != ActionConfirm {
		t.Fatalf("enter = %v", a)
	}
	if a := p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)).Action; a != ActionNextField {
		t.Fatalf("tab = %v", a)
	}
	if a := p.ProcessTextEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)).Action; a != ActionCancel {
		t.Fatalf("esc = %v", a)
	}
}
