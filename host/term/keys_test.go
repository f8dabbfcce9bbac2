package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "KeyA"},
		{tcell.NewEventKey(tcell.KeyRune, 'Z', tcell.ModNone), "KeyZ"},
		{tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), "Digit7"},
		{tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone), "Digit1"},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "Space"},
		{tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone), "Slash"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "ArrowUp"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "ArrowLeft"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{tcell.NewEventKey(tcell.KeyF4, 0, tcell.ModNone), "F4"},
		{tcell.NewEventKey(tcell.KeyCtrlW, 0, tcell.ModCtrl), "KeyW"},
	}
	for _, tt := range tests {
		got, ok := keyName(tt.ev)
		if !ok || got != tt.want {
			t.Errorf("keyName(%s) = %q, %v; want %q", tt.ev.Name(), got, ok, tt.want)
		}
	}
}

func TestKeyNameUnknown(t *testing.T) {
	if name, ok := keyName(tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone)); ok {
		t.Fatalf("keyName(é) = %q, want no name", name)
	}
}
