package term

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[tcell.Key]string{
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyEnter:      "Enter",
	tcell.KeyEscape:     "Escape",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
}

var punctuation = map[rune]string{
	' ':  "Space",
	'-':  "Minus",
	'_':  "Minus",
	'=':  "Equal",
	'+':  "Equal",
	'[':  "BracketLeft",
	'{':  "BracketLeft",
	']':  "BracketRight",
	'}':  "BracketRight",
	';':  "Semicolon",
	':':  "Semicolon",
	'\'': "Quote",
	'"':  "Quote",
	'`':  "Backquote",
	'~':  "Backquote",
	'\\': "Backslash",
	'|':  "Backslash",
	',':  "Comma",
	'<':  "Comma",
	'.':  "Period",
	'>':  "Period",
	'/':  "Slash",
	'?':  "Slash",
}

// Shifted digits on a US layout.
var shiftedDigits = map[rune]rune{
	'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
	'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
}

// keyName maps a terminal key event to a KeyboardEvent.code name.
// Terminals report characters, not physical keys, so shifted characters
// map to the key that usually produces them.
func keyName(ev *tcell.EventKey) (string, bool) {
	if name, ok := namedKeys[ev.Key()]; ok {
		return name, true
	}
	switch k := ev.Key(); {
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return "Key" + string(rune('A'+k-tcell.KeyCtrlA)), true
	case k >= tcell.KeySOH && k <= tcell.KeySUB:
		// Raw control bytes from terminals that report Ctrl+letter that way.
		return "Key" + string(rune('A'+k-tcell.KeySOH)), true
	}
	if ev.Key() != tcell.KeyRune {
		return "", false
	}
	return runeName(ev.Rune())
}

func runeName(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return "Key" + string(unicode.ToUpper(r)), true
	case r >= '0' && r <= '9':
		return "Digit" + string(r), true
	}
	if d, ok := shiftedDigits[r]; ok {
		return "Digit" + string(d), true
	}
	name, ok := punctuation[r]
	return name, ok
}
