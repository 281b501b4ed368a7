package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps terminal keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, Esc, Enter)
	SpecialKeys map[tcell.Key]IntentType

	// Printable rune bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyEscape: IntentQuit,
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyCtrlQ:  IntentQuit,
			tcell.KeyCtrlS:  IntentToggleMute,
			tcell.KeyEnter:  IntentStart,
		},
		Runes: map[rune]IntentType{
			' ': IntentStart,
			'q': IntentQuit,
			'r': IntentRestart,
			'R': IntentRestart,
			'm': IntentToggleMute,
			'b': IntentMouthOpen,
		},
	}
}

// Decode turns a tcell event into an intent; unknown input yields IntentNone
func (kt *KeyTable) Decode(ev tcell.Event) Intent {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyRune {
			return Intent{Type: kt.Runes[ev.Rune()]}
		}
		return Intent{Type: kt.SpecialKeys[ev.Key()]}

	case *tcell.EventResize:
		w, h := ev.Size()
		return Intent{Type: IntentResize, X: w, Y: h}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		x, y := ev.Position()
		if buttons&tcell.Button2 != 0 || buttons&tcell.Button3 != 0 {
			return Intent{Type: IntentPointer, X: x, Y: y, Left: true}
		}
		return Intent{Type: IntentPointer, X: x, Y: y}
	}
	return Intent{}
}
