package input

// IntentType discriminates player controls coming from the terminal
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit       // Esc, q, Ctrl+C, Ctrl+Q
	IntentStart      // Space, Enter
	IntentRestart    // r
	IntentToggleMute // m, Ctrl+S
	IntentResize     // terminal resize event
	IntentPointer    // mouse motion drives a synthetic hand
	IntentMouthOpen  // b, held-open mouth for keyboard play
)

// Intent is one decoded control. Pointer intents carry the cell position
// the mouse is at; resize intents carry the new screen size.
type Intent struct {
	Type IntentType
	X, Y int
	// Left reports a pointer intent from the secondary button, routed to
	// the left hand in the duo variant
	Left bool
}

func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentStart:
		return "start"
	case IntentRestart:
		return "restart"
	case IntentToggleMute:
		return "mute"
	case IntentResize:
		return "resize"
	case IntentPointer:
		return "pointer"
	case IntentMouthOpen:
		return "mouth"
	default:
		return "none"
	}
}
