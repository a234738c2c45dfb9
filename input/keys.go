// Package input maps raw key codes from the display sink to structured
// actions. It is a pure translation layer: no state, no side effects.
package input

// Action is the decoded result of one key press. The zero value means
// "nothing to do".
type Action struct {
	Quit            bool
	TogglePause     bool
	Screenshot      bool
	Reset           bool
	ToggleRecording bool
	CycleTheme      bool
	RateDelta       int
}

// Key codes understood beyond printable ASCII.
const (
	// None is the code for "no key pressed".
	None = -1
	// Esc is the escape key code delivered by display sinks.
	Esc = 27
	// Space toggles pause alongside 'p'.
	Space = 32
)

// Decode maps a normalized key code to an Action. Unknown and negative
// codes decode to the zero Action.
func Decode(code int) Action {
	var a Action
	if code < 0 {
		return a
	}
	switch code {
	case 'q', 'Q', Esc:
		a.Quit = true
	case 'p', 'P', Space:
		a.TogglePause = true
	case 's', 'S':
		a.Screenshot = true
	case 'r', 'R':
		a.Reset = true
	case 'v', 'V':
		a.ToggleRecording = true
	case 't', 'T':
		a.CycleTheme = true
	case '+', '=':
		a.RateDelta = 10
	case '-', '_':
		a.RateDelta = -10
	}
	return a
}
