package media

// ControllerVisibility describes how much of the playback controller is on screen.
type ControllerVisibility int

const (
	// Invisible hides the controller entirely. It is the zero value.
	Invisible ControllerVisibility = iota

	// PartiallyVisible shows a reduced controller, e.g. only the progress bar.
	PartiallyVisible

	// Visible shows the full controller.
	Visible
)

// IsShowing reports whether any part of the controller is on screen.
func (v ControllerVisibility) IsShowing() bool {
	return v != Invisible
}

func (v ControllerVisibility) String() string {
	switch v {
	case Visible:
		return "visible"
	case PartiallyVisible:
		return "partially_visible"
	case Invisible:
		return "invisible"
	default:
		return "unknown"
	}
}

func (v ControllerVisibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
