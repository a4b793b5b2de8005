package event

// ZoomSource identifies which control changed the zoom level.
type ZoomSource int

const (
	// ZoomSourceStep is the discrete zoom control (menu and keyboard).
	ZoomSourceStep ZoomSource = iota
	// ZoomSourceWheel is the mouse wheel.
	ZoomSourceWheel
)

func (s ZoomSource) String() string {
	switch s {
	case ZoomSourceStep:
		return "Step"
	case ZoomSourceWheel:
		return "Wheel"
	default:
		return "Unknown"
	}
}

// ZoomChanged is published when the display zoom level changes.
type ZoomChanged struct {
	Level  float64
	Source ZoomSource
}

func NewZoomChanged(level float64, source ZoomSource) *ZoomChanged {
	return &ZoomChanged{Level: level, Source: source}
}

func (e *ZoomChanged) EventName() string {
	return "ZoomChanged"
}

// QuitRequested is published when the user asks to close the application.
type QuitRequested struct{}

func (e *QuitRequested) EventName() string {
	return "QuitRequested"
}
