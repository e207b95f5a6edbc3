package overlay

import "github.com/jmylchreest/notch/internal/config"

// Event is an input to Controller.Dispatch.
type Event interface {
	isEvent()
}

// PointerEnter is sent when the pointer enters the widget.
type PointerEnter struct{}

// PointerLeave is sent when the pointer leaves the widget.
type PointerLeave struct{}

// Press is a primary button press at widget-local coordinates.
type Press struct{ X, Y float64 }

// Release is a primary button release at widget-local coordinates.
type Release struct{ X, Y float64 }

// TimerFired is sent when a timer started by StartTimer elapses.
type TimerFired struct{ ID TimerID }

// SourcePolled carries the result of a ProbeSource request. An empty Label
// means nothing is playing or the probe failed.
type SourcePolled struct {
	Label  string
	Detail string
}

// FolderPicked carries the result of a PickFolder request. An empty Path
// means the picker was cancelled.
type FolderPicked struct {
	Side Side
	Path string
}

// ToggleRequested expands or collapses as if the notch had been
// triple-pressed. It comes from outside the widget, e.g. the control bus.
type ToggleRequested struct{}

// Key is a key press. Name is the lowercase key name, e.g. "escape" or "q".
type Key struct {
	Name string
	Ctrl bool
}

// ConfigReloaded replaces the live configuration.
type ConfigReloaded struct {
	Config *config.Config
}

func (PointerEnter) isEvent()    {}
func (PointerLeave) isEvent()    {}
func (Press) isEvent()           {}
func (Release) isEvent()         {}
func (TimerFired) isEvent()      {}
func (SourcePolled) isEvent()    {}
func (FolderPicked) isEvent()    {}
func (ToggleRequested) isEvent() {}
func (Key) isEvent()             {}
func (ConfigReloaded) isEvent()  {}
