package overlay

import (
	"time"

	"github.com/jmylchreest/notch/internal/geometry"
)

// TimerID names one of the controller's timers. Starting an ID that is
// already running restarts it.
type TimerID int

const (
	TimerClickWindow TimerID = iota
	TimerRevealDelay
	TimerAutoRestore
	TimerTransient
	TimerMarquee
	TimerFrame
	TimerPoll
)

// String returns the string representation of the timer.
func (id TimerID) String() string {
	switch id {
	case TimerClickWindow:
		return "click-window"
	case TimerRevealDelay:
		return "reveal-delay"
	case TimerAutoRestore:
		return "auto-restore"
	case TimerTransient:
		return "transient"
	case TimerMarquee:
		return "marquee"
	case TimerFrame:
		return "frame"
	case TimerPoll:
		return "poll"
	default:
		return "unknown"
	}
}

// Effect is a side-effect request returned by Controller.Dispatch.
type Effect interface {
	isEffect()
}

// StartTimer (re)starts a timer. Repeating timers fire every After until stopped.
type StartTimer struct {
	ID     TimerID
	After  time.Duration
	Repeat bool
}

// StopTimer stops a timer. Stopping an idle timer is a no-op.
type StopTimer struct{ ID TimerID }

// SetGeometry moves and resizes the surface to Rect in screen coordinates.
type SetGeometry struct{ Rect geometry.Rect }

// Redraw asks the surface to repaint.
type Redraw struct{}

// PickFolder asks for a folder to bind to Side. The answer comes back as FolderPicked.
type PickFolder struct{ Side Side }

// OpenFolder shows Path in the file browser.
type OpenFolder struct{ Path string }

// ActivateSource brings the media source forward.
type ActivateSource struct{}

// ActivateQuickAction brings the configured quick action at Index forward.
type ActivateQuickAction struct{ Index int }

// ProbeSource asks for the media source label. The answer comes back as SourcePolled.
type ProbeSource struct{}

// PlayCue plays the banner sound.
type PlayCue struct{}

// Quit ends the process.
type Quit struct{}

func (StartTimer) isEffect()          {}
func (StopTimer) isEffect()           {}
func (SetGeometry) isEffect()         {}
func (Redraw) isEffect()              {}
func (PickFolder) isEffect()          {}
func (OpenFolder) isEffect()          {}
func (ActivateSource) isEffect()      {}
func (ActivateQuickAction) isEffect() {}
func (ProbeSource) isEffect()         {}
func (PlayCue) isEffect()             {}
func (Quit) isEffect()                {}
