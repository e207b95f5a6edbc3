package display

import (
	"time"

	"github.com/diamondburned/gotk4/pkg/core/glib"
)

// Loop adapts the GLib main loop to overlay.Scheduler.
type Loop struct{}

// Now returns the wall clock; time.Time carries a monotonic reading.
func (Loop) Now() time.Time {
	return time.Now()
}

// After runs fn on the main loop after d, and every d when repeat is set.
func (Loop) After(d time.Duration, repeat bool, fn func()) func() {
	ms := uint(max(1, d.Milliseconds()))
	done := false

	handle := glib.TimeoutAdd(ms, func() bool {
		if done {
			return false
		}
		if !repeat {
			done = true
		}
		fn()
		return repeat && !done
	})

	return func() {
		if done {
			return
		}
		done = true
		glib.SourceRemove(handle)
	}
}

// Post queues fn onto the main loop. Safe from any goroutine.
func (Loop) Post(fn func()) {
	glib.IdleAdd(func() {
		fn()
	})
}
