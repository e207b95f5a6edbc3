// Package animation interpolates the notch rectangle over time.
//
// The engine is driven by explicit Tick calls carrying the current time, so
// it never owns a timer or a goroutine. At most one plan is active: starting
// a new one replaces the old plan and its pending completion.
package animation

import (
	"time"

	"github.com/jmylchreest/notch/internal/geometry"
)

// Handle identifies a started plan. A zero Handle never refers to a plan.
type Handle uint64

// Stage is one leg of a plan.
type Stage struct {
	To       geometry.Rect
	Duration time.Duration
	Easing   geometry.Easing
}

// Plan is a sequence of stages run back to back. Each stage starts from the
// rect where the previous one finished.
type Plan []Stage

// Frame is the result of a Tick.
type Frame struct {
	Rect geometry.Rect
	// Done is set on exactly one frame per plan: the frame that lands on the
	// final target.
	Done   bool
	Handle Handle
}

// Engine interpolates a single rectangle through at most one active plan.
type Engine struct {
	current geometry.Rect

	plan      Plan
	stage     int
	from      geometry.Rect
	startedAt time.Time
	handle    Handle
	active    bool

	last Handle
}

// NewEngine creates an engine at rest on the given rect.
func NewEngine(rest geometry.Rect) *Engine {
	return &Engine{current: rest}
}

// Current returns the most recently computed rect.
func (e *Engine) Current() geometry.Rect {
	return e.current
}

// Active reports whether a plan is in flight.
func (e *Engine) Active() bool {
	return e.active
}

// Pending returns the handle of the plan in flight, or zero.
func (e *Engine) Pending() Handle {
	if !e.active {
		return 0
	}
	return e.handle
}

// Target returns the final rect of the plan in flight, or the current rect at rest.
func (e *Engine) Target() geometry.Rect {
	if !e.active || len(e.plan) == 0 {
		return e.current
	}
	return e.plan[len(e.plan)-1].To
}

// Transition starts a single-stage interpolation from the current rect to
// `to`, cancelling any plan in flight.
func (e *Engine) Transition(to geometry.Rect, d time.Duration, easing geometry.Easing, now time.Time) Handle {
	return e.Run(Plan{{To: to, Duration: d, Easing: easing}}, now)
}

// Run starts a plan from the current interpolated rect, cancelling any plan
// in flight. The cancelled plan never reports completion.
func (e *Engine) Run(plan Plan, now time.Time) Handle {
	e.last++
	e.handle = e.last
	e.plan = plan
	e.stage = 0
	e.from = e.current
	e.startedAt = now
	e.active = len(plan) > 0
	return e.handle
}

// Stop cancels the plan in flight and leaves the rect where it is.
func (e *Engine) Stop() {
	e.active = false
	e.plan = nil
}

// Tick advances the active plan to now. When a stage completes the next one
// starts at that tick, so stage 2 never begins before stage 1 lands.
func (e *Engine) Tick(now time.Time) Frame {
	if !e.active {
		return Frame{Rect: e.current}
	}

	st := e.plan[e.stage]
	elapsed := now.Sub(e.startedAt)
	if st.Duration > 0 && elapsed < st.Duration {
		ease := st.Easing
		if ease == nil {
			ease = geometry.Linear
		}
		e.current = geometry.Lerp(e.from, st.To, ease(float64(elapsed)/float64(st.Duration)))
		return Frame{Rect: e.current, Handle: e.handle}
	}

	// The stage lands exactly on its target.
	e.current = st.To
	if e.stage == len(e.plan)-1 {
		e.active = false
		e.plan = nil
		return Frame{Rect: e.current, Done: true, Handle: e.handle}
	}

	e.stage++
	e.from = e.current
	e.startedAt = now
	return Frame{Rect: e.current, Handle: e.handle}
}
