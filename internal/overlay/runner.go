package overlay

import (
	"context"
	"log/slog"
	"time"

	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/platform"
)

// Scheduler is the UI event loop as seen by the runner.
type Scheduler interface {
	// Now returns the loop clock.
	Now() time.Time
	// After calls fn on the loop once d has elapsed, and then every d when
	// repeat is set. The returned func cancels it.
	After(d time.Duration, repeat bool, fn func()) (cancel func())
	// Post queues fn onto the loop. It is safe to call from any goroutine.
	Post(fn func())
}

// Surface is the on-screen window.
type Surface interface {
	SetGeometry(r geometry.Rect)
	Redraw()
}

// Platform bundles the collaborators the runner calls. Nil fields are
// treated as unavailable.
type Platform struct {
	Source    platform.Source
	Directory platform.Directory
	Launcher  platform.Launcher
	Picker    platform.FolderPicker
	Opener    platform.Opener
	Cue       platform.Cue
}

// activationTimeout bounds window activation and folder opening.
const activationTimeout = 2 * time.Second

type timer struct {
	cancel func()
}

// Runner performs controller effects. All methods must be called on the loop.
type Runner struct {
	ctrl     *Controller
	sched    Scheduler
	surface  Surface
	platform Platform
	logger   *slog.Logger

	ctx    context.Context
	stop   context.CancelFunc
	timers map[TimerID]*timer

	probing bool
	picking bool
	spawn   func(func())
	onQuit  func()
	onState func(State)
	state   State
}

// NewRunner wires a controller to its loop, surface and collaborators.
func NewRunner(ctrl *Controller, sched Scheduler, surface Surface, p Platform, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, stop := context.WithCancel(context.Background())
	return &Runner{
		ctrl:     ctrl,
		sched:    sched,
		surface:  surface,
		platform: p,
		logger:   logger,
		ctx:      ctx,
		stop:     stop,
		timers:   make(map[TimerID]*timer),
		spawn:    func(fn func()) { go fn() },
	}
}

// SetQuitCallback sets the function called when the controller asks to quit.
func (r *Runner) SetQuitCallback(fn func()) {
	r.onQuit = fn
}

// SetStateCallback sets the function called after a dispatch changes State.
func (r *Runner) SetStateCallback(fn func(State)) {
	r.onState = fn
}

// Start places the surface and begins polling.
func (r *Runner) Start() {
	r.apply(r.ctrl.Start())
}

// Stop cancels every timer and in-flight probe.
func (r *Runner) Stop() {
	for id, t := range r.timers {
		t.cancel()
		delete(r.timers, id)
	}
	r.stop()
}

// Dispatch feeds ev to the controller and performs the resulting effects.
func (r *Runner) Dispatch(ev Event) {
	r.apply(r.ctrl.Dispatch(ev, r.sched.Now()))

	if st := r.ctrl.State(); st != r.state {
		r.state = st
		if r.onState != nil {
			r.onState(st)
		}
	}
}

// Controller returns the controller the runner drives.
func (r *Runner) Controller() *Controller {
	return r.ctrl
}

// Running reports whether the timer is armed.
func (r *Runner) Running(id TimerID) bool {
	_, ok := r.timers[id]
	return ok
}

func (r *Runner) apply(effects []Effect) {
	for _, eff := range effects {
		switch e := eff.(type) {
		case StartTimer:
			r.startTimer(e)
		case StopTimer:
			r.stopTimer(e.ID)
		case SetGeometry:
			r.surface.SetGeometry(e.Rect)
		case Redraw:
			r.surface.Redraw()
		case PickFolder:
			r.pickFolder(e.Side)
		case OpenFolder:
			r.openFolder(e.Path)
		case ActivateSource:
			src := r.ctrl.Config().Source
			r.bringForward("source", src.Players, src.Launch)
		case ActivateQuickAction:
			actions := r.ctrl.Config().QuickActions
			if e.Index >= 0 && e.Index < len(actions) {
				a := actions[e.Index]
				r.bringForward(a.Name, a.Match, a.Launch)
			}
		case ProbeSource:
			r.probe()
		case PlayCue:
			if r.platform.Cue != nil {
				if err := r.platform.Cue.Play(); err != nil {
					r.logger.Debug("failed to play cue", "error", err)
				}
			}
		case Quit:
			if r.onQuit != nil {
				r.onQuit()
			}
		}
	}
}

func (r *Runner) startTimer(e StartTimer) {
	r.stopTimer(e.ID)

	t := &timer{}
	t.cancel = r.sched.After(e.After, e.Repeat, func() {
		if cur, ok := r.timers[e.ID]; !ok || cur != t {
			return
		}
		if !e.Repeat {
			delete(r.timers, e.ID)
		}
		r.Dispatch(TimerFired{ID: e.ID})
	})
	r.timers[e.ID] = t
}

func (r *Runner) stopTimer(id TimerID) {
	if t, ok := r.timers[id]; ok {
		t.cancel()
		delete(r.timers, id)
	}
}

// probe asks the source for its label off the loop. A probe still in flight
// swallows the next request.
func (r *Runner) probe() {
	src := r.platform.Source
	if src == nil || r.probing {
		return
	}
	r.probing = true
	timeout := r.ctrl.Config().Timing.ProbeTimeout.Duration()

	r.spawn(func() {
		ctx, cancel := context.WithTimeout(r.ctx, timeout)
		defer cancel()

		track, err := src.Current(ctx)
		r.sched.Post(func() {
			r.probing = false
			if r.ctx.Err() != nil {
				return
			}
			if err != nil {
				r.logger.Debug("source probe failed", "error", err)
				track = platform.Track{}
			}
			r.Dispatch(SourcePolled{Label: track.Title, Detail: track.Detail})
		})
	})
}

// pickFolder runs the chooser off the loop so the loop keeps animating while
// the dialog waits on the user. Only one dialog is open at a time.
func (r *Runner) pickFolder(side Side) {
	picker := r.platform.Picker
	if picker == nil || r.picking {
		return
	}
	r.picking = true
	title := r.ctrl.Config().Content.Placeholder

	r.spawn(func() {
		path, err := picker.PickFolder(r.ctx, title)
		r.sched.Post(func() {
			r.picking = false
			if r.ctx.Err() != nil {
				return
			}
			if err != nil {
				r.logger.Warn("folder picker failed", "side", side, "error", err)
				return
			}
			r.Dispatch(FolderPicked{Side: side, Path: path})
		})
	})
}

func (r *Runner) openFolder(path string) {
	if r.platform.Opener == nil {
		return
	}
	ctx, cancel := context.WithTimeout(r.ctx, activationTimeout)
	defer cancel()
	if err := r.platform.Opener.OpenFolder(ctx, path); err != nil {
		r.logger.Warn("failed to open folder", "path", path, "error", err)
	}
}

func (r *Runner) bringForward(name string, match, launch []string) {
	ctx, cancel := context.WithTimeout(r.ctx, activationTimeout)
	defer cancel()
	if err := platform.BringForward(ctx, r.platform.Directory, r.platform.Launcher, match, launch); err != nil {
		r.logger.Warn("failed to activate", "target", name, "error", err)
	}
}
