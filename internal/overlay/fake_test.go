package overlay

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/platform"
)

// fakeScheduler is a manual clock. Timers fire in due order inside Advance.
type fakeScheduler struct {
	now    time.Time
	seq    int
	timers []*fakeTimer
	posted []func()
}

type fakeTimer struct {
	seq       int
	due       time.Time
	every     time.Duration
	repeat    bool
	cancelled bool
	fn        func()
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (s *fakeScheduler) Now() time.Time { return s.now }

func (s *fakeScheduler) After(d time.Duration, repeat bool, fn func()) func() {
	s.seq++
	t := &fakeTimer{seq: s.seq, due: s.now.Add(d), every: d, repeat: repeat, fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) Post(fn func()) {
	s.posted = append(s.posted, fn)
}

func (s *fakeScheduler) drain() {
	for len(s.posted) > 0 {
		fn := s.posted[0]
		s.posted = s.posted[1:]
		fn()
	}
}

func (s *fakeScheduler) next(end time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range s.timers {
		if t.cancelled || t.due.After(end) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *fakeScheduler) Advance(d time.Duration) {
	end := s.now.Add(d)
	s.drain()
	for {
		t := s.next(end)
		if t == nil {
			break
		}
		s.now = t.due
		if t.repeat {
			t.due = t.due.Add(t.every)
		} else {
			t.cancelled = true
		}
		t.fn()
		s.drain()
	}
	s.now = end
}

type fakeSurface struct {
	rects   []geometry.Rect
	redraws int
}

func (f *fakeSurface) SetGeometry(r geometry.Rect) { f.rects = append(f.rects, r) }
func (f *fakeSurface) Redraw()                     { f.redraws++ }

type fakeSource struct {
	track platform.Track
	err   error
	calls int
}

func (f *fakeSource) Current(context.Context) (platform.Track, error) {
	f.calls++
	return f.track, f.err
}

type fakePicker struct {
	results []string
	calls   int
}

func (f *fakePicker) PickFolder(context.Context, string) (string, error) {
	f.calls++
	if len(f.results) == 0 {
		return "", nil
	}
	path := f.results[0]
	f.results = f.results[1:]
	return path, nil
}

type fakeOpener struct {
	opened []string
}

func (f *fakeOpener) OpenFolder(_ context.Context, path string) error {
	f.opened = append(f.opened, path)
	return nil
}

type fakeDirectory struct {
	windows   []platform.Window
	activated []platform.Window
}

func (f *fakeDirectory) Windows(context.Context) ([]platform.Window, error) { return f.windows, nil }

func (f *fakeDirectory) Activate(_ context.Context, w platform.Window) error {
	f.activated = append(f.activated, w)
	return nil
}

type fakeLauncher struct {
	launched [][]string
}

func (f *fakeLauncher) Launch(_ context.Context, names []string) error {
	f.launched = append(f.launched, names)
	return errors.New("not installed")
}

type fakeCue struct{ plays int }

func (f *fakeCue) Play() error {
	f.plays++
	return nil
}

// harness runs a controller on a fake loop at 1920x1080.
type harness struct {
	t        *testing.T
	sched    *fakeScheduler
	surface  *fakeSurface
	source   *fakeSource
	picker   *fakePicker
	opener   *fakeOpener
	dir      *fakeDirectory
	launcher *fakeLauncher
	cue      *fakeCue
	metrics  geometry.Metrics
	ctrl     *Controller
	runner   *Runner
	quits    int
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	h := &harness{
		t:        t,
		sched:    newFakeScheduler(),
		surface:  &fakeSurface{},
		source:   &fakeSource{},
		picker:   &fakePicker{},
		opener:   &fakeOpener{},
		dir:      &fakeDirectory{},
		launcher: &fakeLauncher{},
		cue:      &fakeCue{},
		metrics:  geometry.NewMetrics(1920, 1080),
	}
	h.ctrl = NewController(h.metrics, cfg, nil)
	h.runner = NewRunner(h.ctrl, h.sched, h.surface, Platform{
		Source:    h.source,
		Directory: h.dir,
		Launcher:  h.launcher,
		Picker:    h.picker,
		Opener:    h.opener,
		Cue:       h.cue,
	}, nil)
	h.runner.spawn = func(fn func()) { fn() }
	h.runner.SetQuitCallback(func() { h.quits++ })
	h.runner.Start()
	t.Cleanup(h.runner.Stop)
	return h
}

func (h *harness) send(ev Event) {
	h.runner.Dispatch(ev)
	h.sched.drain()
}

func (h *harness) advance(d time.Duration) {
	h.sched.Advance(d)
}

func (h *harness) snap() Snapshot {
	return h.ctrl.Snapshot()
}

// triplePress presses three times with gap between presses.
func (h *harness) triplePress(gap time.Duration) {
	for i := range 3 {
		if i > 0 {
			h.advance(gap)
		}
		h.send(Press{X: 1, Y: 1})
	}
}

// expandAndReveal expands and waits for the content to appear.
func (h *harness) expandAndReveal() {
	h.triplePress(0)
	h.advance(time.Second)
	require.Equal(h.t, Expanded, h.snap().State)
	require.NotEqual(h.t, ContentNone, h.snap().Content)
}
