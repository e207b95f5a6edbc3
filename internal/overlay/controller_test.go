package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/platform"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Collapsed, "collapsed"},
		{Hovered, "hovered"},
		{Expanded, "expanded"},
		{Animating, "animating"},
		{ShowingTransientContent, "transient"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.state.String())
	}
}

func TestController_StartsAtBase(t *testing.T) {
	m := geometry.NewMetrics(1920, 1080)
	c := NewController(m, nil, nil)

	effects := c.Start()
	assert.Contains(t, effects, SetGeometry{Rect: m.Base})
	assert.Contains(t, effects, StartTimer{ID: TimerPoll, After: time.Second, Repeat: true})
	assert.Equal(t, Collapsed, c.State())
	assert.Equal(t, m.Base, c.Snapshot().Rect)
}

func TestController_PressEffects(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	now := time.Now()

	assert.Equal(t, []Effect{StartTimer{ID: TimerClickWindow, After: 500 * time.Millisecond}}, c.Dispatch(Press{}, now))
	assert.Equal(t, []Effect{StartTimer{ID: TimerClickWindow, After: 500 * time.Millisecond}}, c.Dispatch(Press{}, now))

	effects := c.Dispatch(Press{}, now)
	assert.Equal(t, StopTimer{ID: TimerClickWindow}, effects[0])
	assert.Contains(t, effects, StartTimer{ID: TimerFrame, After: 16 * time.Millisecond, Repeat: true})
	assert.Equal(t, Animating, c.State())
	assert.Equal(t, 0, c.Snapshot().Clicks)
}

func TestController_ClickWindowResetsCounter(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	now := time.Now()

	c.Dispatch(Press{}, now)
	c.Dispatch(Press{}, now)
	assert.Equal(t, 2, c.Snapshot().Clicks)

	c.Dispatch(TimerFired{ID: TimerClickWindow}, now)
	assert.Equal(t, 0, c.Snapshot().Clicks)
}

func TestController_MarqueeWraps(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	now := time.Now()
	c.Dispatch(SourcePolled{Label: "song"}, now)

	for range marqueeWrap / marqueeStep {
		c.Dispatch(TimerFired{ID: TimerMarquee}, now)
	}
	assert.Equal(t, marqueeWrap, c.Snapshot().Marquee)

	c.Dispatch(TimerFired{ID: TimerMarquee}, now)
	assert.Equal(t, 0, c.Snapshot().Marquee)
}

func TestController_MarqueeStopsWithoutBanner(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	effects := c.Dispatch(TimerFired{ID: TimerMarquee}, time.Now())
	assert.Equal(t, []Effect{StopTimer{ID: TimerMarquee}}, effects)
	assert.Equal(t, 0, c.Snapshot().Marquee)
}

func TestController_Keys(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	now := time.Now()

	assert.Equal(t, []Effect{Quit{}}, c.Dispatch(Key{Name: "escape"}, now))
	assert.Equal(t, []Effect{Quit{}}, c.Dispatch(Key{Name: "q", Ctrl: true}, now))
	assert.Empty(t, c.Dispatch(Key{Name: "q"}, now))
	assert.Empty(t, c.Dispatch(Key{Name: "space", Ctrl: true}, now))
}

func TestController_EmptyPickKeepsSlot(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)
	now := time.Now()

	c.Dispatch(FolderPicked{Side: Left, Path: "/data"}, now)
	assert.Empty(t, c.Dispatch(FolderPicked{Side: Left, Path: ""}, now))
	assert.Equal(t, [2]string{"/data", ""}, c.Snapshot().Slots)
}

func TestController_ConfigReload(t *testing.T) {
	c := NewController(geometry.NewMetrics(1920, 1080), nil, nil)

	cfg := config.Default()
	cfg.Appearance.Fill = "#ff0000"
	cfg.Timing.PollInterval = config.Duration(2 * time.Second)

	effects := c.Dispatch(ConfigReloaded{Config: cfg}, time.Now())
	assert.Contains(t, effects, StartTimer{ID: TimerPoll, After: 2 * time.Second, Repeat: true})
	assert.Equal(t, uint8(255), c.Model().Fill.R)
	assert.Same(t, cfg, c.Config())

	assert.Empty(t, c.Dispatch(ConfigReloaded{}, time.Now()), "nil config is ignored")
}

func TestController_ModelPerState(t *testing.T) {
	m := geometry.NewMetrics(1920, 1080)

	t.Run("idle is plain shape", func(t *testing.T) {
		c := NewController(m, nil, nil)
		model := c.Model()
		assert.Equal(t, m.Base.W, model.Width)
		assert.Equal(t, m.Radius, model.Radius)
		assert.Nil(t, model.Banner)
		assert.Nil(t, model.Slots)
		assert.Nil(t, model.QuickActions)
		assert.Empty(t, c.Scene(nil).Regions)
	})

	t.Run("banner", func(t *testing.T) {
		c := NewController(m, nil, nil)
		c.Dispatch(SourcePolled{Label: "Track"}, time.Now())
		model := c.Model()
		require.NotNil(t, model.Banner)
		assert.Equal(t, "Track", model.Banner.Title)
		assert.Equal(t, "Now playing", model.Banner.Detail)
	})

	t.Run("banner keeps source detail", func(t *testing.T) {
		c := NewController(m, nil, nil)
		c.Dispatch(SourcePolled{Label: "Track", Detail: "Artist"}, time.Now())
		assert.Equal(t, "Artist", c.Model().Banner.Detail)
	})
}

func TestHarness_HoverConvergesToRest(t *testing.T) {
	type step struct {
		gap time.Duration
		ev  Event
	}
	enter := PointerEnter{}
	leave := PointerLeave{}

	tests := []struct {
		name  string
		steps []step
		hover bool
	}{
		{"enter", []step{{0, enter}}, true},
		{"enter leave", []step{{0, enter}, {300 * time.Millisecond, leave}}, false},
		{"leave mid flight", []step{{0, enter}, {50 * time.Millisecond, leave}}, false},
		{"reenter mid flight", []step{{0, enter}, {50 * time.Millisecond, leave}, {30 * time.Millisecond, enter}}, true},
		{"double enter", []step{{0, enter}, {0, enter}}, true},
		{"leave only", []step{{0, leave}}, false},
	}

	// Rapid toggling at 10ms gaps, ending outside.
	var rapid []step
	for i := range 20 {
		ev := Event(enter)
		if i%2 == 1 {
			ev = leave
		}
		rapid = append(rapid, step{10 * time.Millisecond, ev})
	}
	tests = append(tests, struct {
		name  string
		steps []step
		hover bool
	}{"rapid toggling", rapid, false})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			for _, s := range tt.steps {
				h.advance(s.gap)
				h.send(s.ev)
			}
			h.advance(time.Second)

			want, wantState := h.metrics.Base, Collapsed
			if tt.hover {
				want, wantState = h.metrics.Hover(), Hovered
			}
			assert.Equal(t, want, h.snap().Rect)
			assert.Equal(t, wantState, h.snap().State)
			assert.Equal(t, want, h.surface.rects[len(h.surface.rects)-1])
			assert.False(t, h.runner.Running(TimerFrame), "frame timer stops at rest")
		})
	}
}

func TestHarness_TriplePressWithinWindowExpands(t *testing.T) {
	h := newHarness(t, nil)

	h.send(Press{})
	h.advance(100 * time.Millisecond)
	h.send(Press{})
	h.advance(100 * time.Millisecond)
	h.send(Press{})
	assert.Equal(t, Animating, h.snap().State)

	h.advance(time.Second)
	assert.Equal(t, Expanded, h.snap().State)
	assert.Equal(t, h.metrics.Expanded(), h.snap().Rect)
	assert.Equal(t, ContentFolders, h.snap().Content)
}

func TestHarness_PressesSpanningWindowDoNotExpand(t *testing.T) {
	h := newHarness(t, nil)

	h.send(Press{})
	h.advance(600 * time.Millisecond)
	h.send(Press{})
	h.advance(100 * time.Millisecond)
	h.send(Press{})

	assert.Equal(t, Collapsed, h.snap().State)
	assert.Equal(t, 2, h.snap().Clicks)
	h.advance(time.Second)
	assert.Equal(t, h.metrics.Base, h.snap().Rect)
	assert.Equal(t, 0, h.snap().Clicks)
}

func TestHarness_ExpandRunsAnticipationFirst(t *testing.T) {
	h := newHarness(t, nil)
	h.triplePress(0)

	h.advance(150 * time.Millisecond)
	r := h.snap().Rect
	assert.Less(t, r.W, h.metrics.Base.W, "anticipation shrinks before growing")

	h.advance(500 * time.Millisecond)
	assert.Equal(t, h.metrics.Expanded(), h.snap().Rect)
}

func TestHarness_ToggleDuringTransitionIsNoop(t *testing.T) {
	h := newHarness(t, nil)
	h.triplePress(0)
	h.advance(50 * time.Millisecond)

	before := h.snap()
	h.triplePress(0)
	after := h.snap()

	assert.Equal(t, Animating, after.State)
	assert.Equal(t, before.Target, after.Target)
	assert.Equal(t, before.Rect, after.Rect)

	h.advance(time.Second)
	assert.Equal(t, Expanded, h.snap().State)
}

func TestHarness_ToggleDuringSingleStageMotionIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *harness)
		rest  State
	}{
		{
			name: "hover in",
			setup: func(h *harness) {
				h.send(PointerEnter{})
				h.advance(20 * time.Millisecond)
			},
			rest: Hovered,
		},
		{
			name: "banner out",
			setup: func(h *harness) {
				h.send(SourcePolled{Label: "Song"})
				h.advance(3020 * time.Millisecond)
			},
			rest: Collapsed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			tt.setup(h)
			before := h.snap()
			require.Equal(t, Animating, before.State)

			h.send(ToggleRequested{})
			h.triplePress(0)
			after := h.snap()
			assert.Equal(t, Animating, after.State)
			assert.Equal(t, before.Target, after.Target)
			assert.Equal(t, before.Rect, after.Rect)

			h.advance(time.Second)
			assert.Equal(t, tt.rest, h.snap().State)
			assert.Equal(t, before.Target, h.snap().Rect)
		})
	}
}

func TestHarness_AutoRestoreCollapses(t *testing.T) {
	h := newHarness(t, nil)
	h.expandAndReveal()

	h.advance(5 * time.Second)
	s := h.snap()
	assert.Equal(t, Collapsed, s.State)
	assert.Equal(t, ContentNone, s.Content)
	assert.Equal(t, h.metrics.Base, s.Rect)
	assert.False(t, h.runner.Running(TimerAutoRestore))
}

func TestHarness_CollapseHidesContentImmediately(t *testing.T) {
	h := newHarness(t, nil)
	h.expandAndReveal()

	h.triplePress(0)
	assert.Equal(t, Animating, h.snap().State)
	assert.Equal(t, ContentNone, h.snap().Content)
	assert.False(t, h.runner.Running(TimerAutoRestore), "manual collapse disarms auto-restore")

	h.advance(time.Second)
	assert.Equal(t, Collapsed, h.snap().State)
	assert.Equal(t, h.metrics.Base, h.snap().Rect)
}

func TestHarness_HoverSuppressedWhileExpanded(t *testing.T) {
	h := newHarness(t, nil)
	h.expandAndReveal()

	h.send(PointerEnter{})
	h.advance(300 * time.Millisecond)
	assert.Equal(t, h.metrics.Expanded(), h.snap().Rect)
	assert.Equal(t, Expanded, h.snap().State)

	h.send(PointerLeave{})
	h.advance(300 * time.Millisecond)
	assert.Equal(t, h.metrics.Expanded(), h.snap().Rect)
}

func TestHarness_HoverSuppressedMidExpand(t *testing.T) {
	h := newHarness(t, nil)
	h.triplePress(0)
	h.advance(50 * time.Millisecond)

	target := h.snap().Target
	h.send(PointerEnter{})
	assert.Equal(t, target, h.snap().Target)
}

func TestHarness_FolderSlots(t *testing.T) {
	h := newHarness(t, nil)
	h.picker.results = []string{"/home/me/Downloads", ""}
	h.expandAndReveal()

	width := float64(h.snap().Rect.W)
	left := Release{X: 10, Y: 5}
	right := Release{X: width - 10, Y: 5}

	h.send(left)
	assert.Equal(t, 1, h.picker.calls)
	assert.Equal(t, "/home/me/Downloads", h.snap().Slots[Left])

	h.send(left)
	assert.Equal(t, 1, h.picker.calls, "bound slot opens instead of prompting")
	assert.Equal(t, []string{"/home/me/Downloads"}, h.opener.opened)

	h.send(right)
	assert.Equal(t, 2, h.picker.calls)
	assert.Equal(t, "", h.snap().Slots[Right], "cancelled pick binds nothing")
	assert.Equal(t, "/home/me/Downloads", h.snap().Slots[Left], "right half never touches left slot")
	assert.Equal(t, Expanded, h.snap().State, "slot interaction does not change state")
}

func TestHarness_OneFolderDialogAtATime(t *testing.T) {
	h := newHarness(t, nil)
	h.picker.results = []string{"/srv/media", "/tmp"}
	h.expandAndReveal()

	var pending []func()
	h.runner.spawn = func(fn func()) { pending = append(pending, fn) }

	width := float64(h.snap().Rect.W)
	h.send(Release{X: 10, Y: 5})
	h.send(Release{X: width - 10, Y: 5})
	require.Len(t, pending, 1, "second release while a dialog is open is ignored")

	pending[0]()
	h.sched.drain()
	assert.Equal(t, "/srv/media", h.snap().Slots[Left])
	assert.Equal(t, "", h.snap().Slots[Right])

	h.send(Release{X: width - 10, Y: 5})
	require.Len(t, pending, 2, "a new dialog may open once the first one returned")
}

func TestHarness_ReleaseIgnoredBeforeReveal(t *testing.T) {
	h := newHarness(t, nil)
	h.triplePress(0)

	h.send(Release{X: 10, Y: 5})
	h.advance(450 * time.Millisecond)
	h.send(Release{X: 10, Y: 5})
	assert.Equal(t, 0, h.picker.calls)
}

func TestHarness_ReleaseIgnoredWhenCollapsed(t *testing.T) {
	h := newHarness(t, nil)
	h.send(Release{X: 10, Y: 5})
	assert.Equal(t, 0, h.picker.calls)
	assert.Empty(t, h.opener.opened)
}

func TestHarness_QuickActions(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Content.Expanded = string(config.ExpandedQuickActions)
	})
	h.dir.windows = []platform.Window{{ID: "w1", Title: "WeChat"}}

	assert.Empty(t, h.ctrl.Hotspots())
	h.triplePress(0)
	h.advance(450 * time.Millisecond)
	assert.Empty(t, h.ctrl.Hotspots(), "hotspots appear with the content")

	h.advance(time.Second)
	spots := h.ctrl.Hotspots()
	require.Len(t, spots, 2)
	assert.Equal(t, ContentQuickActions, h.snap().Content)

	hit := spots[0]
	h.send(Press{X: float64(hit.X + hit.W/2), Y: float64(hit.Y + hit.H/2)})
	assert.Equal(t, []platform.Window{{ID: "w1", Title: "WeChat"}}, h.dir.activated)
	assert.Equal(t, 0, h.snap().Clicks, "hotspot press is not a click")

	hit = spots[1]
	h.send(Press{X: float64(hit.X + hit.W/2), Y: float64(hit.Y + hit.H/2)})
	assert.Equal(t, [][]string{{"wemeetapp"}}, h.launcher.launched, "unmatched action falls back to launch")

	h.send(Press{X: 2, Y: 2})
	assert.Equal(t, 1, h.snap().Clicks)

	h.send(Release{X: 2, Y: 2})
	assert.Equal(t, 0, h.picker.calls, "quick actions never prompt for folders")

	h.advance(5 * time.Second)
	assert.Empty(t, h.ctrl.Hotspots())
}

func TestHarness_TransientLabelChangeRestartsWithoutJump(t *testing.T) {
	h := newHarness(t, nil)

	h.send(SourcePolled{Label: "First"})
	assert.Equal(t, ShowingTransientContent, h.snap().State)

	h.advance(100 * time.Millisecond)
	mid := h.snap().Rect
	require.Greater(t, mid.W, h.metrics.Base.W)
	require.Less(t, mid.W, h.metrics.Banner().W)

	h.send(SourcePolled{Label: "Second"})
	s := h.snap()
	assert.Equal(t, "Second", s.Title)
	assert.Equal(t, mid, s.Rect, "new banner starts where the old one was")
	assert.Equal(t, h.metrics.Banner(), s.Target)
	assert.Equal(t, 0, s.Marquee)

	h.advance(16 * time.Millisecond)
	assert.GreaterOrEqual(t, h.snap().Rect.W, mid.W)

	// First label would have hidden at 3000ms; the second restarted the clock at 100ms.
	h.advance(2934 * time.Millisecond)
	assert.Equal(t, ShowingTransientContent, h.snap().State)
	assert.Equal(t, "Second", h.snap().Title)

	h.advance(100 * time.Millisecond)
	assert.NotEqual(t, ShowingTransientContent, h.snap().State)
	assert.Empty(t, h.snap().Title)
	assert.False(t, h.runner.Running(TimerMarquee))

	h.advance(time.Second)
	assert.Equal(t, h.metrics.Base, h.snap().Rect)
	assert.Equal(t, Collapsed, h.snap().State)
}

func TestHarness_TransientFromSourcePoll(t *testing.T) {
	h := newHarness(t, nil)
	h.source.track = platform.Track{Title: "Song"}

	h.advance(time.Second)
	s := h.snap()
	assert.Equal(t, ShowingTransientContent, s.State)
	assert.Equal(t, "Song", s.Title)
	assert.Equal(t, "Now playing", s.Detail)
	assert.Equal(t, 1, h.cue.plays)

	h.advance(400 * time.Millisecond)
	assert.Equal(t, h.metrics.Banner(), h.snap().Rect)
	assert.Equal(t, 20, h.snap().Marquee)

	// Same label keeps polling but never re-announces.
	h.advance(4 * time.Second)
	assert.Equal(t, Collapsed, h.snap().State)
	assert.Equal(t, 1, h.cue.plays)

	// Going idle forgets the label so the same track announces again.
	h.source.track = platform.Track{}
	h.advance(time.Second)
	assert.Empty(t, h.snap().Label)
	h.source.track = platform.Track{Title: "Song"}
	h.advance(time.Second)
	assert.Equal(t, ShowingTransientContent, h.snap().State)
	assert.Equal(t, 2, h.cue.plays)
}

func TestHarness_ProbeFailureMeansNoContent(t *testing.T) {
	h := newHarness(t, nil)
	h.source.track = platform.Track{Title: "Song"}
	h.source.err = assert.AnError

	h.advance(time.Second)
	assert.Equal(t, Collapsed, h.snap().State)
	assert.Equal(t, 1, h.source.calls)
}

func TestHarness_ProbeInFlightSuppressesNext(t *testing.T) {
	h := newHarness(t, nil)
	var pending []func()
	h.runner.spawn = func(fn func()) { pending = append(pending, fn) }

	h.advance(time.Second)
	h.advance(time.Second)
	require.Len(t, pending, 1)

	h.source.track = platform.Track{Title: "Late"}
	pending[0]()
	h.sched.drain()
	assert.Equal(t, "Late", h.snap().Title)

	h.advance(time.Second)
	assert.Len(t, pending, 2)
}

func TestHarness_LabelIgnoredWhileExpanded(t *testing.T) {
	h := newHarness(t, nil)
	h.expandAndReveal()

	h.send(SourcePolled{Label: "Song"})
	assert.Equal(t, Expanded, h.snap().State)
	assert.Empty(t, h.snap().Label, "ignored labels are not remembered")

	h.advance(6 * time.Second)
	require.Equal(t, Collapsed, h.snap().State)
	h.send(SourcePolled{Label: "Song"})
	assert.Equal(t, ShowingTransientContent, h.snap().State)
}

func TestHarness_PressDuringBannerActivatesSource(t *testing.T) {
	h := newHarness(t, nil)
	h.dir.windows = []platform.Window{{ID: "player", Title: "Spotify Premium"}}

	h.send(SourcePolled{Label: "Song"})
	h.send(Press{X: 5, Y: 5})
	h.send(Press{X: 5, Y: 5})
	h.send(Press{X: 5, Y: 5})

	assert.Len(t, h.dir.activated, 3)
	assert.Equal(t, 0, h.snap().Clicks, "banner presses are not counted")
	assert.Equal(t, ShowingTransientContent, h.snap().State)
}

func TestHarness_QuitKey(t *testing.T) {
	h := newHarness(t, nil)
	h.send(Key{Name: "escape"})
	assert.Equal(t, 1, h.quits)
}

func TestHarness_StopCancelsTimers(t *testing.T) {
	h := newHarness(t, nil)
	h.triplePress(0)
	require.True(t, h.runner.Running(TimerFrame))

	h.runner.Stop()
	for _, id := range []TimerID{TimerPoll, TimerFrame, TimerClickWindow} {
		assert.False(t, h.runner.Running(id), id.String())
	}
	rects := len(h.surface.rects)
	h.advance(time.Second)
	assert.Len(t, h.surface.rects, rects)
}

func TestHarness_ToggleRequested(t *testing.T) {
	h := newHarness(t, nil)
	var states []State
	h.runner.SetStateCallback(func(s State) { states = append(states, s) })

	h.send(ToggleRequested{})
	h.advance(time.Second)
	assert.Equal(t, Expanded, h.snap().State)

	h.send(ToggleRequested{})
	h.advance(time.Second)
	assert.Equal(t, Collapsed, h.snap().State)
	assert.Equal(t, []State{Animating, Expanded, Animating, Collapsed}, states)

	h.send(SourcePolled{Label: "Song"})
	h.send(ToggleRequested{})
	assert.Equal(t, ShowingTransientContent, h.snap().State, "banner is not interrupted")
}
