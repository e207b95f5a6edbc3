// Package overlay holds the notch interaction state machine.
//
// Controller is a pure function of (state, event, time): Dispatch mutates the
// controller and returns the side effects it wants performed. Runner
// performs them against a Scheduler and the platform collaborators.
package overlay

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/jmylchreest/notch/internal/animation"
	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/scene"
)

const (
	triplePress = 3

	marqueeStep = 2
	marqueeWrap = 10000
)

// Snapshot is a read-only view of the controller.
type Snapshot struct {
	State   State
	Rect    geometry.Rect
	Target  geometry.Rect
	Clicks  int
	Content Content
	Slots   [2]string
	Label   string // Last label announced by the source
	Title   string
	Detail  string
	Marquee int
}

// Controller is the notch state machine. It is not safe for concurrent use;
// every call happens on the UI loop.
type Controller struct {
	cfg     *config.Config
	metrics geometry.Metrics
	engine  *animation.Engine
	logger  *slog.Logger

	pointerInside bool
	hovered       bool // Shape is the hover rect or heading there
	expanded      bool
	transient     bool
	content       Content

	motion motion
	handle animation.Handle

	clicks int
	slots  [2]string

	lastLabel string
	title     string
	detail    string
	marquee   int
}

// NewController creates a controller resting on m.Base.
func NewController(m geometry.Metrics, cfg *config.Config, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &Controller{
		cfg:     cfg,
		metrics: m,
		engine:  animation.NewEngine(m.Base),
		logger:  logger,
	}
}

// Config returns the live configuration.
func (c *Controller) Config() *config.Config {
	return c.cfg
}

// Metrics returns the geometry the controller was built with.
func (c *Controller) Metrics() geometry.Metrics {
	return c.metrics
}

// Start returns the effects that put the notch on screen and begin polling.
func (c *Controller) Start() []Effect {
	return []Effect{
		SetGeometry{Rect: c.engine.Current()},
		StartTimer{ID: TimerPoll, After: c.cfg.Timing.PollInterval.Duration(), Repeat: true},
		Redraw{},
	}
}

// State reports the current shape mode.
func (c *Controller) State() State {
	switch {
	case c.transient:
		return ShowingTransientContent
	case c.engine.Active():
		return Animating
	case c.expanded:
		return Expanded
	case c.hovered:
		return Hovered
	default:
		return Collapsed
	}
}

// Snapshot returns a copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		State:   c.State(),
		Rect:    c.engine.Current(),
		Target:  c.engine.Target(),
		Clicks:  c.clicks,
		Content: c.content,
		Slots:   c.slots,
		Label:   c.lastLabel,
		Title:   c.title,
		Detail:  c.detail,
		Marquee: c.marquee,
	}
}

// Hotspots returns the widget-local quick-action rects. It is empty unless
// quick-action content is visible.
func (c *Controller) Hotspots() []geometry.Rect {
	if c.content != ContentQuickActions {
		return nil
	}
	r := c.engine.Current()
	return scene.QuickActionHotspots(r.W, r.H, len(c.cfg.QuickActions))
}

// Dispatch applies ev at time now and returns the effects to perform.
func (c *Controller) Dispatch(ev Event, now time.Time) []Effect {
	switch e := ev.(type) {
	case PointerEnter:
		return c.onEnter(now)
	case PointerLeave:
		return c.onLeave(now)
	case Press:
		return c.onPress(e, now)
	case Release:
		return c.onRelease(e)
	case TimerFired:
		return c.onTimer(e.ID, now)
	case SourcePolled:
		return c.onSourcePolled(e, now)
	case FolderPicked:
		return c.onFolderPicked(e)
	case ToggleRequested:
		if c.transient {
			return nil
		}
		c.clicks = 0
		return append([]Effect{StopTimer{ID: TimerClickWindow}}, c.toggle(now)...)
	case Key:
		return c.onKey(e)
	case ConfigReloaded:
		return c.onConfig(e.Config)
	default:
		c.logger.Warn("unhandled event", "event", ev)
		return nil
	}
}

// inPlan reports whether a two-stage expand or collapse is in flight.
func (c *Controller) inPlan() bool {
	return c.motion == motionExpand || c.motion == motionCollapse
}

func (c *Controller) hoverSuppressed() bool {
	return c.expanded || c.transient || (c.motion != motionNone && c.motion != motionHover)
}

func (c *Controller) onEnter(now time.Time) []Effect {
	c.pointerInside = true
	if c.hoverSuppressed() {
		return nil
	}
	c.hovered = true
	return c.animate(motionHover, animation.Plan{
		{To: c.metrics.Hover(), Duration: c.cfg.Timing.Hover.Duration(), Easing: geometry.OutCubic},
	}, now)
}

func (c *Controller) onLeave(now time.Time) []Effect {
	c.pointerInside = false
	if c.hoverSuppressed() || !c.hovered {
		return nil
	}
	c.hovered = false
	return c.animate(motionHover, animation.Plan{
		{To: c.metrics.Base, Duration: c.cfg.Timing.Hover.Duration(), Easing: geometry.OutCubic},
	}, now)
}

func (c *Controller) onPress(p Press, now time.Time) []Effect {
	if c.transient {
		return []Effect{ActivateSource{}}
	}

	pt := geometry.Point{X: p.X, Y: p.Y}
	for i, spot := range c.Hotspots() {
		if spot.Contains(pt) {
			c.logger.Debug("quick action hit", "index", i, "name", c.cfg.QuickActions[i].Name)
			return []Effect{ActivateQuickAction{Index: i}}
		}
	}

	c.clicks++
	if c.clicks < triplePress {
		return []Effect{StartTimer{ID: TimerClickWindow, After: c.cfg.Timing.ClickWindow.Duration()}}
	}

	c.clicks = 0
	return append([]Effect{StopTimer{ID: TimerClickWindow}}, c.toggle(now)...)
}

// toggle expands or collapses. It does nothing while any transition is in
// flight, hover and banner motion included.
func (c *Controller) toggle(now time.Time) []Effect {
	if c.engine.Active() {
		c.logger.Debug("toggle ignored, transition in flight")
		return nil
	}
	if c.expanded {
		return c.collapse(now)
	}
	return c.expand(now)
}

func (c *Controller) expand(now time.Time) []Effect {
	c.expanded = true
	c.hovered = false
	c.content = ContentNone
	c.logger.Debug("expanding")

	effects := []Effect{StopTimer{ID: TimerRevealDelay}, StopTimer{ID: TimerAutoRestore}}
	return append(effects, c.animate(motionExpand, c.twoStage(c.metrics.Expanded()), now)...)
}

func (c *Controller) collapse(now time.Time) []Effect {
	c.expanded = false
	c.content = ContentNone
	c.logger.Debug("collapsing")

	effects := []Effect{StopTimer{ID: TimerRevealDelay}, StopTimer{ID: TimerAutoRestore}, Redraw{}}
	return append(effects, c.animate(motionCollapse, c.twoStage(c.metrics.Base), now)...)
}

// twoStage builds an anticipation stage followed by the move to target.
func (c *Controller) twoStage(target geometry.Rect) animation.Plan {
	from := c.engine.Current()
	return animation.Plan{
		{To: c.metrics.Anticipation(from, target), Duration: c.cfg.Timing.Anticipation.Duration(), Easing: geometry.InOutQuad},
		{To: target, Duration: c.cfg.Timing.Expand.Duration(), Easing: geometry.InOutQuad},
	}
}

// animate replaces whatever plan is running and starts frame ticks.
func (c *Controller) animate(m motion, plan animation.Plan, now time.Time) []Effect {
	c.motion = m
	c.handle = c.engine.Run(plan, now)
	return []Effect{StartTimer{ID: TimerFrame, After: c.cfg.Timing.Frame.Duration(), Repeat: true}}
}

func (c *Controller) onRelease(r Release) []Effect {
	if !c.expanded || c.inPlan() || c.content != ContentFolders {
		return nil
	}

	side := Right
	if r.X < float64(c.engine.Current().W)/2 {
		side = Left
	}
	if path := c.slots[side]; path != "" {
		return []Effect{OpenFolder{Path: path}}
	}
	return []Effect{PickFolder{Side: side}}
}

func (c *Controller) onFolderPicked(f FolderPicked) []Effect {
	if f.Path == "" {
		return nil
	}
	c.slots[f.Side] = f.Path
	c.logger.Debug("bound folder", "side", f.Side, "path", f.Path)
	return []Effect{Redraw{}}
}

func (c *Controller) onTimer(id TimerID, now time.Time) []Effect {
	switch id {
	case TimerClickWindow:
		c.clicks = 0
		return nil

	case TimerFrame:
		return c.onFrame(now)

	case TimerRevealDelay:
		if !c.expanded || c.inPlan() {
			return nil
		}
		c.content = ContentFolders
		if config.ExpandedMode(c.cfg.Content.Expanded) == config.ExpandedQuickActions {
			c.content = ContentQuickActions
		}
		return []Effect{Redraw{}}

	case TimerAutoRestore:
		if !c.expanded || c.inPlan() {
			return nil
		}
		return c.collapse(now)

	case TimerTransient:
		if !c.transient {
			return nil
		}
		return c.hideBanner(now)

	case TimerMarquee:
		if !c.transient {
			return []Effect{StopTimer{ID: TimerMarquee}}
		}
		c.marquee += marqueeStep
		if c.marquee > marqueeWrap {
			c.marquee = 0
		}
		return []Effect{Redraw{}}

	case TimerPoll:
		return []Effect{ProbeSource{}}
	}
	return nil
}

func (c *Controller) onFrame(now time.Time) []Effect {
	frame := c.engine.Tick(now)
	effects := []Effect{SetGeometry{Rect: frame.Rect}, Redraw{}}
	if !c.engine.Active() {
		effects = append(effects, StopTimer{ID: TimerFrame})
	}
	if !frame.Done || frame.Handle != c.handle {
		return effects
	}

	finished := c.motion
	c.motion = motionNone
	switch finished {
	case motionExpand:
		effects = append(effects,
			StartTimer{ID: TimerRevealDelay, After: c.cfg.Timing.RevealDelay.Duration()},
			StartTimer{ID: TimerAutoRestore, After: c.cfg.Timing.AutoRestore.Duration()},
		)
	case motionCollapse:
		c.hovered = false
	}
	return effects
}

func (c *Controller) onSourcePolled(p SourcePolled, now time.Time) []Effect {
	if p.Label == "" {
		c.lastLabel = ""
		return nil
	}
	if p.Label == c.lastLabel {
		return nil
	}
	if c.expanded || c.inPlan() {
		return nil
	}

	c.lastLabel = p.Label
	c.title = p.Label
	c.detail = p.Detail
	if c.detail == "" {
		c.detail = c.cfg.Content.DefaultDetail
	}
	c.marquee = 0
	c.transient = true
	c.hovered = false
	c.logger.Debug("showing banner", "label", p.Label)

	effects := []Effect{
		StartTimer{ID: TimerMarquee, After: c.cfg.Timing.MarqueeTick.Duration(), Repeat: true},
		StartTimer{ID: TimerTransient, After: c.cfg.Timing.Transient.Duration()},
		PlayCue{},
		Redraw{},
	}
	return append(effects, c.animate(motionBannerIn, animation.Plan{
		{To: c.metrics.Banner(), Duration: c.cfg.Timing.Hover.Duration(), Easing: geometry.OutCubic},
	}, now)...)
}

func (c *Controller) hideBanner(now time.Time) []Effect {
	c.transient = false
	c.title = ""
	c.detail = ""
	c.marquee = 0
	c.logger.Debug("hiding banner")

	effects := []Effect{StopTimer{ID: TimerMarquee}, StopTimer{ID: TimerTransient}, Redraw{}}
	return append(effects, c.animate(motionBannerOut, animation.Plan{
		{To: c.metrics.Base, Duration: c.cfg.Timing.Hover.Duration(), Easing: geometry.OutCubic},
	}, now)...)
}

func (c *Controller) onKey(k Key) []Effect {
	if k.Name == "escape" || (k.Ctrl && k.Name == "q") {
		return []Effect{Quit{}}
	}
	return nil
}

func (c *Controller) onConfig(cfg *config.Config) []Effect {
	if cfg == nil {
		return nil
	}
	c.cfg = cfg
	if c.content != ContentNone {
		c.content = ContentFolders
		if config.ExpandedMode(cfg.Content.Expanded) == config.ExpandedQuickActions {
			c.content = ContentQuickActions
		}
	}
	c.logger.Debug("config reloaded")
	return []Effect{
		StartTimer{ID: TimerPoll, After: cfg.Timing.PollInterval.Duration(), Repeat: true},
		Redraw{},
	}
}

// Model returns the render model for the current state.
func (c *Controller) Model() scene.Model {
	r := c.engine.Current()
	ap := c.cfg.Appearance
	m := scene.Model{
		Width:  r.W,
		Height: r.H,
		Radius: c.metrics.Radius,
		Fill:   config.MustColor(ap.Fill, color.RGBA{A: 255}),
		Ink:    config.MustColor(ap.Text, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
	}

	switch {
	case c.transient && c.title != "":
		m.Banner = &scene.Banner{
			Title:        c.title,
			Detail:       c.detail,
			TitleOffset:  c.marquee,
			DetailOffset: c.marquee,
			Icon:         scene.Icon{Name: "source", Color: config.MustColor(ap.Accent, m.Ink), Glyph: scene.GlyphNote},
		}

	case c.content == ContentFolders:
		m.Slots = &scene.Slots{
			Left:        c.slots[Left],
			Right:       c.slots[Right],
			Placeholder: c.cfg.Content.Placeholder,
			Icon:        scene.Icon{Name: "folder", Color: config.MustColor(ap.Folder, m.Ink), Glyph: scene.GlyphFolder},
		}

	case c.content == ContentQuickActions:
		qa := &scene.QuickActions{Caption: c.cfg.Content.Caption}
		for _, a := range c.cfg.QuickActions {
			qa.Actions = append(qa.Actions, scene.Icon{Name: a.Name, Color: config.MustColor(a.Color, m.Ink), Glyph: scene.GlyphBadge})
		}
		m.QuickActions = qa
	}
	return m
}

// Scene builds the paintable scene for the current state.
func (c *Controller) Scene(measure scene.Measurer) scene.Scene {
	return scene.Build(c.Model(), measure)
}
