package display

import (
	"log/slog"
	"strings"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/overlay"
	"github.com/jmylchreest/notch/internal/scene"
)

// Namespace is the layer-shell namespace compositors can match rules on.
const Namespace = "notch"

// Options configure the surface.
type Options struct {
	// ClickThrough gives the window an empty input region so every pointer
	// event reaches whatever is underneath.
	ClickThrough bool
}

// Surface is the notch window. It implements overlay.Surface.
type Surface struct {
	window *gtk.Window
	canvas *gtk.DrawingArea
	logger *slog.Logger
	opts   Options

	rect     geometry.Rect
	render   func(scene.Measurer) scene.Scene
	dispatch func(overlay.Event)
}

var _ overlay.Surface = (*Surface)(nil)

// NewSurface creates the layer-shell window. It fails with a DisplayError when
// no display is available.
func NewSurface(app *gtk.Application, opts Options, logger *slog.Logger) (*Surface, error) {
	if logger == nil {
		logger = slog.Default()
	}
	display := gdk.DisplayGetDefault()
	if display == nil {
		return nil, &DisplayError{Message: "no display available"}
	}

	s := &Surface{logger: logger, opts: opts}

	s.window = gtk.NewWindow()
	s.window.SetApplication(app)
	s.window.SetDecorated(false)
	s.window.SetResizable(false)
	s.window.AddCSSClass("notch")

	layershell.InitForWindow(s.window)
	layershell.SetLayer(s.window, layershell.LayerShellLayerTop)
	layershell.SetExclusiveZone(s.window, 0)
	layershell.SetNamespace(s.window, Namespace)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeTop, true)
	layershell.SetAnchor(s.window, layershell.LayerShellEdgeLeft, true)
	if opts.ClickThrough {
		layershell.SetKeyboardMode(s.window, layershell.LayerShellKeyboardModeNone)
	} else {
		layershell.SetKeyboardMode(s.window, layershell.LayerShellKeyboardModeOnDemand)
	}
	if mon := PrimaryMonitor(display); mon != nil {
		layershell.SetMonitor(s.window, mon)
	}

	s.canvas = gtk.NewDrawingArea()
	s.canvas.AddCSSClass("notch-canvas")
	s.canvas.SetDrawFunc(s.draw)
	s.window.SetChild(s.canvas)

	s.connectSignals()

	return s, nil
}

// SetRenderer sets the function producing the scene for each paint.
func (s *Surface) SetRenderer(fn func(scene.Measurer) scene.Scene) {
	s.render = fn
}

// SetEventHandler sets where pointer and key input is delivered.
func (s *Surface) SetEventHandler(fn func(overlay.Event)) {
	s.dispatch = fn
}

// SetGeometry moves and resizes the window to r in screen coordinates.
func (s *Surface) SetGeometry(r geometry.Rect) {
	if r == s.rect {
		return
	}
	s.rect = r

	layershell.SetMargin(s.window, layershell.LayerShellEdgeLeft, r.X)
	layershell.SetMargin(s.window, layershell.LayerShellEdgeTop, r.Y)
	s.canvas.SetContentWidth(max(1, r.W))
	s.canvas.SetContentHeight(max(1, r.H))
	s.window.SetDefaultSize(max(1, r.W), max(1, r.H))
	s.canvas.QueueDraw()
}

// Redraw schedules a repaint.
func (s *Surface) Redraw() {
	s.canvas.QueueDraw()
}

// Show presents the window.
func (s *Surface) Show() {
	s.window.Present()
	if s.opts.ClickThrough {
		s.clearInputRegion()
	}
}

// Close destroys the window.
func (s *Surface) Close() {
	s.window.Close()
}

func (s *Surface) draw(_ *gtk.DrawingArea, cr *cairo.Context, width, height int) {
	if s.render == nil {
		return
	}
	canvas := newCanvas(cr)
	sc := s.render(cairoMeasurer{cr: cr})
	scene.Paint(sc, canvas)
}

func (s *Surface) emit(ev overlay.Event) {
	if s.dispatch != nil {
		s.dispatch(ev)
	}
}

func (s *Surface) connectSignals() {
	motion := gtk.NewEventControllerMotion()
	motion.ConnectEnter(func(x, y float64) {
		s.emit(overlay.PointerEnter{})
	})
	motion.ConnectLeave(func() {
		s.emit(overlay.PointerLeave{})
	})
	s.window.AddController(motion)

	click := gtk.NewGestureClick()
	click.SetButton(1)
	click.ConnectPressed(func(nPress int, x, y float64) {
		s.emit(overlay.Press{X: x, Y: y})
	})
	click.ConnectReleased(func(nPress int, x, y float64) {
		s.emit(overlay.Release{X: x, Y: y})
	})
	s.window.AddController(click)

	keys := gtk.NewEventControllerKey()
	keys.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		name := strings.ToLower(gdk.KeyvalName(keyval))
		s.emit(overlay.Key{Name: name, Ctrl: state&gdk.ControlMask != 0})
		return false
	})
	s.window.AddController(keys)
}

// clearInputRegion makes the realized window transparent to input.
func (s *Surface) clearInputRegion() {
	native := s.window.Surface()
	if native == nil {
		s.logger.Warn("window has no surface, click-through not applied")
		return
	}
	gdk.BaseSurface(native).SetInputRegion(cairo.RegionCreate())
	s.logger.Debug("click-through enabled")
}
