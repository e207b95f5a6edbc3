package display

import (
	"image/color"
	"math"

	"github.com/diamondburned/gotk4/pkg/cairo"

	"github.com/jmylchreest/notch/internal/geometry"
	"github.com/jmylchreest/notch/internal/scene"
)

const (
	fontSize       = 13.0
	ascentFraction = 0.72
)

// cairoCanvas paints a scene onto a cairo context.
type cairoCanvas struct {
	cr *cairo.Context
}

var (
	_ scene.Canvas   = cairoCanvas{}
	_ scene.Measurer = cairoMeasurer{}
)

func newCanvas(cr *cairo.Context) cairoCanvas {
	cr.SetFontSize(fontSize)
	return cairoCanvas{cr: cr}
}

func (c cairoCanvas) SetColor(col color.RGBA) {
	c.cr.SetSourceRGBA(
		float64(col.R)/255,
		float64(col.G)/255,
		float64(col.B)/255,
		float64(col.A)/255,
	)
}

func (c cairoCanvas) MoveTo(x, y float64) { c.cr.MoveTo(x, y) }
func (c cairoCanvas) LineTo(x, y float64) { c.cr.LineTo(x, y) }
func (c cairoCanvas) ClosePath()          { c.cr.ClosePath() }
func (c cairoCanvas) Fill()               { c.cr.Fill() }
func (c cairoCanvas) Save()               { c.cr.Save() }
func (c cairoCanvas) Restore()            { c.cr.Restore() }

func (c cairoCanvas) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	c.cr.CurveTo(x1, y1, x2, y2, x3, y3)
}

func (c cairoCanvas) Clip(r geometry.Rect) {
	c.cr.Rectangle(float64(r.X), float64(r.Y), float64(r.W), float64(r.H))
	c.cr.Clip()
}

func (c cairoCanvas) Text(x, y float64, s string) {
	c.cr.MoveTo(x, y)
	c.cr.ShowText(s)
}

// cairoMeasurer measures with the font the canvas draws with, so marquee
// widths match what is painted.
type cairoMeasurer struct {
	cr *cairo.Context
}

func (m cairoMeasurer) Width(s string) int {
	ext := m.cr.TextExtents(s)
	return int(math.Ceil(ext.XAdvance))
}

func (m cairoMeasurer) Ascent() int {
	return int(math.Ceil(fontSize * ascentFraction))
}
