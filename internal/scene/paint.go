package scene

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/notch/internal/geometry"
)

// Canvas is the drawing surface Paint renders onto. Coordinates are
// widget-local pixels.
type Canvas interface {
	SetColor(c color.RGBA)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	Fill()
	Save()
	Restore()
	Clip(r geometry.Rect)
	Text(x, y float64, s string)
}

const (
	iconCornerFraction = 0.25
	glyphTint          = 0.85
)

// Paint draws s onto c: the filled outline, then every region clipped to its
// rect.
func Paint(s Scene, c Canvas) {
	if s.Width <= 0 || s.Height <= 0 {
		return
	}
	c.SetColor(s.Fill)
	tracePath(c, s.Path)
	c.Fill()

	for _, r := range s.Regions {
		c.Save()
		c.Clip(r.Rect)
		if r.Icon != nil {
			paintIcon(c, r.Rect, *r.Icon)
		} else if r.Text != "" {
			c.SetColor(s.Ink)
			c.Text(float64(r.X), float64(r.Baseline), r.Text)
		}
		c.Restore()
	}
}

// tracePath emits p, raising quadratic segments to cubic ones since most
// 2D backends only take cubics.
func tracePath(c Canvas, p Path) {
	var cur geometry.Point
	for _, seg := range p {
		switch seg.Op {
		case OpMoveTo:
			cur = seg.Points[0]
			c.MoveTo(cur.X, cur.Y)
		case OpLineTo:
			cur = seg.Points[0]
			c.LineTo(cur.X, cur.Y)
		case OpQuadTo:
			ctrl, end := seg.Points[0], seg.Points[1]
			c1, c2 := quadToCubic(cur, ctrl, end)
			c.CurveTo(c1.X, c1.Y, c2.X, c2.Y, end.X, end.Y)
			cur = end
		case OpClose:
			c.ClosePath()
		}
	}
}

func quadToCubic(p0, q, p1 geometry.Point) (geometry.Point, geometry.Point) {
	const k = 2.0 / 3.0
	return geometry.Point{X: p0.X + k*(q.X-p0.X), Y: p0.Y + k*(q.Y-p0.Y)},
		geometry.Point{X: p1.X + k*(q.X-p1.X), Y: p1.Y + k*(q.Y-p1.Y)}
}

func paintIcon(c Canvas, area geometry.Rect, icon Icon) {
	side := min(area.W, area.H)
	if side <= 0 {
		return
	}
	box := geometry.Rect{X: area.X + (area.W-side)/2, Y: area.Y + (area.H-side)/2, W: side, H: side}

	c.SetColor(icon.Color)
	roundRect(c, box, float64(side)*iconCornerFraction)
	c.Fill()

	c.SetColor(GlyphColor(icon.Color))
	s := float64(side)
	x, y := float64(box.X), float64(box.Y)
	switch icon.Glyph {
	case GlyphNote:
		// Stem and a head at its foot.
		rect(c, x+s*0.55, y+s*0.2, s*0.1, s*0.5)
		roundRectF(c, x+s*0.3, y+s*0.58, s*0.32, s*0.22, s*0.1)
	case GlyphFolder:
		// Tab over a body.
		roundRectF(c, x+s*0.2, y+s*0.28, s*0.25, s*0.12, s*0.04)
		roundRectF(c, x+s*0.2, y+s*0.36, s*0.6, s*0.38, s*0.06)
	case GlyphBadge:
		roundRectF(c, x+s*0.3, y+s*0.3, s*0.4, s*0.4, s*0.2)
	}
	if icon.Glyph != GlyphNone {
		c.Fill()
	}
}

// GlyphColor returns the pictogram color for an icon background: the
// background pulled most of the way to white.
func GlyphColor(bg color.RGBA) color.RGBA {
	base, _ := colorful.MakeColor(opaque(bg))
	r, g, b := base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, glyphTint).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 0xff
	return c
}

func rect(c Canvas, x, y, w, h float64) {
	c.MoveTo(x, y)
	c.LineTo(x+w, y)
	c.LineTo(x+w, y+h)
	c.LineTo(x, y+h)
	c.ClosePath()
}

func roundRect(c Canvas, r geometry.Rect, radius float64) {
	roundRectF(c, float64(r.X), float64(r.Y), float64(r.W), float64(r.H), radius)
}

func roundRectF(c Canvas, x, y, w, h, radius float64) {
	radius = max(0, min(radius, w/2, h/2))
	p := Path{
		{Op: OpMoveTo, Points: []geometry.Point{{X: x + radius, Y: y}}},
		{Op: OpLineTo, Points: []geometry.Point{{X: x + w - radius, Y: y}}},
		{Op: OpQuadTo, Points: []geometry.Point{{X: x + w, Y: y}, {X: x + w, Y: y + radius}}},
		{Op: OpLineTo, Points: []geometry.Point{{X: x + w, Y: y + h - radius}}},
		{Op: OpQuadTo, Points: []geometry.Point{{X: x + w, Y: y + h}, {X: x + w - radius, Y: y + h}}},
		{Op: OpLineTo, Points: []geometry.Point{{X: x + radius, Y: y + h}}},
		{Op: OpQuadTo, Points: []geometry.Point{{X: x, Y: y + h}, {X: x, Y: y + h - radius}}},
		{Op: OpLineTo, Points: []geometry.Point{{X: x, Y: y + radius}}},
		{Op: OpQuadTo, Points: []geometry.Point{{X: x, Y: y}, {X: x + radius, Y: y}}},
		{Op: OpClose},
	}
	tracePath(c, p)
}
