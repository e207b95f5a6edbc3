package scene

import (
	"image/color"
	"path/filepath"

	"github.com/jmylchreest/notch/internal/geometry"
)

// Op is a path drawing operation.
type Op int

const (
	OpMoveTo Op = iota
	OpLineTo
	OpQuadTo // Control point then end point
	OpClose
)

// Segment is one path operation and its points.
type Segment struct {
	Op     Op
	Points []geometry.Point
}

// Path is the outline of the notch.
type Path []Segment

// Glyph names the small pictogram drawn inside an icon.
type Glyph int

const (
	GlyphNone Glyph = iota
	GlyphNote
	GlyphFolder
	GlyphBadge
)

// Icon is a rounded square filled with Color and a light Glyph on top.
type Icon struct {
	Name  string
	Color color.RGBA
	Glyph Glyph
}

// Align controls how text sits inside its region.
type Align int

const (
	AlignCenter Align = iota
	AlignScroll       // Wider than its area, scrolled by a marquee offset
)

// Region is a piece of content. Rect is the clip area; for text, X and
// Baseline position the first glyph.
type Region struct {
	Rect     geometry.Rect
	Text     string
	Icon     *Icon
	Align    Align
	X        int
	Baseline int
}

// Scene is everything a rasterizer needs for one paint.
type Scene struct {
	Width   int
	Height  int
	Path    Path
	Fill    color.RGBA
	Ink     color.RGBA
	Regions []Region
}

// Banner is transient now-playing style content.
type Banner struct {
	Title        string
	Detail       string
	TitleOffset  int
	DetailOffset int
	Icon         Icon
}

// Slots is the folder-slot content shown while expanded.
type Slots struct {
	Left        string
	Right       string
	Placeholder string
	Icon        Icon
}

// QuickActions is the action-icon content shown while expanded.
type QuickActions struct {
	Caption string
	Actions []Icon
}

// Model is the state snapshot a Scene is built from. At most one content
// field is expected to be set; a Model with none yields the plain shape.
type Model struct {
	Width  int
	Height int
	Radius int
	Fill   color.RGBA
	Ink    color.RGBA

	Banner       *Banner
	Slots        *Slots
	QuickActions *QuickActions
}

// Build derives the scene for m. It is a pure function of its inputs.
func Build(m Model, measure Measurer) Scene {
	s := Scene{
		Width:  m.Width,
		Height: m.Height,
		Path:   NotchPath(m.Width, m.Height, m.Radius),
		Fill:   m.Fill,
		Ink:    m.Ink,
	}
	if m.Width <= 0 || m.Height <= 0 {
		return s
	}
	if measure == nil {
		measure = DefaultMeasurer()
	}

	l := NewLayout(m.Width, m.Height)
	baseline := m.Height/2 + measure.Ascent()/2

	text := func(area geometry.Rect, str string, offset int) Region {
		w := measure.Width(str)
		align := AlignCenter
		if w > area.W {
			align = AlignScroll
		}
		return Region{
			Rect:     area,
			Text:     str,
			Align:    align,
			X:        textStart(area, w, offset),
			Baseline: baseline,
		}
	}

	switch {
	case m.Banner != nil:
		icon := m.Banner.Icon
		s.Regions = append(s.Regions, Region{Rect: l.Icon, Icon: &icon})
		if m.Banner.Title != "" {
			s.Regions = append(s.Regions, text(l.Left, m.Banner.Title, m.Banner.TitleOffset))
		}
		if m.Banner.Detail != "" {
			s.Regions = append(s.Regions, text(l.Right, m.Banner.Detail, m.Banner.DetailOffset))
		}

	case m.Slots != nil:
		icon := m.Slots.Icon
		s.Regions = append(s.Regions,
			Region{Rect: l.Icon, Icon: &icon},
			text(l.Left, slotLabel(m.Slots.Left, m.Slots.Placeholder), 0),
			text(l.Right, slotLabel(m.Slots.Right, m.Slots.Placeholder), 0),
		)

	case m.QuickActions != nil:
		if m.QuickActions.Caption != "" {
			s.Regions = append(s.Regions, text(l.Left, m.QuickActions.Caption, 0))
		}
		spots := QuickActionHotspots(m.Width, m.Height, len(m.QuickActions.Actions))
		for i, spot := range spots {
			icon := m.QuickActions.Actions[i]
			s.Regions = append(s.Regions, Region{Rect: spot, Icon: &icon})
		}
	}

	return s
}

// NotchPath returns the notch outline: a flat top edge and two rounded bottom
// corners of radius r, clamped so the corners never overlap.
func NotchPath(w, h, r int) Path {
	fw, fh := float64(w), float64(h)
	fr := float64(max(0, min(r, h/2, w/2)))
	pt := func(x, y float64) geometry.Point { return geometry.Point{X: x, Y: y} }

	return Path{
		{Op: OpMoveTo, Points: []geometry.Point{pt(0, 0)}},
		{Op: OpLineTo, Points: []geometry.Point{pt(fw, 0)}},
		{Op: OpLineTo, Points: []geometry.Point{pt(fw, fh-fr)}},
		{Op: OpQuadTo, Points: []geometry.Point{pt(fw, fh), pt(fw-fr, fh)}},
		{Op: OpLineTo, Points: []geometry.Point{pt(fr, fh)}},
		{Op: OpQuadTo, Points: []geometry.Point{pt(0, fh), pt(0, fh-fr)}},
		{Op: OpClose},
	}
}

func slotLabel(path, placeholder string) string {
	if path == "" {
		return placeholder
	}
	return filepath.Base(path)
}
