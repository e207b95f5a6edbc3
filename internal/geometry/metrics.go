package geometry

// Notch sizing relative to the primary screen.
const (
	widthFraction  = 0.12
	maxBaseWidth   = 420
	heightFraction = 0.035
	minBaseHeight  = 36
	radiusFraction = 0.45

	hoverGrowW = 1.06
	hoverGrowH = 1.08

	// Anticipation cue scales for the first stage of expand and collapse.
	anticipateShrink = 0.94
	anticipateGrow   = 1.04
)

// Metrics holds the rectangles derived from the primary screen size at
// construction. It is immutable for the process lifetime.
type Metrics struct {
	ScreenW int
	ScreenH int
	Base    Rect
	Radius  int
}

// NewMetrics computes the resting notch for a screen of the given size.
// The notch is centered horizontally with its top edge on the screen edge.
func NewMetrics(screenW, screenH int) Metrics {
	w := min(int(float64(screenW)*widthFraction), maxBaseWidth)
	h := max(int(float64(screenH)*heightFraction), minBaseHeight)
	return Metrics{
		ScreenW: screenW,
		ScreenH: screenH,
		Base:    Rect{X: (screenW - w) / 2, Y: 0, W: w, H: h},
		Radius:  int(float64(h) * radiusFraction),
	}
}

// Hover returns the slightly enlarged rect shown while the pointer is inside.
// The top edge stays put and the rect grows downwards.
func (m Metrics) Hover() Rect {
	w := max(1, int(float64(m.Base.W)*hoverGrowW))
	h := max(1, int(float64(m.Base.H)*hoverGrowH))
	return Rect{X: m.Base.CenterX() - w/2, Y: m.Base.Y, W: w, H: h}
}

// Expanded returns the triple-click expansion target.
func (m Metrics) Expanded() Rect {
	extra := min(m.Base.W/2, int(float64(m.ScreenW)*0.25))
	return m.widen(extra, 0.9)
}

// Banner returns the transient-content target, wider than Expanded.
func (m Metrics) Banner() Rect {
	extra := min(int(float64(m.Base.W)*0.9), int(float64(m.ScreenW)*0.5))
	return m.widen(extra, 0.95)
}

// Anticipation returns the first-stage rect of a two-stage transition from
// `from` to `to`: a slight shrink before growing, a slight swell before
// shrinking.
func (m Metrics) Anticipation(from, to Rect) Rect {
	if to.W >= from.W {
		return from.ScaleWidth(anticipateShrink)
	}
	return from.ScaleWidth(anticipateGrow)
}

func (m Metrics) widen(extra int, capFraction float64) Rect {
	w := min(m.Base.W+extra, int(float64(m.ScreenW)*capFraction))
	return Rect{X: m.Base.CenterX() - w/2, Y: m.Base.Y, W: w, H: m.Base.H}
}
