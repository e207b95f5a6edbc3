package scene

import "github.com/jmylchreest/notch/internal/geometry"

const (
	maxIconSize     = 28
	iconMargin      = 8
	areaGap         = 8
	rightAreaMargin = 12
	minAreaWidth    = 10

	maxActionIcon = 26
	actionGap     = 8

	// marqueeGap is the blank run between the end of scrolling text and its
	// next pass.
	marqueeGap = 20
)

// Layout is the fixed arrangement of content inside a widget of a given size.
// All rects are widget-local.
type Layout struct {
	Icon  geometry.Rect
	Left  geometry.Rect
	Right geometry.Rect
}

// NewLayout arranges a leading icon, a left text area up to the midline and a
// right text area after it.
func NewLayout(w, h int) Layout {
	icon := min(maxIconSize, int(float64(h)*0.7))
	iconRect := geometry.Rect{X: iconMargin, Y: (h - icon) / 2, W: icon, H: icon}

	leftX := iconRect.Right() + areaGap
	leftW := max(minAreaWidth, w/2-leftX-areaGap)
	rightX := w/2 + areaGap
	rightW := max(minAreaWidth, w-rightX-rightAreaMargin)

	return Layout{
		Icon:  iconRect,
		Left:  geometry.Rect{X: leftX, Y: 0, W: leftW, H: h},
		Right: geometry.Rect{X: rightX, Y: 0, W: rightW, H: h},
	}
}

// QuickActionHotspots returns the rects of n action icons centered in the
// right area. The same rects are painted and hit-tested.
func QuickActionHotspots(w, h, n int) []geometry.Rect {
	if n <= 0 {
		return nil
	}
	area := NewLayout(w, h).Right
	size := min(maxActionIcon, int(float64(h)*0.6))
	total := size*n + actionGap*(n-1)
	x := area.X + (area.W-total)/2
	y := (h - size) / 2

	spots := make([]geometry.Rect, n)
	for i := range spots {
		spots[i] = geometry.Rect{X: x + i*(size+actionGap), Y: y, W: size, H: size}
	}
	return spots
}

// textStart returns the x position of text inside area. Text that fits is
// centered; wider text scrolls left by offset, wrapping once it has fully
// passed plus a gap.
func textStart(area geometry.Rect, textW, offset int) int {
	if textW <= area.W {
		return area.X + (area.W-textW)/2
	}
	period := textW + area.W + marqueeGap
	return area.X - ((offset%period)+period)%period
}
