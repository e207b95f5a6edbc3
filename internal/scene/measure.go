package scene

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Measurer reports text metrics in pixels.
type Measurer interface {
	Width(s string) int
	Ascent() int
}

// FaceMeasurer measures text with a font.Face.
type FaceMeasurer struct {
	face font.Face
}

// NewFaceMeasurer wraps a font face.
func NewFaceMeasurer(face font.Face) *FaceMeasurer {
	return &FaceMeasurer{face: face}
}

// DefaultMeasurer returns a measurer for the built-in 7x13 face. It is fixed
// pitch, which keeps marquee widths stable regardless of installed fonts.
func DefaultMeasurer() *FaceMeasurer {
	return NewFaceMeasurer(basicfont.Face7x13)
}

// Width returns the advance width of s.
func (m *FaceMeasurer) Width(s string) int {
	return font.MeasureString(m.face, s).Ceil()
}

// Ascent returns the face ascent.
func (m *FaceMeasurer) Ascent() int {
	return m.face.Metrics().Ascent.Ceil()
}
