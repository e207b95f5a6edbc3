package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	tests := []struct {
		name    string
		screenW int
		screenH int
		want    Rect
		radius  int
	}{
		{
			name:    "1080p",
			screenW: 1920,
			screenH: 1080,
			want:    Rect{X: 845, Y: 0, W: 230, H: 37},
			radius:  16,
		},
		{
			name:    "4k caps width",
			screenW: 3840,
			screenH: 2160,
			want:    Rect{X: 1710, Y: 0, W: 420, H: 75},
			radius:  33,
		},
		{
			name:    "small screen keeps min height",
			screenW: 800,
			screenH: 600,
			want:    Rect{X: 352, Y: 0, W: 96, H: 36},
			radius:  16,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics(tt.screenW, tt.screenH)
			assert.Equal(t, tt.want, m.Base)
			assert.Equal(t, tt.radius, m.Radius)
		})
	}
}

func TestMetrics_Hover(t *testing.T) {
	m := NewMetrics(1920, 1080)
	hover := m.Hover()

	assert.Equal(t, Rect{X: 839, Y: 0, W: 243, H: 39}, hover)
	assert.Equal(t, m.Base.Y, hover.Y, "top edge stays fixed")
}

func TestMetrics_TargetsAreCenteredAndOrdered(t *testing.T) {
	for _, size := range [][2]int{{1920, 1080}, {2560, 1440}, {1366, 768}, {3840, 2160}} {
		m := NewMetrics(size[0], size[1])
		expanded := m.Expanded()
		banner := m.Banner()

		assert.InDelta(t, m.Base.CenterX(), expanded.CenterX(), 1)
		assert.InDelta(t, m.Base.CenterX(), banner.CenterX(), 1)
		assert.Equal(t, m.Base.H, expanded.H)
		assert.Equal(t, m.Base.H, banner.H)
		assert.Greater(t, expanded.W, m.Base.W)
		assert.Greater(t, banner.W, expanded.W)
		assert.LessOrEqual(t, banner.W, int(float64(m.ScreenW)*0.95))
	}
}

func TestMetrics_Anticipation(t *testing.T) {
	m := NewMetrics(1920, 1080)

	grow := m.Anticipation(m.Base, m.Expanded())
	assert.Less(t, grow.W, m.Base.W, "expanding starts with a slight shrink")
	assert.Equal(t, m.Base.Y, grow.Y)

	shrink := m.Anticipation(m.Expanded(), m.Base)
	assert.Greater(t, shrink.W, m.Expanded().W, "collapsing starts with a slight swell")
}

func TestLerp(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 100, H: 10}
	b := Rect{X: -50, Y: 0, W: 200, H: 20}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, a, Lerp(a, b, -1))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, b, Lerp(a, b, 1.5))
	assert.Equal(t, Rect{X: -25, Y: 0, W: 150, H: 15}, Lerp(a, b, 0.5))
}

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 10, Y: 0, W: 20, H: 10}

	assert.True(t, r.Contains(Point{X: 10, Y: 0}))
	assert.True(t, r.Contains(Point{X: 29.9, Y: 9.9}))
	assert.False(t, r.Contains(Point{X: 30, Y: 5}))
	assert.False(t, r.Contains(Point{X: 9, Y: 5}))
}

func TestEasingCurves(t *testing.T) {
	curves := map[string]Easing{
		"linear":    Linear,
		"outCubic":  OutCubic,
		"inOutQuad": InOutQuad,
	}

	for name, ease := range curves {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, ease(0), 1e-9)
			assert.InDelta(t, 1, ease(1), 1e-9)

			prev := ease(0)
			for i := 1; i <= 100; i++ {
				v := ease(float64(i) / 100)
				assert.GreaterOrEqual(t, v, prev, "curve must be monotonic")
				prev = v
			}
		})
	}
}
