package geometry

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
// Every curve here is monotonic and satisfies f(0) == 0 and f(1) == 1.
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return clamp01(t)
}

// OutCubic decelerates towards the end. Used for hover and banner transitions.
func OutCubic(t float64) float64 {
	t = clamp01(t) - 1
	return t*t*t + 1
}

// InOutQuad accelerates then decelerates. Used for expand and collapse.
func InOutQuad(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
