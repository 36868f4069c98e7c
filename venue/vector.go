package venue

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// planarDistance ignores height
func planarDistance(a, b pt.Vector) float64 {
	return math.Hypot(b.X-a.X, b.Z-a.Z)
}

// heading returns the horizontal bearing of v, measured from +Z towards +X.
func heading(v pt.Vector) float64 {
	return math.Atan2(v.X, v.Z)
}

// wrapAngle maps a into (-π, π].
func wrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// angleBetween returns the absolute difference between two headings, in [0, π].
func angleBetween(a, b float64) float64 {
	diff := math.Abs(math.Mod(a-b, 2*math.Pi))
	if diff > math.Pi {
		diff = 2*math.Pi - diff
	}
	return diff
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
