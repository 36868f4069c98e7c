package venue

import (
	"fmt"
	"math"
	"sort"

	"github.com/fogleman/pt/pt"
	lin "github.com/sgreben/piecewiselinear"
)

// Source is the fixed broadcast source, usually the screen or stage.
type Source struct {
	Position pt.Vector
	// Height of the emitter above Position. Attenuation is planar and ignores it.
	Height float64
}

// Emitter is the point sound is emitted from.
func (s Source) Emitter() pt.Vector {
	return s.Position.Add(V(0, s.Height, 0))
}

// AttenuationParams define how gain falls off with distance and with facing away from the source.
type AttenuationParams struct {
	// Full gain at or below this planar distance, in meters
	MinDistance float64
	// Distance term bottoms out at Floor from here on
	MaxDistance float64
	// Lower bound of both the distance term and the angle term
	Floor float64
	// Angle, in radians, at which the angle term reaches zero before clamping
	AngleBudget float64
	// Gain while the menu is open
	MenuGain float64
	// Optional breakpoints of angle difference (radians) to gain. Replaces the linear angle term.
	AngleCurve map[float64]float64
}

func DefaultAttenuationParams() AttenuationParams {
	return AttenuationParams{
		MinDistance: 6,
		MaxDistance: 20,
		Floor:       0.15,
		AngleBudget: math.Pi / 1.2,
		MenuGain:    0.2,
	}
}

// Model computes the gain of a source for a viewer. It holds no state between calls.
type Model struct {
	params   AttenuationParams
	distance lin.Function
	angle    lin.Function
	curve    bool
}

func NewModel(p AttenuationParams) (Model, error) {
	switch {
	case p.MinDistance < 0:
		return Model{}, fmt.Errorf("min distance must be non-negative, got %v", p.MinDistance)
	case !(p.MaxDistance > p.MinDistance):
		return Model{}, fmt.Errorf("max distance %v must exceed min distance %v", p.MaxDistance, p.MinDistance)
	case p.Floor < 0 || p.Floor > 1:
		return Model{}, fmt.Errorf("floor must be between 0 and 1, got %v", p.Floor)
	case !(p.AngleBudget > 0):
		return Model{}, fmt.Errorf("angle budget must be positive, got %v", p.AngleBudget)
	case p.MenuGain < 0 || p.MenuGain > 1:
		return Model{}, fmt.Errorf("menu gain must be between 0 and 1, got %v", p.MenuGain)
	}

	m := Model{
		params: p,
		distance: lin.Function{
			X: []float64{p.MinDistance, p.MaxDistance},
			Y: []float64{1, 0},
		},
		angle: lin.Function{
			X: []float64{0, p.AngleBudget},
			Y: []float64{1, 0},
		},
	}
	if len(p.AngleCurve) > 0 {
		f, err := curveFunction(p.AngleCurve)
		if err != nil {
			return Model{}, fmt.Errorf("angle curve: %w", err)
		}
		m.angle = f
		m.curve = true
	}
	return m, nil
}

// DefaultModel uses DefaultAttenuationParams.
func DefaultModel() Model {
	m, err := NewModel(DefaultAttenuationParams())
	if err != nil {
		panic(err)
	}
	return m
}

// curveFunction builds a piecewise linear function from unordered breakpoints.
func curveFunction(points map[float64]float64) (lin.Function, error) {
	if len(points) < 2 {
		return lin.Function{}, fmt.Errorf("needs at least 2 points, got %d", len(points))
	}
	xs := make([]float64, 0, len(points))
	for x := range points {
		if x < 0 || x > math.Pi {
			return lin.Function{}, fmt.Errorf("angle %v outside [0, π]", x)
		}
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = points[x]
	}
	return lin.Function{X: xs, Y: ys}, nil
}

func (m Model) Params() AttenuationParams {
	return m.params
}

// DistanceTerm maps a planar distance to [Floor, 1].
func (m Model) DistanceTerm(d float64) float64 {
	switch {
	case d <= m.params.MinDistance:
		return 1
	case d >= m.params.MaxDistance:
		return m.params.Floor
	}
	return clamp(m.distance.At(d), m.params.Floor, 1)
}

// AngleTerm maps the difference between facing and bearing, in [0, π], to [Floor, 1].
func (m Model) AngleTerm(diff float64) float64 {
	if m.curve {
		xs, ys := m.angle.X, m.angle.Y
		last := len(xs) - 1
		switch {
		case diff <= xs[0]:
			return clamp(ys[0], m.params.Floor, 1)
		case diff >= xs[last]:
			return clamp(ys[last], m.params.Floor, 1)
		}
		return clamp(m.angle.At(diff), m.params.Floor, 1)
	}
	switch {
	case diff <= 0:
		return 1
	case diff >= m.params.AngleBudget:
		return m.params.Floor
	}
	return clamp(m.angle.At(diff), m.params.Floor, 1)
}

// Gain returns the gain of src for a viewer at viewer facing yaw.
// Both terms are clamped before they are multiplied, so the lowest possible gain is Floor².
func (m Model) Gain(viewer pt.Vector, yaw float64, src Source, menuOpen bool) float64 {
	if menuOpen {
		return m.params.MenuGain
	}
	offset := src.Position.Sub(viewer)
	d := math.Hypot(offset.X, offset.Z)
	diff := angleBetween(heading(offset), yaw)
	return m.DistanceTerm(d) * m.AngleTerm(diff)
}
