package venue

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// Height of the viewer's eyes above the seat, in meters
const DefaultEyeHeight = 1.5

// Anchor is the seat-derived viewpoint that head movement is measured from.
type Anchor struct {
	Seat Seat
	// Eye position of the viewer
	Position pt.Vector
	// Orientation that looks straight at the focal point
	Baseline Orientation
}

// NewAnchor seats a viewer at seat, looking at focal.
func NewAnchor(seat Seat, focal pt.Vector, eyeHeight float64) Anchor {
	pos := seat.Position.Add(V(0, eyeHeight, 0))
	return Anchor{
		Seat:     seat,
		Position: pos,
		Baseline: Aim(pos, focal),
	}
}

// Aim returns the orientation that looks from one point at another.
func Aim(from, to pt.Vector) Orientation {
	d := to.Sub(from)
	return Orientation{
		Yaw:   math.Atan2(d.X, d.Z),
		Pitch: math.Atan2(-d.Y, math.Hypot(d.X, d.Z)),
	}
}

// Distance is the planar distance from the anchor to p.
func (a Anchor) Distance(p pt.Vector) float64 {
	return planarDistance(a.Position, p)
}
