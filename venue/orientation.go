package venue

import (
	"math"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats/scalar"
)

// Orientation is a head pose without roll, in radians. Yaw is applied before pitch.
type Orientation struct {
	Pitch float64
	Yaw   float64
}

// Forward returns the unit view direction.
func (o Orientation) Forward() pt.Vector {
	cp := math.Cos(o.Pitch)
	return V(math.Sin(o.Yaw)*cp, -math.Sin(o.Pitch), math.Cos(o.Yaw)*cp)
}

func (o Orientation) Sub(b Orientation) Orientation {
	return Orientation{Pitch: o.Pitch - b.Pitch, Yaw: o.Yaw - b.Yaw}
}

// Limits bounds head movement relative to the anchor baseline, in radians.
type Limits struct {
	MinYaw, MaxYaw     float64
	MinPitch, MaxPitch float64
}

// HumanLimits allow turning 135° either way, 72° down and 60° up.
var HumanLimits = Limits{
	MinYaw:   -0.75 * math.Pi,
	MaxYaw:   0.75 * math.Pi,
	MinPitch: -math.Pi / 2.5,
	MaxPitch: math.Pi / 3,
}

const (
	// Radians of head movement per unit of pointer movement
	DefaultSensitivity = 0.002
	// Fraction of the remaining distance to the target covered per tick
	DefaultSmoothing = 0.1
)

// ControllerParams tunes a Controller.
type ControllerParams struct {
	Sensitivity float64
	Smoothing   float64
	Limits      Limits
	EyeHeight   float64
}

func DefaultControllerParams() ControllerParams {
	return ControllerParams{
		Sensitivity: DefaultSensitivity,
		Smoothing:   DefaultSmoothing,
		Limits:      HumanLimits,
		EyeHeight:   DefaultEyeHeight,
	}
}

// Controller turns pointer deltas into a smoothed, clamped head orientation.
//
// Pointer input moves the target orientation and only while engaged. Update moves the current
// orientation a fixed fraction of the way towards the target, whether engaged or not.
type Controller struct {
	params ControllerParams

	anchor   Anchor
	anchored bool
	engaged  bool

	target  Orientation
	current Orientation
}

func NewController(params ControllerParams) *Controller {
	return &Controller{params: params}
}

func (c *Controller) Params() ControllerParams {
	return c.params
}

// Anchor snaps both target and current orientation to the baseline of a.
func (c *Controller) Anchor(a Anchor) {
	c.anchor = a
	c.anchored = true
	c.target = a.Baseline
	c.current = a.Baseline
}

func (c *Controller) Anchored() bool {
	return c.anchored
}

// CurrentAnchor returns the anchor set by the last call to Anchor.
func (c *Controller) CurrentAnchor() (Anchor, bool) {
	return c.anchor, c.anchored
}

func (c *Controller) Engage() {
	c.engaged = true
}

// Disengage stops consuming pointer input. The orientation is left where it is.
func (c *Controller) Disengage() {
	c.engaged = false
}

func (c *Controller) Engaged() bool {
	return c.engaged
}

// PointerMoved applies a raw pointer delta to the target orientation.
// It reports whether the delta was consumed.
func (c *Controller) PointerMoved(dx, dy float64) bool {
	if !c.engaged || !c.anchored {
		return false
	}
	base := c.anchor.Baseline
	lim := c.params.Limits

	c.target.Yaw -= dx * c.params.Sensitivity
	c.target.Yaw = clamp(c.target.Yaw, base.Yaw+lim.MinYaw, base.Yaw+lim.MaxYaw)

	c.target.Pitch -= dy * c.params.Sensitivity
	c.target.Pitch = clamp(c.target.Pitch, base.Pitch+lim.MinPitch, base.Pitch+lim.MaxPitch)
	return true
}

// Update advances the smoothing by one tick and returns the new current orientation.
func (c *Controller) Update() Orientation {
	if !c.anchored {
		return c.current
	}
	f := c.params.Smoothing
	c.current.Pitch += (c.target.Pitch - c.current.Pitch) * f
	c.current.Yaw += (c.target.Yaw - c.current.Yaw) * f
	return c.current
}

func (c *Controller) Current() Orientation {
	return c.current
}

func (c *Controller) Target() Orientation {
	return c.target
}

// Offset is the current orientation relative to the anchor baseline.
func (c *Controller) Offset() Orientation {
	return c.current.Sub(c.anchor.Baseline)
}

// Settled reports whether current is within tol of target on both axes.
func (c *Controller) Settled(tol float64) bool {
	return scalar.EqualWithinAbs(c.current.Yaw, c.target.Yaw, tol) &&
		scalar.EqualWithinAbs(c.current.Pitch, c.target.Pitch, tol)
}
