package venue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// centerAnchor seats a viewer in the middle of singleRow, looking back down -Z at the focal point.
func centerAnchor(t *testing.T) Anchor {
	t.Helper()
	l := mustGenerate(t, singleRow())
	seat, ok := l.Seat(3)
	require.True(t, ok)
	return NewAnchor(seat, l.Geometry.FocalPoint, DefaultEyeHeight)
}

func TestAim(t *testing.T) {
	tests := []struct {
		name   string
		from   [3]float64
		to     [3]float64
		expect Orientation
	}{
		{"straight_ahead", [3]float64{0, 0, 0}, [3]float64{0, 0, 5}, Orientation{Yaw: 0, Pitch: 0}},
		{"right", [3]float64{0, 0, 0}, [3]float64{5, 0, 0}, Orientation{Yaw: math.Pi / 2, Pitch: 0}},
		{"behind", [3]float64{0, 0, 0}, [3]float64{0, 0, -5}, Orientation{Yaw: math.Pi, Pitch: 0}},
		{"looking_down", [3]float64{0, 1, 0}, [3]float64{0, 0, 1}, Orientation{Yaw: 0, Pitch: math.Pi / 4}},
		{"looking_up", [3]float64{0, 0, 0}, [3]float64{0, 1, 1}, Orientation{Yaw: 0, Pitch: -math.Pi / 4}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			from := V(tc.from[0], tc.from[1], tc.from[2])
			to := V(tc.to[0], tc.to[1], tc.to[2])
			o := Aim(from, to)
			assert.InDelta(t, tc.expect.Yaw, o.Yaw, 1e-12)
			assert.InDelta(t, tc.expect.Pitch, o.Pitch, 1e-12)

			// Forward of the aimed orientation points at the target
			want := to.Sub(from).Normalize()
			got := o.Forward()
			assert.InDelta(t, want.X, got.X, 1e-12)
			assert.InDelta(t, want.Y, got.Y, 1e-12)
			assert.InDelta(t, want.Z, got.Z, 1e-12)
		})
	}
}

func TestAnchorSnaps(t *testing.T) {
	assert := assert.New(t)
	a := centerAnchor(t)

	assert.InDelta(1.5, a.Position.Y, 1e-12)
	assert.InDelta(math.Pi, a.Baseline.Yaw, 1e-12)
	assert.InDelta(math.Atan2(1.5, 10), a.Baseline.Pitch, 1e-12)

	c := NewController(DefaultControllerParams())
	assert.False(c.Anchored())
	c.Anchor(a)
	assert.True(c.Anchored())
	assert.Equal(a.Baseline, c.Current())
	assert.Equal(a.Baseline, c.Target())
	assert.Equal(Orientation{}, c.Offset())

	// re-anchoring after moving snaps back without smoothing
	c.Engage()
	c.PointerMoved(300, -120)
	for i := 0; i < 10; i++ {
		c.Update()
	}
	assert.NotEqual(a.Baseline, c.Current())
	c.Anchor(a)
	assert.Equal(a.Baseline, c.Current())
	assert.Equal(a.Baseline, c.Target())
}

func TestUnanchoredController(t *testing.T) {
	c := NewController(DefaultControllerParams())
	c.Engage()
	assert.False(t, c.PointerMoved(10, 10))
	assert.Equal(t, Orientation{}, c.Update())
}

func TestDisengagedPointerIgnored(t *testing.T) {
	assert := assert.New(t)
	a := centerAnchor(t)
	c := NewController(DefaultControllerParams())
	c.Anchor(a)

	for i := 0; i < 100; i++ {
		assert.False(c.PointerMoved(50, 50))
	}
	assert.Equal(a.Baseline, c.Target())

	c.Engage()
	assert.True(c.PointerMoved(50, 0))
	moved := c.Target()
	c.Disengage()
	assert.False(c.PointerMoved(50, 0))
	assert.Equal(moved, c.Target(), "disengaging keeps the target")
}

func TestPointerDirection(t *testing.T) {
	assert := assert.New(t)
	a := centerAnchor(t)
	c := NewController(DefaultControllerParams())
	c.Anchor(a)
	c.Engage()

	c.PointerMoved(100, 50)
	assert.InDelta(a.Baseline.Yaw-0.2, c.Target().Yaw, 1e-12)
	assert.InDelta(a.Baseline.Pitch-0.1, c.Target().Pitch, 1e-12)
}

func TestYawClamped(t *testing.T) {
	tests := []struct {
		name  string
		dx    float64
		bound func(base Orientation, lim Limits) float64
	}{
		{"left", -100, func(base Orientation, lim Limits) float64 { return base.Yaw + lim.MaxYaw }},
		{"right", 100, func(base Orientation, lim Limits) float64 { return base.Yaw + lim.MinYaw }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			a := centerAnchor(t)
			params := DefaultControllerParams()
			c := NewController(params)
			c.Anchor(a)
			c.Engage()

			prev := c.Target().Yaw
			for i := 0; i < 50; i++ {
				c.PointerMoved(tc.dx, 0)
				yaw := c.Target().Yaw
				if tc.dx < 0 {
					assert.GreaterOrEqual(yaw, prev)
				} else {
					assert.LessOrEqual(yaw, prev)
				}
				prev = yaw
			}
			assert.Equal(tc.bound(a.Baseline, params.Limits), c.Target().Yaw)
			assert.InDelta(0.75*math.Pi, math.Abs(c.Target().Yaw-a.Baseline.Yaw), 1e-12)
		})
	}
}

func TestPitchClamped(t *testing.T) {
	assert := assert.New(t)
	a := centerAnchor(t)
	params := DefaultControllerParams()
	c := NewController(params)
	c.Anchor(a)
	c.Engage()

	for i := 0; i < 100; i++ {
		c.PointerMoved(0, 100)
	}
	assert.Equal(a.Baseline.Pitch+params.Limits.MinPitch, c.Target().Pitch)

	for i := 0; i < 100; i++ {
		c.PointerMoved(0, -100)
	}
	assert.Equal(a.Baseline.Pitch+params.Limits.MaxPitch, c.Target().Pitch)
}

func TestSmoothingConverges(t *testing.T) {
	assert := assert.New(t)
	a := centerAnchor(t)
	c := NewController(DefaultControllerParams())
	c.Anchor(a)
	c.Engage()
	c.PointerMoved(-250, 0)
	c.Disengage()

	target := c.Target()
	assert.InDelta(a.Baseline.Yaw+0.5, target.Yaw, 1e-12)

	prevErr := math.Abs(target.Yaw - c.Current().Yaw)
	for i := 1; i <= 60; i++ {
		o := c.Update()
		err := math.Abs(target.Yaw - o.Yaw)
		assert.Less(err, prevErr, "tick %d", i)
		assert.InDelta(0.5*math.Pow(0.9, float64(i)), err, 1e-9, "tick %d", i)
		prevErr = err
	}
	assert.True(c.Settled(1e-3))
	assert.False(c.Settled(1e-4))
}
