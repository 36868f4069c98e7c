package venue

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// theater is the stock five-row venue.
func theater() Geometry {
	return Geometry{
		Rows:            []int{6, 9, 12, 15, 18},
		FocalPoint:      V(0, 0, -12),
		BaseRadius:      8,
		RadiusIncrement: 2.5,
		BaseHeight:      0.2,
		HeightIncrement: 0.32,
		AngularSpan:     Radians(150),
	}
}

// singleRow has a center seat (id 3) straight in front of the focal point at (0, 0, 10).
func singleRow() Geometry {
	return Geometry{
		Rows:        []int{5},
		FocalPoint:  V(0, 0, 0),
		BaseRadius:  10,
		AngularSpan: math.Pi / 2,
	}
}

func mustGenerate(t *testing.T, g Geometry) Layout {
	t.Helper()
	l, err := Generate(g)
	require.NoError(t, err)
	return l
}

func TestGenerateCounts(t *testing.T) {
	assert := assert.New(t)

	l := mustGenerate(t, theater())
	assert.Equal(60, l.Len())
	assert.Equal(5, l.Rows())

	seen := map[[2]int]bool{}
	for i, s := range l.Seats() {
		assert.Equal(i+1, s.ID, "ids are contiguous in row-major order")
		key := [2]int{s.Row, s.Number}
		assert.False(seen[key], "duplicate seat %s", s.Label())
		seen[key] = true
	}

	perRow := map[int]int{}
	for _, s := range l.Seats() {
		perRow[s.Row]++
	}
	for r, count := range theater().Rows {
		assert.Equal(count, perRow[r+1], "row %d", r+1)
	}
}

func TestArcAngles(t *testing.T) {
	tests := []struct {
		name  string
		span  float64
		count int
	}{
		{"two_seats", math.Pi / 2, 2},
		{"five_seats", math.Pi / 2, 5},
		{"stock_front_row", Radians(150), 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			angles := arcAngles(tc.span, tc.count)
			require.Len(t, angles, tc.count)

			assert.InDelta(-tc.span/2, angles[0], 1e-12)
			assert.InDelta(tc.span/2, angles[len(angles)-1], 1e-12)
			step := tc.span / float64(tc.count-1)
			for i := 1; i < len(angles); i++ {
				assert.InDelta(step, angles[i]-angles[i-1], 1e-12)
			}
			// symmetric about the forward axis
			for i := range angles {
				assert.InDelta(-angles[i], angles[len(angles)-1-i], 1e-12)
			}
		})
	}
}

func TestArcAnglesFullCircle(t *testing.T) {
	for _, span := range []float64{2 * math.Pi, Radians(360)} {
		assert := assert.New(t)
		angles := arcAngles(span, 8)
		require.Len(t, angles, 8)

		step := span / 8
		assert.InDelta(-span/2, angles[0], 1e-12)
		assert.InDelta(span/2-step, angles[7], 1e-12)
		for i := 1; i < len(angles); i++ {
			assert.InDelta(step, angles[i]-angles[i-1], 1e-12)
		}
		// the gap from the last seat back round to the first matches the others
		assert.InDelta(step, angles[0]+span-angles[7], 1e-12)
	}
}

func TestFullCircleSeatsDistinct(t *testing.T) {
	g := singleRow()
	g.Rows = []int{4, 6}
	g.RadiusIncrement = 2
	g.AngularSpan = Radians(360)
	l := mustGenerate(t, g)

	seats := l.Seats()
	for i := range seats {
		for j := i + 1; j < len(seats); j++ {
			d := seats[i].Position.Sub(seats[j].Position).Length()
			assert.Greater(t, d, 0.5, "seats %s and %s overlap", seats[i].Label(), seats[j].Label())
		}
	}
}

func TestSeatPositions(t *testing.T) {
	assert := assert.New(t)

	g := theater()
	l := mustGenerate(t, g)
	for _, s := range l.Seats() {
		radius := g.BaseRadius + float64(s.Row-1)*g.RadiusIncrement
		height := g.BaseHeight + float64(s.Row-1)*g.HeightIncrement
		assert.InDelta(radius, planarDistance(g.FocalPoint, s.Position), 1e-9, "seat %s", s.Label())
		assert.InDelta(g.FocalPoint.Y+height, s.Position.Y, 1e-12, "seat %s", s.Label())
	}

	center := mustGenerate(t, singleRow())
	s, ok := center.Seat(3)
	require.True(t, ok)
	assert.InDelta(0, s.Position.X, 1e-12)
	assert.InDelta(10, s.Position.Z, 1e-12)
	assert.InDelta(math.Pi, s.Facing, 1e-12)
}

func TestSeatsFaceFocalPoint(t *testing.T) {
	g := theater()
	l := mustGenerate(t, g)
	for _, s := range l.Seats() {
		toFocal := g.FocalPoint.Sub(s.Position)
		assert.InDelta(t, 0, angleBetween(heading(toFocal), s.Facing), 1e-9, "seat %s", s.Label())
		assert.True(t, s.Facing > -math.Pi && s.Facing <= math.Pi)
	}
}

func TestGenerateRejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(g *Geometry)
		field  string
	}{
		{"no_rows", func(g *Geometry) { g.Rows = nil }, "rows"},
		{"single_seat_row", func(g *Geometry) { g.Rows = []int{6, 1} }, "rows[1]"},
		{"zero_radius", func(g *Geometry) { g.BaseRadius = 0 }, "base_radius"},
		{"infinite_radius", func(g *Geometry) { g.BaseRadius = math.Inf(1) }, "base_radius"},
		{"negative_radius_increment", func(g *Geometry) { g.RadiusIncrement = -1 }, "radius_increment"},
		{"nan_radius_increment", func(g *Geometry) { g.RadiusIncrement = math.NaN() }, "radius_increment"},
		{"infinite_radius_increment", func(g *Geometry) { g.RadiusIncrement = math.Inf(1) }, "radius_increment"},
		{"nan_base_height", func(g *Geometry) { g.BaseHeight = math.NaN() }, "base_height"},
		{"infinite_base_height", func(g *Geometry) { g.BaseHeight = math.Inf(-1) }, "base_height"},
		{"negative_height_increment", func(g *Geometry) { g.HeightIncrement = -0.1 }, "height_increment"},
		{"nan_height_increment", func(g *Geometry) { g.HeightIncrement = math.NaN() }, "height_increment"},
		{"infinite_height_increment", func(g *Geometry) { g.HeightIncrement = math.Inf(1) }, "height_increment"},
		{"zero_span", func(g *Geometry) { g.AngularSpan = 0 }, "angular_span"},
		{"nan_span", func(g *Geometry) { g.AngularSpan = math.NaN() }, "angular_span"},
		{"span_over_full_circle", func(g *Geometry) { g.AngularSpan = 7 }, "angular_span"},
		{"nan_focal_point", func(g *Geometry) { g.FocalPoint.Z = math.NaN() }, "focal_point"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := theater()
			tc.modify(&g)
			_, err := Generate(g)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tc.field, cfgErr.Field)
			assert.Contains(t, err.Error(), "invalid venue configuration")
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	g := Geometry{Rows: []int{1}, AngularSpan: -1}
	err := g.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows[0]")
	assert.Contains(t, err.Error(), "base_radius")
	assert.Contains(t, err.Error(), "angular_span")
}

func TestLayoutLookup(t *testing.T) {
	assert := assert.New(t)
	l := mustGenerate(t, theater())

	s, ok := l.At(2, 1)
	require.True(t, ok)
	assert.Equal(7, s.ID)
	assert.Equal("2-1", s.Label())

	byID, ok := l.Seat(7)
	require.True(t, ok)
	assert.Equal(s, byID)

	_, ok = l.Seat(0)
	assert.False(ok)
	_, ok = l.Seat(61)
	assert.False(ok)
	_, ok = l.At(1, 7)
	assert.False(ok)
	_, ok = l.At(6, 1)
	assert.False(ok)

	assert.Nil(l.Angles(0))
	assert.Len(l.Angles(5), 18)

	others := l.Without(7)
	assert.Len(others, 59)
	for _, o := range others {
		assert.NotEqual(7, o.ID)
	}

	// callers cannot modify the catalog
	seats := l.Seats()
	seats[0].ID = 999
	first, _ := l.Seat(1)
	assert.Equal(1, first.ID)
}
