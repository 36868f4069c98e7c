package venue

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Geometry describes a venue built from concentric arcs of seats around a focal point.
type Geometry struct {
	// Seat count of every arc, front row first
	Rows []int
	// Every arc is centered on this point and every seat faces it
	FocalPoint pt.Vector
	// Radius of the front row, in meters
	BaseRadius float64
	// Added to the radius for every row behind the front row
	RadiusIncrement float64
	// Height of the front row relative to the focal point
	BaseHeight float64
	// Added to the height for every row behind the front row
	HeightIncrement float64
	// Angle swept by every arc, in radians, centered on the forward axis
	AngularSpan float64
}

// Validate reports every problem with g. The result wraps one *ConfigurationError per problem.
func (g Geometry) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, &ConfigurationError{Field: field, Message: msg})
	}

	if len(g.Rows) == 0 {
		add("rows", "at least one row is required")
	}
	for i, count := range g.Rows {
		if count < 2 {
			add(fmt.Sprintf("rows[%d]", i), fmt.Sprintf("needs at least 2 seats, got %d", count))
		}
	}
	if !(g.BaseRadius > 0) || math.IsInf(g.BaseRadius, 0) {
		add("base_radius", "must be positive and finite")
	}
	if !(g.RadiusIncrement >= 0) || math.IsInf(g.RadiusIncrement, 0) {
		add("radius_increment", "must be non-negative and finite")
	}
	if !finite(g.BaseHeight) {
		add("base_height", "must be finite")
	}
	if !(g.HeightIncrement >= 0) || math.IsInf(g.HeightIncrement, 0) {
		add("height_increment", "must be non-negative and finite")
	}
	if !(g.AngularSpan > 0 && g.AngularSpan <= 2*math.Pi+fullCircleTolerance) {
		add("angular_span", "must be within (0, 2π]")
	}
	if !finite(g.FocalPoint.X) || !finite(g.FocalPoint.Y) || !finite(g.FocalPoint.Z) {
		add("focal_point", "must be finite")
	}
	return errors.Join(errs...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Seat is one generated seat. Seats never change after generation.
type Seat struct {
	// Unique within the venue, starting at 1
	ID int
	// 1-based row, front row first
	Row int
	// 1-based position within the row, left to right when facing the focal point
	Number int
	Position pt.Vector
	// Rotation about the vertical axis that turns the seat towards the focal point
	Facing float64
}

// Label is the human readable "row-number" name of the seat.
func (s Seat) Label() string {
	return fmt.Sprintf("%d-%d", s.Row, s.Number)
}

// Layout is the seat catalog of a venue.
type Layout struct {
	Geometry Geometry
	seats    []Seat
	rowStart []int
}

// Generate places every seat described by g.
func Generate(g Geometry) (Layout, error) {
	if err := g.Validate(); err != nil {
		return Layout{}, err
	}

	l := Layout{
		Geometry: g,
		rowStart: make([]int, len(g.Rows)),
	}
	total := 0
	for _, count := range g.Rows {
		total += count
	}
	l.seats = make([]Seat, 0, total)

	for r, count := range g.Rows {
		l.rowStart[r] = len(l.seats)
		radius := g.BaseRadius + float64(r)*g.RadiusIncrement
		height := g.BaseHeight + float64(r)*g.HeightIncrement
		for i, angle := range arcAngles(g.AngularSpan, count) {
			pos := g.FocalPoint.Add(V(math.Sin(angle)*radius, height, math.Cos(angle)*radius))
			l.seats = append(l.seats, Seat{
				ID:       len(l.seats) + 1,
				Row:      r + 1,
				Number:   i + 1,
				Position: pos,
				Facing:   wrapAngle(heading(g.FocalPoint.Sub(pos))),
			})
		}
	}
	return l, nil
}

// Spans this close to 2π are a full circle.
const fullCircleTolerance = 1e-9

// arcAngles spreads count seats evenly over the span, centred on the forward axis. An arc puts the
// first and last seat on its ends. A full circle would put both on the same spot, so there the
// seats get span/count apart instead.
func arcAngles(span float64, count int) []float64 {
	start := -span / 2
	step := span / float64(count-1)
	if span >= 2*math.Pi-fullCircleTolerance {
		step = span / float64(count)
	}
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = start + float64(i)*step
	}
	return angles
}

// Angles returns the arc angle of every seat in the 1-based row.
func (l Layout) Angles(row int) []float64 {
	if row < 1 || row > len(l.Geometry.Rows) {
		return nil
	}
	return arcAngles(l.Geometry.AngularSpan, l.Geometry.Rows[row-1])
}

func (l Layout) Len() int {
	return len(l.seats)
}

// Rows is the number of arcs.
func (l Layout) Rows() int {
	return len(l.rowStart)
}

// Seats returns a copy of the catalog in row-major order.
func (l Layout) Seats() []Seat {
	out := make([]Seat, len(l.seats))
	copy(out, l.seats)
	return out
}

func (l Layout) Seat(id int) (Seat, bool) {
	if id < 1 || id > len(l.seats) {
		return Seat{}, false
	}
	return l.seats[id-1], true
}

// At finds a seat by its 1-based row and number.
func (l Layout) At(row, number int) (Seat, bool) {
	if row < 1 || row > len(l.rowStart) {
		return Seat{}, false
	}
	if number < 1 || number > l.Geometry.Rows[row-1] {
		return Seat{}, false
	}
	return l.seats[l.rowStart[row-1]+number-1], true
}

// Without returns every seat except id. This is the set a renderer draws around the viewer.
func (l Layout) Without(id int) []Seat {
	out := make([]Seat, 0, len(l.seats))
	for _, s := range l.seats {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}
