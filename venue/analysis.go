package venue

import (
	"fmt"
)

// SweepPoint is the gain heard at one yaw offset from the anchor baseline.
type SweepPoint struct {
	YawOffset float64
	Gain      float64
}

// Sweep turns the head across the full yaw range of limits and records the gain at every step.
// Pitch stays at the baseline.
func Sweep(a Anchor, src Source, m Model, limits Limits, steps int) ([]SweepPoint, error) {
	if steps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", steps)
	}
	points := make([]SweepPoint, steps)
	span := limits.MaxYaw - limits.MinYaw
	for i := range points {
		offset := limits.MinYaw + span*float64(i)/float64(steps-1)
		points[i] = SweepPoint{
			YawOffset: offset,
			Gain:      m.Gain(a.Position, a.Baseline.Yaw+offset, src, false),
		}
	}
	return points, nil
}

// SweepSummary condenses a sweep.
type SweepSummary struct {
	Min, Max, Mean float64
	// Yaw offset with the highest gain
	Best float64
}

func Summarize(points []SweepPoint) SweepSummary {
	if len(points) == 0 {
		return SweepSummary{}
	}
	s := SweepSummary{Min: points[0].Gain, Max: points[0].Gain, Best: points[0].YawOffset}
	total := 0.0
	for _, p := range points {
		total += p.Gain
		if p.Gain < s.Min {
			s.Min = p.Gain
		}
		if p.Gain > s.Max {
			s.Max = p.Gain
			s.Best = p.YawOffset
		}
	}
	s.Mean = total / float64(len(points))
	return s
}

// BaselineGains returns the gain every seat hears while looking at the focal point.
func BaselineGains(l Layout, src Source, m Model, eyeHeight float64) map[int]float64 {
	gains := make(map[int]float64, l.Len())
	for _, seat := range l.seats {
		a := NewAnchor(seat, l.Geometry.FocalPoint, eyeHeight)
		gains[seat.ID] = m.Gain(a.Position, a.Baseline.Yaw, src, false)
	}
	return gains
}
