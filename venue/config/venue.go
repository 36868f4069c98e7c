package config

import (
	"fmt"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-virtual-venue/venue"
)

// Default returns the stock five-row venue.
func Default() *VenueConfig {
	return &VenueConfig{
		Venue: Venue{
			Rows:            []int{6, 9, 12, 15, 18},
			FocalPoint:      [3]float64{0, 0, -12},
			BaseRadius:      8,
			RadiusIncrement: 2.5,
			BaseHeight:      0.2,
			HeightIncrement: 0.32,
			AngularSpanDeg:  150,
		},
		Source: Source{
			Position: [3]float64{0, 0, -12},
			Height:   4,
		},
		Orientation: Orientation{
			Sensitivity: venue.DefaultSensitivity,
			Smoothing:   venue.DefaultSmoothing,
			YawLimitDeg: 135,
			PitchMinDeg: -72,
			PitchMaxDeg: 60,
			EyeHeight:   venue.DefaultEyeHeight,
		},
		Attenuation: Attenuation{
			MinDistance:    6,
			MaxDistance:    20,
			Floor:          0.15,
			AngleBudgetDeg: 150,
			MenuGain:       0.2,
		},
		Session: Session{
			TickHz: venue.DefaultTickRate,
		},
	}
}

func point(a [3]float64) pt.Vector {
	return venue.V(a[0], a[1], a[2])
}

// Geometry converts the venue section.
func (c *VenueConfig) Geometry() venue.Geometry {
	v := c.Venue
	return venue.Geometry{
		Rows:            append([]int(nil), v.Rows...),
		FocalPoint:      point(v.FocalPoint),
		BaseRadius:      v.BaseRadius,
		RadiusIncrement: v.RadiusIncrement,
		BaseHeight:      v.BaseHeight,
		HeightIncrement: v.HeightIncrement,
		AngularSpan:     venue.Radians(v.AngularSpanDeg),
	}
}

func (c *VenueConfig) BroadcastSource() venue.Source {
	return venue.Source{
		Position: point(c.Source.Position),
		Height:   c.Source.Height,
	}
}

func (c *VenueConfig) ControllerParams() venue.ControllerParams {
	o := c.Orientation
	yaw := venue.Radians(o.YawLimitDeg)
	return venue.ControllerParams{
		Sensitivity: o.Sensitivity,
		Smoothing:   o.Smoothing,
		Limits: venue.Limits{
			MinYaw:   -yaw,
			MaxYaw:   yaw,
			MinPitch: venue.Radians(o.PitchMinDeg),
			MaxPitch: venue.Radians(o.PitchMaxDeg),
		},
		EyeHeight: o.EyeHeight,
	}
}

func (c *VenueConfig) AttenuationParams() venue.AttenuationParams {
	a := c.Attenuation
	p := venue.AttenuationParams{
		MinDistance: a.MinDistance,
		MaxDistance: a.MaxDistance,
		Floor:       a.Floor,
		AngleBudget: venue.Radians(a.AngleBudgetDeg),
		MenuGain:    a.MenuGain,
	}
	if len(a.AngleCurve) > 0 {
		p.AngleCurve = make(map[float64]float64, len(a.AngleCurve))
		for deg, gain := range a.AngleCurve {
			p.AngleCurve[venue.Radians(deg)] = gain
		}
	}
	return p
}

// Model builds the attenuation model.
func (c *VenueConfig) Model() (venue.Model, error) {
	m, err := venue.NewModel(c.AttenuationParams())
	if err != nil {
		return venue.Model{}, fmt.Errorf("building attenuation model: %w", err)
	}
	return m, nil
}

// SpeakerList returns the inline speakers in file order. Merge from_file first to include those.
func (c *VenueConfig) SpeakerList() []venue.Speaker {
	out := make([]venue.Speaker, 0, len(c.Speakers.Inline))
	for _, s := range c.Speakers.Inline {
		out = append(out, venue.Speaker{
			ID:       s.ID,
			Name:     s.Name,
			Position: point(s.Position),
			Volume:   s.Volume,
			Speaking: s.Speaking,
		})
	}
	return out
}

// Build generates the layout and assembles a session from the whole configuration.
// Extra options are applied after the configured ones.
func (c *VenueConfig) Build(opts ...venue.SessionOption) (*venue.Session, error) {
	layout, err := venue.Generate(c.Geometry())
	if err != nil {
		return nil, err
	}
	model, err := c.Model()
	if err != nil {
		return nil, err
	}

	speakers := venue.NewSpeakerRegistry()
	for _, s := range c.SpeakerList() {
		if _, err := speakers.Join(s); err != nil {
			return nil, fmt.Errorf("adding configured speaker: %w", err)
		}
	}

	base := []venue.SessionOption{
		venue.WithModel(model),
		venue.WithControllerParams(c.ControllerParams()),
		venue.WithSpeakers(speakers),
	}
	session := venue.NewSession(layout, c.BroadcastSource(), append(base, opts...)...)

	if c.Session.InitialSeat != 0 {
		if _, err := session.SelectSeat(c.Session.InitialSeat); err != nil {
			return nil, fmt.Errorf("initial seat: %w", err)
		}
	}
	return session, nil
}
