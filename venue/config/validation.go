package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Validation helper functions
// YAML accepts .nan and .inf, so every number is checked for finiteness as well.
func validateFinite(field string, value float64) []ValidationError {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be finite",
		}}
	}
	return nil
}

func validatePositive(field string, value float64) []ValidationError {
	if !(value > 0) || math.IsInf(value, 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be positive and finite",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if !(value >= 0) || math.IsInf(value, 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative and finite",
		}}
	}
	return nil
}

func validateInRange(field string, value, min, max float64) []ValidationError {
	if !(value >= min && value <= max) {
		return []ValidationError{{
			Field:   field,
			Message: fmt.Sprintf("must be between %v and %v", min, max),
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors groups errors by section for display
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Validation Errors:\n")

	categories := map[string][]ValidationError{}
	for _, err := range errs {
		category := strings.Split(err.Field, ".")[0]
		categories[category] = append(categories[category], err)
	}
	names := make([]string, 0, len(categories))
	for category := range categories {
		names = append(names, category)
	}
	sort.Strings(names)

	for _, category := range names {
		b.WriteString(fmt.Sprintf("\n%s:\n", strings.ToUpper(category)))
		for _, err := range categories[category] {
			field := strings.TrimPrefix(err.Field, category+".")
			if field == category {
				field = "general"
			}
			b.WriteString(fmt.Sprintf("  - %s: %s\n", field, err.Message))
		}
	}

	return b.String()
}

// Validate performs validation on the entire configuration
func (c *VenueConfig) Validate() []ValidationError {
	var errors []ValidationError
	errors = append(errors, c.Venue.Validate()...)
	errors = append(errors, c.Source.Validate()...)
	errors = append(errors, c.Orientation.Validate()...)
	errors = append(errors, c.Attenuation.Validate()...)
	errors = append(errors, c.Session.Validate(c.Venue)...)
	errors = append(errors, c.Speakers.Validate()...)
	return errors
}

func (v *Venue) Validate() []ValidationError {
	var errors []ValidationError

	if len(v.Rows) == 0 {
		errors = append(errors, ValidationError{
			Field:   "venue.rows",
			Message: "at least one row is required",
		})
	}
	for i, count := range v.Rows {
		if count < 2 {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("venue.rows[%d]", i),
				Message: fmt.Sprintf("needs at least 2 seats, got %d", count),
			})
		}
	}
	for i, c := range v.FocalPoint {
		errors = append(errors, validateFinite(fmt.Sprintf("venue.focal_point[%d]", i), c)...)
	}
	errors = append(errors, validatePositive("venue.base_radius", v.BaseRadius)...)
	errors = append(errors, validateNonNegative("venue.radius_increment", v.RadiusIncrement)...)
	errors = append(errors, validateFinite("venue.base_height", v.BaseHeight)...)
	errors = append(errors, validateNonNegative("venue.height_increment", v.HeightIncrement)...)
	errors = append(errors, validatePositive("venue.angular_span_deg", v.AngularSpanDeg)...)
	errors = append(errors, validateInRange("venue.angular_span_deg", v.AngularSpanDeg, 0, 360)...)

	return errors
}

func (s *Source) Validate() []ValidationError {
	var errors []ValidationError
	for i, c := range s.Position {
		errors = append(errors, validateFinite(fmt.Sprintf("source.position[%d]", i), c)...)
	}
	return append(errors, validateNonNegative("source.height", s.Height)...)
}

func (o *Orientation) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("orientation.sensitivity", o.Sensitivity)...)
	errors = append(errors, validateInRange("orientation.smoothing", o.Smoothing, 0, 1)...)
	errors = append(errors, validatePositive("orientation.smoothing", o.Smoothing)...)
	errors = append(errors, validateInRange("orientation.yaw_limit_deg", o.YawLimitDeg, 0, 180)...)
	errors = append(errors, validateInRange("orientation.pitch_min_deg", o.PitchMinDeg, -90, 0)...)
	errors = append(errors, validateInRange("orientation.pitch_max_deg", o.PitchMaxDeg, 0, 90)...)
	errors = append(errors, validateNonNegative("orientation.eye_height", o.EyeHeight)...)

	return errors
}

func (a *Attenuation) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, validateNonNegative("attenuation.min_distance", a.MinDistance)...)
	if !(a.MaxDistance > a.MinDistance) {
		errors = append(errors, ValidationError{
			Field:   "attenuation.max_distance",
			Message: "must exceed min_distance",
		})
	}
	errors = append(errors, validateInRange("attenuation.floor", a.Floor, 0, 1)...)
	errors = append(errors, validatePositive("attenuation.angle_budget_deg", a.AngleBudgetDeg)...)
	errors = append(errors, validateInRange("attenuation.menu_gain", a.MenuGain, 0, 1)...)

	if len(a.AngleCurve) == 1 {
		errors = append(errors, ValidationError{
			Field:   "attenuation.angle_curve",
			Message: "needs at least 2 points",
		})
	}
	for angle, gain := range a.AngleCurve {
		errors = append(errors, validateInRange("attenuation.angle_curve", angle, 0, 180)...)
		errors = append(errors, validateInRange(fmt.Sprintf("attenuation.angle_curve.%v", angle), gain, 0, 1)...)
	}

	return errors
}

func (s *Session) Validate(v Venue) []ValidationError {
	var errors []ValidationError

	errors = append(errors, validatePositive("session.tick_hz", s.TickHz)...)

	total := 0
	for _, count := range v.Rows {
		total += count
	}
	if s.InitialSeat < 0 || s.InitialSeat > total {
		errors = append(errors, ValidationError{
			Field:   "session.initial_seat",
			Message: fmt.Sprintf("must be between 1 and %d, or 0 for none", total),
		})
	}

	return errors
}

func (s *Speakers) Validate() []ValidationError {
	var errors []ValidationError

	seen := map[string]bool{}
	for i, speaker := range s.Inline {
		errors = append(errors, validateInRange(fmt.Sprintf("speakers.inline[%d].volume", i), speaker.Volume, 0, 1)...)
		if speaker.ID == "" {
			continue
		}
		if seen[speaker.ID] {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("speakers.inline[%d].id", i),
				Message: fmt.Sprintf("duplicate id '%s'", speaker.ID),
			})
		}
		seen[speaker.ID] = true
	}

	return errors
}
