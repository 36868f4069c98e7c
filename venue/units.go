package venue

import (
	"math"
)

// Degrees converts radians to degrees for logging/display.
func Degrees(radians float64) float64 {
	return radians * 180.0 / math.Pi
}

// Radians converts degrees to radians.
func Radians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

// ToDB converts a linear gain to decibels. A gain of zero maps to -Inf.
func ToDB(gain float64) float64 {
	return 20 * math.Log10(gain)
}

// FromDB converts decibels to a linear gain.
func FromDB(gainDB float64) float64 {
	return math.Pow(10, gainDB/20)
}
