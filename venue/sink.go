package venue

// Sink receives the gain computed every tick, typically a playback device.
type Sink interface {
	SetGain(gain float64)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(gain float64)

func (f SinkFunc) SetGain(gain float64) {
	f(gain)
}

type discard struct{}

func (discard) SetGain(float64) {}

// Discard ignores every gain.
var Discard Sink = discard{}
