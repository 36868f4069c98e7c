// Package playback connects session gains to a beep audio pipeline.
package playback

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

// GainStreamer scales a streamer by the latest gain handed to SetGain.
//
// SetGain is called from the session tick while Stream runs on the audio goroutine. A gain change is
// ramped linearly across the next block so steps do not click.
type GainStreamer struct {
	s beep.Streamer

	mu      sync.Mutex
	target  float64
	applied float64
}

func NewGainStreamer(s beep.Streamer, gain float64) *GainStreamer {
	return &GainStreamer{s: s, target: gain, applied: gain}
}

// SetGain implements venue.Sink.
func (g *GainStreamer) SetGain(gain float64) {
	g.mu.Lock()
	g.target = gain
	g.mu.Unlock()
}

// Gain returns the gain the next block will end at.
func (g *GainStreamer) Gain() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.target
}

func (g *GainStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.s.Stream(samples)

	g.mu.Lock()
	from, to := g.applied, g.target
	g.applied = to
	g.mu.Unlock()

	for i := range samples[:n] {
		gain := to
		if from != to {
			gain = from + (to-from)*float64(i+1)/float64(n)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
	}
	return n, ok
}

func (g *GainStreamer) Err() error {
	return g.s.Err()
}
