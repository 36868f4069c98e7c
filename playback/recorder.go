package playback

import (
	"sync"
)

// Recorder is a sink that keeps every gain it receives. It stands in for an audio device in headless runs.
type Recorder struct {
	mu    sync.Mutex
	gains []float64
}

func (r *Recorder) SetGain(gain float64) {
	r.mu.Lock()
	r.gains = append(r.gains, gain)
	r.mu.Unlock()
}

// Gains returns a copy of everything recorded so far.
func (r *Recorder) Gains() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.gains...)
}

// Last returns the most recent gain, or 0 before the first one.
func (r *Recorder) Last() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.gains) == 0 {
		return 0
	}
	return r.gains[len(r.gains)-1]
}
