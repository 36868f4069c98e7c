package venue

import (
	"fmt"
	"sort"

	"github.com/fogleman/pt/pt"
	"github.com/google/uuid"
)

// Speaker is another participant whose voice is positioned in the venue.
type Speaker struct {
	// Stable identifier. Join assigns a UUID when empty.
	ID       string
	Name     string
	Position pt.Vector
	// Linear volume in [0, 1], applied on top of the attenuation gain
	Volume   float64
	Speaking bool
	Sink     Sink
}

// SpeakerRegistry owns every joined speaker, keyed by id.
type SpeakerRegistry struct {
	speakers map[string]*Speaker
}

func NewSpeakerRegistry() *SpeakerRegistry {
	return &SpeakerRegistry{speakers: map[string]*Speaker{}}
}

// Join adds s and returns its id.
func (r *SpeakerRegistry) Join(s Speaker) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if _, ok := r.speakers[s.ID]; ok {
		return "", fmt.Errorf("joining %q: %w", s.ID, ErrDuplicateSpeaker)
	}
	if s.Sink == nil {
		s.Sink = Discard
	}
	s.Volume = clamp(s.Volume, 0, 1)
	r.speakers[s.ID] = &s
	return s.ID, nil
}

// Leave removes a speaker and mutes its sink. It reports whether the speaker was present.
func (r *SpeakerRegistry) Leave(id string) bool {
	s, ok := r.speakers[id]
	if !ok {
		return false
	}
	s.Sink.SetGain(0)
	delete(r.speakers, id)
	return true
}

func (r *SpeakerRegistry) SetSpeaking(id string, speaking bool) bool {
	s, ok := r.speakers[id]
	if !ok {
		return false
	}
	s.Speaking = speaking
	return true
}

func (r *SpeakerRegistry) Get(id string) (Speaker, bool) {
	s, ok := r.speakers[id]
	if !ok {
		return Speaker{}, false
	}
	return *s, true
}

// IDs returns every joined id in sorted order.
func (r *SpeakerRegistry) IDs() []string {
	ids := make([]string, 0, len(r.speakers))
	for id := range r.speakers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *SpeakerRegistry) Len() int {
	return len(r.speakers)
}

// Apply pushes the gain of every speaker for a listener at viewer facing yaw.
// Silent speakers get zero.
func (r *SpeakerRegistry) Apply(viewer pt.Vector, yaw float64, m Model, menuOpen bool) map[string]float64 {
	gains := make(map[string]float64, len(r.speakers))
	for id, s := range r.speakers {
		gain := 0.0
		if s.Speaking {
			gain = m.Gain(viewer, yaw, Source{Position: s.Position}, menuOpen) * s.Volume
		}
		s.Sink.SetGain(gain)
		gains[id] = gain
	}
	return gains
}
