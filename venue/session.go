package venue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fogleman/pt/pt"

	"github.com/jdginn/go-virtual-venue/internal/log"
)

// Default frame rate of Session.Run
const DefaultTickRate = 60.0

// Frame is the state emitted by one tick.
type Frame struct {
	Seat   Seat
	Seated bool
	// Incremented on every actual seat change
	Generation  uint64
	Position    pt.Vector
	Orientation Orientation
	Engaged     bool
	MenuOpen    bool
	Gain        float64
	// Gain pushed to every joined speaker, keyed by speaker id
	Speakers map[string]float64
}

// Session is one viewer sitting in a venue.
//
// A session is driven by Tick from a single goroutine. Host input reaches it through the InputAdapter,
// which may be fed from any goroutine.
type Session struct {
	layout     Layout
	source     Source
	model      Model
	controller *Controller
	input      *InputAdapter
	speakers   *SpeakerRegistry
	sink       Sink
	log        *slog.Logger

	seat       Seat
	seated     bool
	generation uint64
	menuOpen   bool
	gain       float64
	lastSpeak  map[string]float64
}

type SessionOption func(*Session)

// WithSink sets where the broadcast gain is pushed every tick.
func WithSink(sink Sink) SessionOption {
	return func(s *Session) {
		s.sink = sink
	}
}

func WithModel(m Model) SessionOption {
	return func(s *Session) {
		s.model = m
	}
}

func WithControllerParams(p ControllerParams) SessionOption {
	return func(s *Session) {
		s.controller = NewController(p)
	}
}

func WithInput(a *InputAdapter) SessionOption {
	return func(s *Session) {
		s.input = a
	}
}

func WithSpeakers(r *SpeakerRegistry) SessionOption {
	return func(s *Session) {
		s.speakers = r
	}
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

func NewSession(layout Layout, source Source, opts ...SessionOption) *Session {
	s := &Session{
		layout:     layout,
		source:     source,
		model:      DefaultModel(),
		controller: NewController(DefaultControllerParams()),
		input:      NewInputAdapter(),
		speakers:   NewSpeakerRegistry(),
		sink:       Discard,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.With("component", "session")
	}
	return s
}

func (s *Session) Layout() Layout {
	return s.layout
}

func (s *Session) Source() Source {
	return s.source
}

func (s *Session) Input() *InputAdapter {
	return s.input
}

func (s *Session) Speakers() *SpeakerRegistry {
	return s.speakers
}

func (s *Session) Controller() *Controller {
	return s.controller
}

// SelectSeat moves the viewer to seat id and re-anchors the head orientation.
// Selecting the current seat again does nothing. It reports whether the seat changed.
func (s *Session) SelectSeat(id int) (bool, error) {
	seat, ok := s.layout.Seat(id)
	if !ok {
		return false, fmt.Errorf("selecting seat %d: %w", id, ErrUnknownSeat)
	}
	if s.seated && s.seat.ID == id {
		return false, nil
	}

	s.seat = seat
	s.seated = true
	s.generation++
	anchor := NewAnchor(seat, s.layout.Geometry.FocalPoint, s.controller.Params().EyeHeight)
	s.controller.Anchor(anchor)

	s.log.Debug("re-anchored",
		"seat", seat.Label(),
		"generation", s.generation,
		"yaw_deg", Degrees(anchor.Baseline.Yaw),
		"pitch_deg", Degrees(anchor.Baseline.Pitch),
	)
	return true, nil
}

func (s *Session) Seat() (Seat, bool) {
	return s.seat, s.seated
}

// SetMenuOpen pins the gain to the menu gain while open.
func (s *Session) SetMenuOpen(open bool) {
	if s.menuOpen != open {
		s.log.Debug("menu", "open", open)
	}
	s.menuOpen = open
}

func (s *Session) MenuOpen() bool {
	return s.menuOpen
}

// Gain returns the gain computed by the last tick.
func (s *Session) Gain() float64 {
	return s.gain
}

func (s *Session) apply(e Event) {
	switch e.Kind {
	case PointerMoved:
		s.controller.PointerMoved(e.DX, e.DY)
	case Engage:
		if !s.controller.Engaged() {
			s.log.Debug("input engaged")
		}
		s.controller.Engage()
	case Disengage:
		if s.controller.Engaged() {
			s.log.Debug("input disengaged")
		}
		s.controller.Disengage()
	}
}

// Tick applies queued input, advances smoothing, then recomputes and pushes the gain.
func (s *Session) Tick() Frame {
	s.input.Drain(s.apply)
	orientation := s.controller.Update()

	var pos pt.Vector
	if a, ok := s.controller.CurrentAnchor(); ok {
		pos = a.Position
	}

	switch {
	case s.seated:
		s.gain = s.model.Gain(pos, orientation.Yaw, s.source, s.menuOpen)
	case s.menuOpen:
		s.gain = s.model.Params().MenuGain
	default:
		// nobody is seated yet
		s.gain = 0
	}
	s.sink.SetGain(s.gain)

	if s.seated {
		s.lastSpeak = s.speakers.Apply(pos, orientation.Yaw, s.model, s.menuOpen)
	}

	return Frame{
		Seat:        s.seat,
		Seated:      s.seated,
		Generation:  s.generation,
		Position:    pos,
		Orientation: orientation,
		Engaged:     s.controller.Engaged(),
		MenuOpen:    s.menuOpen,
		Gain:        s.gain,
		Speakers:    s.lastSpeak,
	}
}

// Run ticks at hz until ctx is done, handing every frame to onFrame.
// Seat and menu changes must happen from onFrame while Run is active.
func (s *Session) Run(ctx context.Context, hz float64, onFrame func(Frame)) error {
	if !(hz > 0) {
		return fmt.Errorf("tick rate must be positive, got %v", hz)
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("session stopped", "coalesced_deltas", s.input.Coalesced())
			return nil
		case <-ticker.C:
			f := s.Tick()
			if onFrame != nil {
				onFrame(f)
			}
		}
	}
}
