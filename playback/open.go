package playback

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// Open decodes a WAV or MP3 file, chosen by extension. The caller closes the streamer.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("opening audio: %w", err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, format, err = wav.Decode(f)
	case ".mp3":
		s, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio format %q", ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decoding %s: %w", path, err)
	}
	return s, format, nil
}

// Player plays one file on the default audio device at the gain of the session.
type Player struct {
	*GainStreamer
	source beep.StreamSeekCloser
	format beep.Format
}

// Start opens path, initialises the audio device at its sample rate and starts playing at gain.
func Start(path string, gain float64) (*Player, error) {
	s, format, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/30)); err != nil {
		s.Close()
		return nil, fmt.Errorf("initialising audio device: %w", err)
	}

	p := &Player{
		GainStreamer: NewGainStreamer(s, gain),
		source:       s,
		format:       format,
	}
	speaker.Play(p.GainStreamer)
	return p, nil
}

func (p *Player) Format() beep.Format {
	return p.format
}

// Position is how far playback has got.
func (p *Player) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.source.Position())
}

// Close stops playback and releases the file.
func (p *Player) Close() error {
	speaker.Clear()
	return p.source.Close()
}
