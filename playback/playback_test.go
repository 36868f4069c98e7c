package playback

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdginn/go-virtual-venue/venue"
)

// ones streams n samples of full scale on both channels.
func ones(n int) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		count := min(len(samples), left)
		for i := range samples[:count] {
			samples[i] = [2]float64{1, 1}
		}
		left -= count
		return count, true
	})
}

func TestGainStreamerSteady(t *testing.T) {
	g := NewGainStreamer(ones(8), 0.5)
	buf := make([][2]float64, 8)
	n, ok := g.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 8, n)
	for _, s := range buf {
		assert.Equal(t, [2]float64{0.5, 0.5}, s)
	}
}

func TestGainStreamerRamps(t *testing.T) {
	assert := assert.New(t)
	g := NewGainStreamer(ones(8), 0)
	g.SetGain(1)
	assert.Equal(1.0, g.Gain())

	buf := make([][2]float64, 4)
	g.Stream(buf)
	assert.InDelta(0.25, buf[0][0], 1e-12)
	assert.InDelta(0.5, buf[1][1], 1e-12)
	assert.InDelta(1, buf[3][0], 1e-12)

	g.Stream(buf)
	for _, s := range buf {
		assert.Equal([2]float64{1, 1}, s)
	}

	n, ok := g.Stream(buf)
	assert.Equal(0, n)
	assert.False(ok)
	assert.NoError(g.Err())
}

func TestGainStreamerIsSink(t *testing.T) {
	var sink venue.Sink = NewGainStreamer(ones(1), 1)
	sink.SetGain(0.2)
	assert.Equal(t, 0.2, sink.(*GainStreamer).Gain())
}

func TestRecorder(t *testing.T) {
	assert := assert.New(t)
	r := &Recorder{}
	assert.Equal(0.0, r.Last())

	l, err := venue.Generate(venue.Geometry{Rows: []int{3}, BaseRadius: 5, AngularSpan: 1})
	require.NoError(t, err)
	s := venue.NewSession(l, venue.Source{}, venue.WithSink(r))
	s.SetMenuOpen(true)
	s.Tick()
	s.Tick()

	assert.Equal([]float64{0.2, 0.2}, r.Gains())
	assert.Equal(0.2, r.Last())
}

// writeWav writes a 16-bit stereo PCM file of constant samples.
func writeWav(t *testing.T, path string, frames int) {
	t.Helper()
	const (
		channels   = 2
		sampleRate = 8000
		bits       = 16
	)
	dataLen := frames * channels * bits / 8
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := func(v any) { require.NoError(t, binary.Write(f, binary.LittleEndian, v)) }
	f.WriteString("RIFF")
	w(uint32(36 + dataLen))
	f.WriteString("WAVEfmt ")
	w(uint32(16))
	w(uint16(1))
	w(uint16(channels))
	w(uint32(sampleRate))
	w(uint32(sampleRate * channels * bits / 8))
	w(uint16(channels * bits / 8))
	w(uint16(bits))
	f.WriteString("data")
	w(uint32(dataLen))
	for i := 0; i < frames*channels; i++ {
		w(int16(16384))
	}
}

func TestOpen(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "tone.wav")
	writeWav(t, path, 100)

	s, format, err := Open(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(beep.SampleRate(8000), format.SampleRate)
	assert.Equal(2, format.NumChannels)
	assert.Equal(100, s.Len())

	g := NewGainStreamer(s, 0.5)
	buf := make([][2]float64, 10)
	n, ok := g.Stream(buf)
	assert.True(ok)
	assert.Equal(10, n)
	assert.InDelta(0.25, buf[0][0], 1e-3)

	_, _, err = Open(filepath.Join(dir, "tone.flac"))
	assert.Error(err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tone.ogg"), nil, 0644))
	_, _, err = Open(filepath.Join(dir, "tone.ogg"))
	assert.ErrorContains(err, "unsupported")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("nope"), 0644))
	_, _, err = Open(filepath.Join(dir, "broken.wav"))
	assert.ErrorContains(err, "decoding")
}
