package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// Save writes the buffer as an uncompressed 16-bit PCM mono WAV file,
// creating or overwriting path. The path must end in .wav; any other
// extension fails with ErrInvalidFormat before a file is created.
func (b *Buffer) Save(path string) error {
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(b.sampleRate),
		NumChannels: 1,
		Precision:   2,
	}
	if err := wav.Encode(f, &bufferStreamer{samples: b.samples}, format); err != nil {
		f.Close()
		return fmt.Errorf("audio: encode %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: close %s: %w", path, err)
	}
	return nil
}

// bufferStreamer adapts a sample vector to the beep streaming interface so
// the encoder can pull frames from it.
type bufferStreamer struct {
	samples []float64
	pos     int
}

func (s *bufferStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if s.pos >= len(s.samples) {
			break
		}
		v := s.samples[s.pos]
		out[i][0], out[i][1] = v, v
		s.pos++
		n++
	}
	return n, true
}

func (s *bufferStreamer) Err() error { return nil }
