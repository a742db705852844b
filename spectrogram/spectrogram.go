package spectrogram

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/r9y9/gossp/stft"

	"github.com/openbird/openbird/audio"
)

// Generator holds the analysis parameters for producing spectrograms.
type Generator struct {
	// Window is the analysis frame length in samples, also the FFT size.
	Window int
	// Shift is the hop between consecutive frames in samples.
	Shift int
	// FloorDB clips magnitudes from below, in decibels.
	FloorDB float64
}

// NewGenerator creates a Generator with default values.
func NewGenerator() *Generator {
	return &Generator{
		Window:  512,
		Shift:   256,
		FloorDB: -100,
	}
}

// Spectrogram is a decibel-scaled magnitude spectrogram. Mags is indexed
// [frame][bin]; Times and Freqs give the frame centers in seconds and the
// bin frequencies in Hz.
type Spectrogram struct {
	Mags  [][]float64
	Times []float64
	Freqs []float64

	SampleRate int
	Window     int
	Shift      int
}

// FromBuffer computes the spectrogram of a clip. The clip must be at least
// one analysis window long.
func (g *Generator) FromBuffer(buf *audio.Buffer) (*Spectrogram, error) {
	if g.Window <= 0 || g.Shift <= 0 {
		return nil, fmt.Errorf("spectrogram: window %d and shift %d must be positive", g.Window, g.Shift)
	}
	if buf.Length() < g.Window {
		return nil, fmt.Errorf("spectrogram: clip has %d samples, need at least one window of %d",
			buf.Length(), g.Window)
	}

	s := stft.New(g.Shift, g.Window)
	frames := s.STFT(buf.Samples())

	bins := g.Window / 2
	rate := buf.SampleRate()

	sp := &Spectrogram{
		Mags:       make([][]float64, len(frames)),
		Times:      make([]float64, len(frames)),
		Freqs:      make([]float64, bins),
		SampleRate: rate,
		Window:     g.Window,
		Shift:      g.Shift,
	}

	for k := 0; k < bins; k++ {
		sp.Freqs[k] = float64(k) * float64(rate) / float64(g.Window)
	}

	floorAmp := math.Pow(10, g.FloorDB/20)
	for i, frame := range frames {
		row := make([]float64, bins)
		for k := 0; k < bins; k++ {
			mag := cmplx.Abs(frame[k]) * 2 / float64(g.Window)
			if mag < floorAmp {
				mag = floorAmp
			}
			row[k] = 20 * math.Log10(mag)
		}
		sp.Mags[i] = row
		sp.Times[i] = (float64(i*g.Shift) + float64(g.Window)/2) / float64(rate)
	}

	return sp, nil
}

// Frames returns the number of analysis frames.
func (s *Spectrogram) Frames() int {
	return len(s.Mags)
}

// Bins returns the number of frequency bins per frame.
func (s *Spectrogram) Bins() int {
	return len(s.Freqs)
}
