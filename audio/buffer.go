package audio

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/openbird/openbird/dsp/filter"
)

// Buffer is an immutable mono audio clip: a sample vector plus its sample
// rate. The zero value is not usable; construct one with FromFile,
// FromReader, or FromSamples.
type Buffer struct {
	samples    []float64
	sampleRate int
}

// SampleRate returns the sample rate in Hz. Always positive.
func (b *Buffer) SampleRate() int {
	return b.sampleRate
}

// Length returns the number of samples.
func (b *Buffer) Length() int {
	return len(b.samples)
}

// Duration returns the clip length in seconds.
func (b *Buffer) Duration() float64 {
	return float64(len(b.samples)) / float64(b.sampleRate)
}

// Samples returns a copy of the sample vector. The buffer's own storage is
// never exposed, so callers cannot mutate it.
func (b *Buffer) Samples() []float64 {
	out := make([]float64, len(b.samples))
	copy(out, b.samples)
	return out
}

// Trim returns a new Buffer over the time range [start, end) in seconds.
//
// Times convert to sample indices by truncation. Out-of-range times are
// clamped rather than rejected: trimming past the end yields a shortened or
// empty buffer, matching slice semantics.
func (b *Buffer) Trim(start, end float64) *Buffer {
	lo := int(start * float64(b.sampleRate))
	hi := int(end * float64(b.sampleRate))

	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	if hi > len(b.samples) {
		hi = len(b.samples)
	}
	if lo > hi {
		lo = hi
	}

	out := make([]float64, hi-lo)
	copy(out, b.samples[lo:hi])
	return &Buffer{samples: out, sampleRate: b.sampleRate}
}

// FilterOption configures Bandpass.
type FilterOption func(*filterConfig)

type filterConfig struct {
	order int
}

// DefaultFilterOrder is the Butterworth order used when none is given.
const DefaultFilterOrder = 9

// WithOrder sets the Butterworth filter order. Higher orders give a steeper
// cutoff at the band edges.
func WithOrder(order int) FilterOption {
	return func(cfg *filterConfig) { cfg.order = order }
}

// Bandpass returns a new Buffer with frequencies outside [low, high] Hz
// attenuated. The filter is a Butterworth cascade applied forward and
// backward, so the result has no phase distortion.
//
// low must be positive and high must be below the Nyquist limit
// (sampleRate/2); otherwise Bandpass fails with ErrInvalidRange.
func (b *Buffer) Bandpass(low, high float64, opts ...FilterOption) (*Buffer, error) {
	cfg := filterConfig{order: DefaultFilterOrder}
	for _, o := range opts {
		o(&cfg)
	}

	if low <= 0 {
		return nil, fmt.Errorf("%w: low cutoff %g Hz must be greater than zero", ErrInvalidRange, low)
	}
	nyquist := float64(b.sampleRate) / 2
	if high >= nyquist {
		return nil, fmt.Errorf("%w: high cutoff %g Hz must be below the Nyquist limit %g Hz",
			ErrInvalidRange, high, nyquist)
	}

	filtered, err := filter.ApplyBandpass(b.samples, low, high, float64(b.sampleRate), cfg.order)
	if err != nil {
		return nil, err
	}
	return &Buffer{samples: filtered, sampleRate: b.sampleRate}, nil
}

// Spectrum computes the single-sided magnitude spectrum of the whole clip.
//
// It returns parallel slices of magnitude and frequency (Hz), both of length
// floor(N/2) where N is the sample count. Magnitudes are scaled by 2/N. An
// empty buffer yields empty slices.
func (b *Buffer) Spectrum() (mags, freqs []float64) {
	n := len(b.samples)
	half := n / 2
	if half == 0 {
		return []float64{}, []float64{}
	}

	bins := fft.FFTReal(b.samples)

	mags = make([]float64, half)
	freqs = make([]float64, half)
	scale := 2 / float64(n)
	for k := 0; k < half; k++ {
		mags[k] = scale * cmplx.Abs(bins[k])
		freqs[k] = float64(k) * float64(b.sampleRate) / float64(n)
	}
	return mags, freqs
}
