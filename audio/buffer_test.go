package audio

import (
	"math"
	"testing"

	"github.com/openbird/openbird/internal/testutil"
)

func TestSamplesReturnsCopy(t *testing.T) {
	src := testutil.Sine(440, 8000, 0.5, 800)
	buf, err := FromSamples(src, 8000)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}

	// Mutating the caller's slice must not reach the buffer.
	src[0] = 42
	if got := buf.Samples()[0]; got == 42 {
		t.Fatal("buffer aliases the input slice")
	}

	// Mutating an accessor result must not reach the buffer either.
	out := buf.Samples()
	out[1] = 42
	if got := buf.Samples()[1]; got == 42 {
		t.Fatal("buffer aliases the accessor result")
	}
}

func TestTrimLength(t *testing.T) {
	const rate = 22050
	buf, err := FromSamples(make([]float64, rate), rate)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}

	cases := []struct {
		name       string
		start, end float64
	}{
		{"interior", 0.25, 0.75},
		{"fromStart", 0, 0.5},
		{"toEnd", 0.5, 1},
		{"fractionalIndices", 0.1, 0.9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buf.Trim(tc.start, tc.end)
			want := int(tc.end*rate) - int(tc.start*rate)
			if got.Length() != want {
				t.Fatalf("Trim(%g, %g) length = %d, want %d", tc.start, tc.end, got.Length(), want)
			}
			if got.SampleRate() != rate {
				t.Fatalf("Trim changed the sample rate to %d", got.SampleRate())
			}
		})
	}
}

func TestTrimPermissiveBounds(t *testing.T) {
	buf, err := FromSamples(make([]float64, 1000), 1000)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}

	if got := buf.Trim(0.5, 5).Length(); got != 500 {
		t.Fatalf("end past clip: length = %d, want 500", got)
	}
	if got := buf.Trim(2, 5).Length(); got != 0 {
		t.Fatalf("range past clip: length = %d, want 0", got)
	}
	if got := buf.Trim(0.8, 0.2).Length(); got != 0 {
		t.Fatalf("inverted range: length = %d, want 0", got)
	}
	if got := buf.Trim(-1, 0.2).Length(); got != 200 {
		t.Fatalf("negative start: length = %d, want 200", got)
	}
	if got := buf.Trim(0.5, -0.5).Length(); got != 0 {
		t.Fatalf("negative end: length = %d, want 0", got)
	}
	if got := buf.Trim(-2, -1).Length(); got != 0 {
		t.Fatalf("fully negative range: length = %d, want 0", got)
	}
}

func TestSpectrumSinePeak(t *testing.T) {
	const (
		rate = 8000
		n    = 2048
		freq = 1000 // exactly bin 256 at this rate and length
		amp  = 0.5
	)
	buf, err := FromSamples(testutil.Sine(freq, rate, amp, n), rate)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}

	mags, freqs := buf.Spectrum()
	if len(mags) != n/2 || len(freqs) != n/2 {
		t.Fatalf("got %d mags and %d freqs, want %d", len(mags), len(freqs), n/2)
	}

	peak := testutil.PeakIndex(mags)
	if got := freqs[peak]; math.Abs(got-freq) > float64(rate)/n {
		t.Fatalf("spectrum peak at %g Hz, want %g Hz", got, float64(freq))
	}
	testutil.RequireNearlyEqual(t, mags[peak], amp, 1e-6)
	testutil.RequireFinite(t, mags)
}

func TestSpectrumEmptyBuffer(t *testing.T) {
	buf, err := FromSamples(nil, 8000)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	mags, freqs := buf.Spectrum()
	if len(mags) != 0 || len(freqs) != 0 {
		t.Fatalf("empty buffer spectrum has %d mags, %d freqs", len(mags), len(freqs))
	}
}

func TestSpectrumFrequencyAxis(t *testing.T) {
	const rate = 8000
	buf, err := FromSamples(make([]float64, 400), rate)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	_, freqs := buf.Spectrum()
	if freqs[0] != 0 {
		t.Fatalf("first bin at %g Hz, want 0", freqs[0])
	}
	testutil.RequireNearlyEqual(t, freqs[1], float64(rate)/400, 1e-9)
	if last := freqs[len(freqs)-1]; last >= rate/2 {
		t.Fatalf("last bin %g Hz reaches the Nyquist limit", last)
	}
}
