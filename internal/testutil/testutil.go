// Package testutil provides deterministic signal generators and numeric
// assertions shared by the DSP test suites.
package testutil

import (
	"math"
	"math/rand"
	"testing"
)

// Sine generates a sine wave of freq Hz at the given sample rate.
func Sine(freq, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// WhiteNoise generates uniform white noise in [-amplitude, amplitude] with a
// fixed seed for reproducibility.
func WhiteNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PeakIndex returns the index of the largest value.
func PeakIndex(xs []float64) int {
	peak := 0
	for i, v := range xs {
		if v > xs[peak] {
			peak = i
		}
	}
	return peak
}

// BandEnergy sums mags[k]^2 over the bins whose freqs[k] lies in [lo, hi).
func BandEnergy(mags, freqs []float64, lo, hi float64) float64 {
	var total float64
	for k := range mags {
		if freqs[k] >= lo && freqs[k] < hi {
			total += mags[k] * mags[k]
		}
	}
	return total
}

// RequireNearlyEqual fails t unless got is within eps of want.
func RequireNearlyEqual(t *testing.T, got, want, eps float64) {
	t.Helper()
	if math.Abs(got-want) > eps {
		t.Fatalf("got %v, want %v (tolerance %v)", got, want, eps)
	}
}

// RequireSliceNearlyEqual fails t if the slices differ in length or any
// element pair differs by more than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > eps {
			t.Fatalf("index %d: got %v, want %v (tolerance %v)", i, got[i], want[i], eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or infinite.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
