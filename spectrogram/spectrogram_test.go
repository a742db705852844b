package spectrogram

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/openbird/openbird/audio"
	"github.com/openbird/openbird/internal/testutil"
)

func sineBuffer(t *testing.T, freq float64, rate, length int) *audio.Buffer {
	t.Helper()
	buf, err := audio.FromSamples(testutil.Sine(freq, float64(rate), 0.5, length), rate)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	return buf
}

func TestFromBufferShape(t *testing.T) {
	const rate = 8000
	gen := NewGenerator()
	sp, err := gen.FromBuffer(sineBuffer(t, 1000, rate, 4*rate))
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}

	if sp.Bins() != gen.Window/2 {
		t.Fatalf("bins = %d, want %d", sp.Bins(), gen.Window/2)
	}
	if sp.Frames() == 0 {
		t.Fatal("no frames produced")
	}
	if len(sp.Times) != sp.Frames() {
		t.Fatalf("times length %d, frames %d", len(sp.Times), sp.Frames())
	}
	if sp.SampleRate != rate {
		t.Fatalf("sample rate = %d, want %d", sp.SampleRate, rate)
	}
	for _, row := range sp.Mags {
		testutil.RequireFinite(t, row)
	}
}

func TestFromBufferTooShort(t *testing.T) {
	gen := NewGenerator()
	if _, err := gen.FromBuffer(sineBuffer(t, 1000, 8000, gen.Window-1)); err == nil {
		t.Fatal("expected error for clip shorter than one window")
	}
}

func TestFromBufferSineConcentration(t *testing.T) {
	const (
		rate = 8000
		freq = 1000
	)
	gen := &Generator{Window: 256, Shift: 128, FloorDB: -100}
	sp, err := gen.FromBuffer(sineBuffer(t, freq, rate, 2*rate))
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}

	wantBin := freq * gen.Window / rate
	mid := sp.Mags[sp.Frames()/2]
	if got := testutil.PeakIndex(mid); got != wantBin {
		t.Fatalf("peak at bin %d (%g Hz), want bin %d (%g Hz)",
			got, sp.Freqs[got], wantBin, sp.Freqs[wantBin])
	}
}

func TestFloorClipsMagnitudes(t *testing.T) {
	const rate = 8000
	gen := &Generator{Window: 256, Shift: 128, FloorDB: -80}
	silence, err := audio.FromSamples(make([]float64, 2*rate), rate)
	if err != nil {
		t.Fatalf("FromSamples: %v", err)
	}
	sp, err := gen.FromBuffer(silence)
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}
	for _, row := range sp.Mags {
		for _, v := range row {
			if v < gen.FloorDB-1e-9 {
				t.Fatalf("magnitude %g dB below floor %g dB", v, gen.FloorDB)
			}
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	const rate = 8000
	gen := &Generator{Window: 256, Shift: 128, FloorDB: -100}
	want, err := gen.FromBuffer(sineBuffer(t, 1000, rate, 2*rate))
	if err != nil {
		t.Fatalf("FromBuffer: %v", err)
	}

	path := filepath.Join(t.TempDir(), "clip.spect")
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got.Frames() != want.Frames() || got.Bins() != want.Bins() {
		t.Fatalf("shape %dx%d, want %dx%d", got.Frames(), got.Bins(), want.Frames(), want.Bins())
	}
	if got.SampleRate != want.SampleRate || got.Window != want.Window || got.Shift != want.Shift {
		t.Fatalf("parameters %d/%d/%d, want %d/%d/%d",
			got.SampleRate, got.Window, got.Shift,
			want.SampleRate, want.Window, want.Shift)
	}
	testutil.RequireSliceNearlyEqual(t, got.Times, want.Times, 1e-9)
	testutil.RequireSliceNearlyEqual(t, got.Freqs, want.Freqs, 1e-9)

	// The float16 payload keeps decibel values to well under 1 dB.
	for i := range want.Mags {
		for k := range want.Mags[i] {
			if diff := math.Abs(got.Mags[i][k] - want.Mags[i][k]); diff > 0.5 {
				t.Fatalf("frame %d bin %d: %g dB vs %g dB", i, k, got.Mags[i][k], want.Mags[i][k])
			}
		}
	}
}

func TestSaveRejectsWrongExtension(t *testing.T) {
	sp := &Spectrogram{SampleRate: 8000, Window: 256, Shift: 128}
	if err := sp.Save(filepath.Join(t.TempDir(), "clip.wav")); err == nil {
		t.Fatal("expected error for wrong extension")
	}
}

func TestLoadRejectsOversizedShape(t *testing.T) {
	// A valid magic and version with a giant declared shape must be rejected
	// from the header alone, before any payload allocation.
	var b bytes.Buffer
	h := header{
		Magic:      magic,
		Version:    fileVersion,
		SampleRate: 8000,
		Window:     256,
		Shift:      128,
		Frames:     1 << 30,
		Bins:       128,
	}
	if err := binary.Write(&b, binary.LittleEndian, h); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "huge.spect")
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for shape larger than the file")
	}
}

func TestLoadRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.spect")
	if err := os.WriteFile(path, []byte("this is not a spectrogram file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for non-spectrogram file")
	}
}
