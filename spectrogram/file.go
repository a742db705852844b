package spectrogram

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/x448/float16"
)

// Ext is the extension of the binary spectrogram cache format.
const Ext = ".spect"

var magic = [4]byte{'S', 'P', 'C', 'T'}

const fileVersion = 1

// header is the fixed-size prefix of a .spect file, little-endian.
type header struct {
	Magic      [4]byte
	Version    uint16
	_          uint16 // reserved
	SampleRate uint32
	Window     uint32
	Shift      uint32
	Frames     uint32
	Bins       uint32
}

// Save writes the spectrogram to path in the binary cache format.
// Magnitudes are stored as 16-bit floats, which is plenty for decibel
// values. The path must end in .spect.
func (s *Spectrogram) Save(path string) error {
	if strings.ToLower(filepath.Ext(path)) != Ext {
		return fmt.Errorf("spectrogram: output path must end in %s, got %q", Ext, filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("spectrogram: create %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	h := header{
		Magic:      magic,
		Version:    fileVersion,
		SampleRate: uint32(s.SampleRate),
		Window:     uint32(s.Window),
		Shift:      uint32(s.Shift),
		Frames:     uint32(len(s.Mags)),
		Bins:       uint32(len(s.Freqs)),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		f.Close()
		return fmt.Errorf("spectrogram: write header: %w", err)
	}

	for _, row := range s.Mags {
		for _, v := range row {
			bits := float16.Fromfloat32(float32(v)).Bits()
			if err := binary.Write(w, binary.LittleEndian, bits); err != nil {
				f.Close()
				return fmt.Errorf("spectrogram: write payload: %w", err)
			}
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("spectrogram: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("spectrogram: close %s: %w", path, err)
	}
	return nil
}

// Load reads a spectrogram previously written by Save. Times and Freqs are
// rebuilt from the stored analysis parameters.
func Load(path string) (*Spectrogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("spectrogram: open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("spectrogram: read header: %w", err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("spectrogram: %s is not a spectrogram cache file", path)
	}
	if h.Version != fileVersion {
		return nil, fmt.Errorf("spectrogram: %s has unsupported version %d", path, h.Version)
	}
	if h.SampleRate == 0 || h.Window == 0 || h.Shift == 0 {
		return nil, fmt.Errorf("spectrogram: %s has corrupt header", path)
	}

	// The declared shape must match the bytes actually on disk, or a corrupt
	// header could demand an enormous allocation.
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("spectrogram: stat %s: %w", path, err)
	}
	payloadBytes := int64(h.Frames) * int64(h.Bins) * 2
	if payloadBytes != info.Size()-int64(binary.Size(h)) {
		return nil, fmt.Errorf("spectrogram: %s declares %d frames of %d bins, but the payload is %d bytes",
			path, h.Frames, h.Bins, info.Size()-int64(binary.Size(h)))
	}

	frames := int(h.Frames)
	bins := int(h.Bins)
	rate := int(h.SampleRate)

	sp := &Spectrogram{
		Mags:       make([][]float64, frames),
		Times:      make([]float64, frames),
		Freqs:      make([]float64, bins),
		SampleRate: rate,
		Window:     int(h.Window),
		Shift:      int(h.Shift),
	}
	for k := 0; k < bins; k++ {
		sp.Freqs[k] = float64(k) * float64(rate) / float64(h.Window)
	}

	payload := make([]uint16, bins)
	for i := 0; i < frames; i++ {
		if err := binary.Read(r, binary.LittleEndian, payload); err != nil {
			return nil, fmt.Errorf("spectrogram: read frame %d: %w", i, err)
		}
		row := make([]float64, bins)
		for k, bits := range payload {
			row[k] = float64(float16.Frombits(bits).Float32())
		}
		sp.Mags[i] = row
		sp.Times[i] = (float64(i*int(h.Shift)) + float64(h.Window)/2) / float64(rate)
	}

	return sp, nil
}
