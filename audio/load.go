package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	resampler "github.com/tphakala/go-audio-resampler"
)

// DefaultSampleRate is the target sample rate used when none is given.
const DefaultSampleRate = 22050

// Format tags the container format of a byte-stream source.
type Format int

const (
	FormatWAV Format = iota
	FormatFLAC
	FormatMP3
	FormatOGG
)

// ResampleQuality selects the interpolation/quality tradeoff used when a
// decoded recording is resampled to the target rate.
type ResampleQuality int

const (
	// ResampleQuick is the cheapest preset, for previews.
	ResampleQuick ResampleQuality = iota
	// ResampleFast is the default, a fast Kaiser-windowed design suited to
	// field recordings.
	ResampleFast
	// ResampleMedium trades some speed for a cleaner passband.
	ResampleMedium
	// ResampleHigh is a studio-grade preset.
	ResampleHigh
	// ResampleBest is the highest-quality preset, for archival work.
	ResampleBest
)

// Option configures construction of a Buffer.
type Option func(*loadConfig)

type loadConfig struct {
	sampleRate  int
	maxDuration float64
	quality     ResampleQuality
}

// WithSampleRate sets the target sample rate in Hz (default 22050). Decoded
// audio is resampled to this rate.
func WithSampleRate(rate int) Option {
	return func(cfg *loadConfig) { cfg.sampleRate = rate }
}

// WithMaxDuration sets a ceiling in seconds on the source duration.
// Construction fails with a TooLongError when the source is longer.
// Zero (the default) means no limit.
func WithMaxDuration(seconds float64) Option {
	return func(cfg *loadConfig) { cfg.maxDuration = seconds }
}

// WithResampleQuality selects the resampling preset (default ResampleFast).
func WithResampleQuality(q ResampleQuality) Option {
	return func(cfg *loadConfig) { cfg.quality = q }
}

// FromFile decodes the audio file at path into a Buffer.
//
// The container format is chosen by extension (.wav, .flac, .mp3, .ogg);
// anything else fails with ErrUnsupportedFormat. Multi-channel recordings
// are mixed down to mono by channel averaging, and the result is resampled
// to the target rate.
func FromFile(path string, opts ...Option) (*Buffer, error) {
	cfg := defaultLoadConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sampleRate <= 0 {
		return nil, ErrInvalidRate
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("audio: open %s: %w", path, os.ErrNotExist)
	}

	format, err := formatForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	buf, err := decodeStream(f, format, cfg)
	if err != nil {
		var tooLong *TooLongError
		if errors.As(err, &tooLong) {
			tooLong.Path = path
		}
		return nil, err
	}
	return buf, nil
}

// FromReader decodes an in-memory or streamed source into a Buffer. The
// caller names the container format explicitly since a stream has no
// extension. The duration ceiling applies the same way as for files.
func FromReader(r io.Reader, format Format, opts ...Option) (*Buffer, error) {
	cfg := defaultLoadConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	return decodeStream(r, format, cfg)
}

// FromSamples adopts a raw sample vector as a Buffer. sampleRate is taken
// as the actual rate of the given samples; no resampling or duration check
// is performed. The slice is copied, so later changes by the caller do not
// reach the Buffer.
func FromSamples(samples []float64, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidRate
	}
	out := make([]float64, len(samples))
	copy(out, samples)
	return &Buffer{samples: out, sampleRate: sampleRate}, nil
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		sampleRate: DefaultSampleRate,
		quality:    ResampleFast,
	}
}

func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return FormatWAV, nil
	case ".flac":
		return FormatFLAC, nil
	case ".mp3":
		return FormatMP3, nil
	case ".ogg":
		return FormatOGG, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
}

func decodeStream(r io.Reader, format Format, cfg loadConfig) (*Buffer, error) {
	stream, beepFormat, err := decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}
	defer stream.Close()

	srcRate := int(beepFormat.SampleRate)
	if srcRate <= 0 {
		return nil, fmt.Errorf("audio: decode: source reports sample rate %d", srcRate)
	}

	if cfg.maxDuration > 0 {
		duration := float64(stream.Len()) / float64(srcRate)
		if duration > cfg.maxDuration {
			return nil, &TooLongError{Duration: duration, MaxDuration: cfg.maxDuration}
		}
	}

	samples, err := drainMono(stream)
	if err != nil {
		return nil, fmt.Errorf("audio: decode: %w", err)
	}

	if srcRate != cfg.sampleRate {
		samples, err = resample(samples, srcRate, cfg.sampleRate, cfg.quality)
		if err != nil {
			return nil, fmt.Errorf("audio: resample %d -> %d Hz: %w", srcRate, cfg.sampleRate, err)
		}
	}

	return &Buffer{samples: samples, sampleRate: cfg.sampleRate}, nil
}

func decode(r io.Reader, format Format) (beep.StreamSeekCloser, beep.Format, error) {
	switch format {
	case FormatWAV:
		return wav.Decode(r)
	case FormatFLAC:
		return flac.Decode(r)
	case FormatMP3:
		return mp3.Decode(io.NopCloser(r))
	case FormatOGG:
		return vorbis.Decode(io.NopCloser(r))
	}
	return nil, beep.Format{}, fmt.Errorf("%w: format tag %d", ErrUnsupportedFormat, format)
}

// drainMono pulls every frame out of a decoded stream and averages the
// channels. Beep exposes all sources as two channels; for mono sources both
// carry the same value, so averaging is a no-op there.
func drainMono(stream beep.StreamSeekCloser) ([]float64, error) {
	out := make([]float64, 0, stream.Len())
	frames := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(frames)
		for i := 0; i < n; i++ {
			out = append(out, (frames[i][0]+frames[i][1])/2)
		}
		if !ok {
			break
		}
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func resample(samples []float64, srcRate, dstRate int, q ResampleQuality) ([]float64, error) {
	switch q {
	case ResampleQuick:
		return resampler.ResampleMono(samples, float64(srcRate), float64(dstRate), resampler.QualityQuick)
	case ResampleFast:
		return resampler.ResampleMono(samples, float64(srcRate), float64(dstRate), resampler.QualityLow)
	case ResampleMedium:
		return resampler.ResampleMono(samples, float64(srcRate), float64(dstRate), resampler.QualityMedium)
	case ResampleHigh:
		return resampler.ResampleMono(samples, float64(srcRate), float64(dstRate), resampler.QualityHigh)
	case ResampleBest:
		return resampler.ResampleMono(samples, float64(srcRate), float64(dstRate), resampler.QualityVeryHigh)
	}
	return nil, fmt.Errorf("audio: unknown resample quality %d", q)
}
