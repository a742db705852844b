package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when a source cannot be decoded
	// because its container format is not recognized.
	ErrUnsupportedFormat = errors.New("audio: unsupported input format")

	// ErrInvalidRange is returned when bandpass cutoff frequencies violate
	// the positivity or Nyquist constraint.
	ErrInvalidRange = errors.New("audio: bandpass frequency out of range")

	// ErrInvalidFormat is returned by Save when the target path does not
	// have a .wav extension.
	ErrInvalidFormat = errors.New("audio: output path must end in .wav")

	// ErrInvalidRate is returned when a non-positive sample rate is given.
	ErrInvalidRate = errors.New("audio: sample rate must be positive")
)

// TooLongError reports a source whose duration exceeds the configured ceiling.
type TooLongError struct {
	Path        string
	Duration    float64
	MaxDuration float64
}

func (e *TooLongError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("audio: source is %.2fs long, limit is %.2fs", e.Duration, e.MaxDuration)
	}
	return fmt.Sprintf("audio: %s is %.2fs long, limit is %.2fs", e.Path, e.Duration, e.MaxDuration)
}
