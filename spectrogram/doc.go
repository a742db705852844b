// Package spectrogram generates time-frequency representations of audio
// clips for the classification pipeline.
//
// A Generator runs a Hann-windowed STFT over a clip and converts frame
// magnitudes to decibels with a configurable noise floor. Spectrograms can
// be written to and read back from a compact binary cache format (.spect)
// that stores magnitudes as 16-bit floats, halving the storage cost of the
// generation stage.
package spectrogram
