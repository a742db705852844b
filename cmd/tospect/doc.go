// Command tospect converts an audio recording into a spectrogram cache file.
//
// Usage:
//
//	tospect [-config openbird.yaml] <recording>
//
// The recording is loaded at the configured sample rate, bandpass-filtered
// when the configuration enables it, and analyzed with the configured STFT
// parameters. The output file is named <recording>.spect.
package main
