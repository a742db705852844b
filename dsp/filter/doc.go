// Package filter implements IIR filtering for the audio pipeline.
//
// Filters are built from cascades of second-order sections (biquads) in
// Direct Form II Transposed. The package provides Butterworth lowpass and
// highpass cascade design and a zero-phase bandpass application that runs
// the cascade forward and backward over the signal, cancelling the phase
// response.
package filter
