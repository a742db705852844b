// Package audio provides an immutable container for mono audio recordings.
//
// This package implements the loading and signal-processing core of the
// bioacoustic pipeline. A Buffer holds a single-channel sample vector together
// with its sample rate and never changes after construction. It supports:
//   - Loading recordings from files, byte streams, or raw sample vectors,
//     with channel averaging, resampling, and an optional duration ceiling
//   - Trimming to a time range with permissive slice semantics
//   - Zero-phase Butterworth bandpass filtering
//   - Magnitude spectrum computation via FFT
//   - Writing uncompressed WAV files
//
// Buffers are safe for concurrent readers; no operation mutates a Buffer in
// place, every transformation returns a new one.
package audio
