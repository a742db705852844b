// Command filtwav applies a zero-phase Butterworth bandpass filter to a
// recording, optionally trims it to a time range, and writes the result as
// a WAV file.
//
// Usage:
//
//	filtwav -low 500 -high 10000 [-order 9] [-start s] [-end s] <in> <out.wav>
package main
