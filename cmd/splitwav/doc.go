// Command splitwav cuts a directory of WAV field recordings into
// fixed-duration, optionally overlapping segments and writes a CSV manifest
// mapping each segment back to its source.
//
// Usage:
//
//	splitwav [-config openbird.yaml] [-in dir] [-out dir]
//
// Flags override the segments section of the configuration file. The
// manifest path defaults to segments.csv inside the output directory.
package main
