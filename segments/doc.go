// Package segments splits long field recordings into fixed-duration,
// optionally overlapping clips and keeps the bookkeeping for them.
//
// The segment manifest is a CSV file mapping each clip back to its source
// recording, time range, and labels. Multiclass labels are stored
// pipe-separated in a single column and can be expanded into one row per
// label for binary classifiers.
package segments
