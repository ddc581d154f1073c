// Package describe computes descriptive statistics of recorded signals.
//
// Summary mirrors the familiar data-frame "describe" table: count, mean,
// sample standard deviation, extrema and linearly interpolated quartiles.
// NaN values are treated as missing and excluded. Streaming accumulates the
// moment-based part of the table in a single pass while rows are read.
package describe
