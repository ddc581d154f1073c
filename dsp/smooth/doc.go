// Package smooth provides rolling-window smoothing and normalisation of
// sampled signals.
//
// Missing samples are represented as NaN. Rolling statistics follow the
// common data-frame convention: a window only produces a value when every
// sample in it is present, so incomplete windows at the edges yield NaN.
package smooth
