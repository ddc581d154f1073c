// Package spectrum estimates power spectra of slowly varying physiological
// signals.
//
// Periodogram zero-pads the windowed input to the next power of two and
// transforms it with algo-fft; BandPower integrates the one-sided density
// over a frequency band, which is how sympathetic-tone indices are derived
// from electrodermal activity.
package spectrum
