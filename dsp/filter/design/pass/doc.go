// Package pass designs lowpass and highpass IIR filters as cascades of
// biquad sections.
//
// All designers use the bilinear transform with frequency pre-warping at the
// cutoff, so a Butterworth design here matches the usual "butter + sos"
// output of scientific toolkits. Invalid parameters (cutoff outside
// (0, Nyquist), non-positive sample rate or order) yield nil cascades or zero
// coefficients rather than errors; callers validate at a higher level.
package pass
