// Package biquad provides second-order IIR filter sections and cascades.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections are cascaded via
// [Chain] for higher-order designs such as the Butterworth filters used to
// clean and decompose electrodermal recordings.
//
// Offline analysis usually wants zero phase shift so that skin conductance
// responses stay aligned with the raw trace; [FiltFilt] runs a cascade
// forward and backward with edge padding and steady-state initial
// conditions.
//
// Coefficient design lives in dsp/filter/design/pass.
package biquad
