package pass

import (
	"math"

	"github.com/cwbudde/algo-eda/dsp/filter/biquad"
)

// LowpassRBJ designs a second-order lowpass section (Audio EQ Cookbook)
// at freq (Hz) with quality factor q. A non-positive q falls back to
// 1/sqrt(2).
func LowpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if !ValidCutoff(freq, sampleRate) {
		return biquad.Coefficients{}
	}
	if q <= 0 || math.IsNaN(q) {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(
		(1-cw)/2, 1-cw, (1-cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}

// HighpassRBJ designs a second-order highpass section (Audio EQ Cookbook).
func HighpassRBJ(freq, q, sampleRate float64) biquad.Coefficients {
	if !ValidCutoff(freq, sampleRate) {
		return biquad.Coefficients{}
	}
	if q <= 0 || math.IsNaN(q) {
		q = defaultQ
	}

	w0 := 2 * math.Pi * freq / sampleRate
	cw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * q)

	return normalizeBiquad(
		(1+cw)/2, -(1 + cw), (1+cw)/2,
		1+alpha, -2*cw, 1-alpha,
	)
}
