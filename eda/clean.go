package eda

import (
	"math"

	"github.com/cwbudde/algo-eda/dsp/filter/biquad"
	"github.com/cwbudde/algo-eda/dsp/filter/design/pass"
)

// Clean low-pass filters raw skin conductance with a zero-phase Butterworth
// filter. Missing samples are linearly interpolated first. When fs is too low
// for the cutoff the interpolated signal is returned and filtered is false.
func Clean(raw []float64, fs float64, cfg Config) (out []float64, filtered bool) {
	cfg = cfg.withDefaults()
	x := FillMissing(raw)

	if !pass.ValidCutoff(cfg.CleanCutoff, fs) {
		return x, false
	}

	return biquad.FiltFilt(pass.ButterworthLP(cfg.CleanCutoff, cfg.CleanOrder, fs), x), true
}

// FillMissing returns a copy of x with NaN samples linearly interpolated
// between their present neighbours. Leading and trailing gaps take the
// nearest present value; an all-NaN input is returned as zeros.
func FillMissing(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	prev := -1
	for i, v := range out {
		if math.IsNaN(v) {
			continue
		}
		switch {
		case prev < 0:
			for k := 0; k < i; k++ {
				out[k] = v
			}
		case i-prev > 1:
			step := (v - out[prev]) / float64(i-prev)
			for k := prev + 1; k < i; k++ {
				out[k] = out[prev] + step*float64(k-prev)
			}
		}
		prev = i
	}

	if prev < 0 {
		clear(out)
		return out
	}
	for k := prev + 1; k < len(out); k++ {
		out[k] = out[prev]
	}

	return out
}
