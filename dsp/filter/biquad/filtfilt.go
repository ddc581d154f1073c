package biquad

// PadLength returns the number of samples FiltFilt reflects onto each end
// of the signal for the given cascade: 3*(2*sections+1-k), where k counts
// the first-order sections.
func PadLength(coeffs []Coefficients) int {
	var zeroB2, zeroA2 int
	for _, c := range coeffs {
		if c.B2 == 0 {
			zeroB2++
		}
		if c.A2 == 0 {
			zeroA2++
		}
	}

	return 3 * (2*len(coeffs) + 1 - min(zeroB2, zeroA2))
}

// FiltFilt applies the cascade forward and then backward, yielding a
// zero-phase result with squared magnitude response. The input is not
// modified.
//
// Both ends are extended by odd reflection (2*x[0] - x[k]) and each pass
// starts from the steady state of its first sample, which keeps slow
// baselines such as skin conductance level free of edge transients.
// The pad length is clamped to len(signal)-1.
func FiltFilt(coeffs []Coefficients, signal []float64) []float64 {
	n := len(signal)
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	if len(coeffs) == 0 {
		copy(out, signal)
		return out
	}

	pad := min(PadLength(coeffs), n-1)
	ext := oddExtend(signal, pad)

	chain := NewChain(coeffs)
	chain.SteadyState(ext[0])
	chain.ProcessBlock(ext)

	reverse(ext)
	chain.SteadyState(ext[0])
	chain.ProcessBlock(ext)
	reverse(ext)

	copy(out, ext[pad:pad+n])

	return out
}

// oddExtend returns signal with pad samples of odd reflection on each side.
func oddExtend(signal []float64, pad int) []float64 {
	n := len(signal)
	ext := make([]float64, n+2*pad)

	first, last := signal[0], signal[n-1]
	for i := 0; i < pad; i++ {
		ext[i] = 2*first - signal[pad-i]
		ext[pad+n+i] = 2*last - signal[n-2-i]
	}
	copy(ext[pad:], signal)

	return ext
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}
