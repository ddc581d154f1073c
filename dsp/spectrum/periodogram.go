package spectrum

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-eda/dsp/window"
)

// PSD is a one-sided power spectral density estimate.
type PSD struct {
	Freqs []float64
	Power []float64
	// Resolution is the bin spacing in Hz.
	Resolution float64
}

// Periodogram returns the one-sided PSD of x sampled at fs.
//
// The mean is removed, the selected window applied and the result
// zero-padded to the next power of two. Density is normalised by
// fs*sum(w²) so that TotalPower approximates the signal variance.
func Periodogram(x []float64, fs float64, win window.Type) (PSD, error) {
	n := len(x)
	if n < 2 {
		return PSD{}, fmt.Errorf("periodogram requires at least 2 samples: %d", n)
	}
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return PSD{}, fmt.Errorf("periodogram sample rate must be > 0: %v", fs)
	}

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	buf := make([]float64, n)
	for i, v := range x {
		buf[i] = v - mean
	}

	coeffs := window.Generate(win, n, window.WithPeriodic())
	window.Apply(win, buf, window.WithPeriodic())
	scale := window.EnergyGain(coeffs) * float64(n) * fs

	fftSize := NextPowerOfTwo(n)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return PSD{}, fmt.Errorf("periodogram plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range buf {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return PSD{}, fmt.Errorf("periodogram forward: %w", err)
	}

	bins := fftSize/2 + 1
	power := Power(out[:bins])
	df := fs / float64(fftSize)
	freqs := make([]float64, bins)

	for k := range power {
		freqs[k] = float64(k) * df
		power[k] /= scale
		if k != 0 && !(fftSize%2 == 0 && k == bins-1) {
			power[k] *= 2
		}
	}

	return PSD{Freqs: freqs, Power: power, Resolution: df}, nil
}

// BandPower integrates the PSD over [lo, hi] Hz with the trapezoid rule.
// Bins outside the band are ignored; an empty band yields 0.
func BandPower(psd PSD, lo, hi float64) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}

	sum := 0.0
	for k := 1; k < len(psd.Freqs); k++ {
		f0, f1 := psd.Freqs[k-1], psd.Freqs[k]
		if f0 < lo || f1 > hi {
			continue
		}
		sum += 0.5 * (psd.Power[k-1] + psd.Power[k]) * (f1 - f0)
	}

	return sum
}

// TotalPower integrates the whole PSD.
func TotalPower(psd PSD) float64 {
	if len(psd.Freqs) == 0 {
		return 0
	}
	return BandPower(psd, psd.Freqs[0], psd.Freqs[len(psd.Freqs)-1])
}

// PeakFrequency returns the frequency of the largest PSD bin above DC.
func PeakFrequency(psd PSD) float64 {
	best := 0
	for k := 1; k < len(psd.Power); k++ {
		if best == 0 || psd.Power[k] > psd.Power[best] {
			best = k
		}
	}
	if best == 0 {
		return 0
	}
	return psd.Freqs[best]
}
