package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// SCR shape constants (seconds) of a Bateman-like response.
const (
	scrRise  = 0.75
	scrDecay = 2.0
)

// SCRResponse returns a unit-peak skin conductance response sampled at fs,
// starting at sample 0 and lasting seconds.
func SCRResponse(fs, seconds float64) []float64 {
	n := int(seconds * fs)
	out := make([]float64, n)
	peak := 0.0
	for i := range out {
		t := float64(i) / fs
		out[i] = math.Exp(-t/scrDecay) - math.Exp(-t/scrRise)
		peak = math.Max(peak, out[i])
	}
	if peak > 0 {
		for i := range out {
			out[i] /= peak
		}
	}
	return out
}

// SyntheticEDA builds a deterministic skin conductance trace in µS: a
// slowly drifting tonic level plus unit SCRs of the given amplitude at each
// onset (seconds) and a little white noise.
func SyntheticEDA(fs, seconds float64, onsets []float64, amplitude float64, seed int64) []float64 {
	n := int(seconds * fs)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / fs
		out[i] = 5 + 0.5*math.Sin(2*math.Pi*t/600)
	}

	scr := SCRResponse(fs, 20)
	for _, onset := range onsets {
		start := int(onset * fs)
		for k, v := range scr {
			if start+k >= 0 && start+k < n {
				out[start+k] += amplitude * v
			}
		}
	}

	noise := DeterministicNoise(seed, 0.002, n)
	for i := range out {
		out[i] += noise[i]
	}

	return out
}
