package eda

import "math"

// SCR describes one skin conductance response. Indices are samples into the
// phasic signal it was found on; Recovery is -1 when the response does not
// recover to half amplitude before the next onset.
type SCR struct {
	Onset        int
	Peak         int
	Height       float64 // phasic value at the peak
	Amplitude    float64 // peak minus onset value
	RiseTime     float64 // seconds
	Recovery     int
	RecoveryTime float64 // seconds, NaN without recovery
}

// FindPeaks locates SCRs on a phasic trace.
//
// Every local maximum is paired with the local minimum preceding it. A peak
// is kept when its height reaches amplitudeMin times the largest height and
// its amplitude exceeds amplitudeMin times the largest amplitude; the first
// test rejects filter overshoot, the second ripples riding on a response.
func FindPeaks(phasic []float64, fs float64, amplitudeMin float64) []SCR {
	n := len(phasic)
	if n < 3 || fs <= 0 {
		return nil
	}

	var candidates []SCR
	for i := 1; i < n-1; i++ {
		if !(phasic[i] > phasic[i-1]) {
			continue
		}

		// walk over a plateau; it only counts when it ends falling
		j := i
		for j+1 < n && phasic[j+1] == phasic[i] {
			j++
		}
		if j+1 >= n || phasic[j+1] > phasic[i] {
			i = j
			continue
		}

		onset := i
		for onset > 0 && phasic[onset-1] < phasic[onset] {
			onset--
		}

		candidates = append(candidates, SCR{
			Onset:     onset,
			Peak:      i,
			Height:    phasic[i],
			Amplitude: phasic[i] - phasic[onset],
			RiseTime:  float64(i-onset) / fs,
		})
		i = j
	}

	var highest, largest float64
	for _, c := range candidates {
		highest = math.Max(highest, c.Height)
		largest = math.Max(largest, c.Amplitude)
	}
	if highest <= 0 || largest <= 0 {
		return nil
	}

	var out []SCR
	for _, c := range candidates {
		if c.Height >= amplitudeMin*highest && c.Amplitude > amplitudeMin*largest {
			out = append(out, c)
		}
	}

	for k := range out {
		limit := n
		if k+1 < len(out) {
			limit = out[k+1].Onset
		}
		out[k].Recovery, out[k].RecoveryTime = halfRecovery(phasic, out[k], limit, fs)
	}

	return out
}

func halfRecovery(phasic []float64, scr SCR, limit int, fs float64) (int, float64) {
	threshold := phasic[scr.Onset] + scr.Amplitude/2
	for i := scr.Peak + 1; i < limit; i++ {
		if phasic[i] <= threshold {
			return i, float64(i-scr.Peak) / fs
		}
	}
	return -1, math.NaN()
}
