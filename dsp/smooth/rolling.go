package smooth

import (
	"math"
	"sort"
)

// windowBounds returns the inclusive sample range [lo, hi] covered by the
// window that produces output i. Centered windows of even length lean
// towards the past by one sample.
func windowBounds(i, window int, centered bool) (lo, hi int) {
	if !centered {
		return i - window + 1, i
	}

	offset := (window - 1) / 2

	return i + offset - window + 1, i + offset
}

// RollingMean returns the moving average of x over window samples.
//
// Positions whose window extends past either end of x, or contains a NaN,
// are NaN. window <= 0 returns nil; window == 1 returns a copy.
func RollingMean(x []float64, window int, centered bool) []float64 {
	if window <= 0 {
		return nil
	}

	n := len(x)
	out := make([]float64, n)

	// prefix sums of present values and of NaN counts
	sum := make([]float64, n+1)
	nan := make([]int, n+1)
	for i, v := range x {
		sum[i+1] = sum[i]
		nan[i+1] = nan[i]
		if math.IsNaN(v) {
			nan[i+1]++
			continue
		}
		sum[i+1] += v
	}

	for i := range out {
		lo, hi := windowBounds(i, window, centered)
		if lo < 0 || hi >= n || nan[hi+1]-nan[lo] > 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = (sum[hi+1] - sum[lo]) / float64(window)
	}

	return out
}

// RollingMedian returns the centered moving median of x over window
// samples. Near the edges the window is truncated to the available samples
// and NaN values are skipped; a window with no present samples yields NaN.
func RollingMedian(x []float64, window int) []float64 {
	if window <= 0 {
		return nil
	}

	n := len(x)
	out := make([]float64, n)
	buf := make([]float64, 0, window)

	for i := range out {
		lo, hi := windowBounds(i, window, true)
		lo = max(lo, 0)
		hi = min(hi, n-1)

		buf = buf[:0]
		for _, v := range x[lo : hi+1] {
			if !math.IsNaN(v) {
				buf = append(buf, v)
			}
		}

		out[i] = median(buf)
	}

	return out
}

// median sorts buf in place.
func median(buf []float64) float64 {
	switch len(buf) {
	case 0:
		return math.NaN()
	case 1:
		return buf[0]
	}

	sort.Float64s(buf)
	mid := len(buf) / 2
	if len(buf)%2 == 1 {
		return buf[mid]
	}

	return 0.5 * (buf[mid-1] + buf[mid])
}
