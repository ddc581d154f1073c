package smooth

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// MeanStd returns the mean and sample standard deviation (n-1 denominator)
// of the non-NaN values in x, together with their count.
func MeanStd(x []float64) (mean, std float64, count int) {
	var m2 float64
	for _, v := range x {
		if math.IsNaN(v) {
			continue
		}
		count++
		d := v - mean
		mean += d / float64(count)
		m2 += d * (v - mean)
	}

	if count == 0 {
		return math.NaN(), math.NaN(), 0
	}
	if count == 1 {
		return mean, math.NaN(), 1
	}

	return mean, math.Sqrt(m2 / float64(count-1)), count
}

// Standardize returns (x - mean) / std using the sample standard deviation.
// NaN samples stay NaN. A constant signal standardizes to zeros.
func Standardize(x []float64) []float64 {
	if len(x) == 0 {
		return nil
	}

	out := make([]float64, len(x))
	mean, std, count := MeanStd(x)
	if count == 0 {
		copy(out, x)
		return out
	}

	for i, v := range x {
		out[i] = v - mean
	}

	if std == 0 || math.IsNaN(std) {
		for i, v := range out {
			if !math.IsNaN(v) {
				out[i] = 0
			}
		}
		return out
	}

	vecmath.ScaleBlock(out, out, 1/std)

	return out
}

// Magnitude3 returns sqrt(x²+y²+z²) per sample. The result has the length
// of the shortest input.
func Magnitude3(x, y, z []float64) []float64 {
	n := min(len(x), len(y), len(z))
	out := make([]float64, n)

	for i := range out {
		out[i] = mathSqrt(x[i]*x[i] + y[i]*y[i] + z[i]*z[i])
	}

	return out
}

// Subtract returns a - b element-wise over the common length.
func Subtract(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	neg := make([]float64, n)

	vecmath.ScaleBlock(neg, b[:n], -1)
	copy(out, a[:n])
	vecmath.AddBlockInPlace(out, neg)

	return out
}
