package describe

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary is the descriptive summary of a signal.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64 // sample standard deviation (n-1)
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Rows returns the summary as ordered (label, value) pairs.
func (s Summary) Rows() []Row {
	return []Row{
		{"count", float64(s.Count)},
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"25%", s.Q25},
		{"50%", s.Median},
		{"75%", s.Q75},
		{"max", s.Max},
	}
}

// Row is one labelled line of a Summary.
type Row struct {
	Label string
	Value float64
}

func emptySummary() Summary {
	nan := math.NaN()
	return Summary{Mean: nan, Std: nan, Min: nan, Q25: nan, Median: nan, Q75: nan, Max: nan}
}

// Describe summarises the non-NaN values of x.
func Describe(x []float64) Summary {
	values := present(x)
	if len(values) == 0 {
		return emptySummary()
	}

	sort.Float64s(values)

	s := Summary{
		Count:  len(values),
		Min:    floats.Min(values),
		Max:    floats.Max(values),
		Q25:    Quantile(values, 0.25),
		Median: Quantile(values, 0.5),
		Q75:    Quantile(values, 0.75),
	}

	if len(values) == 1 {
		s.Mean = values[0]
		s.Std = math.NaN()
		return s
	}

	s.Mean, s.Std = stat.MeanStdDev(values, nil)

	return s
}

// Quantile returns the p-quantile of sorted using linear interpolation
// between the closest ranks, h = (n-1)*p.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 || p < 0 || p > 1 || math.IsNaN(p) {
		return math.NaN()
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}

	frac := h - float64(lo)

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Autocorrelation returns the Pearson correlation between x[:n-lag] and
// x[lag:]. It is NaN when fewer than two pairs are available, when lag is
// negative, or when either part is constant.
func Autocorrelation(x []float64, lag int) float64 {
	if lag < 0 || len(x)-lag < 2 {
		return math.NaN()
	}

	a := x[:len(x)-lag]
	b := x[lag:]
	if floats.HasNaN(a) || floats.HasNaN(b) {
		return math.NaN()
	}

	_, sa := stat.MeanStdDev(a, nil)
	_, sb := stat.MeanStdDev(b, nil)
	if sa == 0 || sb == 0 {
		return math.NaN()
	}

	return stat.Correlation(a, b, nil)
}

func present(x []float64) []float64 {
	out := make([]float64, 0, len(x))
	for _, v := range x {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
