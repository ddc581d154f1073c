package describe

import "math"

// Moments holds the single-pass statistics of a Streaming accumulator.
type Moments struct {
	Count    int
	Missing  int
	Mean     float64
	Std      float64 // sample standard deviation (n-1)
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Skewness float64
	Kurtosis float64 // excess
}

// Streaming accumulates moments sample by sample using Welford's online
// algorithm. NaN samples are counted as missing and otherwise ignored.
type Streaming struct {
	n       int
	missing int
	pos     int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	maxVal  float64
	maxPos  int
	minVal  float64
	minPos  int
}

// NewStreaming creates an empty accumulator.
func NewStreaming() *Streaming {
	return &Streaming{}
}

// Add feeds one sample.
func (s *Streaming) Add(x float64) {
	pos := s.pos
	s.pos++

	if math.IsNaN(x) {
		s.missing++
		return
	}

	s.n++
	ni := float64(s.n)

	delta := x - s.mean
	deltaN := delta / ni
	deltaN2 := deltaN * deltaN
	term1 := delta * deltaN * float64(s.n-1)

	// M4 must be updated before M3, and M3 before M2.
	s.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*s.m2 - 4*deltaN*s.m3
	s.m3 += term1*deltaN*(float64(s.n-1)-1) - 3*deltaN*s.m2
	s.m2 += term1
	s.mean += deltaN

	if s.n == 1 || x > s.maxVal {
		s.maxVal = x
		s.maxPos = pos
	}
	if s.n == 1 || x < s.minVal {
		s.minVal = x
		s.minPos = pos
	}
}

// Update feeds a block of samples.
func (s *Streaming) Update(samples []float64) {
	for _, x := range samples {
		s.Add(x)
	}
}

// Result returns the statistics accumulated so far.
func (s *Streaming) Result() Moments {
	nan := math.NaN()
	if s.n == 0 {
		return Moments{Missing: s.missing, Mean: nan, Std: nan, Min: nan, Max: nan, Skewness: nan, Kurtosis: nan}
	}

	nf := float64(s.n)
	m := Moments{
		Count:   s.n,
		Missing: s.missing,
		Mean:    s.mean,
		Std:     nan,
		Min:     s.minVal,
		MinPos:  s.minPos,
		Max:     s.maxVal,
		MaxPos:  s.maxPos,
	}

	if s.n > 1 {
		m.Std = math.Sqrt(s.m2 / (nf - 1))
	}

	variance := s.m2 / nf
	if variance > 0 {
		m.Skewness = (s.m3 / nf) / (variance * math.Sqrt(variance))
		m.Kurtosis = (s.m4/nf)/(variance*variance) - 3
	}

	return m
}

// Reset clears all accumulated data, allowing the accumulator to be reused.
func (s *Streaming) Reset() {
	*s = Streaming{}
}
