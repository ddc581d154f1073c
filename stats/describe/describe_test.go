package describe

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func TestDescribe_MatchesDataFrameSemantics(t *testing.T) {
	s := Describe([]float64{7, 1, 3, math.NaN(), 5})

	want := Summary{Count: 4, Mean: 4, Std: math.Sqrt(20.0 / 3), Min: 1, Q25: 2.5, Median: 4, Q75: 5.5, Max: 7}
	got := []float64{s.Mean, s.Std, s.Min, s.Q25, s.Median, s.Q75, s.Max}
	exp := []float64{want.Mean, want.Std, want.Min, want.Q25, want.Median, want.Q75, want.Max}

	if s.Count != want.Count {
		t.Fatalf("count=%d, want %d", s.Count, want.Count)
	}
	for i := range exp {
		if !almostEqual(got[i], exp[i], 1e-12) {
			t.Fatalf("field %d: got %v, want %v", i, got[i], exp[i])
		}
	}
}

func TestDescribe_EmptyAndSingle(t *testing.T) {
	s := Describe(nil)
	if s.Count != 0 || !math.IsNaN(s.Mean) || !math.IsNaN(s.Max) {
		t.Fatalf("empty: %+v", s)
	}

	s = Describe([]float64{2})
	if s.Count != 1 || s.Mean != 2 || !math.IsNaN(s.Std) || s.Median != 2 {
		t.Fatalf("single: %+v", s)
	}
}

func TestSummaryRows(t *testing.T) {
	rows := Describe([]float64{1, 2}).Rows()
	if len(rows) != 8 || rows[0].Label != "count" || rows[7].Label != "max" || rows[7].Value != 2 {
		t.Fatalf("rows=%v", rows)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	cases := map[float64]float64{0: 10, 0.1: 14, 0.5: 30, 0.9: 46, 1: 50}
	for p, want := range cases {
		if got := Quantile(sorted, p); !almostEqual(got, want, 1e-12) {
			t.Errorf("Quantile(%v)=%v, want %v", p, got, want)
		}
	}
	if !math.IsNaN(Quantile(nil, 0.5)) || !math.IsNaN(Quantile(sorted, 1.5)) {
		t.Fatal("invalid input should give NaN")
	}
}

func TestAutocorrelation(t *testing.T) {
	n := 400
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 40)
	}

	if got := Autocorrelation(x, 40); !almostEqual(got, 1, 1e-9) {
		t.Fatalf("full-period lag: got %v, want 1", got)
	}
	if got := Autocorrelation(x, 20); !almostEqual(got, -1, 1e-9) {
		t.Fatalf("half-period lag: got %v, want -1", got)
	}
	if !math.IsNaN(Autocorrelation(x[:3], 2)) {
		t.Fatal("too short should be NaN")
	}
	if !math.IsNaN(Autocorrelation([]float64{1, 1, 1, 1}, 1)) {
		t.Fatal("constant should be NaN")
	}
}

func TestStreaming_MatchesDescribe(t *testing.T) {
	x := []float64{3, math.NaN(), -2, 8, 0.5, 4}

	s := NewStreaming()
	s.Update(x[:2])
	s.Update(x[2:])
	m := s.Result()
	d := Describe(x)

	if m.Count != d.Count || m.Missing != 1 {
		t.Fatalf("count=%d missing=%d", m.Count, m.Missing)
	}
	if !almostEqual(m.Mean, d.Mean, 1e-12) || !almostEqual(m.Std, d.Std, 1e-12) {
		t.Fatalf("mean/std: %v/%v vs %v/%v", m.Mean, m.Std, d.Mean, d.Std)
	}
	if m.Min != -2 || m.MinPos != 2 || m.Max != 8 || m.MaxPos != 3 {
		t.Fatalf("extrema: %+v", m)
	}

	s.Reset()
	if r := s.Result(); r.Count != 0 || !math.IsNaN(r.Mean) {
		t.Fatalf("after reset: %+v", r)
	}
}

func TestStreaming_Symmetric(t *testing.T) {
	s := NewStreaming()
	s.Update([]float64{-2, -1, 0, 1, 2})
	if m := s.Result(); !almostEqual(m.Skewness, 0, 1e-12) {
		t.Fatalf("skewness=%v", m.Skewness)
	}
}
