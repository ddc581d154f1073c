package testutil

import (
	"fmt"
	"math"
	"testing"
)

// NearlyEqual reports whether a and b differ by at most eps. Two NaNs are
// equal; a NaN never equals a number.
func NearlyEqual(a, b, eps float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= eps
}

// RequireSliceNearlyEqual fails t unless got and want have the same length
// and every pair is NearlyEqual. NaN positions must match.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if !NearlyEqual(got[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v (eps %v)\ngot:  %v\nwant: %v", i, got[i], want[i], eps, got, want)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the largest absolute difference over positions where
// both values are numbers. A position with NaN on one side only yields +Inf.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i := range a {
		na, nb := math.IsNaN(a[i]), math.IsNaN(b[i])
		switch {
		case na && nb:
			continue
		case na || nb:
			return math.Inf(1), nil
		}
		worst = max(worst, math.Abs(a[i]-b[i]))
	}
	return worst, nil
}
