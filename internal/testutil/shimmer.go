package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// ShimmerHeader is the column layout exported by Shimmer GSR+ units.
var ShimmerHeader = []string{"TimestampSync", "Skin_Conductance", "Accel_LN_X", "Accel_LN_Y", "Accel_LN_Z"}

// ShimmerStartMillis is the first timestamp written by WriteShimmerCSV
// (2024-03-01T09:00:00Z).
const ShimmerStartMillis = 1709283600000

// WriteShimmerCSV writes a synthetic Shimmer export of gsr sampled at fs
// into dir/name using delimiter sep and returns its path. Acceleration is
// gravity on Z plus a small deterministic wobble.
func WriteShimmerCSV(t testing.TB, dir, name string, gsr []float64, fs float64, sep string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(strings.Join(ShimmerHeader, sep))
	b.WriteByte('\n')

	wobble := DeterministicNoise(7, 0.05, len(gsr))
	for i, v := range gsr {
		ts := float64(ShimmerStartMillis) + float64(i)*1000/fs
		fields := []string{
			strconv.FormatFloat(ts, 'f', 3, 64),
			strconv.FormatFloat(v, 'f', 6, 64),
			strconv.FormatFloat(wobble[i], 'f', 6, 64),
			strconv.FormatFloat(-wobble[i], 'f', 6, 64),
			strconv.FormatFloat(9.81+wobble[i], 'f', 6, 64),
		}
		b.WriteString(strings.Join(fields, sep))
		b.WriteByte('\n')
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}

	return path
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(fmt.Errorf("write %s: %w", path, err))
	}

	return path
}
