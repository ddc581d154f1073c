package spectrum

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-eda/dsp/window"
)

func ExamplePeriodogram() {
	const fs = 8.0
	x := make([]float64, 64)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * 1 * float64(i) / fs)
	}

	psd, _ := Periodogram(x, fs, window.TypeRectangular)
	fmt.Printf("peak=%.1f Hz\n", PeakFrequency(psd))
	// Output:
	// peak=1.0 Hz
}
