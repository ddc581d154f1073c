package recording

import (
	"github.com/cwbudde/algo-eda/dsp/smooth"
)

// Motion returns a standardized motion-intensity trace: the acceleration
// magnitude smoothed by a centered moving average of windowSeconds and
// z-scored. Samples whose window reaches past either end are NaN.
func Motion(rec *Recording, windowSeconds float64) []float64 {
	magnitude := smooth.Magnitude3(rec.AccelX, rec.AccelY, rec.AccelZ)

	window := int(rec.SamplingRate * windowSeconds)
	if window < 1 {
		window = 1
	}

	return smooth.Standardize(smooth.RollingMean(magnitude, window, true))
}
