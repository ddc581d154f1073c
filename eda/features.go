package eda

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-eda/dsp/spectrum"
	"github.com/cwbudde/algo-eda/dsp/window"
	"github.com/cwbudde/algo-eda/stats/describe"
)

// Minimum interval lengths in seconds for the spectral and autocorrelation
// features; shorter intervals report NaN.
const (
	MinSympatheticSeconds     = 64
	MinAutocorrelationSeconds = 30
)

// FeatureNames lists Features columns in output order.
var FeatureNames = []string{
	"SCR_Peaks_N",
	"SCR_Peaks_Amplitude_Mean",
	"EDA_Tonic_SD",
	"EDA_Sympathetic",
	"EDA_SympatheticN",
	"EDA_Autocorrelation",
}

// Features summarises an interval of processed EDA.
type Features struct {
	Label                 string
	PeaksN                int
	PeaksAmplitudeMean    float64
	TonicSD               float64
	Sympathetic           float64
	SympatheticNormalized float64
	Autocorrelation       float64
}

// Values returns the features in FeatureNames order.
func (f Features) Values() []float64 {
	return []float64{
		float64(f.PeaksN),
		f.PeaksAmplitudeMean,
		f.TonicSD,
		f.Sympathetic,
		f.SympatheticNormalized,
		f.Autocorrelation,
	}
}

// IntervalFeatures computes the features of s using cfg's band and lag.
func IntervalFeatures(s *Signals, cfg Config) Features {
	cfg = cfg.withDefaults()
	fs := s.SamplingRate
	nan := math.NaN()

	f := Features{
		PeaksAmplitudeMean:    nan,
		TonicSD:               nan,
		Sympathetic:           nan,
		SympatheticNormalized: nan,
		Autocorrelation:       nan,
	}

	sum := 0.0
	for i, p := range s.Peaks {
		if p == 1 {
			f.PeaksN++
			sum += s.Amplitude[i]
		}
	}
	if f.PeaksN > 0 {
		f.PeaksAmplitudeMean = sum / float64(f.PeaksN)
	}

	if len(s.Tonic) > 0 {
		_, variance := stat.PopMeanVariance(s.Tonic, nil)
		f.TonicSD = math.Sqrt(variance)
	}

	if fs <= 0 {
		return f
	}
	seconds := float64(s.Len()) / fs

	if seconds >= MinSympatheticSeconds {
		if psd, err := spectrum.Periodogram(s.Clean, fs, window.TypeHann); err == nil {
			band := spectrum.BandPower(psd, cfg.SympatheticBand[0], cfg.SympatheticBand[1])
			f.Sympathetic = band
			if total := spectrum.TotalPower(psd); total > 0 {
				f.SympatheticNormalized = band / total
			}
		}
	}

	if seconds >= MinAutocorrelationSeconds {
		f.Autocorrelation = describe.Autocorrelation(s.Clean, int(cfg.AutocorrelationLag*fs))
	}

	return f
}
