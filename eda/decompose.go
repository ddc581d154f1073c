package eda

import (
	"github.com/cwbudde/algo-eda/dsp/filter/biquad"
	"github.com/cwbudde/algo-eda/dsp/filter/design/pass"
	"github.com/cwbudde/algo-eda/dsp/smooth"
)

// Components is the tonic/phasic split of an EDA signal.
type Components struct {
	Tonic  []float64
	Phasic []float64
}

// Len returns the number of samples.
func (c Components) Len() int { return len(c.Phasic) }

// Decompose separates x into tonic and phasic components.
func Decompose(x []float64, fs float64, cfg Config) (Components, error) {
	cfg = cfg.withDefaults()
	if err := validate(len(x), fs, cfg); err != nil {
		return Components{}, err
	}

	x = FillMissing(x)

	switch cfg.Method {
	case MethodMedian:
		window := max(int(cfg.MedianWindow*fs), 1)
		tonic := smooth.RollingMedian(x, window)
		return Components{Tonic: tonic, Phasic: smooth.Subtract(x, tonic)}, nil
	default:
		if !pass.ValidCutoff(cfg.PhasicCutoff, fs) {
			return Components{}, ErrInvalidSampleRate
		}
		hp := pass.ButterworthHP(cfg.PhasicCutoff, cfg.PhasicOrder, fs)
		lp := pass.ButterworthLP(cfg.PhasicCutoff, cfg.PhasicOrder, fs)
		return Components{
			Tonic:  biquad.FiltFilt(lp, x),
			Phasic: biquad.FiltFilt(hp, x),
		}, nil
	}
}

// StandardizedDecomposition z-scores raw and decomposes the result. It
// returns the standardized signal alongside its components.
func StandardizedDecomposition(raw []float64, fs float64, cfg Config) ([]float64, Components, error) {
	std := smooth.Standardize(raw)

	comps, err := Decompose(std, fs, cfg)
	if err != nil {
		return nil, Components{}, err
	}

	return std, comps, nil
}
