package eda

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSampleRate is returned for non-positive or non-finite rates.
	ErrInvalidSampleRate = errors.New("sampling rate must be positive and finite")
	// ErrTooShort is returned when a signal has too few samples to process.
	ErrTooShort = errors.New("signal too short")
	// ErrUnknownMethod is returned for an unsupported decomposition method.
	ErrUnknownMethod = errors.New("unknown phasic method")
)

// MinSamples is the shortest signal Process accepts.
const MinSamples = 3

// Method selects how tonic and phasic components are separated.
type Method string

const (
	// MethodHighpass splits at a cutoff with Butterworth high- and lowpass filters.
	MethodHighpass Method = "highpass"
	// MethodMedian takes a rolling median as tonic and the residual as phasic.
	MethodMedian Method = "median"
)

// Config holds processing parameters. Zero fields are replaced by defaults.
type Config struct {
	CleanCutoff  float64 // Hz
	CleanOrder   int
	Method       Method
	PhasicCutoff float64 // Hz
	PhasicOrder  int
	MedianWindow float64 // seconds
	// AmplitudeMin is the minimum SCR amplitude relative to the largest one.
	AmplitudeMin float64
	// SympatheticBand is the frequency band (Hz) of sympathetic activity.
	SympatheticBand [2]float64
	// AutocorrelationLag in seconds.
	AutocorrelationLag float64
}

// DefaultConfig returns the conventional EDA processing parameters.
func DefaultConfig() Config {
	return Config{
		CleanCutoff:        3,
		CleanOrder:         4,
		Method:             MethodHighpass,
		PhasicCutoff:       0.05,
		PhasicOrder:        2,
		MedianWindow:       4,
		AmplitudeMin:       0.1,
		SympatheticBand:    [2]float64{0.045, 0.25},
		AutocorrelationLag: 4,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.CleanCutoff <= 0 {
		c.CleanCutoff = d.CleanCutoff
	}
	if c.CleanOrder <= 0 {
		c.CleanOrder = d.CleanOrder
	}
	if c.Method == "" {
		c.Method = d.Method
	}
	if c.PhasicCutoff <= 0 {
		c.PhasicCutoff = d.PhasicCutoff
	}
	if c.PhasicOrder <= 0 {
		c.PhasicOrder = d.PhasicOrder
	}
	if c.MedianWindow <= 0 {
		c.MedianWindow = d.MedianWindow
	}
	if c.AmplitudeMin < 0 {
		c.AmplitudeMin = d.AmplitudeMin
	}
	if c.SympatheticBand == ([2]float64{}) {
		c.SympatheticBand = d.SympatheticBand
	}
	if c.AutocorrelationLag <= 0 {
		c.AutocorrelationLag = d.AutocorrelationLag
	}
	return c
}

func validate(n int, fs float64, cfg Config) error {
	if fs <= 0 || math.IsNaN(fs) || math.IsInf(fs, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, fs)
	}
	if n < MinSamples {
		return fmt.Errorf("%w: %d samples, need at least %d", ErrTooShort, n, MinSamples)
	}
	switch cfg.Method {
	case MethodHighpass, MethodMedian:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, cfg.Method)
	}
	return nil
}
