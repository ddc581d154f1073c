package eda

import "fmt"

// Column names of a processed signal table.
const (
	ColRaw          = "EDA_Raw"
	ColClean        = "EDA_Clean"
	ColTonic        = "EDA_Tonic"
	ColPhasic       = "EDA_Phasic"
	ColOnsets       = "SCR_Onsets"
	ColPeaks        = "SCR_Peaks"
	ColHeight       = "SCR_Height"
	ColAmplitude    = "SCR_Amplitude"
	ColRiseTime     = "SCR_RiseTime"
	ColRecovery     = "SCR_Recovery"
	ColRecoveryTime = "SCR_RecoveryTime"
)

// SignalColumns lists the table columns in output order.
var SignalColumns = []string{
	ColRaw, ColClean, ColTonic, ColPhasic,
	ColOnsets, ColPeaks, ColHeight, ColAmplitude, ColRiseTime, ColRecovery, ColRecoveryTime,
}

// Column is one named series of a table.
type Column struct {
	Name   string
	Values []float64
}

// Signals is the per-sample result of Process. Marker columns hold 1 at
// the marked sample and 0 elsewhere; SCR attributes are placed at the peak
// (recovery time at the recovery sample) and are 0 elsewhere.
type Signals struct {
	SamplingRate float64
	// Offset is the index of the first sample within the original signal.
	Offset int
	// Filtered reports whether the cleaning filter could be applied.
	Filtered bool

	Raw          []float64
	Clean        []float64
	Tonic        []float64
	Phasic       []float64
	Onsets       []float64
	Peaks        []float64
	Height       []float64
	Amplitude    []float64
	RiseTime     []float64
	Recovery     []float64
	RecoveryTime []float64

	SCRs []SCR
}

// Len returns the number of samples.
func (s *Signals) Len() int { return len(s.Raw) }

// Columns returns the table in SignalColumns order.
func (s *Signals) Columns() []Column {
	return []Column{
		{ColRaw, s.Raw},
		{ColClean, s.Clean},
		{ColTonic, s.Tonic},
		{ColPhasic, s.Phasic},
		{ColOnsets, s.Onsets},
		{ColPeaks, s.Peaks},
		{ColHeight, s.Height},
		{ColAmplitude, s.Amplitude},
		{ColRiseTime, s.RiseTime},
		{ColRecovery, s.Recovery},
		{ColRecoveryTime, s.RecoveryTime},
	}
}

// Components returns the tonic/phasic columns.
func (s *Signals) Components() Components {
	return Components{Tonic: s.Tonic, Phasic: s.Phasic}
}

// Process cleans raw, decomposes it and detects SCRs.
func Process(raw []float64, fs float64, cfg Config) (*Signals, error) {
	cfg = cfg.withDefaults()
	if err := validate(len(raw), fs, cfg); err != nil {
		return nil, err
	}

	clean, filtered := Clean(raw, fs, cfg)

	comps, err := Decompose(clean, fs, cfg)
	if err != nil {
		return nil, fmt.Errorf("decompose: %w", err)
	}

	n := len(raw)
	s := &Signals{
		SamplingRate: fs,
		Filtered:     filtered,
		Raw:          append([]float64(nil), raw...),
		Clean:        clean,
		Tonic:        comps.Tonic,
		Phasic:       comps.Phasic,
		Onsets:       make([]float64, n),
		Peaks:        make([]float64, n),
		Height:       make([]float64, n),
		Amplitude:    make([]float64, n),
		RiseTime:     make([]float64, n),
		Recovery:     make([]float64, n),
		RecoveryTime: make([]float64, n),
		SCRs:         FindPeaks(comps.Phasic, fs, cfg.AmplitudeMin),
	}

	for _, scr := range s.SCRs {
		s.Onsets[scr.Onset] = 1
		s.Peaks[scr.Peak] = 1
		s.Height[scr.Peak] = scr.Height
		s.Amplitude[scr.Peak] = scr.Amplitude
		s.RiseTime[scr.Peak] = scr.RiseTime
		if scr.Recovery >= 0 {
			s.Recovery[scr.Recovery] = 1
			s.RecoveryTime[scr.Recovery] = scr.RecoveryTime
		}
	}

	return s, nil
}

// Slice returns the samples [start, end) as a new table. Bounds are clamped.
// SCRs are kept when their peak lies inside the range and are re-indexed;
// onset and recovery indices falling outside become -1.
func Slice(s *Signals, start, end int) *Signals {
	n := s.Len()
	start = min(max(start, 0), n)
	end = min(max(end, start), n)

	cut := func(x []float64) []float64 {
		return append([]float64(nil), x[start:end]...)
	}

	out := &Signals{
		SamplingRate: s.SamplingRate,
		Offset:       s.Offset + start,
		Filtered:     s.Filtered,
		Raw:          cut(s.Raw),
		Clean:        cut(s.Clean),
		Tonic:        cut(s.Tonic),
		Phasic:       cut(s.Phasic),
		Onsets:       cut(s.Onsets),
		Peaks:        cut(s.Peaks),
		Height:       cut(s.Height),
		Amplitude:    cut(s.Amplitude),
		RiseTime:     cut(s.RiseTime),
		Recovery:     cut(s.Recovery),
		RecoveryTime: cut(s.RecoveryTime),
	}

	inside := func(i int) int {
		if i < start || i >= end {
			return -1
		}
		return i - start
	}

	for _, scr := range s.SCRs {
		if scr.Peak < start || scr.Peak >= end {
			continue
		}
		scr.Peak -= start
		scr.Onset = inside(scr.Onset)
		scr.Recovery = inside(scr.Recovery)
		out.SCRs = append(out.SCRs, scr)
	}

	return out
}
