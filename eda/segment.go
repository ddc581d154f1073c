package eda

import "strconv"

// Epoch is one fixed-length segment of a processed recording.
type Epoch struct {
	Label   string
	Start   int
	End     int
	Signals *Signals
}

// Segment cuts s into consecutive full segments of seconds each, labelled
// "1", "2", ... A trailing partial segment is dropped. Fewer than two full
// segments yields nil.
func Segment(s *Signals, seconds float64) []Epoch {
	size := int(seconds * s.SamplingRate)
	if size <= 0 {
		return nil
	}

	count := s.Len() / size
	if count <= 1 {
		return nil
	}

	epochs := make([]Epoch, count)
	for i := range epochs {
		start := i * size
		epochs[i] = Epoch{
			Label:   strconv.Itoa(i + 1),
			Start:   start,
			End:     start + size,
			Signals: Slice(s, start, start+size),
		}
	}

	return epochs
}

// SegmentFeatures computes IntervalFeatures for every epoch.
func SegmentFeatures(epochs []Epoch, cfg Config) []Features {
	out := make([]Features, len(epochs))
	for i, e := range epochs {
		out[i] = IntervalFeatures(e.Signals, cfg)
		out[i].Label = e.Label
	}
	return out
}
