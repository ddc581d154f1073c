package recording

import (
	"math"
	"time"

	"github.com/cwbudde/algo-eda/stats/describe"
)

// Info summarises a loaded recording.
type Info struct {
	Path         string
	Columns      []string
	Start        time.Time
	End          time.Time
	Duration     time.Duration
	Samples      int
	SamplingRate float64
	// InferredRate is derived from the timestamps; the fixed SamplingRate
	// is what processing uses.
	InferredRate float64
	GSR          describe.Summary
}

// Inspect computes the Info of rec.
func Inspect(rec *Recording) Info {
	info := Info{
		Path:         rec.Path,
		Columns:      rec.Header,
		Samples:      rec.Len(),
		SamplingRate: rec.SamplingRate,
		InferredRate: math.NaN(),
		GSR:          describe.Describe(rec.GSR),
	}

	first, last := -1, -1
	for i, ts := range rec.Timestamps {
		if math.IsNaN(ts) {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return info
	}

	info.Start = millisToTime(rec.Timestamps[first])
	info.End = millisToTime(rec.Timestamps[last])
	info.Duration = info.End.Sub(info.Start)

	if last > first && info.Duration > 0 {
		info.InferredRate = float64(last-first) / info.Duration.Seconds()
	}

	return info
}

func millisToTime(ms float64) time.Time {
	sec, frac := math.Modf(ms / 1000)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9)))
}
