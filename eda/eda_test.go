package eda

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eda/internal/testutil"
)

const fs = 51.2

// sampleAt returns the sample index nearest to seconds.
func sampleAt(seconds float64) int {
	return int(math.Round(seconds * fs))
}

func TestFillMissing(t *testing.T) {
	nan := math.NaN()

	t.Run("Should interpolate interior gaps and hold edges", func(t *testing.T) {
		got := FillMissing([]float64{nan, 1, nan, nan, 4, nan})
		assert.Equal(t, []float64{1, 1, 2, 3, 4, 4}, got)
	})

	t.Run("Should return zeros for an all-missing signal", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0}, FillMissing([]float64{nan, nan}))
	})
}

func TestClean(t *testing.T) {
	t.Run("Should remove high-frequency noise and keep the level", func(t *testing.T) {
		n := int(30 * fs)
		raw := testutil.DC(5, n)
		noise := testutil.DeterministicSine(10, fs, 0.2, n)
		for i := range raw {
			raw[i] += noise[i]
		}

		out, filtered := Clean(raw, fs, DefaultConfig())
		require.True(t, filtered)
		require.Len(t, out, n)
		for i := 100; i < n-100; i++ {
			assert.InDelta(t, 5, out[i], 0.01)
		}
	})

	t.Run("Should skip filtering when the rate cannot support the cutoff", func(t *testing.T) {
		raw := []float64{1, 2, 3, 4}
		out, filtered := Clean(raw, 4, DefaultConfig())
		assert.False(t, filtered)
		assert.Equal(t, raw, out)
	})
}

func TestDecompose(t *testing.T) {
	raw := testutil.SyntheticEDA(fs, 120, []float64{30, 70}, 0.5, 1)

	t.Run("Should split into tonic and phasic with the highpass method", func(t *testing.T) {
		comps, err := Decompose(raw, fs, DefaultConfig())
		require.NoError(t, err)
		require.Equal(t, len(raw), comps.Len())
		require.Len(t, comps.Tonic, len(raw))

		// tonic stays near the 5 µS baseline, phasic carries the responses
		mid := len(raw) / 2
		assert.InDelta(t, 5, comps.Tonic[mid], 0.6)
		peak := sampleAt(31.2)
		assert.Greater(t, comps.Phasic[peak], 0.2)
		testutil.RequireFinite(t, comps.Phasic)
	})

	t.Run("Should reconstruct the signal with the median method", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Method = MethodMedian

		comps, err := Decompose(raw, fs, cfg)
		require.NoError(t, err)
		for i := range raw {
			assert.InDelta(t, raw[i], comps.Tonic[i]+comps.Phasic[i], 1e-9)
		}
	})

	t.Run("Should reject invalid input", func(t *testing.T) {
		_, err := Decompose(raw, 0, DefaultConfig())
		assert.ErrorIs(t, err, ErrInvalidSampleRate)

		_, err = Decompose([]float64{1, 2}, fs, DefaultConfig())
		assert.ErrorIs(t, err, ErrTooShort)

		cfg := DefaultConfig()
		cfg.Method = "wavelet"
		_, err = Decompose(raw, fs, cfg)
		assert.ErrorIs(t, err, ErrUnknownMethod)
	})
}

func TestStandardizedDecomposition(t *testing.T) {
	raw := testutil.SyntheticEDA(fs, 60, []float64{20}, 0.5, 4)

	std, comps, err := StandardizedDecomposition(raw, fs, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, std, len(raw))
	require.Equal(t, len(raw), comps.Len())

	sum := 0.0
	for _, v := range std {
		sum += v
	}
	assert.InDelta(t, 0, sum/float64(len(std)), 1e-9)
}

func TestFindPeaks(t *testing.T) {
	t.Run("Should find onset, peak, amplitude and half recovery", func(t *testing.T) {
		phasic := []float64{0, 0, 1, 3, 4, 3, 2, 1, 0.5, 0.5, 2, 1, 0}

		peaks := FindPeaks(phasic, 1, 0.1)
		require.Len(t, peaks, 2)

		first := peaks[0]
		assert.Equal(t, 1, first.Onset)
		assert.Equal(t, 4, first.Peak)
		assert.Equal(t, 4.0, first.Amplitude)
		assert.Equal(t, 3.0, first.RiseTime)
		assert.Equal(t, 6, first.Recovery)
		assert.Equal(t, 2.0, first.RecoveryTime)

		second := peaks[1]
		assert.Equal(t, 9, second.Onset)
		assert.Equal(t, 10, second.Peak)
		assert.InDelta(t, 1.5, second.Amplitude, 1e-12)
		assert.Equal(t, 11, second.Recovery)
	})

	t.Run("Should drop responses below the relative amplitude", func(t *testing.T) {
		phasic := []float64{0, 10, 0, 0.5, 0}
		peaks := FindPeaks(phasic, 1, 0.1)
		require.Len(t, peaks, 1)
		assert.Equal(t, 1, peaks[0].Peak)
	})

	t.Run("Should report missing recovery", func(t *testing.T) {
		peaks := FindPeaks([]float64{0, 2, 1.5}, 1, 0.1)
		require.Len(t, peaks, 1)
		assert.Equal(t, -1, peaks[0].Recovery)
		assert.True(t, math.IsNaN(peaks[0].RecoveryTime))
	})

	t.Run("Should treat a falling plateau as one peak", func(t *testing.T) {
		peaks := FindPeaks([]float64{0, 2, 2, 2, 0}, 1, 0.1)
		require.Len(t, peaks, 1)
		assert.Equal(t, 1, peaks[0].Peak)

		assert.Empty(t, FindPeaks([]float64{0, 2, 2, 3, 0}[:4], 1, 0.1))
	})

	t.Run("Should return nil for flat input", func(t *testing.T) {
		assert.Nil(t, FindPeaks([]float64{1, 1, 1, 1}, 1, 0.1))
	})
}

func TestProcess(t *testing.T) {
	onsets := []float64{20, 60, 100, 140}
	raw := testutil.SyntheticEDA(fs, 180, onsets, 0.6, 5)

	s, err := Process(raw, fs, DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, len(raw), s.Len())
	assert.True(t, s.Filtered)

	t.Run("Should locate one response per injected SCR", func(t *testing.T) {
		require.Len(t, s.SCRs, len(onsets))
		for k, scr := range s.SCRs {
			onset := onsets[k] * fs
			assert.InDelta(t, onset+1.2*fs, float64(scr.Peak), 1.5*fs)
			assert.Greater(t, scr.Amplitude, 0.3)
			assert.Equal(t, 1.0, s.Peaks[scr.Peak])
			assert.Equal(t, 1.0, s.Onsets[scr.Onset])
			assert.Equal(t, scr.Amplitude, s.Amplitude[scr.Peak])
		}
	})

	t.Run("Should expose every column in order", func(t *testing.T) {
		cols := s.Columns()
		require.Len(t, cols, len(SignalColumns))
		for i, c := range cols {
			assert.Equal(t, SignalColumns[i], c.Name)
			assert.Len(t, c.Values, len(raw))
		}
	})

	t.Run("Should slice with re-indexed responses", func(t *testing.T) {
		start, end := int(50*fs), int(90*fs)
		sub := Slice(s, start, end)
		assert.Equal(t, end-start, sub.Len())
		assert.Equal(t, start, sub.Offset)
		require.Len(t, sub.SCRs, 1)
		assert.Equal(t, s.SCRs[1].Peak-start, sub.SCRs[0].Peak)
		assert.Equal(t, 1.0, sub.Peaks[sub.SCRs[0].Peak])

		clamped := Slice(s, -10, 1<<30)
		assert.Equal(t, s.Len(), clamped.Len())
	})

	t.Run("Should compute interval features", func(t *testing.T) {
		f := IntervalFeatures(s, DefaultConfig())
		assert.Equal(t, len(onsets), f.PeaksN)
		assert.Greater(t, f.PeaksAmplitudeMean, 0.3)
		assert.Greater(t, f.TonicSD, 0.0)
		assert.False(t, math.IsNaN(f.Sympathetic))
		assert.Greater(t, f.SympatheticNormalized, 0.0)
		assert.LessOrEqual(t, f.SympatheticNormalized, 1.0)
		assert.False(t, math.IsNaN(f.Autocorrelation))
		assert.Len(t, f.Values(), len(FeatureNames))
	})

	t.Run("Should report NaN spectral features on short intervals", func(t *testing.T) {
		f := IntervalFeatures(Slice(s, 0, int(40*fs)), DefaultConfig())
		assert.True(t, math.IsNaN(f.Sympathetic))
		assert.False(t, math.IsNaN(f.Autocorrelation))

		f = IntervalFeatures(Slice(s, 0, int(10*fs)), DefaultConfig())
		assert.True(t, math.IsNaN(f.Autocorrelation))
	})
}

func TestSegment(t *testing.T) {
	raw := testutil.SyntheticEDA(fs, 130, []float64{10, 70}, 0.5, 6)
	s, err := Process(raw, fs, DefaultConfig())
	require.NoError(t, err)

	t.Run("Should cut full segments only", func(t *testing.T) {
		epochs := Segment(s, 60)
		require.Len(t, epochs, 2)
		assert.Equal(t, "1", epochs[0].Label)
		assert.Equal(t, "2", epochs[1].Label)
		assert.Equal(t, int(60*fs), epochs[1].Start)
		assert.Equal(t, int(60*fs), epochs[0].Signals.Len())

		feats := SegmentFeatures(epochs, DefaultConfig())
		require.Len(t, feats, 2)
		assert.Equal(t, "2", feats[1].Label)
		assert.Equal(t, 1, feats[0].PeaksN)
	})

	t.Run("Should return nil when fewer than two segments fit", func(t *testing.T) {
		assert.Nil(t, Segment(s, 100))
		assert.Nil(t, Segment(s, 0))
	})
}
