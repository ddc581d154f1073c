package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eda/internal/config"
	"github.com/cwbudde/algo-eda/internal/logger"
	"github.com/cwbudde/algo-eda/internal/store"
	"github.com/cwbudde/algo-eda/internal/testutil"
	"github.com/cwbudde/algo-eda/recording"
)

const fs = 51.2

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfg.Output.DPI = 20
	return cfg
}

func writeRecording(t *testing.T, seconds float64) string {
	t.Helper()
	onsets := []float64{20, 90, 200, 330, 480, 610}
	gsr := testutil.SyntheticEDA(fs, seconds, onsets, 0.4, 3)
	return testutil.WriteShimmerCSV(t, t.TempDir(), "subject.csv", gsr, fs, ",")
}

func TestRun(t *testing.T) {
	log := logger.NewLogger(logger.TestConfig())

	t.Run("Should write every output for a long recording", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Output.HTML = true
		cfg.Output.XLSX = true
		cfg.Output.Database = filepath.Join(t.TempDir(), "eda.db")
		path := writeRecording(t, 660)

		res, err := Run(context.Background(), cfg, path, log)
		require.NoError(t, err)

		assert.NotEmpty(t, res.RunID)
		assert.Equal(t, int(660*fs), res.Info.Samples)
		assert.Positive(t, res.Features.PeaksN)
		require.Len(t, res.Segments, 2)
		assert.Equal(t, "1", res.Segments[0].Label)

		for _, name := range []string{
			FilePreview, FileSeparate, FileCombined,
			FileFeatures, FileSegmentedFeatures, FileSignals, FileComponents,
			FileReport, FileWorkbook, ManifestName,
		} {
			info, err := os.Stat(filepath.Join(cfg.Output.Dir, name))
			require.NoError(t, err, name)
			assert.Positive(t, info.Size(), name)
		}

		m, err := ReadManifest(res.Manifest)
		require.NoError(t, err)
		assert.Equal(t, res.RunID, m.RunID)
		assert.Equal(t, 2, m.Segments)
		assert.Equal(t, res.Outputs, m.Outputs)
		assert.InDelta(t, fs, m.InferredRate, 0.01)
		assert.Equal(t, float64(res.Features.PeaksN), m.Features["SCR_Peaks_N"])

		db, err := store.Open(context.Background(), cfg.Output.Database)
		require.NoError(t, err)
		defer db.Close()
		stored, err := db.Features(context.Background(), res.RunID)
		require.NoError(t, err)
		assert.Len(t, stored, 3)
	})

	t.Run("Should skip segmentation and plots when disabled", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Output.PNG = false
		path := writeRecording(t, 120)

		res, err := Run(context.Background(), cfg, path, log)
		require.NoError(t, err)
		assert.Empty(t, res.Segments)

		_, err = os.Stat(filepath.Join(cfg.Output.Dir, FileSegmentedFeatures))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(cfg.Output.Dir, FilePreview))
		assert.True(t, os.IsNotExist(err))
		assert.Len(t, res.Outputs, 3)
	})

	t.Run("Should stop on a cancelled context", func(t *testing.T) {
		cfg := testConfig(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Run(ctx, cfg, writeRecording(t, 60), log)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Should report a missing GSR column", func(t *testing.T) {
		cfg := testConfig(t)
		path := testutil.WriteFile(t, t.TempDir(), "bad.csv", "TimestampSync,Other\n1,2\n")

		_, err := Run(context.Background(), cfg, path, log)
		assert.ErrorIs(t, err, recording.ErrMissingColumn)
	})

	t.Run("Should use the context logger when none is given", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Output.PNG = false
		ctx := logger.ContextWithLogger(context.Background(), log)

		_, err := Run(ctx, cfg, writeRecording(t, 60), nil)
		assert.NoError(t, err)
	})
}

func TestChoose(t *testing.T) {
	files := []string{"a.csv", "b.csv", "c.csv"}

	t.Run("Should fail without files", func(t *testing.T) {
		_, err := Choose(nil, IndexChooser(0))
		assert.ErrorIs(t, err, recording.ErrNoCSVFiles)
	})

	t.Run("Should return a single file without asking", func(t *testing.T) {
		got, err := Choose(files[:1], nil)
		require.NoError(t, err)
		assert.Equal(t, "a.csv", got)
	})

	t.Run("Should require a chooser for several files", func(t *testing.T) {
		_, err := Choose(files, nil)
		assert.ErrorIs(t, err, ErrNoChooser)
	})

	t.Run("Should pick by index", func(t *testing.T) {
		got, err := Choose(files, IndexChooser(2))
		require.NoError(t, err)
		assert.Equal(t, "c.csv", got)

		_, err = Choose(files, IndexChooser(3))
		assert.Error(t, err)
	})

	t.Run("Should propagate chooser errors", func(t *testing.T) {
		boom := errors.New("aborted")
		_, err := Choose(files, ChooserFunc(func([]string) (int, error) { return 0, boom }))
		assert.ErrorIs(t, err, boom)
	})
}
