package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-eda/eda"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edaproc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("Should return defaults without sources", func(t *testing.T) {
		cfg, err := Load("", nil)
		require.NoError(t, err)

		assert.Equal(t, "data", cfg.Input.DataDir)
		assert.Equal(t, 51.2, cfg.Input.SamplingRate)
		assert.Equal(t, []string{"Accel_LN_X", "Accel_LN_Y", "Accel_LN_Z"}, cfg.Input.AccelColumns)
		assert.Equal(t, "highpass", cfg.Processing.PhasicMethod)
		assert.Equal(t, 300*time.Second, cfg.Processing.SegmentDuration)
		assert.Equal(t, 4*time.Second, cfg.Processing.MedianWindow)
		assert.Equal(t, 300, cfg.Output.DPI)
		assert.True(t, cfg.Output.PNG)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("Should merge YAML over defaults", func(t *testing.T) {
		path := writeYAML(t, `
input:
  sampling_rate: 128
  delimiter: ";"
processing:
  phasic_method: median
  median_window: 8s
  segment_duration: 2m
output:
  html: true
`)
		cfg, err := Load(path, nil)
		require.NoError(t, err)

		assert.Equal(t, 128.0, cfg.Input.SamplingRate)
		assert.Equal(t, ";", cfg.Input.Delimiter)
		assert.Equal(t, "data", cfg.Input.DataDir)
		assert.Equal(t, "median", cfg.Processing.PhasicMethod)
		assert.Equal(t, 8*time.Second, cfg.Processing.MedianWindow)
		assert.Equal(t, 2*time.Minute, cfg.Processing.SegmentDuration)
		assert.True(t, cfg.Output.HTML)
		assert.True(t, cfg.Output.PNG)
	})

	t.Run("Should apply environment over YAML and overrides over both", func(t *testing.T) {
		path := writeYAML(t, "output:\n  dir: from-yaml\n  dpi: 150\n")
		t.Setenv("EDA_OUTPUT_DIR", "from-env")
		t.Setenv("EDA_INPUT_ACCEL_COLUMNS", "ax,ay,az")
		t.Setenv("EDA_LOG_LEVEL", "debug")

		cfg, err := Load(path, map[string]any{"log.level": "warn"})
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Output.Dir)
		assert.Equal(t, 150, cfg.Output.DPI)
		assert.Equal(t, []string{"ax", "ay", "az"}, cfg.Input.AccelColumns)
		assert.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("Should reject invalid values", func(t *testing.T) {
		_, err := Load(writeYAML(t, "processing:\n  phasic_method: wavelet\n"), nil)
		assert.ErrorContains(t, err, "validation failed")

		_, err = Load(writeYAML(t, "input:\n  delimiter: \"|\"\n"), nil)
		assert.ErrorContains(t, err, "delimiter")

		_, err = Load(writeYAML(t, "input:\n  sampling_rate: 0.08\n"), nil)
		assert.ErrorContains(t, err, "Nyquist")
	})

	t.Run("Should report a missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
		assert.Error(t, err)
	})

	t.Run("Should report malformed YAML", func(t *testing.T) {
		_, err := Load(writeYAML(t, "input: [\n"), nil)
		assert.ErrorContains(t, err, "parse")
	})
}

func TestConversions(t *testing.T) {
	t.Run("Should build recording options", func(t *testing.T) {
		cfg := Default()
		cfg.Input.Delimiter = "tab"

		opt, err := cfg.RecordingOptions()
		require.NoError(t, err)
		assert.Equal(t, '\t', opt.Delimiter)
		assert.Equal(t, "Skin_Conductance", opt.Columns.GSR)
		assert.Equal(t, "Accel_LN_Z", opt.Columns.Accel[2])
		assert.Equal(t, 51.2, opt.SamplingRate)
	})

	t.Run("Should build the EDA processing config", func(t *testing.T) {
		cfg := Default()
		cfg.Processing.PhasicMethod = "median"
		cfg.Processing.MedianWindow = 6 * time.Second

		got := cfg.EDA()
		assert.Equal(t, eda.MethodMedian, got.Method)
		assert.Equal(t, 6.0, got.MedianWindow)
		assert.Equal(t, 3.0, got.CleanCutoff)
	})
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "input.sampling_rate", transformEnvKey("INPUT_SAMPLING_RATE"))
	assert.Equal(t, "log.level", transformEnvKey("LOG__LEVEL"))
	assert.Equal(t, "dir", transformEnvKey("DIR"))
	assert.Equal(t, "", transformEnvKey("_"))
}
