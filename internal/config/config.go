// Package config loads edaproc settings from defaults, an optional YAML
// file, EDA_ prefixed environment variables and command-line overrides.
package config

import (
	"fmt"
	"time"

	"github.com/cwbudde/algo-eda/eda"
	"github.com/cwbudde/algo-eda/recording"
)

// Config is the complete edaproc configuration.
type Config struct {
	Input      InputConfig      `koanf:"input"      validate:"required"`
	Processing ProcessingConfig `koanf:"processing" validate:"required"`
	Output     OutputConfig     `koanf:"output"     validate:"required"`
	Log        LogConfig        `koanf:"log"`
}

// InputConfig describes where recordings live and how they are laid out.
type InputConfig struct {
	DataDir         string   `koanf:"data_dir"         validate:"required"`
	SamplingRate    float64  `koanf:"sampling_rate"    validate:"gt=0"`
	TimestampColumn string   `koanf:"timestamp_column" validate:"required"`
	GSRColumn       string   `koanf:"gsr_column"       validate:"required"`
	AccelColumns    []string `koanf:"accel_columns"    validate:"len=3,dive,required"`
	// Delimiter is one of "", ",", ";", "tab"; empty sniffs the header.
	Delimiter string `koanf:"delimiter"`
}

// ProcessingConfig holds signal processing parameters.
type ProcessingConfig struct {
	CleanCutoff     float64       `koanf:"clean_cutoff"     validate:"gt=0"`
	CleanOrder      int           `koanf:"clean_order"      validate:"min=1,max=12"`
	PhasicMethod    string        `koanf:"phasic_method"    validate:"oneof=highpass median"`
	PhasicCutoff    float64       `koanf:"phasic_cutoff"    validate:"gt=0"`
	PhasicOrder     int           `koanf:"phasic_order"     validate:"min=1,max=12"`
	MedianWindow    time.Duration `koanf:"median_window"    validate:"gt=0"`
	AmplitudeMin    float64       `koanf:"amplitude_min"    validate:"gte=0,lt=1"`
	SegmentDuration time.Duration `koanf:"segment_duration" validate:"gt=0"`
	PreviewDuration time.Duration `koanf:"preview_duration" validate:"gt=0"`
	MotionWindow    time.Duration `koanf:"motion_window"    validate:"gt=0"`
}

// OutputConfig selects the artefacts written by a run.
type OutputConfig struct {
	Dir  string `koanf:"dir"  validate:"required"`
	PNG  bool   `koanf:"png"`
	HTML bool   `koanf:"html"`
	XLSX bool   `koanf:"xlsx"`
	DPI  int    `koanf:"dpi"  validate:"min=50,max=1200"`
	// Database is a SQLite file path; empty disables persistence.
	Database string `koanf:"database"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"oneof=debug info warn error disabled"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cols := recording.DefaultColumns()
	proc := eda.DefaultConfig()

	return &Config{
		Input: InputConfig{
			DataDir:         "data",
			SamplingRate:    recording.DefaultSamplingRate,
			TimestampColumn: cols.Timestamp,
			GSRColumn:       cols.GSR,
			AccelColumns:    cols.Accel[:],
		},
		Processing: ProcessingConfig{
			CleanCutoff:     proc.CleanCutoff,
			CleanOrder:      proc.CleanOrder,
			PhasicMethod:    string(proc.Method),
			PhasicCutoff:    proc.PhasicCutoff,
			PhasicOrder:     proc.PhasicOrder,
			MedianWindow:    4 * time.Second,
			AmplitudeMin:    proc.AmplitudeMin,
			SegmentDuration: 300 * time.Second,
			PreviewDuration: 60 * time.Second,
			MotionWindow:    time.Second,
		},
		Output: OutputConfig{
			Dir: ".",
			PNG: true,
			DPI: 300,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DelimiterRune returns the configured field separator, 0 for auto.
func (c InputConfig) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case ";":
		return ';', nil
	case "tab", "\t":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", c.Delimiter)
	}
}

// RecordingOptions converts the input section for recording.Load.
func (c *Config) RecordingOptions() (recording.Options, error) {
	delim, err := c.Input.DelimiterRune()
	if err != nil {
		return recording.Options{}, err
	}

	var accel [3]string
	copy(accel[:], c.Input.AccelColumns)

	return recording.Options{
		Columns: recording.Columns{
			Timestamp: c.Input.TimestampColumn,
			GSR:       c.Input.GSRColumn,
			Accel:     accel,
		},
		SamplingRate: c.Input.SamplingRate,
		Delimiter:    delim,
	}, nil
}

// EDA converts the processing section for package eda.
func (c *Config) EDA() eda.Config {
	cfg := eda.DefaultConfig()
	cfg.CleanCutoff = c.Processing.CleanCutoff
	cfg.CleanOrder = c.Processing.CleanOrder
	cfg.Method = eda.Method(c.Processing.PhasicMethod)
	cfg.PhasicCutoff = c.Processing.PhasicCutoff
	cfg.PhasicOrder = c.Processing.PhasicOrder
	cfg.MedianWindow = c.Processing.MedianWindow.Seconds()
	cfg.AmplitudeMin = c.Processing.AmplitudeMin
	return cfg
}
