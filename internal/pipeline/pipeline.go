// Package pipeline runs the full EDA analysis of one recording and writes
// its outputs.
package pipeline

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/cwbudde/algo-eda/eda"
	"github.com/cwbudde/algo-eda/internal/config"
	"github.com/cwbudde/algo-eda/internal/export"
	"github.com/cwbudde/algo-eda/internal/logger"
	"github.com/cwbudde/algo-eda/internal/render"
	"github.com/cwbudde/algo-eda/internal/store"
	"github.com/cwbudde/algo-eda/recording"
)

// Output file names.
const (
	FilePreview           = "eda_plot_60s.png"
	FileSeparate          = "eda_components_separate.png"
	FileCombined          = "eda_components_combined.png"
	FileFeatures          = "eda_features.csv"
	FileSegmentedFeatures = "eda_segmented_features.csv"
	FileSignals           = "eda_processed_signals.csv"
	FileComponents        = "eda_components.csv"
	FileReport            = "eda_report.html"
	FileWorkbook          = "eda_results.xlsx"
)

// rateTolerance is the relative mismatch between configured and inferred
// sampling rate that is logged as a warning.
const rateTolerance = 0.05

// Result is the outcome of Run.
type Result struct {
	RunID    string
	Input    string
	Info     recording.Info
	Signals  *eda.Signals
	Features eda.Features
	Segments []eda.Features
	Outputs  []string
	Manifest string
}

type run struct {
	cfg    *config.Config
	eda    eda.Config
	log    logger.Logger
	outDir string
	res    *Result
}

// Run analyses the recording at path. log may be nil, in which case the
// logger stored in ctx is used.
func Run(ctx context.Context, cfg *config.Config, path string, log logger.Logger) (*Result, error) {
	if log == nil {
		log = logger.FromContext(ctx)
	}
	r := &run{
		cfg:    cfg,
		eda:    cfg.EDA(),
		log:    log.With("file", filepath.Base(path)),
		outDir: cfg.Output.Dir,
		res:    &Result{RunID: uuid.NewString(), Input: path},
	}
	started := time.Now()

	if err := os.MkdirAll(r.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	opt, err := cfg.RecordingOptions()
	if err != nil {
		return nil, err
	}
	rec, err := recording.Load(path, opt)
	if err != nil {
		return nil, err
	}
	r.inspect(rec)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fs := rec.SamplingRate
	motion := recording.Motion(rec, cfg.Processing.MotionWindow.Seconds())

	signals, err := eda.Process(rec.GSR, fs, r.eda)
	if err != nil {
		return nil, fmt.Errorf("process %s: %w", path, err)
	}
	r.res.Signals = signals
	if !signals.Filtered {
		r.log.Warn("recording too short for the cleaning filter; using raw signal", "samples", signals.Len())
	}
	r.log.Info("processed signal", "samples", signals.Len(), "scrs", len(signals.SCRs), "method", r.eda.Method)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	standardized, comps, err := eda.StandardizedDecomposition(rec.GSR, fs, r.eda)
	if err != nil {
		return nil, fmt.Errorf("decompose %s: %w", path, err)
	}
	minutes := render.TimeAxis(len(standardized), fs, 60)

	if cfg.Output.PNG {
		if err := r.plots(signals, minutes, standardized, comps, motion); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.res.Features = eda.IntervalFeatures(signals, r.eda)
	if epochs := eda.Segment(signals, cfg.Processing.SegmentDuration.Seconds()); epochs != nil {
		r.res.Segments = eda.SegmentFeatures(epochs, r.eda)
		r.log.Info("segmented recording", "segments", len(epochs), "segment_seconds", cfg.Processing.SegmentDuration.Seconds())
	} else {
		r.log.Info("recording shorter than two segments; skipping segmentation")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.exports(comps); err != nil {
		return nil, err
	}
	if cfg.Output.HTML {
		err := render.HTMLReport(r.path(FileReport), render.Report{
			Title:        filepath.Base(path),
			Minutes:      minutes,
			Standardized: standardized,
			Components:   comps,
			Motion:       motion,
			Features:     r.res.Features,
			Segments:     r.res.Segments,
		})
		if err != nil {
			return nil, err
		}
		r.wrote(FileReport)
	}
	if cfg.Output.XLSX {
		err := export.WriteWorkbook(r.path(FileWorkbook), export.Workbook{
			GSR:        r.res.Info.GSR,
			Features:   []eda.Features{r.res.Features},
			Segments:   r.res.Segments,
			Components: comps,
		})
		if err != nil {
			return nil, err
		}
		r.wrote(FileWorkbook)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if cfg.Output.Database != "" {
		if err := r.persist(ctx); err != nil {
			return nil, err
		}
	}

	if err := r.manifest(); err != nil {
		return nil, err
	}

	r.log.Info("analysis complete", "run_id", r.res.RunID, "outputs", len(r.res.Outputs), "elapsed", time.Since(started))
	return r.res, nil
}

func (r *run) path(name string) string {
	return filepath.Join(r.outDir, name)
}

func (r *run) wrote(name string) {
	p := r.path(name)
	r.res.Outputs = append(r.res.Outputs, p)
	r.log.Debug("wrote output", "path", p)
}

func (r *run) inspect(rec *recording.Recording) {
	info := recording.Inspect(rec)
	r.res.Info = info
	r.log.Info("loaded recording",
		"samples", info.Samples,
		"start", info.Start,
		"duration", info.Duration,
		"sampling_rate", info.SamplingRate,
	)

	if !math.IsNaN(info.InferredRate) && math.Abs(info.InferredRate-info.SamplingRate) > rateTolerance*info.SamplingRate {
		r.log.Warn("timestamps disagree with configured sampling rate",
			"configured", info.SamplingRate,
			"inferred", info.InferredRate,
		)
	}
	if info.GSR.Count < info.Samples {
		r.log.Warn("recording has missing GSR samples", "missing", info.Samples-info.GSR.Count)
	}
}

func (r *run) plots(s *eda.Signals, minutes, standardized []float64, comps eda.Components, motion []float64) error {
	opt := render.Options{DPI: r.cfg.Output.DPI}

	if err := render.Preview(s, r.cfg.Processing.PreviewDuration.Seconds(), r.path(FilePreview), opt); err != nil {
		return fmt.Errorf("preview plot: %w", err)
	}
	r.wrote(FilePreview)

	if err := render.Separate(minutes, standardized, comps, r.path(FileSeparate), opt); err != nil {
		return fmt.Errorf("components plot: %w", err)
	}
	r.wrote(FileSeparate)

	if err := render.Combined(minutes, standardized, comps, motion, r.path(FileCombined), opt); err != nil {
		return fmt.Errorf("combined plot: %w", err)
	}
	r.wrote(FileCombined)

	return nil
}

func (r *run) exports(comps eda.Components) error {
	if err := export.WriteFeatures(r.path(FileFeatures), []eda.Features{r.res.Features}); err != nil {
		return err
	}
	r.wrote(FileFeatures)

	if len(r.res.Segments) > 0 {
		if err := export.WriteFeatures(r.path(FileSegmentedFeatures), r.res.Segments); err != nil {
			return err
		}
		r.wrote(FileSegmentedFeatures)
	}

	if err := export.WriteSignals(r.path(FileSignals), r.res.Signals); err != nil {
		return err
	}
	r.wrote(FileSignals)

	if err := export.WriteComponents(r.path(FileComponents), comps); err != nil {
		return err
	}
	r.wrote(FileComponents)

	return nil
}

func (r *run) persist(ctx context.Context) error {
	db, err := store.Open(ctx, r.cfg.Output.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	info := r.res.Info
	id, err := db.SaveRun(ctx, store.RunRecord{
		RunID:        r.res.RunID,
		Path:         r.res.Input,
		Samples:      info.Samples,
		SamplingRate: info.SamplingRate,
		Start:        info.Start,
		End:          info.End,
		Features:     append([]eda.Features{r.res.Features}, r.res.Segments...),
	})
	if err != nil {
		return err
	}
	r.log.Info("stored run", "database", r.cfg.Output.Database, "recording_id", id)
	return nil
}

func (r *run) manifest() error {
	features := make(map[string]float64, len(eda.FeatureNames))
	for i, v := range r.res.Features.Values() {
		features[eda.FeatureNames[i]] = v
	}

	r.res.Manifest = r.path(ManifestName)
	return WriteManifest(r.res.Manifest, Manifest{
		RunID:        r.res.RunID,
		CreatedAt:    time.Now().UTC(),
		Input:        r.res.Input,
		Samples:      r.res.Info.Samples,
		SamplingRate: r.res.Info.SamplingRate,
		InferredRate: r.res.Info.InferredRate,
		Method:       string(r.eda.Method),
		Filtered:     r.res.Signals.Filtered,
		Segments:     len(r.res.Segments),
		Features:     features,
		Outputs:      r.res.Outputs,
	})
}
