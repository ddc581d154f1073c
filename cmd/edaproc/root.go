package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cwbudde/algo-eda/internal/config"
	"github.com/cwbudde/algo-eda/internal/logger"
	"github.com/cwbudde/algo-eda/internal/pipeline"
	"github.com/cwbudde/algo-eda/recording"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"data-dir":      "input.data_dir",
	"sampling-rate": "input.sampling_rate",
	"delimiter":     "input.delimiter",
	"method":        "processing.phasic_method",
	"segment":       "processing.segment_duration",
	"out-dir":       "output.dir",
	"png":           "output.png",
	"html":          "output.html",
	"xlsx":          "output.xlsx",
	"dpi":           "output.dpi",
	"db":            "output.database",
	"log-level":     "log.level",
	"log-json":      "log.json",
	"log-source":    "log.source",
}

type app struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
	chooser    pipeline.Chooser
	out        io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{out: os.Stdout}

	root := &cobra.Command{
		Use:           "edaproc",
		Short:         "Process electrodermal activity recordings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(os.Stdout)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.String("data-dir", "", "directory scanned for CSV recordings")
	pf.Float64("sampling-rate", 0, "sampling rate in Hz")
	pf.String("delimiter", "", `field separator: ",", ";", "tab" (default: detect)`)
	pf.String("log-level", "", "log level: debug, info, warn, error, disabled")
	pf.Bool("log-json", false, "log as JSON")
	pf.Bool("log-source", false, "include source location in logs")

	root.AddCommand(
		newListCmd(a),
		newInspectCmd(a),
		newAnalyzeCmd(a),
	)

	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, overrides(cmd.Flags()))
	if err != nil {
		return err
	}
	a.cfg = cfg

	lc := logger.DefaultConfig()
	lc.Level = logger.ParseLevel(cfg.Log.Level)
	lc.JSON = cfg.Log.JSON
	lc.AddSource = cfg.Log.Source
	a.log = logger.NewLogger(lc)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.ContextWithLogger(ctx, a.log))
	a.out = cmd.OutOrStdout()

	return nil
}

// overrides collects the explicitly set flags as configuration overrides.
func overrides(fs *pflag.FlagSet) map[string]any {
	out := map[string]any{}
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})
	return out
}

// resolveInput returns args[0] or a file chosen from the data directory.
func (a *app) resolveInput(args []string, index int) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	files, err := recording.Discover(a.cfg.Input.DataDir)
	if err != nil {
		return "", err
	}

	ch := a.chooser
	switch {
	case index >= 0:
		ch = pipeline.IndexChooser(index)
	case ch == nil && interactive():
		ch = huhChooser{}
	}

	path, err := pipeline.Choose(files, ch)
	if errors.Is(err, pipeline.ErrNoChooser) {
		return "", fmt.Errorf("%w in %s: pass a file argument or --index (0-%d)", err, a.cfg.Input.DataDir, len(files)-1)
	}
	return path, err
}
