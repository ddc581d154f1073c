package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eda/eda"
	"github.com/cwbudde/algo-eda/internal/pipeline"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	index := -1

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Run the full EDA analysis and write plots and tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolveInput(args, index)
			if err != nil {
				return err
			}

			res, err := pipeline.Run(cmd.Context(), a.cfg, path, a.log)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "run %s: %d SCRs in %d samples\n", res.RunID, len(res.Signals.SCRs), res.Signals.Len())
			for i, v := range res.Features.Values() {
				fmt.Fprintf(a.out, "  %-26s %.6g\n", eda.FeatureNames[i], v)
			}
			for _, p := range res.Outputs {
				fmt.Fprintf(a.out, "wrote %s\n", p)
			}
			fmt.Fprintf(a.out, "wrote %s\n", res.Manifest)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("out-dir", "", "output directory")
	f.String("method", "", "phasic decomposition: highpass or median")
	f.Duration("segment", 0, "segment duration for segmented features")
	f.Bool("png", true, "write PNG figures")
	f.Bool("html", false, "write an interactive HTML report")
	f.Bool("xlsx", false, "write an XLSX workbook")
	f.Int("dpi", 0, "PNG resolution")
	f.String("db", "", "SQLite database recording the run")
	f.IntVar(&index, "index", -1, "zero-based file index when the data directory holds several recordings")

	return cmd
}
