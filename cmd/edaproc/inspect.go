package main

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eda/recording"
)

func newInspectCmd(a *app) *cobra.Command {
	index := -1

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Load a recording and print its layout and GSR summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.resolveInput(args, index)
			if err != nil {
				return err
			}

			opt, err := a.cfg.RecordingOptions()
			if err != nil {
				return err
			}
			rec, err := recording.Load(path, opt)
			if err != nil {
				return err
			}

			printInfo(a.out, recording.Inspect(rec))
			return nil
		},
	}
	cmd.Flags().IntVar(&index, "index", -1, "zero-based file index when the data directory holds several recordings")

	return cmd
}

func printInfo(out io.Writer, info recording.Info) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "File\t%s\n", info.Path)
	fmt.Fprintf(w, "Columns\t%s\n", strings.Join(info.Columns, ", "))
	fmt.Fprintf(w, "Samples\t%d\n", info.Samples)
	fmt.Fprintf(w, "Sampling rate\t%.2f Hz\n", info.SamplingRate)
	if !math.IsNaN(info.InferredRate) {
		fmt.Fprintf(w, "Inferred rate\t%.2f Hz\n", info.InferredRate)
	}
	if !info.Start.IsZero() {
		fmt.Fprintf(w, "Start\t%s\n", info.Start.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "End\t%s\n", info.End.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Duration\t%s\n", info.Duration.Round(time.Millisecond))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "GSR\tValue")
	fmt.Fprintln(w, "---\t-----")
	for _, r := range info.GSR.Rows() {
		fmt.Fprintf(w, "%s\t%.6g\n", r.Label, r.Value)
	}

	w.Flush()
}
