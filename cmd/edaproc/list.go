package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-eda/recording"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List CSV recordings in the data directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := recording.Discover(a.cfg.Input.DataDir)
			if err != nil {
				return err
			}
			for i, f := range files {
				fmt.Fprintf(a.out, "%3d  %s\n", i, filepath.Base(f))
			}
			return nil
		},
	}
}
