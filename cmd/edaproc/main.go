// Command edaproc analyses electrodermal activity recordings exported as
// Shimmer CSV files.
//
// Usage:
//
//	edaproc list
//	edaproc inspect [file]
//	edaproc analyze [file] [flags]
//
// Without a file argument the data directory is scanned. When it holds
// several recordings, an interactive picker is shown on a terminal;
// otherwise --index selects one.
//
// Examples:
//
//	edaproc analyze --data-dir data --html --xlsx
//	edaproc analyze data/subject01.csv --segment 2m --out-dir results
//	EDA_OUTPUT_DIR=results edaproc analyze --index 0
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
