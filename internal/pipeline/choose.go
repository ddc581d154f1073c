package pipeline

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-eda/recording"
)

// ErrNoChooser is returned when several files are found but no Chooser was
// supplied.
var ErrNoChooser = errors.New("several CSV files found; choose one")

// Chooser picks one of several candidate files.
type Chooser interface {
	Choose(files []string) (int, error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(files []string) (int, error)

// Choose calls f.
func (f ChooserFunc) Choose(files []string) (int, error) { return f(files) }

// IndexChooser picks a fixed zero-based index.
type IndexChooser int

// Choose returns the index when it is in range.
func (c IndexChooser) Choose(files []string) (int, error) {
	if int(c) < 0 || int(c) >= len(files) {
		return 0, fmt.Errorf("file index %d out of range [0, %d)", int(c), len(files))
	}
	return int(c), nil
}

// Choose returns the file to process: the only file, or the one picked by
// ch when there are several.
func Choose(files []string, ch Chooser) (string, error) {
	switch len(files) {
	case 0:
		return "", recording.ErrNoCSVFiles
	case 1:
		return files[0], nil
	}

	if ch == nil {
		return "", ErrNoChooser
	}
	i, err := ch.Choose(files)
	if err != nil {
		return "", err
	}
	if i < 0 || i >= len(files) {
		return "", fmt.Errorf("file index %d out of range [0, %d)", i, len(files))
	}
	return files[i], nil
}
