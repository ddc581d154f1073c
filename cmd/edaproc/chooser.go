package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// errAborted is returned when the picker is cancelled.
var errAborted = errors.New("selection aborted")

// interactive reports whether stdin and stdout are terminals.
func interactive() bool {
	in := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	out := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return in && out
}

// huhChooser asks the user to pick a recording.
type huhChooser struct{}

func (huhChooser) Choose(files []string) (int, error) {
	options := make([]huh.Option[int], len(files))
	for i, f := range files {
		options[i] = huh.NewOption(filepath.Base(f), i)
	}

	choice := 0
	err := huh.NewSelect[int]().
		Title("Recording").
		Description("Several CSV files were found. Pick one to analyse.").
		Options(options...).
		Value(&choice).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return 0, errAborted
	}
	if err != nil {
		return 0, err
	}
	return choice, nil
}
