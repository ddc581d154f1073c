package recording

import (
	"errors"
	"fmt"
)

var (
	// ErrDataDirMissing is returned by Discover when the directory does not exist.
	ErrDataDirMissing = errors.New("data directory does not exist")
	// ErrNoCSVFiles is returned by Discover when the directory holds no CSV files.
	ErrNoCSVFiles = errors.New("no CSV files found")
	// ErrEmptyRecording is returned by Load for files without data rows.
	ErrEmptyRecording = errors.New("recording has no data rows")
	// ErrMissingColumn is wrapped by every MissingColumnError.
	ErrMissingColumn = errors.New("required column missing")
)

// Role names the purpose of a required column.
type Role string

const (
	RoleTimestamp Role = "timestamp"
	RoleGSR       Role = "GSR"
	RoleAccel     Role = "acceleration"
)

// MissingColumnError reports the first required column absent from the header.
type MissingColumnError struct {
	Column string
	Role   Role
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s column %q not found", e.Role, e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
