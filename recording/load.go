package recording

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-eda/stats/describe"
)

// DefaultSamplingRate is the nominal rate of Shimmer GSR+ units in Hz.
const DefaultSamplingRate = 51.2

// Columns names the header fields holding each required signal.
type Columns struct {
	Timestamp string
	GSR       string
	Accel     [3]string
}

// DefaultColumns returns the Shimmer export layout.
func DefaultColumns() Columns {
	return Columns{
		Timestamp: "TimestampSync",
		GSR:       "Skin_Conductance",
		Accel:     [3]string{"Accel_LN_X", "Accel_LN_Y", "Accel_LN_Z"},
	}
}

// Options controls Load.
type Options struct {
	Columns Columns
	// SamplingRate is the fixed device rate in Hz. Zero selects
	// DefaultSamplingRate.
	SamplingRate float64
	// Delimiter separates fields. Zero sniffs the header line.
	Delimiter rune
}

// DefaultOptions returns options for a Shimmer export.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns(), SamplingRate: DefaultSamplingRate}
}

// Recording holds one loaded file. Missing numeric cells are NaN.
type Recording struct {
	Path         string
	Header       []string
	Delimiter    rune
	Timestamps   []float64 // ms since the Unix epoch
	GSR          []float64
	AccelX       []float64
	AccelY       []float64
	AccelZ       []float64
	SamplingRate float64
	// GSRMoments is accumulated while reading.
	GSRMoments describe.Moments
}

// Len returns the number of samples.
func (r *Recording) Len() int { return len(r.GSR) }

// Duration returns the nominal length in seconds from sample count and rate.
func (r *Recording) Duration() float64 {
	if r.SamplingRate <= 0 {
		return 0
	}
	return float64(r.Len()) / r.SamplingRate
}

// Load reads and validates the recording at path.
func Load(path string, opt Options) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	return Read(f, path, opt)
}

// Read parses a recording from r; name is recorded as the Path.
func Read(r io.Reader, name string, opt Options) (*Recording, error) {
	if opt.Columns == (Columns{}) {
		opt.Columns = DefaultColumns()
	}
	if opt.SamplingRate <= 0 || math.IsNaN(opt.SamplingRate) || math.IsInf(opt.SamplingRate, 0) {
		opt.SamplingRate = DefaultSamplingRate
	}

	br := bufio.NewReader(r)
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}

	reader := csv.NewReader(br)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: %w", name, ErrEmptyRecording)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = append([]string(nil), header...)
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	idx, err := resolveColumns(header, opt.Columns)
	if err != nil {
		return nil, err
	}

	rec := &Recording{
		Path:         name,
		Header:       header,
		Delimiter:    delim,
		SamplingRate: opt.SamplingRate,
	}
	targets := []*[]float64{&rec.Timestamps, &rec.GSR, &rec.AccelX, &rec.AccelY, &rec.AccelZ}
	moments := describe.NewStreaming()

	rowNum := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		if isBlank(row) {
			continue
		}

		for k, col := range idx {
			v, err := parseCell(row, col)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", rowNum, header[col], err)
			}
			*targets[k] = append(*targets[k], v)
		}
		moments.Add(rec.GSR[len(rec.GSR)-1])
	}

	if rec.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyRecording)
	}
	rec.GSRMoments = moments.Result()

	return rec, nil
}

// resolveColumns returns header indices ordered timestamp, GSR, X, Y, Z.
// The first missing column in that order is reported.
func resolveColumns(header []string, cols Columns) ([]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	wanted := []struct {
		name string
		role Role
	}{
		{cols.Timestamp, RoleTimestamp},
		{cols.GSR, RoleGSR},
		{cols.Accel[0], RoleAccel},
		{cols.Accel[1], RoleAccel},
		{cols.Accel[2], RoleAccel},
	}

	idx := make([]int, len(wanted))
	for k, w := range wanted {
		i, ok := pos[w.name]
		if !ok {
			return nil, &MissingColumnError{Column: w.name, Role: w.role}
		}
		idx[k] = i
	}

	return idx, nil
}

func parseCell(row []string, col int) (float64, error) {
	if col >= len(row) {
		return math.NaN(), nil
	}

	s := strings.TrimSpace(row[col])
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "na") {
		return math.NaN(), nil
	}

	return strconv.ParseFloat(s, 64)
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// sniffDelimiter picks the most frequent of ',', ';' and '\t' in the first
// line without consuming it. Ties and empty input fall back to ','.
func sniffDelimiter(br *bufio.Reader) rune {
	line, _ := br.Peek(br.Size())
	if i := strings.IndexByte(string(line), '\n'); i >= 0 {
		line = line[:i]
	}

	best, bestCount := ',', 0
	for _, d := range []rune{',', ';', '\t'} {
		if n := strings.Count(string(line), string(d)); n > bestCount {
			best, bestCount = d, n
		}
	}

	return best
}
