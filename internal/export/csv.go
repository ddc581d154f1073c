package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/cwbudde/algo-eda/eda"
)

// FormatFloat renders v with the shortest exact representation; NaN is empty.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTable writes columns with an index column to w. index may be nil,
// in which case rows are numbered from offset.
func WriteTable(w io.Writer, index []string, offset int, columns []eda.Column) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, len(columns)+1)
	header = append(header, "")
	rows := 0
	for _, c := range columns {
		header = append(header, c.Name)
		rows = max(rows, len(c.Values))
	}
	if index != nil {
		rows = len(index)
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(header))
	for i := 0; i < rows; i++ {
		if index != nil {
			record[0] = index[i]
		} else {
			record[0] = strconv.Itoa(offset + i)
		}
		for j, c := range columns {
			record[j+1] = ""
			if i < len(c.Values) {
				record[j+1] = FormatFloat(c.Values[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeFile(path string, fn func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// FeatureColumns returns the feature table as columns in eda.FeatureNames
// order, plus the row labels.
func FeatureColumns(features []eda.Features) ([]string, []eda.Column) {
	labels := make([]string, len(features))
	cols := make([]eda.Column, len(eda.FeatureNames))
	for j, name := range eda.FeatureNames {
		cols[j] = eda.Column{Name: name, Values: make([]float64, len(features))}
	}

	for i, f := range features {
		labels[i] = f.Label
		if labels[i] == "" {
			labels[i] = strconv.Itoa(i)
		}
		for j, v := range f.Values() {
			cols[j].Values[i] = v
		}
	}

	return labels, cols
}

// WriteFeatures writes one row per Features, indexed by label.
func WriteFeatures(path string, features []eda.Features) error {
	labels, cols := FeatureColumns(features)
	return writeFile(path, func(w io.Writer) error {
		return WriteTable(w, labels, 0, cols)
	})
}

// WriteSignals writes the processed signal table.
func WriteSignals(path string, s *eda.Signals) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteTable(w, nil, s.Offset, s.Columns())
	})
}

// ComponentColumns returns the tonic and phasic columns.
func ComponentColumns(c eda.Components) []eda.Column {
	return []eda.Column{
		{Name: eda.ColTonic, Values: c.Tonic},
		{Name: eda.ColPhasic, Values: c.Phasic},
	}
}

// WriteComponents writes the tonic/phasic decomposition.
func WriteComponents(path string, c eda.Components) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteTable(w, nil, 0, ComponentColumns(c))
	})
}
