package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-eda/eda"
	"github.com/cwbudde/algo-eda/stats/describe"
)

// Sheet names of the results workbook.
const (
	SheetSummary    = "Summary"
	SheetFeatures   = "Features"
	SheetSegments   = "Segments"
	SheetComponents = "Components"
)

// Workbook is the content of the XLSX results file.
type Workbook struct {
	GSR        describe.Summary
	Features   []eda.Features
	Segments   []eda.Features
	Components eda.Components
}

// WriteWorkbook saves wb to path. The Segments sheet is omitted when there
// are no segments.
func WriteWorkbook(path string, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	summary := [][]any{{"statistic", "GSR"}}
	for _, r := range wb.GSR.Rows() {
		summary = append(summary, []any{r.Label, cellValue(r.Value)})
	}
	if err := setRows(f, SheetSummary, summary); err != nil {
		return err
	}

	if err := writeFeatureSheet(f, SheetFeatures, wb.Features); err != nil {
		return err
	}
	if len(wb.Segments) > 0 {
		if err := writeFeatureSheet(f, SheetSegments, wb.Segments); err != nil {
			return err
		}
	}
	if err := writeColumnSheet(f, SheetComponents, ComponentColumns(wb.Components)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeFeatureSheet(f *excelize.File, sheet string, features []eda.Features) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	labels, cols := FeatureColumns(features)
	header := []any{"Label"}
	for _, c := range cols {
		header = append(header, c.Name)
	}

	rows := [][]any{header}
	for i, label := range labels {
		row := []any{label}
		for _, c := range cols {
			row = append(row, cellValue(c.Values[i]))
		}
		rows = append(rows, row)
	}

	return setRows(f, sheet, rows)
}

// writeColumnSheet streams long per-sample columns.
func writeColumnSheet(f *excelize.File, sheet string, cols []eda.Column) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("stream sheet %s: %w", sheet, err)
	}

	header := []any{"Sample"}
	rows := 0
	for _, c := range cols {
		header = append(header, c.Name)
		rows = max(rows, len(c.Values))
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}

	for i := 0; i < rows; i++ {
		row := make([]any, 0, len(cols)+1)
		row = append(row, i)
		for _, c := range cols {
			var v any
			if i < len(c.Values) {
				v = cellValue(c.Values[i])
			}
			row = append(row, v)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i, err)
		}
	}

	return sw.Flush()
}

func setRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

// cellValue maps NaN and infinities to empty cells.
func cellValue(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
