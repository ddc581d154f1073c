package export

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-eda/eda"
	"github.com/cwbudde/algo-eda/stats/describe"
)

func readLines(t *testing.T, path string) []string {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "", FormatFloat(math.NaN()))
	assert.Equal(t, "1", FormatFloat(1))
	assert.Equal(t, "0.1", FormatFloat(0.1))
	assert.Equal(t, "-2.5e-07", FormatFloat(-2.5e-7))
}

func TestWriteTable(t *testing.T) {
	t.Run("Should write an index column and ragged columns", func(t *testing.T) {
		var buf bytes.Buffer
		cols := []eda.Column{
			{Name: "a", Values: []float64{1, 2}},
			{Name: "b", Values: []float64{math.NaN()}},
		}

		require.NoError(t, WriteTable(&buf, nil, 10, cols))
		assert.Equal(t, ",a,b\n10,1,\n11,2,\n", buf.String())
	})
}

func TestWriteFeatures(t *testing.T) {
	t.Run("Should write labelled feature rows", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "eda_features.csv")
		features := []eda.Features{
			{PeaksN: 3, PeaksAmplitudeMean: 0.5, TonicSD: 0.25, Sympathetic: math.NaN(), SympatheticNormalized: math.NaN(), Autocorrelation: 0.75},
		}

		require.NoError(t, WriteFeatures(path, features))

		lines := readLines(t, path)
		require.Len(t, lines, 2)
		assert.Equal(t, ","+strings.Join(eda.FeatureNames, ","), lines[0])
		assert.Equal(t, "0,3,0.5,0.25,,,0.75", lines[1])
	})

	t.Run("Should use segment labels as index", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "eda_segmented_features.csv")
		features := []eda.Features{{Label: "1"}, {Label: "2"}}

		require.NoError(t, WriteFeatures(path, features))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[2], "2,0,"))
	})
}

func TestWriteSignalsAndComponents(t *testing.T) {
	s := &eda.Signals{
		Offset:       5,
		Raw:          []float64{1, 2},
		Clean:        []float64{1, 2},
		Tonic:        []float64{1, 1},
		Phasic:       []float64{0, 1},
		Onsets:       []float64{1, 0},
		Peaks:        []float64{0, 1},
		Height:       []float64{0, 1},
		Amplitude:    []float64{0, 1},
		RiseTime:     []float64{0, 0.5},
		Recovery:     []float64{0, 0},
		RecoveryTime: []float64{0, 0},
	}
	dir := t.TempDir()

	t.Run("Should write every signal column", func(t *testing.T) {
		path := filepath.Join(dir, "eda_processed_signals.csv")
		require.NoError(t, WriteSignals(path, s))

		lines := readLines(t, path)
		require.Len(t, lines, 3)
		assert.Equal(t, ","+strings.Join(eda.SignalColumns, ","), lines[0])
		assert.Equal(t, "6,2,2,1,1,0,1,1,1,0.5,0,0", lines[2])
	})

	t.Run("Should write tonic and phasic", func(t *testing.T) {
		path := filepath.Join(dir, "eda_components.csv")
		require.NoError(t, WriteComponents(path, s.Components()))

		assert.Equal(t, []string{",EDA_Tonic,EDA_Phasic", "0,1,0", "1,1,1"}, readLines(t, path))
	})

	t.Run("Should fail for an unwritable path", func(t *testing.T) {
		err := WriteComponents(filepath.Join(dir, "missing", "x.csv"), s.Components())
		assert.Error(t, err)
	})
}

func TestWriteWorkbook(t *testing.T) {
	t.Run("Should write summary, feature and component sheets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "eda_results.xlsx")
		wb := Workbook{
			GSR:        describe.Describe([]float64{1, 2, 3}),
			Features:   []eda.Features{{PeaksN: 2, PeaksAmplitudeMean: 0.4, Sympathetic: math.NaN()}},
			Segments:   []eda.Features{{Label: "1", PeaksN: 1}, {Label: "2"}},
			Components: eda.Components{Tonic: []float64{5, 5.1}, Phasic: []float64{0, 0.2}},
		}

		require.NoError(t, WriteWorkbook(path, wb))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{SheetSummary, SheetFeatures, SheetSegments, SheetComponents}, f.GetSheetList())

		rows, err := f.GetRows(SheetSummary)
		require.NoError(t, err)
		assert.Equal(t, []string{"mean", "2"}, rows[2])

		rows, err = f.GetRows(SheetFeatures)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "SCR_Peaks_N", rows[0][1])
		assert.Equal(t, "2", rows[1][1])

		rows, err = f.GetRows(SheetSegments)
		require.NoError(t, err)
		assert.Len(t, rows, 3)

		rows, err = f.GetRows(SheetComponents)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"Sample", "EDA_Tonic", "EDA_Phasic"}, rows[0])
		assert.Equal(t, "5.1", rows[2][1])
	})

	t.Run("Should omit the segments sheet without segments", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "eda_results.xlsx")
		require.NoError(t, WriteWorkbook(path, Workbook{GSR: describe.Describe([]float64{1})}))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()
		assert.NotContains(t, f.GetSheetList(), SheetSegments)
	})
}
