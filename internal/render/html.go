package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/cwbudde/algo-eda/eda"
)

// MaxHTMLPoints bounds the samples per series in the HTML report.
const MaxHTMLPoints = 5000

// Report is the content of the HTML report.
type Report struct {
	Title        string
	Minutes      []float64
	Standardized []float64
	Components   eda.Components
	Motion       []float64
	Features     eda.Features
	Segments     []eda.Features
}

// HTMLReport writes r as a standalone go-echarts page.
func HTMLReport(path string, r Report) (err error) {
	if len(r.Minutes) == 0 {
		return ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return WriteHTMLReport(f, r)
}

// WriteHTMLReport renders r to w.
func WriteHTMLReport(w io.Writer, r Report) error {
	title := r.Title
	if title == "" {
		title = "EDA report"
	}

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(componentsChart(title, r))
	if len(r.Segments) > 0 {
		page.AddCharts(segmentsChart(r.Segments))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

func componentsChart(title string, r Report) *charts.Line {
	stride := max(1, (len(r.Minutes)+MaxHTMLPoints-1)/MaxHTMLPoints)

	x := make([]string, 0, len(r.Minutes)/stride+1)
	for i := 0; i < len(r.Minutes); i += stride {
		x = append(x, strconv.FormatFloat(r.Minutes[i], 'f', 3, 64))
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "100%", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: featureSubtitle(r.Features)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Time (min)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Standardized amplitude"}),
	)
	line.SetXAxis(x)

	series := []struct {
		name  string
		y     []float64
		color string
	}{
		{"Motion", r.Motion, "grey"},
		{"Original", r.Standardized, "blue"},
		{"Phasic", r.Components.Phasic, "red"},
		{"Tonic", r.Components.Tonic, "green"},
	}
	for _, s := range series {
		if s.y == nil {
			continue
		}
		line.AddSeries(s.name, lineData(s.y, stride, len(r.Minutes)),
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.color}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: s.color, Width: 1}),
		)
	}

	return line
}

// lineData decimates y by stride; NaN becomes the ECharts gap marker.
func lineData(y []float64, stride, n int) []opts.LineData {
	out := make([]opts.LineData, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		if i >= len(y) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			out = append(out, opts.LineData{Value: "-"})
			continue
		}
		out = append(out, opts.LineData{Value: y[i]})
	}
	return out
}

func segmentsChart(segments []eda.Features) *charts.Bar {
	labels := make([]string, len(segments))
	peaks := make([]opts.BarData, len(segments))
	for i, s := range segments {
		labels[i] = s.Label
		peaks[i] = opts.BarData{Value: s.PeaksN}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: "SCR peaks per segment"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Segment"}),
	)
	bar.SetXAxis(labels).
		AddSeries("SCR_Peaks_N", peaks,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func featureSubtitle(f eda.Features) string {
	parts := make([]string, len(eda.FeatureNames))
	for i, v := range f.Values() {
		parts[i] = fmt.Sprintf("%s=%.4g", eda.FeatureNames[i], v)
	}
	return strings.Join(parts, "  ")
}
