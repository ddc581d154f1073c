package render

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/cwbudde/algo-eda/eda"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("render: no data")

// Options controls figure output.
type Options struct {
	DPI int
}

// DefaultOptions returns 300 dpi output.
func DefaultOptions() Options {
	return Options{DPI: 300}
}

func (o Options) dpi() int {
	if o.DPI <= 0 {
		return DefaultOptions().DPI
	}
	return o.DPI
}

// Preview draws the first seconds of s as three stacked panels: raw and
// cleaned EDA with peaks, phasic with onsets and peaks, and tonic.
func Preview(s *eda.Signals, seconds float64, path string, opt Options) error {
	if s == nil || s.Len() == 0 {
		return ErrNoData
	}
	n := s.Len()
	if seconds > 0 {
		n = min(n, int(seconds*s.SamplingRate))
	}
	v := eda.Slice(s, 0, n)
	t := TimeAxis(v.Len(), v.SamplingRate, 1)

	var onsets, peaks []int
	for _, scr := range v.SCRs {
		onsets = append(onsets, scr.Onset)
		peaks = append(peaks, scr.Peak)
	}

	raw := newPlot("Raw and cleaned EDA", "", "EDA (µS)")
	if err := addTrace(raw, "Raw", t, v.Raw, withAlpha(Grey, 0.8), vg.Points(1)); err != nil {
		return err
	}
	if err := addTrace(raw, "Cleaned", t, v.Clean, Blue, vg.Points(1.5)); err != nil {
		return err
	}
	if err := addMarkers(raw, "SCR peaks", t, v.Clean, peaks, Red, draw.CircleGlyph{}); err != nil {
		return err
	}

	phasic := newPlot("Phasic component", "", "µS")
	if err := addTrace(phasic, "Phasic", t, v.Phasic, Red, vg.Points(1.5)); err != nil {
		return err
	}
	if err := addMarkers(phasic, "Onsets", t, v.Phasic, onsets, Black, draw.TriangleGlyph{}); err != nil {
		return err
	}
	if err := addMarkers(phasic, "Peaks", t, v.Phasic, peaks, Red, draw.CircleGlyph{}); err != nil {
		return err
	}

	tonic := newPlot("Tonic component", "Time (s)", "µS")
	if err := addTrace(tonic, "Tonic", t, v.Tonic, Green, vg.Points(1.5)); err != nil {
		return err
	}

	return saveStack(path, []*plot.Plot{raw, phasic, tonic}, 12*vg.Inch, 9*vg.Inch, opt.dpi())
}

// Separate draws the standardized signal, phasic and tonic components as
// three panels over time in minutes.
func Separate(minutes, standardized []float64, c eda.Components, path string, opt Options) error {
	if len(minutes) == 0 {
		return ErrNoData
	}

	orig := newPlot("Standardized EDA", "", "z")
	if err := addTrace(orig, "", minutes, standardized, Blue, vg.Points(1)); err != nil {
		return err
	}
	phasic := newPlot("Phasic component (SCR)", "", "z")
	if err := addTrace(phasic, "", minutes, c.Phasic, Red, vg.Points(1)); err != nil {
		return err
	}
	tonic := newPlot("Tonic component (SCL)", "Time (min)", "z")
	if err := addTrace(tonic, "", minutes, c.Tonic, Green, vg.Points(1)); err != nil {
		return err
	}

	return saveStack(path, []*plot.Plot{orig, phasic, tonic}, 20*vg.Inch, 12*vg.Inch, opt.dpi())
}

// Combined overlays motion, the standardized signal and both components in
// one panel. motion may be nil.
func Combined(minutes, standardized []float64, c eda.Components, motion []float64, path string, opt Options) error {
	if len(minutes) == 0 {
		return ErrNoData
	}

	p := newPlot("EDA components", "Time (min)", "Standardized amplitude")
	if motion != nil {
		if err := addTrace(p, "Motion", minutes, motion, withAlpha(Grey, 0.3), vg.Points(1)); err != nil {
			return err
		}
	}
	traces := []struct {
		name string
		y    []float64
		c    color.NRGBA
	}{
		{"Original", standardized, Blue},
		{"Phasic", c.Phasic, Red},
		{"Tonic", c.Tonic, Green},
	}
	for _, tr := range traces {
		if err := addTrace(p, tr.name, minutes, tr.y, withAlpha(tr.c, 0.6), vg.Points(1)); err != nil {
			return err
		}
	}

	return saveStack(path, []*plot.Plot{p}, 15*vg.Inch, 8*vg.Inch, opt.dpi())
}

// saveStack draws plots top to bottom on a single PNG canvas.
func saveStack(path string, plots []*plot.Plot, w, h vg.Length, dpi int) (err error) {
	img := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	dc := draw.New(img)

	grid := make([][]*plot.Plot, len(plots))
	for i, p := range plots {
		grid[i] = []*plot.Plot{p}
	}
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadX:      vg.Millimeter,
		PadY:      4 * vg.Millimeter,
		PadTop:    2 * vg.Millimeter,
		PadBottom: 2 * vg.Millimeter,
		PadLeft:   2 * vg.Millimeter,
		PadRight:  2 * vg.Millimeter,
	}
	canvases := plot.Align(grid, tiles, dc)
	for i, p := range plots {
		p.Draw(canvases[i][0])
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

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
