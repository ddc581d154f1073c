package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Trace colours.
var (
	Blue  = color.NRGBA{B: 255, A: 255}
	Red   = color.NRGBA{R: 255, A: 255}
	Green = color.NRGBA{G: 128, A: 255}
	Grey  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	Black = color.NRGBA{A: 255}
)

// withAlpha returns c with opacity a in [0, 1].
func withAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
	return c
}

// runs splits x/y into contiguous runs of finite points.
func runs(x, y []float64) []plotter.XYs {
	n := min(len(x), len(y))
	var (
		out []plotter.XYs
		cur plotter.XYs
	)
	for i := 0; i < n; i++ {
		if !finite(x[i]) || !finite(y[i]) {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// addTrace adds y over x to p as line segments broken at NaN samples. The
// first segment carries the legend entry when name is non-empty.
func addTrace(p *plot.Plot, name string, x, y []float64, c color.Color, width vg.Length) error {
	for i, pts := range runs(x, y) {
		l, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		l.Color = c
		l.Width = width
		p.Add(l)
		if i == 0 && name != "" {
			p.Legend.Add(name, l)
		}
	}
	return nil
}

// addMarkers draws glyphs at the given sample indices of y.
func addMarkers(p *plot.Plot, name string, x, y []float64, idx []int, c color.Color, shape draw.GlyphDrawer) error {
	pts := make(plotter.XYs, 0, len(idx))
	for _, i := range idx {
		if i < 0 || i >= len(x) || i >= len(y) || !finite(y[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x[i], Y: y[i]})
	}
	if len(pts) == 0 {
		return nil
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	s.GlyphStyle.Color = c
	s.GlyphStyle.Shape = shape
	s.GlyphStyle.Radius = vg.Points(3)
	p.Add(s)
	if name != "" {
		p.Legend.Add(name, s)
	}
	return nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// TimeAxis returns the times i/fs of n samples divided by unit seconds.
func TimeAxis(n int, fs, unit float64) []float64 {
	t := make([]float64, n)
	for i := range t {
		t[i] = float64(i) / fs / unit
	}
	return t
}
