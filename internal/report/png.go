package report

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/crosspath/internal/analysis"
)

// WritePNG saves a static scatter of the crossing points to path. The
// image format follows the file extension (.png, .svg, .pdf).
func WritePNG(path, title string, window analysis.Window, hits []analysis.Hit) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"
	p.X.Min, p.X.Max = window.Low, window.High
	p.Y.Min, p.Y.Max = window.Low, window.High
	p.Add(plotter.NewGrid())

	outline, err := plotter.NewLine(plotter.XYs{
		{X: window.Low, Y: window.Low},
		{X: window.High, Y: window.Low},
		{X: window.High, Y: window.High},
		{X: window.Low, Y: window.High},
		{X: window.Low, Y: window.Low},
	})
	if err != nil {
		return fmt.Errorf("window outline: %w", err)
	}
	outline.Width = vg.Points(1)
	outline.Color = color.Gray{Y: 128}
	p.Add(outline)

	if len(hits) > 0 {
		pts := make(plotter.XYs, 0, len(hits))
		for _, h := range hits {
			pts = append(pts, plotter.XY{X: h.Point.X, Y: h.Point.Y})
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("scatter: %w", err)
		}
		s.GlyphStyle.Radius = vg.Points(2)
		s.GlyphStyle.Color = color.RGBA{R: 49, G: 104, B: 142, A: 255}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("crossings (%d)", len(hits)), s)
	}

	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}
