package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/crosspath/internal/analysis"
)

// WriteHTML renders the crossing points of hits as an interactive
// scatter chart. The axes are pinned to the test window.
func WriteHTML(w io.Writer, title string, window analysis.Window, hits []analysis.Hit) error {
	data := make([]opts.ScatterData, 0, len(hits))
	for _, h := range hits {
		data = append(data, opts.ScatterData{
			Name:  fmt.Sprintf("pair (%d, %d)", h.A, h.B),
			Value: []interface{}{h.Point.X, h.Point.Y},
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("window=%s crossings=%d", window, len(hits))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Min: window.Low, Max: window.High, Name: "X", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Min: window.Low, Max: window.High, Name: "Y", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("crossings", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 6}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render scatter: %w", err)
	}
	return nil
}
