package graph

import (
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// ============================================================
// HTML rendering
// ============================================================

// Chart builds an echarts line chart of every visible function. Samples
// that fall outside the curve's segments are left empty so the line breaks
// there.
func (sc *Scene) Chart() *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "mathkit",
			Subtitle: "x in [" + sc.Window.MinX.String() + ", " + sc.Window.MaxX.String() + "]",
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:       "inside",
			Start:      0,
			End:        100,
			XAxisIndex: []int{0},
		}),
	)

	xs := sc.Xs()
	labels := make([]string, len(xs))
	for k, x := range xs {
		labels[k] = strconv.FormatFloat(x, 'g', 6, 64)
	}
	line.SetXAxis(labels)

	for i, pl := range sc.plots {
		if !pl.Visible {
			continue
		}
		items := make([]opts.LineData, len(xs))
		for k := range items {
			items[k].Value = "-"
		}
		for _, seg := range sc.Sample(i) {
			for _, s := range seg {
				items[nearestIndex(xs, s.X)].Value = s.Y
			}
		}
		line.AddSeries(sc.Label(i), items)
	}
	return line
}

// PointChart builds a scatter chart of the zeros, intersections and
// extrema found so far.
func (sc *Scene) PointChart() *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title: "points",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
	)
	add := func(name string, points []Point) {
		items := make([]opts.ScatterData, len(points))
		for k, p := range points {
			items[k] = opts.ScatterData{Name: p.String(), Value: []interface{}{p.X.Real, p.Y.Real}}
		}
		scatter.AddSeries(name, items)
	}
	add("zero", sc.zeros)
	add("intersect", sc.intersects)
	add("extreme", sc.extremes)
	return scatter
}

// RenderHTML writes the scene as a standalone HTML page.
func (sc *Scene) RenderHTML(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(
		sc.Chart(),
		sc.PointChart(),
	)
	return page.Render(w)
}

// Handler serves the scene as HTML.
func (sc *Scene) Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := sc.RenderHTML(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func nearestIndex(xs []float64, x float64) int {
	best := 0
	for k := range xs {
		if math.Abs(xs[k]-x) < math.Abs(xs[best]-x) {
			best = k
		}
	}
	return best
}
