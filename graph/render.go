package graph

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ============================================================
// PNG rendering
// ============================================================

// Plot builds a gonum plot of every visible function together with the
// zeros, intersections and extrema found so far.
func (sc *Scene) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.X.Min, p.X.Max = sc.Window.MinX.Real, sc.Window.MaxX.Real
	p.Y.Min, p.Y.Max = sc.Window.MinY.Real, sc.Window.MaxY.Real
	p.Add(plotter.NewGrid())

	for i, pl := range sc.plots {
		if !pl.Visible {
			continue
		}
		for k, seg := range sc.Sample(i) {
			if len(seg) < 2 {
				continue
			}
			line, err := plotter.NewLine(segmentXYs(seg))
			if err != nil {
				return nil, fmt.Errorf("plot %s: %w", sc.Label(i), err)
			}
			line.LineStyle.Color = plotutil.Color(i)
			line.LineStyle.Width = vg.Points(1.5)
			p.Add(line)
			if k == 0 {
				p.Legend.Add(sc.Label(i), line)
			}
		}
	}

	marks := []struct {
		name   string
		points []Point
		shape  draw.GlyphDrawer
	}{
		{"zero", sc.zeros, draw.CircleGlyph{}},
		{"intersect", sc.intersects, draw.SquareGlyph{}},
		{"extreme", sc.extremes, draw.TriangleGlyph{}},
	}
	for _, m := range marks {
		if len(m.points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(m.points))
		for k, pt := range m.points {
			xys[k].X, xys[k].Y = pt.X.Real, pt.Y.Real
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("%s points: %w", m.name, err)
		}
		scatter.GlyphStyle.Shape = m.shape
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Color = color.Black
		p.Add(scatter)
		p.Legend.Add(m.name, scatter)
	}
	return p, nil
}

// RenderPNG writes the scene as a width by height PNG image.
func (sc *Scene) RenderPNG(w io.Writer, width, height vg.Length) error {
	p, err := sc.Plot()
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func segmentXYs(seg Segment) plotter.XYs {
	xys := make(plotter.XYs, len(seg))
	for k, s := range seg {
		xys[k].X, xys[k].Y = s.X, s.Y
	}
	return xys
}
