// Package graph is the plotting boundary of mathkit: a Window onto the
// plane, a Scene of plotted functions, and searches for the zero,
// intersection or extremum nearest a point the user picked. Rendering to
// PNG and HTML lives in render.go and html.go.
package graph

import (
	"fmt"
	"math"

	"github.com/njchilds90/mathkit"
)

// ============================================================
// Window and Point
// ============================================================

// Window is the visible region of the plane.
type Window struct {
	MinX, MaxX mathkit.Number
	MinY, MaxY mathkit.Number
}

// DefaultWindow spans -10..10 on both axes.
func DefaultWindow() Window {
	return Window{MinX: mathkit.N(-10), MaxX: mathkit.N(10), MinY: mathkit.N(-10), MaxY: mathkit.N(10)}
}

func (w Window) Width() mathkit.Number  { return w.MaxX.Sub(w.MinX) }
func (w Window) Height() mathkit.Number { return w.MaxY.Sub(w.MinY) }

// Contains reports whether y lies between MinY and MaxY.
func (w Window) Contains(y mathkit.Number) bool {
	above, err1 := w.MinY.LessEqual(y)
	below, err2 := y.LessEqual(w.MaxY)
	return err1 == nil && err2 == nil && above && below
}

type Point struct {
	X, Y mathkit.Number
}

func (p Point) String() string { return "(" + p.X.String() + ", " + p.Y.String() + ")" }

// ============================================================
// Scene
// ============================================================

// DefaultResolution is the number of samples taken across the window.
const DefaultResolution = 400

// Plot is one function drawn in a scene.
type Plot struct {
	Func    mathkit.FuncID
	Visible bool
}

// Scene holds the plotted functions of one System together with the points
// found on them. A Scene shares the System's single-threaded contract.
type Scene struct {
	System     *mathkit.System
	Window     Window
	Resolution int

	plots      []Plot
	zeros      []Point
	intersects []Point
	extremes   []Point
}

func NewScene(s *mathkit.System, w Window) *Scene {
	return &Scene{System: s, Window: w, Resolution: DefaultResolution}
}

// FromExpressions defines y1, y2, ... in s as functions of variable, one
// per expression, and returns a scene plotting them.
func FromExpressions(s *mathkit.System, w Window, variable string, exprs ...string) (*Scene, error) {
	sc := NewScene(s, w)
	for i, e := range exprs {
		id, err := s.DefineFunction(fmt.Sprintf("y%d", i+1), []string{variable}, e)
		if err != nil {
			return nil, fmt.Errorf("graph: %q: %w", e, err)
		}
		sc.Add(id)
	}
	return sc, nil
}

// Add plots the one-parameter function id and returns its index.
func (sc *Scene) Add(id mathkit.FuncID) int {
	sc.plots = append(sc.plots, Plot{Func: id, Visible: true})
	return len(sc.plots) - 1
}

// SetVisible shows or hides plot i.
func (sc *Scene) SetVisible(i int, visible bool) { sc.plots[i].Visible = visible }

func (sc *Scene) Plots() []Plot       { return append([]Plot(nil), sc.plots...) }
func (sc *Scene) Zeros() []Point      { return append([]Point(nil), sc.zeros...) }
func (sc *Scene) Intersects() []Point { return append([]Point(nil), sc.intersects...) }
func (sc *Scene) Extremes() []Point   { return append([]Point(nil), sc.extremes...) }

// ClearPoints forgets every zero, intersection and extremum found so far.
func (sc *Scene) ClearPoints() {
	sc.zeros, sc.intersects, sc.extremes = nil, nil, nil
}

// Label is the printable name of plot i, such as "f(x)".
func (sc *Scene) Label(i int) string {
	fn := sc.System.Func(sc.plots[i].Func)
	return fn.Name + "(" + sc.System.Symbol(fn.Params[0]) + ")"
}

// At evaluates plot i at x.
func (sc *Scene) At(i int, x mathkit.Number) (mathkit.Number, error) {
	v, err := sc.System.EvaluateAt(sc.plots[i].Func, []mathkit.Value{x})
	if err != nil {
		return mathkit.Number{}, err
	}
	return sc.System.Evaluate(v)
}

func (sc *Scene) application(i int, param mathkit.VarID) mathkit.FunctionValue {
	return mathkit.FunctionValue{Func: sc.plots[i].Func, Args: []mathkit.Value{mathkit.Var(param)}}
}

func (sc *Scene) param(i int) mathkit.VarID { return sc.System.Func(sc.plots[i].Func).Params[0] }

// nearest returns the visible plot whose value at p.X is closest to p.Y.
func (sc *Scene) nearest(p Point) (int, bool) {
	best, bestDistance := -1, math.Inf(1)
	for i, pl := range sc.plots {
		if !pl.Visible {
			continue
		}
		y, err := sc.At(i, p.X)
		if err != nil {
			continue
		}
		d, ok := p.Y.Sub(y).Abs()
		if !ok {
			continue
		}
		if d.Real < bestDistance {
			best, bestDistance = i, d.Real
		}
	}
	return best, best >= 0
}

// FindZero finds a zero of the plot nearest p, starting from p.X, and
// records it.
func (sc *Scene) FindZero(p Point) (Point, bool, error) {
	i, ok := sc.nearest(p)
	if !ok {
		return Point{}, false, nil
	}
	x := sc.param(i)
	zero, ok, err := sc.System.FindZero(sc.application(i, x), p.X, x)
	if err != nil || !ok {
		return Point{}, false, err
	}
	pt := Point{X: zero, Y: mathkit.Zero}
	sc.zeros = append(sc.zeros, pt)
	return pt, true, nil
}

// FindIntersect intersects the plot nearest p with every other visible plot
// and records the intersection closest to p.X.
func (sc *Scene) FindIntersect(p Point) (Point, bool, error) {
	i, ok := sc.nearest(p)
	if !ok {
		return Point{}, false, nil
	}
	var best Point
	found := false
	for j, pl := range sc.plots {
		if j == i || !pl.Visible {
			continue
		}
		x := sc.param(j)
		at, ok, err := sc.System.FindIntersect(sc.application(i, x), sc.application(j, x), p.X, x)
		if err != nil || !ok {
			continue
		}
		y, err := sc.At(j, at)
		if err != nil {
			continue
		}
		if !found || math.Abs(best.X.Real-p.X.Real) > math.Abs(at.Real-p.X.Real) {
			best, found = Point{X: at, Y: y}, true
		}
	}
	if found {
		sc.intersects = append(sc.intersects, best)
	}
	return best, found, nil
}

// FindExtreme finds a local minimum or maximum of the plot nearest p and
// records it.
func (sc *Scene) FindExtreme(p Point) (Point, bool, error) {
	i, ok := sc.nearest(p)
	if !ok {
		return Point{}, false, nil
	}
	x := sc.param(i)
	at, ok, err := sc.System.FindExtreme(sc.application(i, x), p.X, x)
	if err != nil || !ok {
		return Point{}, false, err
	}
	y, err := sc.At(i, at)
	if err != nil {
		return Point{}, false, err
	}
	pt := Point{X: at, Y: y}
	sc.extremes = append(sc.extremes, pt)
	return pt, true, nil
}

// ============================================================
// Sampling
// ============================================================

// Segment is a run of samples drawn as one connected line.
type Segment []Sample

type Sample struct {
	X, Y float64
}

// Xs returns the x coordinates sampled across the window.
func (sc *Scene) Xs() []float64 {
	n := sc.Resolution
	if n < 2 {
		n = 2
	}
	lo, width := sc.Window.MinX.Real, sc.Window.Width().Real
	xs := make([]float64, n)
	for k := range xs {
		xs[k] = lo + width*float64(k)/float64(n-1)
	}
	return xs
}

// Sample evaluates plot i across the window. Undefined, complex and
// out-of-window values break the curve, as does a jump of more than three
// times the previous step.
func (sc *Scene) Sample(i int) []Segment {
	var segments []Segment
	var last, lastChange *float64
	for _, x := range sc.Xs() {
		y, err := sc.At(i, mathkit.N(x))
		if err != nil || !y.IsReal() || math.IsNaN(y.Real) || !sc.Window.Contains(y) {
			last, lastChange = nil, nil
			continue
		}
		cur := y.Real
		pt := Sample{X: x, Y: cur}
		switch {
		case last == nil:
			segments = append(segments, Segment{pt})
		case lastChange == nil:
			segments[len(segments)-1] = append(segments[len(segments)-1], pt)
		case math.Abs(*last+*lastChange-cur) <= math.Abs(*lastChange)*3:
			segments[len(segments)-1] = append(segments[len(segments)-1], pt)
		default:
			segments = append(segments, Segment{pt})
		}
		if last != nil {
			change := cur - *last
			lastChange = &change
		}
		last = &cur
	}
	return segments
}
