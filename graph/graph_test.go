package graph_test

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/njchilds90/mathkit"
	"github.com/njchilds90/mathkit/graph"
)

func scene(t *testing.T, exprs ...string) *graph.Scene {
	t.Helper()
	sc, err := graph.FromExpressions(mathkit.NewSystem(), graph.DefaultWindow(), "x", exprs...)
	require.NoError(t, err)
	return sc
}

// ============================================================
// Window
// ============================================================

func TestWindow_Default(t *testing.T) {
	w := graph.DefaultWindow()
	assert.Equal(t, mathkit.N(20), w.Width())
	assert.Equal(t, mathkit.N(20), w.Height())
	assert.True(t, w.Contains(mathkit.N(10)))
	assert.False(t, w.Contains(mathkit.N(10.5)))
	assert.False(t, w.Contains(mathkit.NComplex(0, 1)))
}

func TestPoint_String(t *testing.T) {
	p := graph.Point{X: mathkit.N(1.5), Y: mathkit.N(-2)}
	assert.Equal(t, "(1.5, -2)", p.String())
}

// ============================================================
// Scene
// ============================================================

func TestScene_FromExpressions(t *testing.T) {
	sc := scene(t, "x^2", "2x + 1")
	require.Len(t, sc.Plots(), 2)
	assert.Equal(t, "y1(x)", sc.Label(0))
	assert.Equal(t, "y2(x)", sc.Label(1))

	y, err := sc.At(1, mathkit.N(3))
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(7), y)
}

func TestScene_FromExpressions_Error(t *testing.T) {
	_, err := graph.FromExpressions(mathkit.NewSystem(), graph.DefaultWindow(), "x", "(x+1")
	assert.ErrorIs(t, err, mathkit.ErrSyntax)
}

func TestScene_SampleBreaksAtPole(t *testing.T) {
	sc := scene(t, "1/x")
	sc.Resolution = 5
	assert.Equal(t, []float64{-10, -5, 0, 5, 10}, sc.Xs())

	segments := sc.Sample(0)
	require.Len(t, segments, 2)
	assert.Len(t, segments[0], 2)
	assert.Len(t, segments[1], 2)
}

func TestScene_SampleClipsToWindow(t *testing.T) {
	sc := scene(t, "(x)^(2)")
	sc.Resolution = 21
	for _, seg := range sc.Sample(0) {
		for _, p := range seg {
			assert.LessOrEqual(t, p.Y, 10.0)
		}
	}
}

func TestScene_FindZero(t *testing.T) {
	sc := scene(t, "2x-1")
	p, ok, err := sc.FindZero(graph.Point{X: mathkit.N(2), Y: mathkit.N(3)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.5, p.X.Real, 1e-9)
	assert.Len(t, sc.Zeros(), 1)
}

func TestScene_FindIntersect(t *testing.T) {
	sc := scene(t, "x", "2-x")
	p, ok, err := sc.FindIntersect(graph.Point{X: mathkit.N(0), Y: mathkit.N(0)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1, p.X.Real, 1e-9)
	assert.InDelta(t, 1, p.Y.Real, 1e-9)
	assert.Len(t, sc.Intersects(), 1)

	sc.ClearPoints()
	assert.Empty(t, sc.Intersects())
}

func TestScene_FindIntersect_HiddenPlot(t *testing.T) {
	sc := scene(t, "x", "2-x")
	sc.SetVisible(1, false)
	_, ok, err := sc.FindIntersect(graph.Point{X: mathkit.N(0), Y: mathkit.N(0)})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestScene_FindExtreme(t *testing.T) {
	sc := scene(t, "(x)^(2) - 4x")
	p, ok, err := sc.FindExtreme(graph.Point{X: mathkit.N(0), Y: mathkit.N(0)})
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 2, p.X.Real, 1e-6)
	assert.InDelta(t, -4, p.Y.Real, 1e-6)
	assert.Len(t, sc.Extremes(), 1)
}

// ============================================================
// Rendering
// ============================================================

func TestScene_RenderPNG(t *testing.T) {
	sc := scene(t, "sin(x)", "1/x")
	var buf bytes.Buffer
	require.NoError(t, sc.RenderPNG(&buf, 4*vg.Inch, 3*vg.Inch))
	assert.True(t, strings.HasPrefix(buf.String(), "\x89PNG"))
}

func TestScene_RenderHTML(t *testing.T) {
	sc := scene(t, "sin(x)", "x")
	_, _, err := sc.FindIntersect(graph.Point{X: mathkit.N(0), Y: mathkit.N(0)})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, sc.RenderHTML(&buf))
	assert.Contains(t, buf.String(), "y1(x)")
	assert.Contains(t, buf.String(), "y2(x)")
}

func TestScene_Handler(t *testing.T) {
	sc := scene(t, "x")
	rec := httptest.NewRecorder()
	sc.Handler(rec, httptest.NewRequest("GET", "/plot", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "echarts")
}
