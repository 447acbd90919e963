package mathkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

func solve(t *testing.T, s *mathkit.System, equation, variable string) []mathkit.Number {
	t.Helper()
	eq, err := s.ParseEquation(equation)
	require.NoError(t, err, equation)
	sols, err := s.Solve(eq, s.Variable(variable))
	require.NoError(t, err, equation)
	return numbers(t, s, sols)
}

func numbers(t *testing.T, s *mathkit.System, vs []mathkit.Value) []mathkit.Number {
	t.Helper()
	out := make([]mathkit.Number, len(vs))
	for i, v := range vs {
		n, err := s.Evaluate(v)
		require.NoError(t, err, s.String(v))
		out[i] = n
	}
	return out
}

// ============================================================
// Single equations
// ============================================================

func TestSolve_Linear(t *testing.T) {
	s := mathkit.NewSystem()
	assert.Equal(t, []mathkit.Number{mathkit.N(2)}, solve(t, s, "3x=6", "x"))
}

func TestSolve_Square(t *testing.T) {
	s := mathkit.NewSystem()
	assert.ElementsMatch(t, []mathkit.Number{mathkit.N(-3), mathkit.N(3)}, solve(t, s, "(x)^(2)=9", "x"))
}

func TestSolve_NoSolution(t *testing.T) {
	s := mathkit.NewSystem()
	assert.Empty(t, solve(t, s, "x / x = 1", "x"))
}

func TestSolve_Rational(t *testing.T) {
	s := mathkit.NewSystem()
	assert.Equal(t, []mathkit.Number{mathkit.N(3)}, solve(t, s, "(x + 1)/(x - 1) = 2", "x"))
}

func TestSolve_QuarticRoots(t *testing.T) {
	s := mathkit.NewSystem()
	want := []mathkit.Number{
		mathkit.NComplex(0, 2), mathkit.NComplex(0, -2),
		mathkit.N(-2), mathkit.N(2),
	}
	assert.ElementsMatch(t, want, solve(t, s, "(x)^(4) - 16 = 0", "x"))
}

func TestSolve_SolutionsSatisfyEquation(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	eq, err := s.ParseEquation("(x)^(2) - 5x + 6 = 0")
	require.NoError(t, err)
	sols, err := s.Solve(eq, x)
	require.NoError(t, err)
	require.Len(t, sols, 2)

	for _, sol := range sols {
		lhs, err := s.Evaluate(s.PlugIn(eq.LHS, x, sol))
		require.NoError(t, err)
		assert.InDelta(t, 0, lhs.Real, 1e-9)
	}
}

// ============================================================
// Systems
// ============================================================

func TestSolveSystem_Lines(t *testing.T) {
	s := mathkit.NewSystem()
	for _, str := range []string{"y=x+1", "y=2x-2"} {
		eq, err := s.ParseEquation(str)
		require.NoError(t, err)
		s.Equations = append(s.Equations, eq)
	}
	sols, err := s.SolveSystem(s.Variable("x"))
	require.NoError(t, err)
	got := numbers(t, s, sols)
	require.Len(t, got, 1)
	assert.InDelta(t, 3, got[0].Real, 1e-9)
}

func TestSolveSystem_CommonRoot(t *testing.T) {
	s := mathkit.NewSystem()
	for _, str := range []string{"(x+1)(x-1)=0", "x+1=0"} {
		eq, err := s.ParseEquation(str)
		require.NoError(t, err)
		s.Equations = append(s.Equations, eq)
	}
	sols, err := s.SolveSystem(s.Variable("x"))
	require.NoError(t, err)
	got := numbers(t, s, sols)
	require.Len(t, got, 1)
	assert.InDelta(t, -1, got[0].Real, 1e-9)
}

func TestSolveSystem_Substitution(t *testing.T) {
	s := mathkit.NewSystem()
	for _, str := range []string{"y = 5x + 2", "5y + 3x = 9x + 6 - y"} {
		eq, err := s.ParseEquation(str)
		require.NoError(t, err)
		s.Equations = append(s.Equations, eq)
	}
	sols, err := s.SolveSystem(s.Variable("x"))
	require.NoError(t, err)
	got := numbers(t, s, sols)
	require.Len(t, got, 1)
	assert.InDelta(t, -0.25, got[0].Real, 1e-9)
}

func system(t *testing.T, equations ...string) *mathkit.System {
	t.Helper()
	s := mathkit.NewSystem()
	for _, str := range equations {
		eq, err := s.ParseEquation(str)
		require.NoError(t, err, str)
		s.Equations = append(s.Equations, eq)
	}
	return s
}

func solveSystem(t *testing.T, s *mathkit.System, variable string) []float64 {
	t.Helper()
	sols, err := s.SolveSystem(s.Variable(variable))
	require.NoError(t, err)
	var out []float64
	for _, n := range numbers(t, s, sols) {
		out = append(out, n.Real)
	}
	return out
}

func TestSolveSystem_EitherVariable(t *testing.T) {
	cases := []struct {
		name      string
		equations []string
		variable  string
		want      float64
	}{
		{"right side x", []string{"y=x+1", "y=2x-2"}, "x", 3},
		{"left side y", []string{"y=x+1", "y=2x-2"}, "y", 4},
		{"swapped x", []string{"x+1=y", "2x-2=y"}, "x", 3},
		{"swapped y", []string{"x+1=y", "2x-2=y"}, "y", 4},
		{"unrelated equation", []string{"y=x+1", "y=2x-2", "z=5"}, "x", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := solveSystem(t, system(t, c.equations...), c.variable)
			require.Len(t, got, 1)
			assert.InDelta(t, c.want, got[0], 1e-9)
		})
	}
}

// ============================================================
// Cubes and domains
// ============================================================

func TestSolve_Cubes(t *testing.T) {
	cases := []struct {
		equation string
		root     float64
	}{
		{"x^3 = 8", 2},
		{"x^3 = 27", 3},
		{"x^3 + 8 = 0", -2},
		{"2x^3 = -54", -3},
		{"8x^3 = 1", 0.5},
	}
	for _, c := range cases {
		s := mathkit.NewSystem()
		x := s.Variable("x")
		eq, err := s.ParseEquation(c.equation)
		require.NoError(t, err)
		sols, err := s.Solve(eq, x)
		require.NoError(t, err, c.equation)

		var reals []mathkit.Number
		for _, sol := range sols {
			n, err := s.Evaluate(sol)
			require.NoError(t, err, c.equation)
			if n.IsReal() {
				reals = append(reals, n)
			}
			lhs, err := s.Evaluate(s.PlugIn(eq.LHS, x, n))
			require.NoError(t, err)
			rhs, err := s.Evaluate(s.PlugIn(eq.RHS, x, n))
			require.NoError(t, err)
			assert.InDelta(t, rhs.Real, lhs.Real, 1e-9, c.equation)
			assert.InDelta(t, rhs.Imag, lhs.Imag, 1e-9, c.equation)
		}
		assert.Equal(t, []mathkit.Number{mathkit.N(c.root)}, reals, c.equation)
	}
}

func TestSolve_ExcludesPoles(t *testing.T) {
	s := mathkit.NewSystem()
	got := solve(t, s, "(x)^(2)/(x - 3) = 9/(x - 3)", "x")
	require.Len(t, got, 1)
	assert.InDelta(t, -3, got[0].Real, 1e-9)
}
