package mathkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

func derivative(t *testing.T, s *mathkit.System, str string) string {
	t.Helper()
	d, err := s.Derivative(parse(t, s, str), s.Variable("x"))
	require.NoError(t, err, str)
	e, err := s.Simplify(d)
	require.NoError(t, err, str)
	return s.String(e)
}

// ============================================================
// Symbolic derivatives
// ============================================================

func TestDerivative(t *testing.T) {
	s := mathkit.NewSystem()
	cases := map[string]string{
		"5x^2 + 2x - 6": "10x + 2",
		"sin(x)":        "cos(x)",
		"sin(x^2)":      "2x*cos((x)^(2))",
		"cos(x)":        "-sin(x)",
		"tan(x)":        "(sec(x))^(2)",
		"ln(x)":         "(x)^(-1)",
		"abs(x)":        "nderiv(abs(x),x,x)",
	}
	for in, want := range cases {
		assert.Equal(t, want, derivative(t, s, in), in)
	}
}

func TestDerivative_Degrees(t *testing.T) {
	s := mathkit.NewSystem()
	s.AngleMode = mathkit.Degree
	assert.Equal(t, "0.017453292519943295cos(x)", derivative(t, s, "sin(x)"))
}

func TestDerivative_Constant(t *testing.T) {
	s := mathkit.NewSystem()
	d, err := s.Derivative(mathkit.N(7), s.Variable("x"))
	require.NoError(t, err)
	assert.True(t, mathkit.Equal(mathkit.Zero, d))
}

func TestDerivative_DerivFunction(t *testing.T) {
	s := mathkit.NewSystem()
	e, err := s.Simplify(parse(t, s, "deriv(.5x^2 + x, x, x)"))
	require.NoError(t, err)
	assert.Equal(t, "x + 1", s.String(e))
}

// ============================================================
// Numerical methods
// ============================================================

func TestNumericalDerivative(t *testing.T) {
	s := mathkit.NewSystem()
	assert.InDelta(t, 6, eval(t, s, "nderiv(x^2, x, 3)").Real, 1e-6)
}

func TestIntegral(t *testing.T) {
	s := mathkit.NewSystem()
	assert.InDelta(t, 9, eval(t, s, "∫(x^2, x, 0, 3)").Real, 1e-9)

	x := s.Variable("x")
	n, err := s.Integral(mathkit.N(0), mathkit.Pi, parse(t, s, "sin(x)"), x)
	require.NoError(t, err)
	assert.InDelta(t, 2, n.Real, 1e-9)
}

func TestFindZero(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	z, ok, err := s.FindZero(parse(t, s, "2x-1"), mathkit.N(2), x)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 0.5, z.Real, 1e-9)
}

func TestFindZero_Constant(t *testing.T) {
	s := mathkit.NewSystem()
	_, ok, err := s.FindZero(mathkit.N(3), mathkit.N(0), s.Variable("x"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindExtreme(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	m, ok, err := s.FindExtreme(parse(t, s, "(x)^(2) - 4x"), mathkit.N(0), x)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 2, m.Real, 1e-6)
}

func TestFindIntersect(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	p, ok, err := s.FindIntersect(parse(t, s, "x"), parse(t, s, "2-x"), mathkit.N(0), x)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 1, p.Real, 1e-9)
}

// ============================================================
// User functions
// ============================================================

func TestUserFunction(t *testing.T) {
	s := mathkit.NewSystem()
	_, err := s.DefineFunction("f", []string{"t"}, "t^2 + 1")
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(10), eval(t, s, "f(3)"))
	assert.Equal(t, "2x", derivative(t, s, "f(x)"))
}

func TestUserFunction_Builtin(t *testing.T) {
	s := mathkit.NewSystem()
	_, err := s.DefineFunction("sin", []string{"t"}, "t")
	assert.ErrorIs(t, err, mathkit.ErrSyntax)
}

func TestUserFunction_Undefined(t *testing.T) {
	s := mathkit.NewSystem()
	s.Function("g", []mathkit.VarID{s.DefaultVariable()})
	_, err := s.Evaluate(parse(t, s, "g(2)"))
	assert.ErrorIs(t, err, mathkit.ErrMissingDefinition)
}

func TestUserFunction_BadRedefinition(t *testing.T) {
	s := mathkit.NewSystem()
	_, err := s.DefineFunction("f", []string{"t"}, "t^2 + 1")
	require.NoError(t, err)

	_, err = s.DefineFunction("f", []string{"a", "b"}, "(a + b")
	assert.Error(t, err)
	id, ok := s.LookupFunction("f")
	require.True(t, ok)
	assert.Len(t, s.Func(id).Params, 1)
	assert.Equal(t, mathkit.N(10), eval(t, s, "f(3)"))

	_, err = s.DefineFunction("g", []string{"t"}, "(t")
	assert.Error(t, err)
	assert.False(t, s.HasFunction("g"))
}
