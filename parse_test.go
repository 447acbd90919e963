package mathkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

func parse(t *testing.T, s *mathkit.System, str string) mathkit.Value {
	t.Helper()
	v, err := s.ParseValue(str)
	require.NoError(t, err, str)
	return v
}

func eval(t *testing.T, s *mathkit.System, str string) mathkit.Number {
	t.Helper()
	n, err := s.Evaluate(parse(t, s, str))
	require.NoError(t, err, str)
	return n
}

// ============================================================
// Parsing and printing
// ============================================================

func TestParse_NegativeNumberTerm(t *testing.T) {
	s := mathkit.NewSystem()
	term, err := s.ParseTerm("-12")
	require.NoError(t, err)
	assert.Equal(t, "(-1)*12", s.String(term))
}

func TestParse_Print(t *testing.T) {
	s := mathkit.NewSystem()
	cases := map[string]string{
		"3x^2y + 1/(1+x) + 2": "3(x)^(2)y + (1 + x)^(-1) + 2",
		"6x - 7y":             "6x - 7y",
		"3*xy(x+1)":           "3(xy)(x + 1)",
	}
	for in, want := range cases {
		e, err := s.ParseExpression(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, s.String(e), in)
	}
}

func TestParse_VariablesAreInterned(t *testing.T) {
	s := mathkit.NewSystem()
	v := parse(t, s, "x + x")
	assert.Equal(t, []mathkit.VarID{s.Variable("x")}, s.Variables(v))
}

func TestParse_Equation(t *testing.T) {
	s := mathkit.NewSystem()
	eq, err := s.ParseEquation("3x = 6")
	require.NoError(t, err)
	assert.Equal(t, "3x = 6", s.EquationString(eq))
}

func TestParse_Errors(t *testing.T) {
	s := mathkit.NewSystem()

	_, err := s.ParseValue("(x+1")
	assert.ErrorIs(t, err, mathkit.ErrSyntax)

	_, err = s.ParseEquation("x=1=2")
	assert.ErrorIs(t, err, mathkit.ErrSyntax)
	assert.True(t, mathkit.IsSolving(err))

	_, err = s.ParseEquation("x+1")
	assert.ErrorIs(t, err, mathkit.ErrSyntax)
}

// ============================================================
// Evaluation
// ============================================================

func TestEvaluate_Arithmetic(t *testing.T) {
	s := mathkit.NewSystem()
	cases := map[string]mathkit.Number{
		"1+3":                   mathkit.N(4),
		"2^4 + 5*9/2 - 5^(2^2)": mathkit.N(-586.5),
		"7/2":                   mathkit.N(3.5),
		"1/(8) * 4":             mathkit.N(0.5),
		"(-1)^(2)":              mathkit.N(1),
	}
	for in, want := range cases {
		assert.Equal(t, want, eval(t, s, in), in)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	s := mathkit.NewSystem()

	_, err := s.Evaluate(parse(t, s, "1/0"))
	assert.ErrorIs(t, err, mathkit.ErrDivideByZero)
	assert.True(t, mathkit.IsCalculation(err))

	_, err = s.Evaluate(parse(t, s, "0^0"))
	assert.ErrorIs(t, err, mathkit.ErrZeroToTheZero)

	_, err = s.Evaluate(parse(t, s, "2y"))
	assert.ErrorIs(t, err, mathkit.ErrNonAlgebraic)

	_, err = s.Evaluate(parse(t, s, "asin(2)"))
	assert.ErrorIs(t, err, mathkit.ErrDomain)
}

func TestEvaluate_BoundVariable(t *testing.T) {
	s := mathkit.NewSystem()
	s.Bind(s.Variable("a"), mathkit.N(3), true)
	assert.Equal(t, mathkit.N(10), eval(t, s, "a^2 + 1"))

	s.Unbind(s.Variable("a"))
	_, err := s.Evaluate(parse(t, s, "a^2 + 1"))
	assert.ErrorIs(t, err, mathkit.ErrNonAlgebraic)
}

func TestEvaluate_Trig(t *testing.T) {
	s := mathkit.NewSystem()
	assert.InDelta(t, 1, eval(t, s, "sin(π/2)").Real, 1e-12)

	s.AngleMode = mathkit.Degree
	assert.InDelta(t, 0.5, eval(t, s, "sin(30)").Real, 1e-12)
}

func TestEvaluate_PlugIn(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	v := s.PlugIn(parse(t, s, "x^2 + 2x"), x, mathkit.N(3))
	n, err := s.Evaluate(v)
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(15), n)
}
