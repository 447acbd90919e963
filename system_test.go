package mathkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

// ============================================================
// Arenas
// ============================================================

func TestSystem_Defaults(t *testing.T) {
	s := mathkit.NewSystem()
	assert.Equal(t, "e", s.Symbol(s.EVar()))
	assert.Equal(t, "π", s.Symbol(s.PiVar()))
	for _, p := range s.Params() {
		assert.True(t, s.IsDefault(p))
	}
	assert.Empty(t, s.UserVariables())
	assert.Empty(t, s.UserFunctions())
	assert.True(t, s.HasFunction("sin"))
	assert.True(t, s.HasFunction("∫"))
}

func TestSystem_VariableInterning(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	assert.Equal(t, x, s.Variable("x"))
	assert.NotEqual(t, x, s.Variable("y"))

	id, ok := s.LookupVariable("x")
	assert.True(t, ok)
	assert.Equal(t, x, id)
	_, ok = s.LookupVariable("z")
	assert.False(t, ok)
}

func TestSystem_RemoveVariable(t *testing.T) {
	s := mathkit.NewSystem()
	x := s.Variable("x")
	s.RemoveVariable("x")
	_, ok := s.LookupVariable("x")
	assert.False(t, ok)
	assert.NotEqual(t, x, s.Variable("x"))

	s.RemoveVariable("π")
	_, ok = s.LookupVariable("π")
	assert.True(t, ok)
}

func TestSystem_RemoveFunction(t *testing.T) {
	s := mathkit.NewSystem()
	_, err := s.DefineFunction("f", []string{"t"}, "2t")
	require.NoError(t, err)
	assert.Len(t, s.UserFunctions(), 1)

	s.RemoveFunction("f")
	assert.False(t, s.HasFunction("f"))
	s.RemoveFunction("sin")
	assert.True(t, s.HasFunction("sin"))
}

func TestSystem_Copy(t *testing.T) {
	s := mathkit.NewSystem()
	a := s.Variable("a")
	c := s.Copy()
	c.Bind(a, mathkit.N(2), true)
	c.AngleMode = mathkit.Degree

	assert.Nil(t, s.Var(a).Value)
	assert.Equal(t, mathkit.Radian, s.AngleMode)
	n, err := c.Evaluate(mathkit.Var(a))
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(2), n)
}

// ============================================================
// Modes
// ============================================================

func TestSystem_ModeNames(t *testing.T) {
	for _, m := range []mathkit.AngleMode{mathkit.Radian, mathkit.Degree} {
		got, err := mathkit.ParseAngleMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	f, err := mathkit.ParseFractionMode("all_terms")
	require.NoError(t, err)
	assert.Equal(t, mathkit.CombineAllTerms, f)
	n, err := mathkit.ParseNumberMode("fraction")
	require.NoError(t, err)
	assert.Equal(t, mathkit.FractionNumberMode, n)

	_, err = mathkit.ParseAngleMode("gradian")
	assert.Error(t, err)
	_, err = mathkit.ParseFractionMode("sometimes")
	assert.Error(t, err)
}

func TestSystem_Display(t *testing.T) {
	s := mathkit.NewSystem()
	v := parse(t, s, "7/2")
	assert.Equal(t, "3.5", s.Display(v))

	s.NumberMode = mathkit.FractionNumberMode
	assert.Equal(t, "7/2", s.Display(v))

	assert.Equal(t, "x + 1", s.Display(parse(t, s, "x + 1")))
}

func TestSystem_EvaluateConstants(t *testing.T) {
	s := mathkit.NewSystem()
	v := parse(t, s, "2π")
	assert.NotEqual(t, "2π", s.Display(v))

	s.EvaluateConstants = false
	assert.Equal(t, "2π", s.Display(v))
}

// ============================================================
// Errors
// ============================================================

func TestErrors_Families(t *testing.T) {
	assert.True(t, mathkit.IsCalculation(mathkit.ErrDomain))
	assert.False(t, mathkit.IsSolving(mathkit.ErrDomain))
	assert.True(t, mathkit.IsSolving(mathkit.ErrTooComplex))
	assert.Equal(t, "mathkit: divide by zero", mathkit.ErrDivideByZero.Error())
}
