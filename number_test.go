package mathkit_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

// ============================================================
// Number arithmetic
// ============================================================

func TestNumber_ComplexMultiply(t *testing.T) {
	z := mathkit.NComplex(7, 4)
	sq, err := z.Pow(mathkit.N(2))
	require.NoError(t, err)
	assert.Equal(t, "33+56ⅈ", sq.String())
}

func TestNumber_ComplexDivide(t *testing.T) {
	q := mathkit.NComplex(7, 4).Div(mathkit.NComplex(2, 1))
	assert.Equal(t, "3.6+0.2ⅈ", q.String())
}

func TestNumber_Conjugate(t *testing.T) {
	assert.Equal(t, mathkit.NComplex(3, -2), mathkit.NComplex(3, 2).Conjugate())
}

func TestNumber_RepeatingDecimal(t *testing.T) {
	assert.Equal(t, "-0.3333333333333333", mathkit.N(-7).Div(mathkit.N(21)).String())
}

func TestNumber_AsInteger(t *testing.T) {
	k, ok := mathkit.N(3).AsInteger()
	assert.True(t, ok)
	assert.Equal(t, 3, k)

	_, ok = mathkit.N(3.5).AsInteger()
	assert.False(t, ok)
	_, ok = mathkit.NComplex(3, 1).AsInteger()
	assert.False(t, ok)
}

func TestNumber_ApproximateRational(t *testing.T) {
	cases := []struct {
		in       float64
		num, den int
	}{
		{0.2, 1, 5},
		{-0.2, 1, -5},
		{3.5, 7, 2},
		{-6.7, 67, -10},
	}
	for _, c := range cases {
		num, den, ok := mathkit.N(c.in).ApproximateRational()
		require.True(t, ok, "%v", c.in)
		assert.Equal(t, c.num, num, "%v", c.in)
		assert.Equal(t, c.den, den, "%v", c.in)
	}
}

func TestNumber_ApproximateRational_GivesUp(t *testing.T) {
	_, _, ok := mathkit.N(math.Pi).ApproximateRational()
	assert.False(t, ok)
	_, _, ok = mathkit.NComplex(1, 1).ApproximateRational()
	assert.False(t, ok)
}

// ============================================================
// Powers
// ============================================================

func TestNumber_Pow_SquareRootOfNegative(t *testing.T) {
	r, err := mathkit.N(-4).Pow(mathkit.N(0.5))
	require.NoError(t, err)
	assert.Equal(t, "2ⅈ", r.String())
}

func TestNumber_Pow_NegativeExponent(t *testing.T) {
	r, err := mathkit.N(2).Pow(mathkit.N(-1))
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(0.5), r)
}

func TestNumber_Pow_ZeroBase(t *testing.T) {
	r, err := mathkit.Zero.Pow(mathkit.N(3))
	require.NoError(t, err)
	assert.True(t, r.IsZero())
}

func TestNumber_Pow_Errors(t *testing.T) {
	_, err := mathkit.N(2).Pow(mathkit.NComplex(0, 1))
	assert.ErrorIs(t, err, mathkit.ErrRaisedToComplex)

	_, err = mathkit.NComplex(1, 1).Pow(mathkit.N(0.5))
	assert.ErrorIs(t, err, mathkit.ErrRootOfComplex)
}

// ============================================================
// Comparison and rounding
// ============================================================

func TestNumber_Compare(t *testing.T) {
	less, err := mathkit.N(1).Less(mathkit.N(2))
	require.NoError(t, err)
	assert.True(t, less)

	ge, err := mathkit.N(2).GreaterEqual(mathkit.N(2))
	require.NoError(t, err)
	assert.True(t, ge)

	_, err = mathkit.NComplex(1, 1).Less(mathkit.N(2))
	assert.ErrorIs(t, err, mathkit.ErrNonComparable)
	assert.True(t, mathkit.IsSolving(err))
}

func TestNumber_ModFloorAbs(t *testing.T) {
	m, err := mathkit.N(7).Mod(mathkit.N(3))
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(1), m)

	_, err = mathkit.NComplex(7, 1).Mod(mathkit.N(3))
	assert.ErrorIs(t, err, mathkit.ErrDomain)

	f, err := mathkit.N(-2.5).Floor()
	require.NoError(t, err)
	assert.Equal(t, mathkit.N(-3), f)

	a, ok := mathkit.N(-2.5).Abs()
	assert.True(t, ok)
	assert.Equal(t, mathkit.N(2.5), a)
	_, ok = mathkit.NComplex(0, 1).Abs()
	assert.False(t, ok)
}

func TestNumber_GCF_LCM(t *testing.T) {
	assert.Equal(t, mathkit.N(6), mathkit.N(12).GCF(mathkit.N(18)))
	assert.Equal(t, mathkit.N(36), mathkit.N(12).LCM(mathkit.N(18)))
}

// ============================================================
// Formatting
// ============================================================

func TestNumber_String(t *testing.T) {
	assert.Equal(t, "0", mathkit.Zero.String())
	assert.Equal(t, "12", mathkit.N(12).String())
	assert.Equal(t, "-1.5", mathkit.N(-1.5).String())
	assert.Equal(t, "3ⅈ", mathkit.NComplex(0, 3).String())
	assert.Equal(t, "1-2ⅈ", mathkit.NComplex(1, -2).String())
	assert.Equal(t, "10^20", mathkit.N(1e20).String())
	assert.Equal(t, "2.5*10^(-7)", mathkit.N(2.5e-7).String())
}

func TestNumber_Fraction(t *testing.T) {
	assert.Equal(t, "7/2", mathkit.N(3.5).Fraction(4))
	assert.Equal(t, "-1/5", mathkit.N(-0.2).Fraction(4))
	assert.Equal(t, "1/4", mathkit.N(0.25).Fraction(4))
	assert.Equal(t, "4", mathkit.N(4).Fraction(4))
}

func TestNumber_Pow_ExactRoots(t *testing.T) {
	third := mathkit.One.Div(mathkit.N(3))
	cases := []struct {
		base, want float64
	}{
		{8, 2},
		{27, 3},
		{-27, -3},
		{64, 4},
		{0.125, 0.5},
	}
	for _, c := range cases {
		r, err := mathkit.N(c.base).Pow(third)
		require.NoError(t, err)
		assert.Equal(t, mathkit.N(c.want), r, "%v", c.base)
	}

	r, err := mathkit.N(2).Pow(third)
	require.NoError(t, err)
	assert.InDelta(t, 1.2599210498948732, r.Real, 1e-12)
}
