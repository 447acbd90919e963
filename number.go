package mathkit

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================
// Number: complex scalar over float64
// ============================================================

// Number is a complex value with float64 parts. Ordering is defined only
// for real numbers.
type Number struct {
	Real float64
	Imag float64
}

func N(v float64) Number { return Number{Real: v} }

func NComplex(re, im float64) Number { return Number{Real: re, Imag: im} }

func (n Number) isValue()            {}
func (n Number) IsReal() bool        { return n.Imag == 0 }
func (n Number) IsZero() bool        { return n.Real == 0 && n.Imag == 0 }
func (n Number) Neg() Number         { return NegOne.Mul(n) }
func (n Number) Conjugate() Number   { return Number{n.Real, -n.Imag} }
func (n Number) Add(o Number) Number { return Number{n.Real + o.Real, n.Imag + o.Imag} }
func (n Number) Sub(o Number) Number { return Number{n.Real - o.Real, n.Imag - o.Imag} }
func (n Number) Equal(o Number) bool { return n.Real == o.Real && n.Imag == o.Imag }

var (
	Zero   = N(0)
	One    = N(1)
	NegOne = N(-1)
	Pi     = N(math.Pi)
	E      = N(math.E)
)

func (n Number) Mul(o Number) Number {
	return Number{
		Real: n.Real*o.Real - n.Imag*o.Imag,
		Imag: n.Real*o.Imag + n.Imag*o.Real,
	}
}

// Div divides with the textbook complex formula; dividing by zero yields
// infinities or NaN rather than an error.
func (n Number) Div(o Number) Number {
	d := o.Real*o.Real + o.Imag*o.Imag
	return Number{
		Real: (n.Real*o.Real + n.Imag*o.Imag) / d,
		Imag: (n.Imag*o.Real - n.Real*o.Imag) / d,
	}
}

// AsInteger returns the integer value when n is real with no fractional part.
func (n Number) AsInteger() (int, bool) {
	if n.Imag != 0 || math.Mod(n.Real, 1) != 0 {
		return 0, false
	}
	return int(n.Real), true
}

// ApproximateRational searches for num/den within 1e-9 of n. The sign is
// carried by the denominator. The search gives up once |num|+|den| exceeds
// 10000.
func (n Number) ApproximateRational() (num, den int, ok bool) {
	if !n.IsReal() {
		return 0, 0, false
	}
	const epsilon = 1e-9
	v := n.Real
	p, q := 0.0, 1.0
	if v < 0 {
		q = -1
	}
	for math.Abs(p/q-v) > epsilon {
		if math.Abs(p/q) > math.Abs(v) {
			if v > 0 {
				q++
			} else {
				q--
			}
		} else {
			p++
		}
		if math.Abs(p)+math.Abs(q) > 10000 {
			return 0, 0, false
		}
	}
	return int(p), int(q), true
}

// Pow raises n to e.
func (n Number) Pow(e Number) (Number, error) {
	if e.Imag != 0 {
		return Number{}, ErrRaisedToComplex
	}
	if k, ok := e.AsInteger(); ok && k >= 0 && n.Imag != 0 {
		if k == 0 {
			return One, nil
		}
		out := n
		for i := 1; i < k; i++ {
			out = out.Mul(n)
		}
		return out, nil
	}
	if n.Imag != 0 {
		return Number{}, ErrRootOfComplex
	}
	if n.Real == 0 {
		return Zero, nil
	}
	p, q, ok := e.ApproximateRational()
	if !ok {
		sign := One
		if n.Real < 0 {
			sign = NegOne
		}
		return N(math.Pow(math.Abs(n.Real), e.Real)).Mul(sign), nil
	}
	baseSign := 1.0
	if n.Real < 0 {
		baseSign = -1
	}
	expSign := 1
	if q < 0 {
		expSign = -1
	}
	q *= expSign
	power := math.Pow(rootOf(math.Abs(n.Real), q), float64(p))
	if expSign == -1 {
		power = 1 / power
	}
	if p%2 == 1 {
		power *= baseSign
	}
	if q%2 == 0 && baseSign == -1 {
		return NComplex(0, -power), nil
	}
	return N(power), nil
}

// rootOf returns the q-th root of x >= 0. The root is snapped to a nearby
// integer or fraction when raising that back to q gives exactly x.
func rootOf(x float64, q int) float64 {
	if q == 1 {
		return x
	}
	r := math.Pow(x, 1/float64(q))
	if q == 3 {
		r = math.Cbrt(x)
	}
	fq := float64(q)
	if k := math.Round(r); math.Pow(k, fq) == x {
		return k
	}
	if num, den, ok := N(r).ApproximateRational(); ok && math.Pow(float64(num), fq) == x*math.Pow(float64(den), fq) {
		return float64(num) / float64(den)
	}
	return r
}

// Mod is the truncated remainder of two real numbers.
func (n Number) Mod(o Number) (Number, error) {
	if !n.IsReal() || !o.IsReal() {
		return Number{}, ErrDomain
	}
	return N(math.Mod(n.Real, o.Real)), nil
}

// Abs returns |n|; ok is false for non-real numbers.
func (n Number) Abs() (Number, bool) {
	if !n.IsReal() {
		return Number{}, false
	}
	return N(math.Abs(n.Real)), true
}

func (n Number) Floor() (Number, error) {
	if !n.IsReal() {
		return Number{}, ErrDomain
	}
	return N(math.Floor(n.Real)), nil
}

func (n Number) Less(o Number) (bool, error) {
	if !n.IsReal() || !o.IsReal() {
		return false, ErrNonComparable
	}
	return n.Real < o.Real, nil
}

func (n Number) LessEqual(o Number) (bool, error) {
	if !n.IsReal() || !o.IsReal() {
		return false, ErrNonComparable
	}
	return n.Real <= o.Real, nil
}

func (n Number) Greater(o Number) (bool, error)      { return o.Less(n) }
func (n Number) GreaterEqual(o Number) (bool, error) { return o.LessEqual(n) }

// GCF is Euclid's algorithm on exact integers and 1 otherwise.
func (n Number) GCF(o Number) Number {
	a, okA := n.AsInteger()
	b, okB := o.AsInteger()
	if !okA || !okB {
		return One
	}
	return N(float64(gcdInt(a, b)))
}

func (n Number) LCM(o Number) Number { return n.Mul(o).Div(n.GCF(o)) }

// gcdInt returns 0 when either side is 0.
func gcdInt(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a == 0 || b == 0 {
		return 0
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// minNumber returns the smaller of two real numbers.
func minNumber(a, b Number) (Number, error) {
	less, err := a.Less(b)
	if err != nil {
		return Number{}, err
	}
	if less {
		return a, nil
	}
	return b, nil
}

// ============================================================
// Number formatting
// ============================================================

func (n Number) String() string {
	switch {
	case n.Real == 0 && n.Imag == 0:
		return "0"
	case n.Real == 0:
		return formatFloat(n.Imag) + "ⅈ"
	case n.Imag == 0:
		return formatFloat(n.Real)
	}
	sep := ""
	if n.Imag > 0 {
		sep = "+"
	}
	return formatFloat(n.Real) + sep + formatFloat(n.Imag) + "ⅈ"
}

// formatFloat prints the shortest round-trip decimal. Magnitudes outside
// [1e-4, 1e16) use a power of ten suffix: 2.5*10^(-6), 10^20.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	exp := 0
	if f != 0 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		exp, _ = strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	}
	if exp >= -4 && exp < 16 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	mantissa := s[:i]
	power := "*10^" + strconv.Itoa(exp)
	if exp < 0 {
		power = "*10^(" + strconv.Itoa(exp) + ")"
	}
	if mantissa == "1" {
		return power[1:]
	}
	return mantissa + power
}

// Fraction renders a real number as p/q when a rational approximation
// exists after rounding to the given number of decimal places.
func (n Number) Fraction(accuracy int) string {
	if !n.IsReal() {
		return n.String()
	}
	if _, ok := n.AsInteger(); ok {
		return n.String()
	}
	scale := math.Pow(10, float64(accuracy))
	rounded := N(math.Round(n.Real*scale) / scale)
	p, q, ok := rounded.ApproximateRational()
	if !ok {
		return n.String()
	}
	if q < 0 {
		p, q = -p, -q
	}
	return strconv.Itoa(p) + "/" + strconv.Itoa(q)
}
