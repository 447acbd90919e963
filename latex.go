package mathkit

import (
	"strconv"
	"strings"
)

// ============================================================
// LaTeX rendering
// ============================================================

// LaTeX renders v as LaTeX math. Negative powers are written as fractions
// and powers of one half as square roots.
func (s *System) LaTeX(v Value) string {
	switch x := v.(type) {
	case Number:
		return numberLaTeX(x)
	case VariableValue:
		if x.Var == s.PiVar() {
			return `\pi`
		}
		return s.vars[x.Var].Symbol
	case Object:
		return s.objectLaTeX(x, false)
	case Term:
		return s.termLaTeX(x)
	case Expression:
		var b strings.Builder
		for i, t := range x.Terms {
			str := s.termLaTeX(t)
			switch {
			case i == 0:
				b.WriteString(str)
			case strings.HasPrefix(str, "-"):
				b.WriteString(" - " + str[1:])
			default:
				b.WriteString(" + " + str)
			}
		}
		return b.String()
	case FunctionValue:
		return s.functionLaTeX(x)
	}
	return ""
}

func numberLaTeX(n Number) string {
	if !n.IsReal() {
		return strings.ReplaceAll(n.String(), "ⅈ", "i")
	}
	if _, ok := n.AsInteger(); ok {
		return powerLaTeX(n.String())
	}
	if num, den, ok := n.ApproximateRational(); ok {
		sign := ""
		if num*den < 0 {
			sign = "-"
		}
		return sign + `\frac{` + strconv.Itoa(absInt(num)) + `}{` + strconv.Itoa(absInt(den)) + `}`
	}
	return powerLaTeX(n.String())
}

// powerLaTeX rewrites the 2.5*10^(-7) suffix of a formatted number.
func powerLaTeX(str string) string {
	mantissa, power, ok := strings.Cut(str, "10^")
	if !ok {
		return str
	}
	power = strings.Trim(power, "()")
	mantissa = strings.TrimSuffix(mantissa, "*")
	if mantissa == "" {
		return "10^{" + power + "}"
	}
	return mantissa + ` \times 10^{` + power + "}"
}

func absInt(k int) int {
	if k < 0 {
		return -k
	}
	return k
}

// unwrapObject strips objects raised to one.
func unwrapObject(v Value) Value {
	for {
		o, ok := v.(Object)
		if !ok || !Equal(o.Exponent, One) {
			return v
		}
		v = o.Base
	}
}

// objectLaTeX renders o. Sums and products used as a base are bracketed,
// and so is a bare sum when grouped is set.
func (s *System) objectLaTeX(o Object, grouped bool) string {
	base := unwrapObject(o.Base)
	if Equal(o.Exponent, One) {
		str := s.LaTeX(base)
		if _, isExpr := base.(Expression); isExpr && grouped {
			return `\left(` + str + `\right)`
		}
		return str
	}
	if e, err := s.Evaluate(o.Exponent); err == nil && e.Equal(N(0.5)) {
		return `\sqrt{` + s.LaTeX(base) + `}`
	}
	str := s.LaTeX(base)
	switch b := base.(type) {
	case Expression, Term:
		str = `\left(` + str + `\right)`
	case Number:
		if !b.IsReal() || b.Real < 0 {
			str = `\left(` + str + `\right)`
		}
	}
	return str + "^{" + s.LaTeX(unwrapObject(o.Exponent)) + "}"
}

// termLaTeX moves factors with a negative numeric exponent below a
// fraction bar and pulls negative coefficients out as a leading sign.
func (s *System) termLaTeX(t Term) string {
	var numerator, denominator []Object
	negative := false
	for _, o := range t.Objects {
		if n, ok := unwrapObject(o.Base).(Number); ok && Equal(o.Exponent, One) && n.IsReal() && n.Real < 0 {
			negative = !negative
			o = Obj(n.Neg())
		}
		if e, err := s.Evaluate(o.Exponent); err == nil && e.IsReal() && e.Real < 0 {
			denominator = append(denominator, Pow(o.Base, e.Neg()))
			continue
		}
		numerator = append(numerator, o)
	}

	out := s.productLaTeX(numerator)
	if len(denominator) > 0 {
		out = `\frac{` + out + `}{` + s.productLaTeX(denominator) + `}`
	}
	if negative {
		return "-" + out
	}
	return out
}

func (s *System) productLaTeX(objects []Object) string {
	var parts []string
	for _, o := range objects {
		if Equal(unwrapObject(o.Base), One) && Equal(o.Exponent, One) {
			continue
		}
		str := s.objectLaTeX(o, len(objects) > 1)
		if _, isNumber := unwrapObject(o.Base).(Number); isNumber && len(parts) > 0 {
			str = `\cdot ` + str
		}
		parts = append(parts, str)
	}
	if len(parts) == 0 {
		return "1"
	}
	return strings.Join(parts, " ")
}

func (s *System) functionLaTeX(fv FunctionValue) string {
	fn := s.funcs[fv.Func]
	args := make([]string, len(fv.Args))
	for i, a := range fv.Args {
		args[i] = s.LaTeX(a)
	}
	paren := func(str string) string { return `\left(` + str + `\right)` }
	if isBuiltin(fn.Name) && len(args) != len(fn.Params) {
		return `\operatorname{` + fn.Name + `}` + paren(strings.Join(args, ", "))
	}

	switch fn.Name {
	case SinName, CosName, TanName, CscName, SecName, CotName, LnName:
		return `\` + fn.Name + paren(args[0])
	case AsinName, AcosName, AtanName:
		return `\arc` + fn.Name[1:] + paren(args[0])
	case AcscName, AsecName, AcotName:
		return `\operatorname{arc` + fn.Name[1:] + `}` + paren(args[0])
	case LogName:
		return `\log_{` + args[1] + `}` + paren(args[0])
	case AbsName:
		return `\left|` + args[0] + `\right|`
	case FloorName:
		return `\left\lfloor ` + args[0] + ` \right\rfloor`
	case FactName:
		return paren(args[0]) + "!"
	case IntegName:
		return `\int_{` + args[2] + `}^{` + args[3] + `} ` + args[0] + ` \, d` + args[1]
	case DerivName, NDerivName:
		return `\left.\frac{d}{d` + args[1] + `}` + paren(args[0]) + `\right|_{` + args[1] + `=` + args[2] + `}`
	}
	return `\operatorname{` + fn.Name + `}` + paren(strings.Join(args, ", "))
}
