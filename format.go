package mathkit

import "strings"

// ============================================================
// Printing
// ============================================================

// String renders v in the canonical text form, e.g. 3(x)^(2)y - 7.
func (s *System) String(v Value) string {
	switch x := v.(type) {
	case Number:
		return x.String()
	case VariableValue:
		return s.vars[x.Var].Symbol
	case Object:
		return s.objectString(x)
	case Term:
		return s.termString(x)
	case Expression:
		return s.expressionString(x)
	case FunctionValue:
		args := make([]string, len(x.Args))
		for i, a := range x.Args {
			args[i] = s.String(a)
		}
		return s.funcs[x.Func].Name + "(" + strings.Join(args, ",") + ")"
	}
	return ""
}

func (s *System) objectString(o Object) string {
	if Equal(o.Exponent, One) {
		return s.String(o.Base)
	}
	return "(" + s.String(o.Base) + ")^(" + s.String(o.Exponent) + ")"
}

func (s *System) termString(t Term) string {
	var numbers, variables, functions, others []Object
	for _, o := range t.Objects {
		switch o.Base.(type) {
		case Number:
			numbers = append(numbers, o)
		case VariableValue:
			variables = append(variables, o)
		case FunctionValue:
			if Equal(o.Exponent, One) {
				functions = append(functions, o)
			} else {
				others = append(others, o)
			}
		default:
			others = append(others, o)
		}
	}

	var b strings.Builder
	first := true
	for _, o := range numbers {
		str := s.objectString(o)
		if str == "1" {
			continue
		}
		if !first {
			b.WriteString("*")
		}
		first = false
		if s.parenthesizeNumber(o, len(variables)+len(others)+len(functions) > 0) {
			b.WriteString("(" + str + ")")
		} else {
			b.WriteString(str)
		}
	}
	for _, o := range variables {
		b.WriteString(s.objectString(o))
	}
	for _, o := range others {
		switch o.Base.(type) {
		case Expression, Term:
			if Equal(o.Exponent, One) {
				b.WriteString("(" + s.objectString(o) + ")")
				continue
			}
		}
		b.WriteString(s.objectString(o))
	}
	if len(variables) > 0 && len(others) == 0 && len(functions) > 0 {
		b.WriteString("*")
	}
	for _, o := range functions {
		b.WriteString(s.objectString(o))
	}
	if b.Len() == 0 {
		return "1"
	}
	return b.String()
}

// parenthesizeNumber decides whether a numeric factor needs brackets:
// negative reals always do, complex values do when anything follows them.
func (s *System) parenthesizeNumber(o Object, followed bool) bool {
	if !Equal(o.Exponent, One) {
		return false
	}
	n := o.Base.(Number)
	if !n.IsReal() {
		return followed || n.Imag < 0 || n.Real < 0
	}
	return n.Real < 0
}

func (s *System) expressionString(e Expression) string {
	var b strings.Builder
	for i, t := range e.Terms {
		negative := false
		objects := copyObjects(t.Objects)
		for j, o := range objects {
			n, ok := o.Base.(Number)
			if ok && Equal(o.Exponent, One) && n.IsReal() && n.Real < 0 {
				objects[j].Base = n.Neg()
				negative = !negative
			}
		}
		str := s.termString(Term{Objects: objects})
		switch {
		case i == 0 && negative:
			b.WriteString("-" + str)
		case i == 0:
			b.WriteString(str)
		case negative:
			b.WriteString(" - " + str)
		default:
			b.WriteString(" + " + str)
		}
	}
	return b.String()
}

// Display renders v as a number when it evaluates, honouring the number
// mode. With EvaluateConstants off, values that mention a variable such as
// π are printed symbolically.
func (s *System) Display(v Value) string {
	n, err := s.Evaluate(v)
	if err != nil || (!s.EvaluateConstants && len(s.Variables(v)) > 0) {
		return s.String(v)
	}
	if s.NumberMode == FractionNumberMode {
		return n.Fraction(s.ApproximationDigits)
	}
	return n.String()
}
