package mathkit

import "math"

// ============================================================
// Symbolic derivatives
// ============================================================

// Derivative differentiates v with respect to id. The result is not
// simplified. Variables that cannot be differentiated symbolically become
// numerical derivative applications.
func (s *System) Derivative(v Value, id VarID) (Value, error) {
	switch x := v.(type) {
	case Number:
		return Zero, nil
	case VariableValue:
		if x.Var == id {
			return One, nil
		}
		if rec := s.vars[x.Var]; rec.Value != nil && rec.PlugIn {
			return s.Derivative(rec.Value, id)
		}
		return s.nderivOf(x, id), nil
	case Object:
		chain, err := s.Derivative(x.Base, id)
		if err != nil {
			return nil, err
		}
		exp, err := s.Evaluate(x.Exponent)
		if err != nil {
			return nil, err
		}
		return TermOf(Obj(exp), Pow(x.Base, exp.Sub(One)), Obj(chain)), nil
	case Term:
		terms := make([]Term, len(x.Objects))
		for i, o := range x.Objects {
			d, err := s.Derivative(o, id)
			if err != nil {
				return nil, err
			}
			objects := []Object{Obj(d)}
			for j, other := range x.Objects {
				if i != j {
					objects = append(objects, other)
				}
			}
			terms[i] = Term{Objects: objects}
		}
		return Expression{Terms: terms}, nil
	case Expression:
		terms := make([]Term, len(x.Terms))
		for i, t := range x.Terms {
			d, err := s.Derivative(t, id)
			if err != nil {
				return nil, err
			}
			terms[i] = TermOf(Obj(d))
		}
		return Expression{Terms: terms}, nil
	case FunctionValue:
		return s.functionDerivative(x, id)
	}
	return nil, ErrNonAlgebraic
}

func (s *System) nderivOf(v Value, id VarID) FunctionValue {
	fid, _ := s.LookupFunction(NDerivName)
	return FunctionValue{Func: fid, Args: []Value{v, Var(id), Var(id)}}
}

func (s *System) apply(name string, args ...Value) FunctionValue {
	fid, _ := s.LookupFunction(name)
	return FunctionValue{Func: fid, Args: args}
}

func (s *System) functionDerivative(fv FunctionValue, id VarID) (Value, error) {
	fn := s.funcs[fv.Func]
	if len(fn.Params) != len(fv.Args) {
		return nil, ErrMissingArgument
	}

	chains := func(angular, inverse bool) ([]Object, error) {
		var out []Object
		for _, a := range fv.Args {
			d, err := s.Derivative(a, id)
			if err != nil {
				return nil, err
			}
			out = append(out, Obj(d))
		}
		if angular && s.AngleMode == Degree {
			if inverse {
				out = append(out, Pow(Var(s.PiVar()), NegOne), Obj(N(180)))
			} else {
				out = append(out, Obj(Var(s.PiVar())), Pow(N(180), NegOne))
			}
		}
		return out, nil
	}
	withChains := func(lead []Object, angular, inverse bool) (Value, error) {
		c, err := chains(angular, inverse)
		if err != nil {
			return nil, err
		}
		return ExprOf(Term{Objects: append(lead, c...)}), nil
	}
	args := fv.Args
	negHalf := NegOne.Div(N(2))
	onePlusSquare := func() Expression {
		return ExprOf(TermOf(Obj(One)), TermOf(Pow(args[0], N(2))))
	}
	oneMinusSquare := func() Expression {
		return ExprOf(TermOf(Obj(One)), TermOf(Obj(NegOne), Pow(args[0], N(2))))
	}
	squareMinusOne := func() Expression {
		return ExprOf(TermOf(Obj(NegOne), Obj(One)), TermOf(Pow(args[0], N(2))))
	}

	switch fn.Name {
	case SinName:
		return withChains([]Object{Obj(s.apply(CosName, args...))}, true, false)
	case CosName:
		return withChains([]Object{Obj(s.apply(SinName, args...)), Obj(NegOne)}, true, false)
	case TanName:
		return withChains([]Object{Pow(s.apply(SecName, args...), N(2))}, true, false)
	case SecName:
		return withChains([]Object{Obj(s.apply(TanName, args...)), Obj(s.apply(SecName, args...))}, true, false)
	case CscName:
		return withChains([]Object{Obj(s.apply(CscName, args...)), Obj(s.apply(CotName, args...)), Obj(NegOne)}, true, false)
	case CotName:
		return withChains([]Object{Pow(s.apply(CscName, args...), N(2)), Obj(NegOne)}, true, false)
	case AsinName:
		return withChains([]Object{Pow(oneMinusSquare(), negHalf)}, true, true)
	case AcosName:
		return withChains([]Object{Pow(oneMinusSquare(), negHalf), Obj(NegOne)}, true, true)
	case AtanName:
		return withChains([]Object{Pow(onePlusSquare(), NegOne)}, true, true)
	case AsecName:
		return withChains([]Object{Pow(squareMinusOne(), negHalf), Pow(s.apply(AbsName, args...), NegOne)}, true, true)
	case AcscName:
		return withChains([]Object{Pow(squareMinusOne(), negHalf), Pow(s.apply(AbsName, args...), NegOne), Obj(NegOne)}, true, true)
	case AcotName:
		return withChains([]Object{Pow(onePlusSquare(), NegOne), Obj(NegOne)}, true, true)
	case LnName:
		return withChains([]Object{Pow(args[0], NegOne)}, false, false)
	case LogName:
		d, err := s.Derivative(args[0], id)
		if err != nil {
			return nil, err
		}
		return ExprOf(TermOf(Pow(s.apply(LnName, args[1]), NegOne), Pow(args[0], NegOne), Obj(d))), nil
	case DerivName:
		inner, err := s.plugInValue(fv)
		if err != nil {
			return nil, err
		}
		first, err := s.simplify(Wrap(inner), CombineLikeFractions)
		if err != nil {
			return nil, err
		}
		d, err := s.Derivative(first, id)
		if err != nil {
			return nil, err
		}
		return s.simplify(Wrap(d), CombineLikeFractions)
	case IntegName:
		vars := s.Variables(args[1])
		if len(vars) != 1 {
			return nil, ErrDomain
		}
		da, err := s.Derivative(args[2], id)
		if err != nil {
			return nil, err
		}
		db, err := s.Derivative(args[3], id)
		if err != nil {
			return nil, err
		}
		fa := s.PlugIn(args[0], vars[0], args[2])
		fb := s.PlugIn(args[0], vars[0], args[3])
		return ExprOf(
			TermOf(Obj(fb), Obj(db)),
			TermOf(Obj(NegOne), Obj(fa), Obj(da)),
		), nil
	case NDerivName, AbsName, FactName, FloorName:
		return s.nderivOf(fv, id), nil
	}
	inner, err := s.plugInValue(fv)
	if err != nil {
		return nil, err
	}
	return s.Derivative(inner, id)
}

// ============================================================
// Numeric calculus
// ============================================================

const (
	derivativeStep    = 0.0000000148996644
	integralAccuracy  = 0.0000000000001
	integralMaxDepth  = 10
	zeroAccuracy      = 0.00000000001
	maxNewtonSteps    = 100
	extremeNeighbour  = 0.001
)

// NumericalDerivative estimates df/did at a with a central difference.
func (s *System) NumericalDerivative(f Value, id VarID, at Number) (Number, error) {
	h := N(derivativeStep)
	plus, minus := at.Add(h), at.Sub(h)
	dx := plus.Sub(minus)
	f1, err := s.Evaluate(s.PlugIn(f, id, plus))
	if err != nil {
		return Number{}, err
	}
	f2, err := s.Evaluate(s.PlugIn(f, id, minus))
	if err != nil {
		return Number{}, err
	}
	return f1.Sub(f2).Div(dx), nil
}

// Integral estimates the integral of f over [a, b] by adaptive Simpson's
// rule.
func (s *System) Integral(a, b Number, f Value, id VarID) (Number, error) {
	at := func(x Number) (Number, error) { return s.Evaluate(s.PlugIn(f, id, x)) }
	two, four, six, twelve, fifteen := N(2), N(4), N(6), N(12), N(15)

	var simpson func(a, b, eps, whole, fa, fb, fc Number, depth int) (Number, error)
	simpson = func(a, b, eps, whole, fa, fb, fc Number, depth int) (Number, error) {
		h := b.Sub(a)
		c := a.Add(b).Div(two)
		d := a.Add(c).Div(two)
		e := b.Add(c).Div(two)
		fd, err := at(d)
		if err != nil {
			return Number{}, err
		}
		fe, err := at(e)
		if err != nil {
			return Number{}, err
		}
		left := h.Mul(fa.Add(four.Mul(fd)).Add(fc)).Div(twelve)
		right := h.Mul(fc.Add(four.Mul(fe)).Add(fb)).Div(twelve)
		both := left.Add(right)
		diff := both.Sub(whole)
		abs, ok := diff.Abs()
		if !ok {
			abs = Zero
		}
		if depth <= 0 || abs.Real <= fifteen.Mul(eps).Real {
			return both.Add(diff.Div(fifteen)), nil
		}
		half := eps.Div(two)
		l, err := simpson(a, c, half, left, fa, fc, fd, depth-1)
		if err != nil {
			return Number{}, err
		}
		r, err := simpson(c, b, half, right, fc, fb, fe, depth-1)
		if err != nil {
			return Number{}, err
		}
		return l.Add(r), nil
	}

	c := b.Add(a).Div(two)
	fa, err := at(a)
	if err != nil {
		return Number{}, err
	}
	fb, err := at(b)
	if err != nil {
		return Number{}, err
	}
	fc, err := at(c)
	if err != nil {
		return Number{}, err
	}
	whole := b.Sub(a).Mul(fa.Add(four.Mul(fc)).Add(fb)).Div(six)
	return simpson(a, b, N(integralAccuracy), whole, fa, fb, fc, integralMaxDepth)
}

// ============================================================
// Points of interest
// ============================================================

// FindZero runs Newton's method on f from near. ok is false when f is
// constant, the slope vanishes, or the iteration does not converge.
func (s *System) FindZero(f Value, near Number, id VarID) (Number, bool, error) {
	if simplified, err := s.simplify(Wrap(f), CombineLikeFractions); err == nil {
		if _, err := s.Evaluate(simplified); err == nil {
			return Number{}, false, nil
		}
	}
	a := near
	for step := 0; step < maxNewtonSteps; step++ {
		m, err := s.NumericalDerivative(f, id, a)
		if err != nil {
			return Number{}, false, err
		}
		fa, err := s.Evaluate(s.PlugIn(f, id, a))
		if err != nil {
			return Number{}, false, err
		}
		next := a.Sub(fa.Div(m))
		fNext, err := s.Evaluate(s.PlugIn(f, id, next))
		if err != nil {
			return Number{}, false, err
		}
		absNext, ok1 := fNext.Abs()
		absM, ok2 := m.Abs()
		if !ok1 || !ok2 {
			return Number{}, false, ErrNonComparable
		}
		if absNext.Real <= zeroAccuracy {
			return next, true, nil
		}
		if absM.Real < zeroAccuracy || math.IsNaN(next.Real) {
			return Number{}, false, nil
		}
		a = next
	}
	return Number{}, false, nil
}

// FindIntersect finds x near a where f1(x) = f2(x).
func (s *System) FindIntersect(f1, f2 Value, near Number, id VarID) (Number, bool, error) {
	diff := ExprOf(TermOf(Obj(f1)), TermOf(Obj(NegOne), Obj(f2)))
	return s.FindZero(diff, near, id)
}

// FindExtreme finds a zero of f' near a at which f' changes sign.
func (s *System) FindExtreme(f Value, near Number, id VarID) (Number, bool, error) {
	d, err := s.Derivative(f, id)
	if err != nil {
		return Number{}, false, err
	}
	x, ok, err := s.FindZero(d, near, id)
	if err != nil || !ok {
		return Number{}, false, nil
	}
	step := N(extremeNeighbour)
	right, err1 := s.Evaluate(s.PlugIn(d, id, x.Add(step)))
	left, err2 := s.Evaluate(s.PlugIn(d, id, x.Sub(step)))
	if err1 != nil || err2 != nil {
		return Number{}, false, nil
	}
	rPos, err1 := right.Greater(Zero)
	lPos, err2 := left.Greater(Zero)
	if err1 != nil || err2 != nil || rPos == lPos {
		return Number{}, false, nil
	}
	return x, true, nil
}
