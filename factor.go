package mathkit

// ============================================================
// Factoring
// ============================================================

const maxFactors = 64

// Factor returns v as a product of irreducible pieces.
func (s *System) Factor(v Value) (Term, error) {
	return s.factorValue(v, s.FractionMode)
}

func (s *System) factorValue(v Value, mode FractionMode) (Term, error) {
	switch x := v.(type) {
	case Number:
		return TermOf(Obj(x)), nil
	case VariableValue:
		rec := s.vars[x.Var]
		if rec.Value != nil && rec.PlugIn {
			return s.factorValue(rec.Value, mode)
		}
		return TermOf(Obj(x)), nil
	case Object:
		return s.factorObject(x, mode)
	case Term:
		return s.factorTerm(x, mode)
	case Expression:
		return s.factorExpression(x, mode)
	case FunctionValue:
		return s.factorFunction(x, mode)
	}
	return Term{}, ErrNonAlgebraic
}

// factorObject factors the base and multiplies every resulting exponent
// by the object's own exponent.
func (s *System) factorObject(o Object, mode FractionMode) (Term, error) {
	term, err := s.factorValue(o.Base, mode)
	if err != nil {
		return Term{}, err
	}
	objects := copyObjects(term.Objects)
	for i, ob := range objects {
		e1, e2, err := s.exponentPair(ob, o)
		if err != nil {
			return Term{}, err
		}
		p := e1.Mul(e2)
		if p.IsZero() && Equal(o.Base, Zero) {
			return Term{}, ErrZeroToTheZero
		}
		objects[i].Exponent = p
		if b, err := s.Evaluate(ob.Base); err == nil && b.IsZero() {
			if neg, err := p.Less(Zero); err == nil && neg {
				return Term{}, ErrDivideByZero
			}
		}
	}
	return Term{Objects: objects}, nil
}

func (s *System) factorTerm(t Term, mode FractionMode) (Term, error) {
	var objects []Object
	for _, o := range t.Objects {
		f, err := s.factorObject(o, mode)
		if err != nil {
			return Term{}, err
		}
		objects = append(objects, f.Objects...)
	}
	return s.CombineObjects(Term{Objects: objects})
}

// factorFunction substitutes defined bodies; other applications keep their
// name and get simplified arguments.
func (s *System) factorFunction(fv FunctionValue, mode FractionMode) (Term, error) {
	fn := s.funcs[fv.Func]
	if fn.Name == DerivName || fn.Body != nil {
		r, err := s.EvaluateAt(fv.Func, fv.Args)
		if err != nil {
			return Term{}, err
		}
		return s.factorValue(r, mode)
	}
	args := append([]Value(nil), fv.Args...)
	for i, a := range args {
		if i < len(fn.Protected) && fn.Protected[i] {
			continue
		}
		if simplified, err := s.simplify(Wrap(a), CombineLikeFractions); err == nil {
			args[i] = simplified
		}
	}
	return TermOf(Obj(FunctionValue{Func: fv.Func, Args: args})), nil
}

// factorExpression pulls out denominators and the common factor, then
// repeatedly splits off factors found by getFactor.
func (s *System) factorExpression(e Expression, mode FractionMode) (Term, error) {
	s.nesting++
	defer func() { s.nesting-- }()
	if s.nesting > maxNesting {
		return Term{}, ErrTooComplex
	}

	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		ft, err := s.factorTerm(t, mode)
		if err != nil {
			return Term{}, err
		}
		terms[i] = ft
	}

	var out, reciprocal []Object
	for _, t := range terms {
		den, ok, err := s.Denominator(t)
		if err != nil {
			return Term{}, err
		}
		if !ok {
			continue
		}
		out = append(out, den.Objects...)
		r, err := s.Reciprocal(den)
		if err != nil {
			return Term{}, err
		}
		reciprocal = append(reciprocal, r.Objects...)
	}
	expr, err := s.multiplyByTerm(Expression{Terms: terms}, Term{Objects: reciprocal})
	if err != nil {
		return Term{}, err
	}

	var gcf *Term
	for _, t := range expr.Terms {
		if gcf == nil {
			g := Term{Objects: copyObjects(t.Objects)}
			gcf = &g
			continue
		}
		g, err := s.GCF(*gcf, t)
		if err != nil {
			return Term{}, err
		}
		gcf = &g
	}
	if gcf != nil && len(gcf.Objects) > 0 && !Equal(gcf.Objects[0].Base, Zero) {
		out = append(out, gcf.Objects...)
		r, err := s.Reciprocal(*gcf)
		if err != nil {
			return Term{}, err
		}
		if expr, err = s.multiplyByTerm(expr, r); err != nil {
			return Term{}, err
		}
	}

	if expr, err = s.simplify(expr, mode); err != nil {
		return Term{}, err
	}

	factors := []Expression{expr}
	for i := 0; i < len(factors); {
		if len(factors) > maxFactors {
			return Term{}, ErrTooComplex
		}
		f, ok, err := s.getFactor(factors[i])
		if err != nil {
			return Term{}, err
		}
		if ok {
			q, divided, err := s.divide(factors[i], f)
			if err != nil {
				return Term{}, err
			}
			if divided {
				sf, err := s.simplify(f, mode)
				if err != nil {
					return Term{}, err
				}
				factors[i] = q
				factors = append(factors, sf)
				i = 0
				continue
			}
		}
		i++
	}
	for _, f := range factors {
		out = append(out, Obj(f))
	}
	return s.CombineObjects(Term{Objects: out})
}

// getFactor looks for one factor of a simplified polynomial: difference
// of squares, sum or difference of cubes, an integer quadratic pattern,
// a binomial power, or a grouping.
func (s *System) getFactor(e Expression) (Expression, bool, error) {
	n := len(e.Terms)
	switch {
	case n < 2:
		return Expression{}, false, nil
	case n == 2 && s.IsDifferenceOfSquares(e):
		return s.rootFactor(e, 2)
	case n == 2 && s.IsSumOrDifferenceOfCubes(e):
		return s.rootFactor(e, 3)
	case n == 2:
		return Expression{}, false, nil
	case s.IsQuadraticPattern(e):
		return s.quadraticFactor(e)
	}

	last := n - 1
	quantity := ExprOf(e.Terms[0], e.Terms[last])
	power, err := s.ExpandTerm(TermOf(Pow(quantity, N(float64(last)))))
	if err != nil {
		return Expression{}, false, err
	}
	if Equal(power, e) {
		return quantity, true, nil
	}

	group := ExprOf(e.Terms[0])
	gcf := e.Terms[0]
	for i := 1; i <= n/2; i++ {
		group.Terms = append(copyTerms(group.Terms), e.Terms[i])
		if gcf, err = s.GCF(gcf, e.Terms[i]); err != nil {
			return Expression{}, false, err
		}
		if n%(i+1) != 0 {
			continue
		}
		r, err := s.Reciprocal(gcf)
		if err != nil {
			return Expression{}, false, err
		}
		factor, err := s.multiplyByTerm(group, r)
		if err != nil {
			return Expression{}, false, err
		}
		allMatch := true
		for start := 1; start < n/(i+1); start++ {
			other := Expression{Terms: copyTerms(e.Terms[start*(i+1) : start*(i+1)+i+1])}
			if _, ok := s.Compare(other, factor); !ok {
				allMatch = false
				break
			}
		}
		if allMatch {
			return factor, true, nil
		}
	}
	return Expression{}, false, nil
}

// rootFactor takes the k-th root of both terms of a two term expression:
// exponents are divided by k and numeric bases replaced by their signed
// real root.
func (s *System) rootFactor(e Expression, k float64) (Expression, bool, error) {
	root := One.Div(N(k))
	terms := make([]Term, 2)
	for ti := 0; ti < 2; ti++ {
		objects := make([]Object, len(e.Terms[ti].Objects))
		for i, o := range e.Terms[ti].Objects {
			exp, err := s.Evaluate(o.Exponent)
			if err != nil {
				return Expression{}, false, err
			}
			objects[i] = Pow(o.Base, exp.Div(N(k)))
			base, err := s.Evaluate(o.Base)
			if err != nil {
				continue
			}
			sign := One
			if pos, err := base.Greater(Zero); err == nil && !pos {
				sign = NegOne
			}
			r, err := base.Mul(sign).Pow(root)
			if err != nil {
				return Expression{}, false, err
			}
			objects[i] = Obj(sign.Mul(r))
		}
		terms[ti] = Term{Objects: objects}
	}
	return Expression{Terms: terms}, true, nil
}

// quadraticFactor factors a·X² + b·X + c with integer coefficients and a
// perfect square discriminant into (dX + e).
func (s *System) quadraticFactor(e Expression) (Expression, bool, error) {
	a, _ := s.ExtractNumbers(e.Terms[0])
	b, x := s.ExtractNumbers(e.Terms[1])
	c, _ := s.ExtractNumbers(e.Terms[2])
	for _, n := range []Number{a, b, c} {
		if _, ok := n.AsInteger(); !ok {
			return Expression{}, false, nil
		}
	}
	b2, err := b.Pow(N(2))
	if err != nil {
		return Expression{}, false, err
	}
	disc, err := b2.Sub(N(4).Mul(a).Mul(c)).Pow(N(0.5))
	if err != nil {
		return Expression{}, false, err
	}
	if _, ok := disc.AsInteger(); !ok {
		return Expression{}, false, nil
	}
	num := b.Neg().Add(disc)
	den := N(2).Mul(a)
	gcf := num.GCF(den)
	if gcf.IsZero() {
		return Expression{}, false, nil
	}
	num, den = num.Div(gcf), den.Div(gcf)
	dx := Term{Objects: append([]Object{Obj(den)}, x.Objects...)}
	return ExprOf(dx, TermOf(Obj(num.Mul(NegOne)))), true, nil
}

// ============================================================
// Structural patterns
// ============================================================

// IsDifferenceOfSquares reports a two term expression with coefficients of
// opposite sign whose remaining parts are perfect squares.
func (s *System) IsDifferenceOfSquares(e Expression) bool {
	if len(e.Terms) != 2 {
		return false
	}
	numA, restA := s.ExtractNumbers(e.Terms[0])
	numB, restB := s.ExtractNumbers(e.Terms[1])
	posA, err1 := numA.Greater(Zero)
	posB, err2 := numB.Greater(Zero)
	negA, err3 := numA.Less(Zero)
	negB, err4 := numB.Less(Zero)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	if (posA && posB) || (negA && negB) {
		return false
	}
	return s.IsSquare(restA) && s.IsSquare(restB)
}

func (s *System) IsSumOrDifferenceOfCubes(e Expression) bool {
	if len(e.Terms) != 2 {
		return false
	}
	_, restA := s.ExtractNumbers(e.Terms[0])
	_, restB := s.ExtractNumbers(e.Terms[1])
	return s.IsCube(restA) && s.IsCube(restB)
}

// IsQuadraticPattern reports a·X² + b·X + c where X is any product.
func (s *System) IsQuadraticPattern(e Expression) bool {
	if len(e.Terms) != 3 {
		return false
	}
	_, restA := s.ExtractNumbers(e.Terms[0])
	_, restB := s.ExtractNumbers(e.Terms[1])
	_, restC := s.ExtractNumbers(e.Terms[2])
	if len(restC.Objects) != 0 {
		return false
	}
	q, err := s.DivideTerms(restA, restB)
	if err != nil {
		return false
	}
	_, restQ := s.ExtractNumbers(q)
	return Equal(restQ, restB)
}

// ============================================================
// Division and comparison
// ============================================================

// Divide performs polynomial long division of the simplified operands. ok
// is false when the division leaves a remainder.
func (s *System) Divide(a, b Expression) (Expression, bool, error) {
	a, err := s.simplify(a, CombineLikeFractions)
	if err != nil {
		return Expression{}, false, err
	}
	if b, err = s.simplify(b, CombineLikeFractions); err != nil {
		return Expression{}, false, err
	}
	return s.divide(a, b)
}

func (s *System) divide(a, b Expression) (Expression, bool, error) {
	remainder := s.Order(a)
	divisor := s.Order(b)
	if len(divisor.Terms) == 0 {
		return Expression{}, false, ErrDivideByZero
	}
	var quotient []Term
	for steps := 0; len(remainder.Terms) != 0; steps++ {
		if n, _ := s.ExtractNumbers(remainder.Terms[0]); n.IsZero() {
			break
		}
		if steps >= maxFactors {
			return Expression{}, false, nil
		}
		qt, err := s.DivideTerms(remainder.Terms[0], divisor.Terms[0])
		if err != nil {
			return Expression{}, false, err
		}
		if _, hasDen, err := s.Denominator(qt); err != nil {
			return Expression{}, false, err
		} else if hasDen {
			return Expression{}, false, nil
		}
		product, err := s.multiplyByTerm(divisor, qt)
		if err != nil {
			return Expression{}, false, err
		}
		quotient = append(quotient, qt)
		if remainder, err = s.subtract(remainder, product, CombineLikeFractions); err != nil {
			return Expression{}, false, err
		}
	}
	out, err := s.simplify(Expression{Terms: quotient}, CombineLikeFractions)
	if err != nil {
		return Expression{}, false, err
	}
	return out, true, nil
}

// Compare returns a/b when the two simplified expressions differ only by
// a numeric factor.
func (s *System) Compare(a, b Expression) (Number, bool) {
	remaining := copyTerms(a.Terms)
	var ratio Number
	found := false
	for _, t := range b.Terms {
		match := false
		for i := range remaining {
			q, err := s.DivideTerms(remaining[i], t)
			if err != nil {
				continue
			}
			n, err := s.Evaluate(q)
			if err != nil {
				continue
			}
			if !found || n.Equal(ratio) {
				remaining = append(remaining[:i], remaining[i+1:]...)
				ratio, found = n, true
				match = true
				break
			}
		}
		if !match {
			return Number{}, false
		}
	}
	return ratio, found && len(remaining) == 0
}
