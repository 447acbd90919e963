package mathkit

import "sort"

// ============================================================
// Expression algebra
// ============================================================

const maxNesting = 256

// AsExpression lifts any value to an expression.
func AsExpression(v Value) Expression {
	switch x := v.(type) {
	case Expression:
		return x
	case Term:
		return ExprOf(x)
	case Object:
		return ExprOf(TermOf(x))
	}
	return Wrap(v)
}

// Simplify rewrites v into canonical form using the system's fraction mode:
// factor every term, combine like terms, expand, combine again, simplify
// each term and order the result.
func (s *System) Simplify(v Value) (Expression, error) {
	return s.simplify(AsExpression(v), s.FractionMode)
}

func (s *System) simplify(e Expression, mode FractionMode) (Expression, error) {
	s.nesting++
	defer func() { s.nesting-- }()
	if s.nesting > maxNesting {
		return Expression{}, ErrTooComplex
	}

	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		ft, err := s.factorTerm(t, mode)
		if err != nil {
			return Expression{}, err
		}
		terms[i] = ft
	}
	combined, err := s.combineLikeTerms(Expression{Terms: terms}, mode)
	if err != nil {
		return Expression{}, err
	}
	var distributed []Term
	for _, t := range combined.Terms {
		ex, err := s.ExpandTerm(t)
		if err != nil {
			return Expression{}, err
		}
		distributed = append(distributed, ex.Terms...)
	}
	combined, err = s.combineLikeTerms(Expression{Terms: distributed}, mode)
	if err != nil {
		return Expression{}, err
	}
	out := copyTerms(combined.Terms)
	for i := len(out) - 1; i >= 0; i-- {
		st, ok, err := s.simplifyTerm(out[i])
		if err != nil {
			return Expression{}, err
		}
		if ok {
			out[i] = st
		} else {
			out = append(out[:i], out[i+1:]...)
		}
	}
	if len(out) == 0 {
		out = []Term{TermOf(Obj(Zero))}
	}
	return s.Order(Expression{Terms: out}), nil
}

// CombineLikeTerms sums like terms and then treats fractions according to
// the system's fraction mode.
func (s *System) CombineLikeTerms(e Expression) (Expression, error) {
	return s.combineLikeTerms(e, s.FractionMode)
}

func (s *System) combineLikeTerms(e Expression, mode FractionMode) (Expression, error) {
	var summed []Term
	for _, t := range e.Terms {
		match := false
		for i := range summed {
			if sum, ok := s.AddTerms(t, summed[i]); ok {
				summed[i] = sum
				match = true
			}
		}
		if !match {
			summed = append(summed, t)
		}
	}

	switch mode {
	case CombineAllFractions:
		return s.combineAllFractions(summed)
	case CombineAllTerms:
		return s.combineAllTerms(summed)
	case CombineLikeFractions:
		return s.combineLikeFractions(summed)
	}
	return Expression{Terms: summed}, nil
}

// overLCM builds numerator * lcm^-1 as one combined term.
func (s *System) overLCM(numerator Expression, lcm Term) (Term, error) {
	inverse, err := s.factorObject(Pow(lcm, NegOne), CombineLikeFractions)
	if err != nil {
		return Term{}, err
	}
	objects := append([]Object{Obj(numerator)}, inverse.Objects...)
	return s.CombineObjects(Term{Objects: objects})
}

func (s *System) combineAllFractions(terms []Term) (Expression, error) {
	lcm := TermOf(Obj(One))
	nonFractions := copyTerms(terms)
	var fractions []Term
	for i := len(nonFractions) - 1; i >= 0; i-- {
		den, ok, err := s.Denominator(nonFractions[i])
		if err != nil {
			return Expression{}, err
		}
		if !ok {
			continue
		}
		r, err := s.Reciprocal(den)
		if err != nil {
			return Expression{}, err
		}
		if lcm, err = s.LCM(lcm, r); err != nil {
			return Expression{}, err
		}
		fractions = append(fractions, nonFractions[i])
		nonFractions = append(nonFractions[:i], nonFractions[i+1:]...)
	}
	if len(fractions) == 0 {
		return Expression{Terms: nonFractions}, nil
	}
	product, err := s.multiplyByTerm(Expression{Terms: fractions}, lcm)
	if err != nil {
		return Expression{}, err
	}
	numerator, err := s.simplify(product, CombineAllFractions)
	if err != nil {
		return Expression{}, err
	}
	fraction, err := s.overLCM(numerator, lcm)
	if err != nil {
		return Expression{}, err
	}
	return Expression{Terms: append(nonFractions, fraction)}, nil
}

func (s *System) combineAllTerms(terms []Term) (Expression, error) {
	lcm := TermOf(Obj(One))
	for _, t := range terms {
		den, ok, err := s.Denominator(t)
		if err != nil {
			return Expression{}, err
		}
		if !ok {
			continue
		}
		r, err := s.Reciprocal(den)
		if err != nil {
			return Expression{}, err
		}
		if lcm, err = s.LCM(lcm, r); err != nil {
			return Expression{}, err
		}
	}
	if n, err := s.Evaluate(lcm); err == nil && n.Equal(One) {
		return Expression{Terms: terms}, nil
	}
	product, err := s.multiplyByTerm(Expression{Terms: terms}, lcm)
	if err != nil {
		return Expression{}, err
	}
	numerator, err := s.simplify(product, CombineAllTerms)
	if err != nil {
		return Expression{}, err
	}
	fraction, err := s.overLCM(numerator, lcm)
	if err != nil {
		return Expression{}, err
	}
	return ExprOf(fraction), nil
}

// combineLikeFractions merges fractions whose denominators differ only by
// a numeric factor.
func (s *System) combineLikeFractions(terms []Term) (Expression, error) {
	nonFractions := copyTerms(terms)
	var fractions []Term
	for i := len(nonFractions) - 1; i >= 0; i-- {
		den, ok, err := s.Denominator(nonFractions[i])
		if err != nil {
			return Expression{}, err
		}
		if !ok {
			continue
		}
		match := false
		for j := range fractions {
			den2, _, err := s.Denominator(fractions[j])
			if err != nil {
				return Expression{}, err
			}
			if den2, err = s.Reciprocal(den2); err != nil {
				return Expression{}, err
			}
			product, err := s.MultiplyTerms(den, den2)
			if err != nil {
				return Expression{}, err
			}
			if len(product.Objects) != 1 {
				continue
			}
			multiplier, err := s.evaluateObject(product.Objects[0])
			if err != nil {
				continue
			}
			num1, err := s.Numerator(nonFractions[i])
			if err != nil {
				return Expression{}, err
			}
			if num1, err = s.MultiplyTerms(num1, TermOf(Obj(multiplier))); err != nil {
				return Expression{}, err
			}
			num2, err := s.Numerator(fractions[j])
			if err != nil {
				return Expression{}, err
			}
			numerator, err := s.simplify(ExprOf(num1, num2), CombineLikeFractions)
			if err != nil {
				return Expression{}, err
			}
			back, err := s.Reciprocal(den2)
			if err != nil {
				return Expression{}, err
			}
			fractions[j] = Term{Objects: append([]Object{Obj(numerator)}, back.Objects...)}
			match = true
			break
		}
		if !match {
			fractions = append(fractions, nonFractions[i])
		}
		nonFractions = append(nonFractions[:i], nonFractions[i+1:]...)
	}
	return Expression{Terms: append(nonFractions, fractions...)}, nil
}

// ============================================================
// Ordering
// ============================================================

// Order sorts terms by their variables: lower variable handles first, then
// higher exponents first, then terms with more variables first.
func (s *System) Order(e Expression) Expression {
	terms := copyTerms(e.Terms)
	sort.SliceStable(terms, func(i, j int) bool { return s.termBefore(terms[i], terms[j]) })
	return Expression{Terms: terms}
}

func variableObjects(t Term) []Object {
	var out []Object
	for _, o := range t.Objects {
		if _, ok := o.Base.(VariableValue); ok {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Base.(VariableValue).Var < out[j].Base.(VariableValue).Var
	})
	return out
}

func (s *System) termBefore(a, b Term) bool {
	vars1, vars2 := variableObjects(a), variableObjects(b)
	for i := 0; i < len(vars1) && i < len(vars2); i++ {
		id1 := vars1[i].Base.(VariableValue).Var
		id2 := vars2[i].Base.(VariableValue).Var
		if id1 < id2 {
			return true
		}
		if id1 > id2 {
			return false
		}
		n1, err1 := s.Evaluate(vars1[i].Exponent)
		n2, err2 := s.Evaluate(vars2[i].Exponent)
		if err1 != nil || err2 != nil {
			continue
		}
		if c := compareParts(n1, n2); c != 0 {
			return c > 0
		}
	}
	return len(vars1) > len(vars2)
}

// compareParts orders numbers by real part, then by imaginary part.
func compareParts(a, b Number) int {
	switch {
	case a.Real < b.Real:
		return -1
	case a.Real > b.Real:
		return 1
	case a.Imag < b.Imag:
		return -1
	case a.Imag > b.Imag:
		return 1
	}
	return 0
}

// ============================================================
// Arithmetic
// ============================================================

// AddExpressions returns the simplified sum.
func (s *System) AddExpressions(a, b Expression) (Expression, error) {
	return s.add(a, b, s.FractionMode)
}

func (s *System) add(a, b Expression, mode FractionMode) (Expression, error) {
	terms := make([]Term, 0, len(a.Terms)+len(b.Terms))
	terms = append(terms, a.Terms...)
	terms = append(terms, b.Terms...)
	return s.simplify(Expression{Terms: terms}, mode)
}

// SubtractExpressions returns the simplified difference.
func (s *System) SubtractExpressions(a, b Expression) (Expression, error) {
	return s.subtract(a, b, s.FractionMode)
}

func (s *System) subtract(a, b Expression, mode FractionMode) (Expression, error) {
	neg, err := s.Negate(b)
	if err != nil {
		return Expression{}, err
	}
	return s.add(a, neg, mode)
}

// Negate multiplies every term by -1.
func (s *System) Negate(e Expression) (Expression, error) {
	return s.multiplyByTerm(e, TermOf(Obj(NegOne)))
}

// MultiplyExpressions distributes a over b and sums like terms.
func (s *System) MultiplyExpressions(a, b Expression) (Expression, error) {
	var terms []Term
	for _, t1 := range b.Terms {
		for _, t2 := range a.Terms {
			m, err := s.MultiplyTerms(t1, t2)
			if err != nil {
				return Expression{}, err
			}
			terms = append(terms, m)
		}
	}
	return s.combineLikeTerms(Expression{Terms: terms}, CombineLikeFractions)
}

func (s *System) multiplyByTerm(e Expression, t Term) (Expression, error) {
	terms := make([]Term, len(e.Terms))
	for i, et := range e.Terms {
		m, err := s.MultiplyTerms(et, t)
		if err != nil {
			return Expression{}, err
		}
		terms[i] = m
	}
	return Expression{Terms: terms}, nil
}

// Expand distributes every term of e over its integer powers of sums and
// combines like terms. Unlike Simplify it does not factor first.
func (s *System) Expand(e Expression) (Expression, error) {
	var terms []Term
	for _, t := range e.Terms {
		ex, err := s.ExpandTerm(t)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, ex.Terms...)
	}
	combined, err := s.combineLikeTerms(Expression{Terms: terms}, NeverCombine)
	if err != nil {
		return Expression{}, err
	}
	return s.Order(combined), nil
}
