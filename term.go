package mathkit

// ============================================================
// Term algebra
// ============================================================

const maxCombineObjects = 512

// CombineObjects multiplies the numeric objects of t into one leading
// coefficient and merges objects with equal or proportional bases.
func (s *System) CombineObjects(t Term) (Term, error) {
	number := One
	var others []Object
	for _, o := range t.Objects {
		if n, err := s.evaluateObject(o); err == nil {
			number = number.Mul(n)
		} else {
			others = append(others, o)
		}
	}
	if number.IsZero() {
		return TermOf(Obj(Zero)), nil
	}
	objects := []Object{Obj(number)}
	for i := 0; i < len(others); i++ {
		if i >= maxCombineObjects {
			return Term{}, ErrTooComplex
		}
		val := others[i]
		match := false
		for j := range objects {
			o := objects[j]
			if Equal(o.Base, val.Base) {
				sum, err := s.sumExponents(val, o)
				if err != nil {
					return Term{}, err
				}
				objects[j].Exponent = sum
				match = true
				break
			}
			valBase, ok1 := val.Base.(Expression)
			oBase, ok2 := o.Base.(Expression)
			if !ok1 || !ok2 {
				continue
			}
			if ratio, ok := s.Compare(valBase, oBase); ok {
				e1, e2, err := s.exponentPair(val, o)
				if err != nil {
					return Term{}, err
				}
				objects[j].Exponent = e1.Add(e2)
				if outsideUnit(ratio) {
					p, err := ratio.Pow(e1)
					if err != nil {
						return Term{}, err
					}
					number = number.Mul(p)
				} else {
					p, err := One.Div(ratio).Pow(e2)
					if err != nil {
						return Term{}, err
					}
					number = number.Mul(p)
					objects[j].Base = valBase
				}
				match = true
				break
			}
			if q, ok, err := s.divide(valBase, oBase); err != nil {
				return Term{}, err
			} else if ok {
				e1, e2, err := s.exponentPair(val, o)
				if err != nil {
					return Term{}, err
				}
				objects[j].Exponent = e1.Add(e2)
				others = append(others, Pow(q, e1))
				match = true
				break
			}
			if q, ok, err := s.divide(oBase, valBase); err != nil {
				return Term{}, err
			} else if ok {
				e1, e2, err := s.exponentPair(val, o)
				if err != nil {
					return Term{}, err
				}
				objects[j].Base = valBase
				objects[j].Exponent = e1.Add(e2)
				others = append(others, Pow(q, e2))
				match = true
				break
			}
		}
		if !match {
			objects = append(objects, val)
		}
	}
	objects[0] = Obj(number)

	out := objects[:0:0]
	for _, o := range objects {
		if Equal(o.Exponent, Zero) {
			if b, err := s.Evaluate(o.Base); err == nil && b.IsZero() {
				return Term{}, ErrZeroToTheZero
			}
			continue
		}
		out = append(out, o)
	}
	return Term{Objects: out}, nil
}

// outsideUnit reports |n| > 1; non-real numbers count as inside.
func outsideUnit(n Number) bool {
	gt, err1 := n.Greater(One)
	lt, err2 := n.Less(NegOne)
	return err1 == nil && err2 == nil && (gt || lt)
}

func (s *System) exponentPair(a, b Object) (Number, Number, error) {
	e1, err := s.Evaluate(a.Exponent)
	if err != nil {
		return Number{}, Number{}, err
	}
	e2, err := s.Evaluate(b.Exponent)
	if err != nil {
		return Number{}, Number{}, err
	}
	return e1, e2, nil
}

func (s *System) sumExponents(a, b Object) (Number, error) {
	e1, e2, err := s.exponentPair(a, b)
	if err != nil {
		return Number{}, err
	}
	return e1.Add(e2), nil
}

// ExtractNumbers splits t into the product of its numeric objects and the
// remaining objects.
func (s *System) ExtractNumbers(t Term) (Number, Term) {
	number := One
	var rest []Object
	for _, o := range t.Objects {
		if n, err := s.evaluateObject(o); err == nil {
			number = number.Mul(n)
		} else {
			rest = append(rest, o)
		}
	}
	return number, Term{Objects: rest}
}

// AddTerms adds like terms, those equal apart from their coefficients. ok
// is false when the terms are not alike.
func (s *System) AddTerms(a, b Term) (Term, bool) {
	numA, restA := s.ExtractNumbers(a)
	numB, restB := s.ExtractNumbers(b)
	if !Equal(restA, restB) {
		return Term{}, false
	}
	return Term{Objects: append(restA.Objects, Obj(numA.Add(numB)))}, true
}

func (s *System) MultiplyTerms(a, b Term) (Term, error) {
	objects := make([]Object, 0, len(a.Objects)+len(b.Objects))
	objects = append(objects, a.Objects...)
	objects = append(objects, b.Objects...)
	return s.CombineObjects(Term{Objects: objects})
}

// DivideTerms negates the exponents of b and combines. Exponents of b
// must be plain numbers.
func (s *System) DivideTerms(a, b Term) (Term, error) {
	objects := copyObjects(a.Objects)
	for _, o := range b.Objects {
		n, ok := o.Exponent.(Number)
		if !ok {
			return Term{}, ErrNonAlgebraic
		}
		objects = append(objects, Pow(o.Base, n.Neg()))
	}
	return s.CombineObjects(Term{Objects: objects})
}

// ExpandTerm distributes the term over every expression base raised to a
// positive integer.
func (s *System) ExpandTerm(t Term) (Expression, error) {
	product := ExprOf(TermOf(Obj(One)))
	rest := TermOf(Obj(One))
	for _, o := range t.Objects {
		expanded, ok, err := s.expandObject(o)
		if err != nil {
			return Expression{}, err
		}
		if ok {
			if product, err = s.MultiplyExpressions(product, expanded); err != nil {
				return Expression{}, err
			}
		} else {
			rest.Objects = append(rest.Objects, o)
		}
	}
	terms := make([]Term, len(product.Terms))
	for i, pt := range product.Terms {
		m, err := s.MultiplyTerms(pt, rest)
		if err != nil {
			return Expression{}, err
		}
		terms[i] = m
	}
	return Expression{Terms: terms}, nil
}

func (s *System) expandObject(o Object) (Expression, bool, error) {
	exp, err := s.Evaluate(o.Exponent)
	if err != nil {
		return Expression{}, false, err
	}
	if !exp.IsReal() {
		return Expression{}, false, ErrRaisedToComplex
	}
	base, ok := o.Base.(Expression)
	k, isInt := exp.AsInteger()
	if !ok || !isInt || k <= 0 {
		return Expression{}, false, nil
	}
	product := ExprOf(TermOf(Obj(One)))
	for i := 0; i < k; i++ {
		if product, err = s.MultiplyExpressions(product, base); err != nil {
			return Expression{}, false, err
		}
	}
	return product, true, nil
}

// simplifyTerm merges expression bases with equal exponents, simplifies the
// rest and combines. ok is false when the term reduces to zero.
func (s *System) simplifyTerm(t Term) (Term, bool, error) {
	var objects []Object
	for _, o := range t.Objects {
		base1, isExpr := o.Base.(Expression)
		match := false
		if isExpr {
			for i := range objects {
				base2, ok := objects[i].Base.(Expression)
				if !ok || !Equal(o.Exponent, objects[i].Exponent) {
					continue
				}
				product, err := s.MultiplyExpressions(base1, base2)
				if err != nil {
					return Term{}, false, err
				}
				simplified, err := s.simplify(product, CombineLikeFractions)
				if err != nil {
					return Term{}, false, err
				}
				objects[i] = Pow(simplified, o.Exponent)
				match = true
				break
			}
		}
		if match {
			continue
		}
		if isExpr {
			simplified, err := s.simplify(base1, CombineLikeFractions)
			if err != nil {
				return Term{}, false, err
			}
			objects = append(objects, Pow(simplified, o.Exponent))
		} else {
			objects = append(objects, o)
		}
	}
	combined, err := s.CombineObjects(Term{Objects: objects})
	if err != nil {
		return Term{}, false, err
	}
	if len(combined.Objects) == 0 || (len(combined.Objects) == 1 && Equal(combined.Objects[0].Base, Zero)) {
		return Term{}, false, nil
	}
	number, rest := s.ExtractNumbers(combined)
	if number.Equal(One) && len(rest.Objects) > 0 {
		return rest, true, nil
	}
	return combined, true, nil
}

// ============================================================
// Numerators, denominators, common factors
// ============================================================

// Numerator returns the objects with positive exponents, or 1.
func (s *System) Numerator(t Term) (Term, error) {
	var out []Object
	for _, o := range t.Objects {
		e, err := s.Evaluate(o.Exponent)
		if err != nil {
			return Term{}, err
		}
		pos, err := e.Greater(Zero)
		if err != nil {
			return Term{}, err
		}
		if pos {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return TermOf(Obj(One)), nil
	}
	return Term{Objects: out}, nil
}

// Denominator returns the objects with negative exponents; ok is false
// when there are none.
func (s *System) Denominator(t Term) (Term, bool, error) {
	var out []Object
	for _, o := range t.Objects {
		e, err := s.Evaluate(o.Exponent)
		if err != nil {
			return Term{}, false, err
		}
		neg, err := e.Less(Zero)
		if err != nil {
			return Term{}, false, err
		}
		if neg {
			out = append(out, o)
		}
	}
	if len(out) == 0 {
		return Term{}, false, nil
	}
	return Term{Objects: out}, true, nil
}

// Reciprocal negates every exponent of t.
func (s *System) Reciprocal(t Term) (Term, error) {
	out := make([]Object, len(t.Objects))
	for i, o := range t.Objects {
		e, err := s.Evaluate(o.Exponent)
		if err != nil {
			return Term{}, err
		}
		out[i] = Pow(o.Base, e.Neg())
	}
	return Term{Objects: out}, nil
}

// Extract removes every power of id from t and returns the summed
// exponent.
func (s *System) Extract(t Term, id VarID) (Number, Term, error) {
	degree := Zero
	var rest []Object
	for _, o := range t.Objects {
		if v, ok := o.Base.(VariableValue); ok && v.Var == id {
			e, err := s.Evaluate(o.Exponent)
			if err != nil {
				return Number{}, Term{}, err
			}
			degree = degree.Add(e)
			continue
		}
		rest = append(rest, o)
	}
	return degree, Term{Objects: rest}, nil
}

// GCF returns the greatest common factor of two terms: shared bases at the
// smaller exponent, proportional expression bases, and the integer gcf of
// the coefficients.
func (s *System) GCF(a, b Term) (Term, error) {
	var gcf []Object
	unchecked := copyObjects(b.Objects)
	num1, num2 := One, One
	for _, o := range unchecked {
		if n, err := s.evaluateObject(o); err == nil {
			num2 = num2.Mul(n)
		}
	}
	for _, o := range a.Objects {
		if n, err := s.evaluateObject(o); err == nil {
			num1 = num1.Mul(n)
			continue
		}
		for i := range unchecked {
			u := unchecked[i]
			if Equal(o.Base, u.Base) {
				e1, e2, err := s.exponentPair(o, u)
				if err != nil {
					return Term{}, err
				}
				m, err := minNumber(e1, e2)
				if err != nil {
					return Term{}, err
				}
				gcf = append(gcf, Pow(o.Base, m))
				unchecked = append(unchecked[:i], unchecked[i+1:]...)
				break
			}
			base1, ok1 := o.Base.(Expression)
			base2, ok2 := u.Base.(Expression)
			if !ok1 || !ok2 {
				continue
			}
			ratio, ok := s.Compare(base1, base2)
			if !ok {
				continue
			}
			e1, e2, err := s.exponentPair(o, u)
			if err != nil {
				return Term{}, err
			}
			m, err := minNumber(e1, e2)
			if err != nil {
				return Term{}, err
			}
			unchecked = append(unchecked[:i], unchecked[i+1:]...)
			if outsideUnit(ratio) {
				gcf = append(gcf, Pow(base2, m))
				num1 = num1.Mul(ratio)
			} else {
				gcf = append(gcf, Pow(base1, m))
				num2 = num2.Div(ratio)
			}
			break
		}
	}
	gcf = append(gcf, Obj(num1.GCF(num2)))
	return Term{Objects: gcf}, nil
}

func (s *System) LCM(a, b Term) (Term, error) {
	product, err := s.MultiplyTerms(a, b)
	if err != nil {
		return Term{}, err
	}
	gcf, err := s.GCF(a, b)
	if err != nil {
		return Term{}, err
	}
	return s.DivideTerms(product, gcf)
}

// isPower reports whether every exponent of t is a multiple of k.
func (s *System) isPower(t Term, k float64) bool {
	for _, o := range t.Objects {
		e, err := s.Evaluate(o.Exponent)
		if err != nil {
			return false
		}
		m, err := e.Mod(N(k))
		if err != nil || !m.IsZero() {
			return false
		}
	}
	return true
}

func (s *System) IsSquare(t Term) bool { return s.isPower(t, 2) }
func (s *System) IsCube(t Term) bool   { return s.isPower(t, 3) }
