package mathkit

import (
	"math"
	"sort"
)

// ============================================================
// Equations
// ============================================================

// Equation is lhs = rhs.
type Equation struct {
	LHS Expression
	RHS Expression
}

const maxSolveDepth = 32

// EquationString renders "lhs = rhs".
func (s *System) EquationString(eq Equation) string {
	return s.String(eq.LHS) + " = " + s.String(eq.RHS)
}

// PlugInEquation substitutes value for id on both sides.
func (s *System) PlugInEquation(eq Equation, id VarID, value Value) Equation {
	return Equation{
		LHS: s.plugInExpression(eq.LHS, id, value),
		RHS: s.plugInExpression(eq.RHS, id, value),
	}
}

// EquationVariables lists the variables that survive simplifying lhs + rhs.
func (s *System) EquationVariables(eq Equation) []VarID {
	sum, err := s.add(eq.LHS, eq.RHS, CombineLikeFractions)
	if err != nil {
		return nil
	}
	return s.Variables(sum)
}

// Solve finds the values of id satisfying eq. rhs - lhs is factored and
// each factor with a positive exponent contributes its zeros; factors with
// negative exponents exclude candidates at which they vanish.
func (s *System) Solve(eq Equation, id VarID) ([]Value, error) {
	diff, err := s.subtract(eq.RHS, eq.LHS, CombineLikeFractions)
	if err != nil {
		return nil, err
	}
	if diff, err = s.combineLikeTerms(diff, CombineLikeFractions); err != nil {
		return nil, err
	}
	if diff, err = s.simplify(diff, CombineLikeFractions); err != nil {
		return nil, err
	}
	factored, err := s.factorExpression(diff, CombineLikeFractions)
	if err != nil {
		return nil, err
	}

	var solutions, outOfDomain []Value
	for _, f := range factored.Objects {
		exp, err := s.Evaluate(f.Exponent)
		if err != nil {
			return nil, err
		}
		if !exp.IsReal() {
			return nil, ErrRaisedToComplex
		}
		switch {
		case exp.Real > 0:
			switch base := f.Base.(type) {
			case VariableValue:
				if base.Var == id {
					solutions = append(solutions, Zero)
				}
			case FunctionValue:
				if body := s.funcs[base.Func].Body; body != nil {
					solutions = append(solutions, body)
				} else {
					solutions = append(solutions, base)
				}
			case Expression:
				sols, err := s.solveFactor(base, id)
				if err != nil {
					return nil, err
				}
				solutions = append(solutions, sols...)
			}
		case exp.Real < 0:
			outOfDomain = append(outOfDomain, f.Base)
		}
	}

	for i := len(solutions) - 1; i >= 0; i-- {
		for _, out := range outOfDomain {
			val, err := s.Evaluate(s.PlugIn(out, id, solutions[i]))
			if err != nil || val.IsZero() {
				solutions = append(solutions[:i], solutions[i+1:]...)
				break
			}
		}
	}
	return solutions, nil
}

type degreeGroup struct {
	degree Number
	terms  []Term
}

// groupByDegree buckets the terms of e by the exponent of id, with the
// variable removed. Groups come out in ascending degree.
func (s *System) groupByDegree(e Expression, id VarID) ([]degreeGroup, error) {
	var groups []degreeGroup
	for _, t := range e.Terms {
		degree, rest, err := s.Extract(t, id)
		if err != nil {
			return nil, err
		}
		found := false
		for i := range groups {
			if groups[i].degree.Equal(degree) {
				groups[i].terms = append(groups[i].terms, rest)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, degreeGroup{degree: degree, terms: []Term{rest}})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		lt, err := groups[i].degree.Less(groups[j].degree)
		return err == nil && lt
	})
	return groups, nil
}

// solveFactor solves a simplified factor that is a binomial in id, or a
// trinomial whose degrees are 0, n and 2n.
func (s *System) solveFactor(e Expression, id VarID) ([]Value, error) {
	groups, err := s.groupByDegree(e, id)
	if err != nil {
		return nil, err
	}
	switch len(groups) {
	case 2:
		return s.solveBinomial(groups)
	case 3:
		return s.solveTrinomial(groups)
	}
	return nil, nil
}

// solveBinomial solves A·x^d + B = 0 as x = (-B/A)^(1/d), adding the
// negated root for even d.
func (s *System) solveBinomial(groups []degreeGroup) ([]Value, error) {
	lead, other := groups[1], groups[0]
	if !groups[0].degree.IsZero() && groups[1].degree.IsZero() {
		lead, other = groups[0], groups[1]
	}
	d1 := lead.degree
	q := TermOf(
		Obj(Expression{Terms: other.terms}),
		Pow(Expression{Terms: lead.terms}, NegOne),
		Obj(NegOne),
	)
	factored, err := s.factorTerm(q, CombineLikeFractions)
	if err != nil {
		return nil, err
	}
	simplified, ok, err := s.simplifyTerm(factored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Value{Zero}, nil
	}
	objects := copyObjects(simplified.Objects)
	for i, o := range objects {
		e, err := s.Evaluate(o.Exponent)
		if err != nil {
			return nil, err
		}
		objects[i].Exponent = e.Div(d1)
	}
	root, err := s.expandSimplify(Term{Objects: objects})
	if err != nil {
		return nil, err
	}
	solutions := []Value{root}
	if p, _, ok := d1.ApproximateRational(); ok && p%2 == 0 {
		neg, err := s.expandSimplify(Term{Objects: append(objects, Obj(NegOne))})
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, neg)
	}
	return solutions, nil
}

func (s *System) expandSimplify(t Term) (Expression, error) {
	ex, err := s.ExpandTerm(t)
	if err != nil {
		return Expression{}, err
	}
	return s.simplify(ex, CombineLikeFractions)
}

// solveTrinomial applies the quadratic formula in x^n to a·x^(2n) + b·x^n + c.
func (s *System) solveTrinomial(groups []degreeGroup) ([]Value, error) {
	var c degreeGroup
	var rest []degreeGroup
	hasConstant := false
	for _, g := range groups {
		if g.degree.IsZero() {
			c, hasConstant = g, true
		} else {
			rest = append(rest, g)
		}
	}
	if !hasConstant {
		return nil, nil
	}
	low, high := rest[0], rest[1]
	switch {
	case low.degree.Mul(N(2)).Equal(high.degree):
	case high.degree.Mul(N(2)).Equal(low.degree):
		low, high = high, low
	default:
		return nil, nil
	}
	n := low.degree
	a := Expression{Terms: high.terms}
	b := Expression{Terms: low.terms}
	cExpr := Expression{Terms: c.terms}

	negB, err := s.subtract(Expression{}, b, CombineLikeFractions)
	if err != nil {
		return nil, err
	}
	twoA, err := s.multiplyByTerm(a, TermOf(Obj(N(2))))
	if err != nil {
		return nil, err
	}
	bb, err := s.MultiplyExpressions(b, b)
	if err != nil {
		return nil, err
	}
	ac, err := s.MultiplyExpressions(a, cExpr)
	if err != nil {
		return nil, err
	}
	fourAC, err := s.multiplyByTerm(ac, TermOf(Obj(N(4))))
	if err != nil {
		return nil, err
	}
	disc, err := s.subtract(bb, fourAC, CombineLikeFractions)
	if err != nil {
		return nil, err
	}

	p, _, ok := n.ApproximateRational()
	if !ok {
		return nil, nil
	}
	var solutions []Value
	for _, sign := range []Number{NegOne, One} {
		root := TermOf(Obj(sign), Pow(disc, N(0.5)))
		numerator := Expression{Terms: append(copyTerms(negB.Terms), root)}
		solution := ExprOf(TermOf(Obj(numerator), Pow(twoA, NegOne)))
		obj := Pow(solution, One.Div(n))
		sol := ExprOf(TermOf(obj))
		if expanded, ok, err := s.expandObject(obj); err != nil {
			return nil, err
		} else if ok {
			if sol, err = s.simplify(expanded, CombineLikeFractions); err != nil {
				return nil, err
			}
		}
		simplified, err := s.simplify(sol, CombineLikeFractions)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, simplified)
		if p%2 == 0 {
			negated, err := s.multiplyByTerm(sol, TermOf(Obj(NegOne)))
			if err != nil {
				return nil, err
			}
			if negated, err = s.simplify(negated, CombineLikeFractions); err != nil {
				return nil, err
			}
			solutions = append(solutions, negated)
		}
	}
	return solutions, nil
}

// ============================================================
// Systems of equations
// ============================================================

type taggedSolution struct {
	value    Value
	equation int
}

// SolveSystem solves the stored equations for id by substitution. Every
// equation is solved for every user variable, linear solutions are chained
// through the other equations, and surviving candidates are checked
// against all equations.
func (s *System) SolveSystem(id VarID) ([]Value, error) {
	perVariable := map[VarID][][]taggedSolution{}
	for i, eq := range s.Equations {
		for _, v := range s.UserVariables() {
			sols, err := s.Solve(eq, v)
			if err != nil {
				return nil, err
			}
			var tagged []taggedSolution
			for _, sol := range sols {
				if s.IsLinear(sol) {
					tagged = append(tagged, taggedSolution{value: sol, equation: i})
				}
			}
			perVariable[v] = append(perVariable[v], tagged)
		}
	}

	candidates, err := s.substitute(perVariable, id, nil, nil)
	if err != nil {
		return nil, err
	}

	var solutions []Value
	for _, value := range candidates {
		eq := Equation{LHS: Wrap(Var(id)), RHS: Wrap(value)}
		sols, err := s.Solve(eq, id)
		if err != nil {
			return nil, err
		}
		solutions = append(solutions, sols...)
	}

	var checked []Value
	for _, sol := range solutions {
		works := true
		for _, eq := range s.Equations {
			e := s.PlugInEquation(eq, id, sol)
			lhs, errL := s.Evaluate(e.LHS)
			rhs, errR := s.Evaluate(e.RHS)
			if errL == nil && errR == nil && !closeTo(lhs, rhs) {
				works = false
				break
			}
		}
		if works && !containsValue(checked, sol) {
			checked = append(checked, sol)
		}
	}
	return checked, nil
}

// closeTo compares two numbers up to rounding in the last places.
func closeTo(a, b Number) bool {
	const epsilon = 1e-9
	scale := math.Max(1, math.Max(math.Hypot(a.Real, a.Imag), math.Hypot(b.Real, b.Imag)))
	return math.Hypot(a.Real-b.Real, a.Imag-b.Imag) <= epsilon*scale
}

func (s *System) substitute(perVariable map[VarID][][]taggedSolution, id VarID, checked []VarID, excepted []int) ([]Value, error) {
	for _, c := range checked {
		if c == id {
			return nil, nil
		}
	}
	if len(checked) >= maxSolveDepth {
		return nil, ErrTooComplex
	}
	checked = append(append([]VarID(nil), checked...), id)

	var lists [][]taggedSolution
	for _, l := range perVariable[id] {
		if len(l) > 0 {
			lists = append(lists, l)
		}
	}

	var solutions []Value
	for _, set := range product(lists) {
	insideSet:
		for i, sol := range set {
			if containsInt(excepted, sol.equation) {
				continue
			}
			vars := s.Variables(sol.value)
			if len(vars) == 0 {
				solutions = append(solutions, sol.value)
				break insideSet
			}
			var unknown []VarID
			varSolutions := map[VarID][]Value{}
			for j := len(vars) - 1; j >= 0; j-- {
				v := vars[j]
				if containsVar(checked, v) || s.vars[v].Value != nil {
					continue
				}
				sub, err := s.substitute(perVariable, v, checked, append(append([]int(nil), excepted...), sol.equation))
				if err != nil {
					return nil, err
				}
				unknown = append(unknown, v)
				varSolutions[v] = sub
				if len(sub) == 0 && i == len(set)-1 {
					break insideSet
				}
			}
			if len(unknown) == 0 {
				solutions = append(solutions, sol.value)
				break insideSet
			}
			for _, assignment := range assignments(unknown, varSolutions) {
				value := sol.value
				for k, v := range unknown {
					value = s.PlugIn(value, v, assignment[k])
				}
				solutions = append(solutions, value)
			}
			if len(solutions) > 0 {
				break insideSet
			}
		}
	}
	return solutions, nil
}

// product is the cartesian product of lists, one element from each.
func product[T any](lists [][]T) [][]T {
	if len(lists) == 0 {
		return nil
	}
	if len(lists) == 1 {
		out := make([][]T, len(lists[0]))
		for i, e := range lists[0] {
			out[i] = []T{e}
		}
		return out
	}
	rest := product(lists[1:])
	var out [][]T
	for _, e := range lists[0] {
		for _, r := range rest {
			out = append(out, append([]T{e}, r...))
		}
	}
	return out
}

// assignments enumerates one value per key, in key order.
func assignments(keys []VarID, values map[VarID][]Value) [][]Value {
	lists := make([][]Value, len(keys))
	for i, k := range keys {
		lists[i] = values[k]
	}
	return product(lists)
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

func containsVar(list []VarID, v VarID) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
