package mathkit

// ============================================================
// Evaluation and substitution
// ============================================================

// Evaluate reduces v to a number. Unbound variables fail with
// ErrNonAlgebraic.
func (s *System) Evaluate(v Value) (Number, error) {
	switch x := v.(type) {
	case Number:
		return x, nil
	case VariableValue:
		bound := s.vars[x.Var].Value
		if bound == nil {
			return Number{}, ErrNonAlgebraic
		}
		return s.Evaluate(bound)
	case Object:
		return s.evaluateObject(x)
	case Term:
		out := One
		for _, o := range x.Objects {
			n, err := s.evaluateObject(o)
			if err != nil {
				return Number{}, err
			}
			out = out.Mul(n)
		}
		return out, nil
	case Expression:
		out := Zero
		for _, t := range x.Terms {
			n, err := s.Evaluate(t)
			if err != nil {
				return Number{}, err
			}
			out = out.Add(n)
		}
		return out, nil
	case FunctionValue:
		r, err := s.EvaluateAt(x.Func, x.Args)
		if err != nil {
			return Number{}, err
		}
		return s.Evaluate(r)
	}
	return Number{}, ErrNonAlgebraic
}

func (s *System) evaluateObject(o Object) (Number, error) {
	exp, err := s.Evaluate(o.Exponent)
	if err != nil {
		return Number{}, err
	}
	if !exp.IsReal() {
		return Number{}, ErrRaisedToComplex
	}
	if exp.IsZero() {
		if Equal(o.Base, Zero) {
			return Number{}, ErrZeroToTheZero
		}
		return One, nil
	}
	if Equal(o.Base, Zero) && exp.Real <= 0 {
		return Number{}, ErrDivideByZero
	}
	base, err := s.Evaluate(o.Base)
	if err != nil {
		return Number{}, err
	}
	return base.Pow(exp)
}

// PlugIn replaces every occurrence of the variable id in v with value.
// Protected function arguments are left alone. A bound variable is
// replaced by its own value with the substitution applied.
func (s *System) PlugIn(v Value, id VarID, value Value) Value {
	switch x := v.(type) {
	case VariableValue:
		if x.Var == id {
			return value
		}
		if bound := s.vars[x.Var].Value; bound != nil {
			return s.PlugIn(bound, id, value)
		}
		return x
	case Object:
		return s.plugInObject(x, id, value)
	case Term:
		return s.plugInTerm(x, id, value)
	case Expression:
		return s.plugInExpression(x, id, value)
	case FunctionValue:
		protected := s.funcs[x.Func].Protected
		args := make([]Value, len(x.Args))
		for i, a := range x.Args {
			if i < len(protected) && protected[i] {
				args[i] = a
			} else {
				args[i] = s.PlugIn(a, id, value)
			}
		}
		return FunctionValue{Func: x.Func, Args: args}
	}
	return v
}

func (s *System) plugInObject(o Object, id VarID, value Value) Object {
	return Object{Base: s.PlugIn(o.Base, id, value), Exponent: s.PlugIn(o.Exponent, id, value)}
}

func (s *System) plugInTerm(t Term, id VarID, value Value) Term {
	objects := make([]Object, len(t.Objects))
	for i, o := range t.Objects {
		objects[i] = s.plugInObject(o, id, value)
	}
	return Term{Objects: objects}
}

func (s *System) plugInExpression(e Expression, id VarID, value Value) Expression {
	terms := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		terms[i] = s.plugInTerm(t, id, value)
	}
	return Expression{Terms: terms}
}

// ============================================================
// Variable collection and linearity
// ============================================================

// Variables lists the distinct variables referenced by v in first
// occurrence order, including those in the bodies of applied functions.
func (s *System) Variables(v Value) []VarID {
	var out []VarID
	seen := map[VarID]bool{}
	s.collectVariables(v, seen, &out)
	return out
}

func (s *System) collectVariables(v Value, seen map[VarID]bool, out *[]VarID) {
	switch x := v.(type) {
	case VariableValue:
		if !seen[x.Var] {
			seen[x.Var] = true
			*out = append(*out, x.Var)
		}
	case Object:
		s.collectVariables(x.Base, seen, out)
		s.collectVariables(x.Exponent, seen, out)
	case Term:
		for _, o := range x.Objects {
			s.collectVariables(o, seen, out)
		}
	case Expression:
		for _, t := range x.Terms {
			s.collectVariables(t, seen, out)
		}
	case FunctionValue:
		if body := s.funcs[x.Func].Body; body != nil {
			s.collectVariables(body, seen, out)
		}
		for _, a := range x.Args {
			s.collectVariables(a, seen, out)
		}
	}
}

// IsLinear reports whether v is first degree in every variable it uses.
func (s *System) IsLinear(v Value) bool {
	switch x := v.(type) {
	case Number, VariableValue:
		return true
	case Object:
		if Equal(x.Exponent, One) {
			return s.IsLinear(x.Base)
		}
		_, ok := x.Base.(Number)
		return ok
	case Term:
		count := map[VarID]int{}
		for _, o := range x.Objects {
			if !s.IsLinear(o) {
				return false
			}
			for _, id := range s.Variables(o) {
				count[id]++
				if count[id] > 1 {
					return false
				}
			}
		}
		return true
	case Expression:
		for _, t := range x.Terms {
			if !s.IsLinear(t) {
				return false
			}
		}
		return true
	case FunctionValue:
		if body := s.funcs[x.Func].Body; body != nil {
			return s.IsLinear(body)
		}
		return false
	}
	return false
}
