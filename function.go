package mathkit

import "math"

// ============================================================
// Function application
// ============================================================

// EvaluateAt applies the function id to args. Built-ins produce numbers;
// user functions produce their body with the arguments substituted for the
// parameters.
func (s *System) EvaluateAt(id FuncID, args []Value) (Value, error) {
	fn := s.funcs[id]
	if isBuiltin(fn.Name) && len(fn.Params) != len(args) {
		return nil, ErrMissingArgument
	}
	switch fn.Name {
	case SinName, CosName, TanName, SecName, CscName, CotName,
		AsinName, AcosName, AtanName, AsecName, AcscName, AcotName:
		x, err := s.Evaluate(args[0])
		if err != nil {
			return nil, err
		}
		return trig(fn.Name, x, s.AngleMode)
	case LnName:
		x, err := s.Evaluate(args[0])
		if err != nil {
			return nil, err
		}
		return Log(E, x)
	case LogName:
		base, err := s.Evaluate(args[1])
		if err != nil {
			return nil, err
		}
		x, err := s.Evaluate(args[0])
		if err != nil {
			return nil, err
		}
		return Log(base, x)
	case DerivName:
		vars := s.Variables(args[1])
		if len(vars) != 1 {
			return nil, ErrDomain
		}
		d, err := s.Derivative(args[0], vars[0])
		if err != nil {
			return nil, err
		}
		return s.PlugIn(d, vars[0], args[2]), nil
	case NDerivName:
		vars := s.Variables(args[1])
		if len(vars) != 1 {
			return nil, ErrDomain
		}
		at, err := s.Evaluate(args[2])
		if err != nil {
			return nil, err
		}
		return s.NumericalDerivative(args[0], vars[0], at)
	case IntegName:
		vars := s.Variables(args[1])
		if len(vars) != 1 {
			return nil, ErrDomain
		}
		a, err := s.Evaluate(args[2])
		if err != nil {
			return nil, err
		}
		b, err := s.Evaluate(args[3])
		if err != nil {
			return nil, err
		}
		return s.Integral(a, b, args[0], vars[0])
	case AbsName:
		x, err := s.Evaluate(args[0])
		if err != nil {
			return nil, ErrDomain
		}
		abs, ok := x.Abs()
		if !ok {
			return nil, ErrDomain
		}
		return abs, nil
	case FactName:
		x, err := s.Evaluate(args[0])
		if err != nil || !x.IsReal() {
			return nil, ErrDomain
		}
		f := math.Gamma(x.Real + 1)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, ErrDomain
		}
		return N(f), nil
	case FloorName:
		x, err := s.Evaluate(args[0])
		if err != nil || !x.IsReal() {
			return nil, ErrDomain
		}
		return x.Floor()
	}

	if fn.Body == nil {
		return nil, ErrMissingDefinition
	}
	if len(fn.Params) != len(args) {
		return nil, ErrMissingArgument
	}
	value := fn.Body
	for i, a := range args {
		value = s.PlugIn(value, fn.Params[i], a)
	}
	return value, nil
}

// plugInValue expands an application into the value it stands for.
func (s *System) plugInValue(fv FunctionValue) (Value, error) {
	return s.EvaluateAt(fv.Func, fv.Args)
}

// ============================================================
// Elementary functions
// ============================================================

// Log is the logarithm of x in base; both must be positive reals.
func Log(base, x Number) (Number, error) {
	okX, errX := x.Greater(Zero)
	okB, errB := base.Greater(Zero)
	if errX != nil || errB != nil || !okX || !okB {
		return Number{}, ErrDomain
	}
	return N(math.Log2(x.Real) / math.Log2(base.Real)), nil
}

func toRadians(x Number, mode AngleMode) float64 {
	if mode == Degree {
		return N(x.Real).Mul(Pi).Div(N(180)).Real
	}
	return x.Real
}

func fromRadians(angle float64, mode AngleMode) Number {
	if mode == Degree {
		return N(angle).Mul(N(180)).Div(Pi)
	}
	return N(angle)
}

func inverseDomain(x Number) error {
	if !x.IsReal() || math.Abs(x.Real) > 1 {
		return ErrDomain
	}
	return nil
}

// trig evaluates the named trigonometric function in the given angle mode.
func trig(name string, x Number, mode AngleMode) (Number, error) {
	switch name {
	case SinName, CosName, TanName, SecName, CscName, CotName:
		if !x.IsReal() {
			return Number{}, ErrDomain
		}
		r := toRadians(x, mode)
		switch name {
		case SinName:
			return N(math.Sin(r)), nil
		case CosName:
			return N(math.Cos(r)), nil
		case TanName:
			return N(math.Tan(r)), nil
		case SecName:
			return One.Div(N(math.Cos(r))), nil
		case CscName:
			return One.Div(N(math.Sin(r))), nil
		}
		return One.Div(N(math.Tan(r))), nil
	case AsinName, AcscName:
		if name == AcscName {
			x = One.Div(x)
		}
		if err := inverseDomain(x); err != nil {
			return Number{}, err
		}
		return fromRadians(math.Asin(x.Real), mode), nil
	case AcosName, AsecName:
		if name == AsecName {
			x = One.Div(x)
		}
		if err := inverseDomain(x); err != nil {
			return Number{}, err
		}
		return fromRadians(math.Acos(x.Real), mode), nil
	case AtanName:
		return fromRadians(math.Atan(x.Real), mode), nil
	case AcotName:
		return fromRadians(math.Atan(One.Div(x).Real), mode), nil
	}
	return Number{}, ErrMissingDefinition
}
