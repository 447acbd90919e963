package mathkit

import "fmt"

// ============================================================
// System: variable and function arenas
// ============================================================

// VarID is a handle into a System's variable arena. Two variables are the
// same variable exactly when their handles are equal.
type VarID int

// FuncID is a handle into a System's function arena.
type FuncID int

// AngleMode selects the unit trigonometric functions work in.
type AngleMode int

const (
	Radian AngleMode = iota
	Degree
)

// FractionMode selects how like-term combination treats terms with
// negative exponents.
type FractionMode int

const (
	CombineLikeFractions FractionMode = iota
	CombineAllFractions
	CombineAllTerms
	NeverCombine
)

// NumberMode selects how numeric results are displayed.
type NumberMode int

const (
	DecimalMode NumberMode = iota
	FractionNumberMode
)

// Built-in function names.
const (
	SinName    = "sin"
	CosName    = "cos"
	TanName    = "tan"
	CscName    = "csc"
	SecName    = "sec"
	CotName    = "cot"
	AsinName   = "asin"
	AcosName   = "acos"
	AtanName   = "atan"
	AcscName   = "acsc"
	AsecName   = "asec"
	AcotName   = "acot"
	LogName    = "log"
	LnName     = "ln"
	DerivName  = "deriv"
	NDerivName = "nderiv"
	IntegName  = "∫"
	AbsName    = "abs"
	FactName   = "fact"
	FloorName  = "floor"

	PiSymbol = "π"
	ESymbol  = "e"
)

const (
	openBrackets    = "([{"
	closeBrackets   = ")]}"
	additiveChars   = "+-±"
	numberChars     = "-+0123456789.ⅈ"
	defaultParamFmt = "%parameter variable"
)

// Variable is a named symbol, optionally bound to a value. PlugIn controls
// whether factoring and differentiation substitute the bound value.
type Variable struct {
	ID      VarID
	Symbol  string
	Value   Value
	PlugIn  bool
	removed bool
}

// Function is a named function. A nil Body means the function is either
// built in or not defined yet. Protected parameters are not substituted
// when values are plugged into an application of the function.
type Function struct {
	ID        FuncID
	Name      string
	Params    []VarID
	Protected []bool
	Body      Value
	removed   bool
}

// System owns every variable and function a value may reference, along
// with the stored equations and display modes. A System is not safe for
// concurrent mutation; use Copy to hand one to another goroutine.
type System struct {
	Equations           []Equation
	AngleMode           AngleMode
	FractionMode        FractionMode
	NumberMode          NumberMode
	ApproximationDigits int
	EvaluateConstants   bool

	vars     []Variable
	funcs    []Function
	defaults int
	nesting  int
}

// NewSystem returns a system holding the four parameter variables, the
// constants e and π, and every built-in function.
func NewSystem() *System {
	s := &System{ApproximationDigits: 4, EvaluateConstants: true}
	for i := 1; i <= 4; i++ {
		s.vars = append(s.vars, Variable{ID: VarID(i - 1), Symbol: defaultParamFmt + string(rune('0'+i)) + "%"})
	}
	s.vars = append(s.vars, Variable{ID: 4, Symbol: ESymbol, Value: E})
	s.vars = append(s.vars, Variable{ID: 5, Symbol: PiSymbol, Value: Pi})
	s.defaults = len(s.vars)

	p := s.Params()
	for _, name := range []string{
		SinName, CosName, TanName, CscName, SecName, CotName,
		AsinName, AcosName, AtanName, AcscName, AsecName, AcotName,
		LnName, AbsName, FactName, FloorName,
	} {
		s.addFunction(name, p[:1], nil)
	}
	s.addFunction(LogName, p[:2], nil)
	s.addFunction(DerivName, p[:3], []bool{true, true, false})
	s.addFunction(NDerivName, p[:3], []bool{true, true, false})
	s.addFunction(IntegName, p[:4], []bool{true, true, false, false})
	return s
}

// Params returns the four built-in parameter variables.
func (s *System) Params() []VarID { return []VarID{0, 1, 2, 3} }

func (s *System) PiVar() VarID { return 5 }
func (s *System) EVar() VarID  { return 4 }

func (s *System) addFunction(name string, params []VarID, protected []bool) FuncID {
	id := FuncID(len(s.funcs))
	if protected == nil {
		protected = make([]bool, len(params))
	}
	s.funcs = append(s.funcs, Function{
		ID:        id,
		Name:      name,
		Params:    append([]VarID(nil), params...),
		Protected: append([]bool(nil), protected...),
	})
	return id
}

// ============================================================
// Variables
// ============================================================

// Variable returns the handle for symbol, creating the variable on first use.
func (s *System) Variable(symbol string) VarID {
	if id, ok := s.LookupVariable(symbol); ok {
		return id
	}
	id := VarID(len(s.vars))
	s.vars = append(s.vars, Variable{ID: id, Symbol: symbol})
	return id
}

// LookupVariable finds an existing variable by symbol.
func (s *System) LookupVariable(symbol string) (VarID, bool) {
	for _, v := range s.vars {
		if !v.removed && v.Symbol == symbol {
			return v.ID, true
		}
	}
	return 0, false
}

// Var returns the record for id.
func (s *System) Var(id VarID) Variable { return s.vars[id] }

// Symbol returns the printable name of id.
func (s *System) Symbol(id VarID) string { return s.vars[id].Symbol }

// Bind sets the value of id. plugIn marks the value for substitution while
// factoring and differentiating.
func (s *System) Bind(id VarID, v Value, plugIn bool) {
	s.vars[id].Value = v
	s.vars[id].PlugIn = plugIn
}

// Unbind clears the value of id.
func (s *System) Unbind(id VarID) {
	s.vars[id].Value = nil
	s.vars[id].PlugIn = false
}

// IsDefault reports whether id is a parameter variable or a constant.
func (s *System) IsDefault(id VarID) bool { return int(id) < s.defaults }

// DefaultVariable returns the first unbound variable, normally the first
// parameter variable.
func (s *System) DefaultVariable() VarID {
	for _, v := range s.vars {
		if !v.removed && v.Value == nil {
			return v.ID
		}
	}
	return s.Variable("x")
}

// RemoveVariable forgets every non-default variable named symbol. Handles
// held elsewhere stay valid but the symbol no longer resolves to them.
func (s *System) RemoveVariable(symbol string) {
	for i := range s.vars {
		if s.vars[i].Symbol == symbol && !s.IsDefault(s.vars[i].ID) {
			s.vars[i].removed = true
		}
	}
}

// UserVariables returns the live non-default variables in creation order.
func (s *System) UserVariables() []VarID {
	var out []VarID
	for _, v := range s.vars {
		if !v.removed && !s.IsDefault(v.ID) {
			out = append(out, v.ID)
		}
	}
	return out
}

// ============================================================
// Functions
// ============================================================

// Function returns the handle of the function named name, creating a user
// function with the given parameters when none exists.
func (s *System) Function(name string, params []VarID) FuncID {
	if id, ok := s.LookupFunction(name); ok {
		return id
	}
	return s.addFunction(name, params, nil)
}

// LookupFunction finds an existing function by name.
func (s *System) LookupFunction(name string) (FuncID, bool) {
	for _, f := range s.funcs {
		if !f.removed && f.Name == name {
			return f.ID, true
		}
	}
	return 0, false
}

func (s *System) HasFunction(name string) bool {
	_, ok := s.LookupFunction(name)
	return ok
}

// Func returns the record for id.
func (s *System) Func(id FuncID) Function { return s.funcs[id] }

// DefineFunction creates or redefines the user function name. The body is
// parsed after the parameters are created so that it refers to them.
func (s *System) DefineFunction(name string, params []string, body string) (FuncID, error) {
	if isBuiltin(name) {
		return 0, ErrSyntax
	}
	ids := make([]VarID, len(params))
	for i, p := range params {
		ids[i] = s.Variable(p)
	}
	id, existed := s.LookupFunction(name)
	if !existed {
		id = s.addFunction(name, ids, nil)
	}
	v, err := s.ParseExpression(body)
	if err != nil {
		if !existed {
			s.funcs[id].removed = true
		}
		return 0, err
	}
	s.funcs[id].Params = ids
	s.funcs[id].Protected = make([]bool, len(ids))
	s.funcs[id].Body = v
	return id, nil
}

// SetFunctionBody binds an already parsed body to id.
func (s *System) SetFunctionBody(id FuncID, body Value) { s.funcs[id].Body = body }

// RemoveFunction forgets every user function named name.
func (s *System) RemoveFunction(name string) {
	for i := range s.funcs {
		if s.funcs[i].Name == name && !isBuiltin(name) {
			s.funcs[i].removed = true
		}
	}
}

// UserFunctions returns the live user-defined functions in creation order.
func (s *System) UserFunctions() []FuncID {
	var out []FuncID
	for _, f := range s.funcs {
		if !f.removed && !isBuiltin(f.Name) {
			out = append(out, f.ID)
		}
	}
	return out
}

func isBuiltin(name string) bool {
	switch name {
	case SinName, CosName, TanName, CscName, SecName, CotName,
		AsinName, AcosName, AtanName, AcscName, AsecName, AcotName,
		LogName, LnName, DerivName, NDerivName, IntegName,
		AbsName, FactName, FloorName:
		return true
	}
	return false
}

// ============================================================
// Copy
// ============================================================

// Copy returns an independent system. Values are immutable and are shared.
func (s *System) Copy() *System {
	c := *s
	c.Equations = append([]Equation(nil), s.Equations...)
	c.vars = append([]Variable(nil), s.vars...)
	c.funcs = make([]Function, len(s.funcs))
	for i, f := range s.funcs {
		f.Params = append([]VarID(nil), f.Params...)
		f.Protected = append([]bool(nil), f.Protected...)
		c.funcs[i] = f
	}
	return &c
}

// ============================================================
// Mode names
// ============================================================

var (
	angleModeNames    = map[AngleMode]string{Radian: "radian", Degree: "degree"}
	fractionModeNames = map[FractionMode]string{
		CombineLikeFractions: "like_fractions",
		CombineAllFractions:  "all_fractions",
		CombineAllTerms:      "all_terms",
		NeverCombine:         "never",
	}
	numberModeNames = map[NumberMode]string{DecimalMode: "decimal", FractionNumberMode: "fraction"}
)

func (m AngleMode) String() string    { return angleModeNames[m] }
func (m FractionMode) String() string { return fractionModeNames[m] }
func (m NumberMode) String() string   { return numberModeNames[m] }

// ParseAngleMode accepts "radian" or "degree".
func ParseAngleMode(name string) (AngleMode, error) {
	for m, n := range angleModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mathkit: unknown angle mode %q", name)
}

// ParseFractionMode accepts "like_fractions", "all_fractions", "all_terms"
// or "never".
func ParseFractionMode(name string) (FractionMode, error) {
	for m, n := range fractionModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mathkit: unknown fraction mode %q", name)
}

// ParseNumberMode accepts "decimal" or "fraction".
func ParseNumberMode(name string) (NumberMode, error) {
	for m, n := range numberModeNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mathkit: unknown number mode %q", name)
}
