// Package mathkit is a symbolic algebra engine for Go.
//
// Design goals:
//   - A closed set of immutable value kinds: Number, VariableValue, Object,
//     Term, Expression and FunctionValue
//   - Canonical forms through factoring, expansion and like-term combination
//   - Equation and system solving with algebraic and numeric fallbacks
//   - Symbolic derivatives plus numeric derivatives, integrals and roots
//   - AI/LLM friendly: JSON and MCP-ready tool APIs
//
// Variables and functions live in a System arena and are referred to by
// integer handles, so values are plain data that can be shared freely.
package mathkit

// ============================================================
// Core value model
// ============================================================

// Value is one of Number, VariableValue, Object, Term, Expression or
// FunctionValue. Switches over Value are exhaustive.
type Value interface{ isValue() }

// VariableValue refers to a variable record in a System.
type VariableValue struct{ Var VarID }

// Object is a base raised to an exponent.
type Object struct {
	Base     Value
	Exponent Value
}

// Term is a product of objects.
type Term struct{ Objects []Object }

// Expression is a sum of terms.
type Expression struct{ Terms []Term }

// FunctionValue is a function record applied to arguments.
type FunctionValue struct {
	Func FuncID
	Args []Value
}

func (VariableValue) isValue() {}
func (Object) isValue()        {}
func (Term) isValue()          {}
func (Expression) isValue()    {}
func (FunctionValue) isValue() {}

// Obj wraps v as an object with exponent 1.
func Obj(v Value) Object { return Object{Base: v, Exponent: One} }

// Pow builds base^exponent.
func Pow(base, exponent Value) Object { return Object{Base: base, Exponent: exponent} }

// TermOf multiplies objects into a term.
func TermOf(objects ...Object) Term { return Term{Objects: objects} }

// ExprOf sums terms into an expression.
func ExprOf(terms ...Term) Expression { return Expression{Terms: terms} }

// Var is a use of the variable id.
func Var(id VarID) VariableValue { return VariableValue{Var: id} }

// Wrap returns v as a single-term expression.
func Wrap(v Value) Expression { return ExprOf(TermOf(Obj(v))) }

// ============================================================
// Structural equality
// ============================================================

// Equal reports structural equality. Terms compare as multisets of objects
// and expressions as multisets of terms.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Number:
		y, ok := b.(Number)
		return ok && x.Equal(y)
	case VariableValue:
		y, ok := b.(VariableValue)
		return ok && x.Var == y.Var
	case Object:
		y, ok := b.(Object)
		return ok && Equal(x.Base, y.Base) && Equal(x.Exponent, y.Exponent)
	case Term:
		y, ok := b.(Term)
		return ok && sameObjects(x.Objects, y.Objects)
	case Expression:
		y, ok := b.(Expression)
		return ok && sameTerms(x.Terms, y.Terms)
	case FunctionValue:
		y, ok := b.(FunctionValue)
		if !ok || x.Func != y.Func || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func sameObjects(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	rest := append([]Object(nil), b...)
	for _, o := range a {
		found := false
		for i := range rest {
			if Equal(o, rest[i]) {
				rest = append(rest[:i], rest[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func sameTerms(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	rest := append([]Term(nil), b...)
	for _, t := range a {
		found := false
		for i := range rest {
			if Equal(t, rest[i]) {
				rest = append(rest[:i], rest[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// containsValue reports whether any element of list is Equal to v.
func containsValue(list []Value, v Value) bool {
	for _, x := range list {
		if Equal(x, v) {
			return true
		}
	}
	return false
}

func copyObjects(objects []Object) []Object { return append([]Object(nil), objects...) }

func copyTerms(terms []Term) []Term { return append([]Term(nil), terms...) }
