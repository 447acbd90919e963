package mathkit

import "errors"

// ============================================================
// Errors
// ============================================================

// CalculationError reports a value that is syntactically well formed but
// numerically undefined.
type CalculationError int

const (
	ErrDivideByZero CalculationError = iota + 1
	ErrZeroToTheZero
	ErrDomain
	ErrMissingArgument
	ErrMissingDefinition
	ErrRootOfComplex
	ErrRaisedToComplex
)

var calculationMessages = map[CalculationError]string{
	ErrDivideByZero:      "divide by zero",
	ErrZeroToTheZero:     "zero to the zero",
	ErrDomain:            "domain error",
	ErrMissingArgument:   "missing function argument",
	ErrMissingDefinition: "missing function definition",
	ErrRootOfComplex:     "root of complex number",
	ErrRaisedToComplex:   "raised to complex number",
}

func (e CalculationError) Error() string { return "mathkit: " + calculationMessages[e] }

// SolvingError reports that the algebra cannot proceed.
type SolvingError int

const (
	ErrNonAlgebraic SolvingError = iota + 1
	ErrTooComplex
	ErrParsing
	ErrNonComparable
	ErrSyntax
)

var solvingMessages = map[SolvingError]string{
	ErrNonAlgebraic:  "non-algebraic value",
	ErrTooComplex:    "too complex",
	ErrParsing:       "parsing error",
	ErrNonComparable: "non-comparable numbers",
	ErrSyntax:        "syntax error",
}

func (e SolvingError) Error() string { return "mathkit: " + solvingMessages[e] }

// IsCalculation reports whether err belongs to the calculation family.
func IsCalculation(err error) bool {
	var c CalculationError
	return errors.As(err, &c)
}

// IsSolving reports whether err belongs to the solving family.
func IsSolving(err error) bool {
	var s SolvingError
	return errors.As(err, &s)
}
