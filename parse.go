package mathkit

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Parser
// ============================================================

func isOpen(c rune) bool      { return strings.ContainsRune(openBrackets, c) }
func isClose(c rune) bool     { return strings.ContainsRune(closeBrackets, c) }
func isAdditive(c rune) bool  { return strings.ContainsRune(additiveChars, c) }
func isNumberChar(c rune) bool { return strings.ContainsRune(numberChars, c) }

func stripSpaces(str string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, str)
}

func balanced(str string) bool {
	depth := 0
	for _, c := range str {
		if isOpen(c) {
			depth++
		} else if isClose(c) {
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// ParseValue parses str as an expression when it contains an additive
// sign, as a number when it is entirely numeric, and as a term otherwise.
func (s *System) ParseValue(str string) (Value, error) {
	str = stripSpaces(str)
	allNumbers, addition := true, false
	for _, c := range str {
		if !isNumberChar(c) {
			allNumbers = false
		} else if c == '+' || c == '-' {
			addition = true
		}
	}
	switch {
	case addition:
		return s.ParseExpression(str)
	case allNumbers && str != "":
		return parseNumber(str)
	}
	return s.ParseTerm(str)
}

// ParseExpression splits str at top-level additive signs and parses each
// piece as a term. A sign directly after *, / or ^ is unary.
func (s *System) ParseExpression(str string) (Expression, error) {
	str = stripSpaces(str)
	if !balanced(str) {
		return Expression{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrSyntax, str)
	}
	var terms []Term
	var cur []rune
	depth := 0
	for _, c := range str {
		if isOpen(c) {
			depth++
		} else if isClose(c) {
			depth--
		}
		if depth == 0 && isAdditive(c) && !unaryPosition(cur) {
			t, err := s.ParseTerm(string(cur))
			if err != nil {
				return Expression{}, err
			}
			terms = append(terms, t)
			cur = []rune{c}
			continue
		}
		cur = append(cur, c)
	}
	t, err := s.ParseTerm(string(cur))
	if err != nil {
		return Expression{}, err
	}
	return Expression{Terms: append(terms, t)}, nil
}

func unaryPosition(cur []rune) bool {
	if len(cur) == 0 {
		return true
	}
	switch cur[len(cur)-1] {
	case '*', '/', '^':
		return true
	}
	for _, c := range cur {
		if !isAdditive(c) {
			return false
		}
	}
	return true
}

// ParseEquation parses "lhs = rhs".
func (s *System) ParseEquation(str string) (Equation, error) {
	parts := strings.Split(str, "=")
	if len(parts) != 2 {
		return Equation{}, fmt.Errorf("%w: equation needs exactly one '=' in %q", ErrSyntax, str)
	}
	lhs, err := s.ParseExpression(parts[0])
	if err != nil {
		return Equation{}, err
	}
	rhs, err := s.ParseExpression(parts[1])
	if err != nil {
		return Equation{}, err
	}
	return Equation{LHS: lhs, RHS: rhs}, nil
}

func parseNumber(str string) (Number, error) {
	if rest, ok := strings.CutSuffix(str, "ⅈ"); ok {
		switch rest {
		case "", "+":
			return NComplex(0, 1), nil
		case "-":
			return NComplex(0, -1), nil
		}
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Number{}, ErrParsing
		}
		return NComplex(0, f), nil
	}
	f, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return Number{}, fmt.Errorf("%w: %q", ErrParsing, str)
	}
	return N(f), nil
}

// ============================================================
// Term parser
// ============================================================

type itemKind int

const (
	noItem itemKind = iota
	numberItem
	variableItem
	expressionItem
	functionItem
)

type termParser struct {
	s        *System
	objects  []Object
	item     []rune
	kind     itemKind
	base     []rune
	baseKind itemKind
	hasBase  bool
	dividing bool
	depth    int
}

// ParseTerm parses a product: a leading run of signs, then numbers,
// variable letters, bracketed sub-expressions and function applications
// joined by juxtaposition, *, / and ^.
func (s *System) ParseTerm(str string) (Term, error) {
	str = stripSpaces(str)
	if str == "" {
		return Term{}, fmt.Errorf("%w: empty term", ErrSyntax)
	}
	if !balanced(str) {
		return Term{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrSyntax, str)
	}
	runes := []rune(str)
	sign := One
	i := 0
	for ; i < len(runes) && isAdditive(runes[i]); i++ {
		if runes[i] == '-' {
			sign = sign.Neg()
		}
	}
	if i == len(runes) {
		return Term{}, fmt.Errorf("%w: term %q has no factors", ErrSyntax, str)
	}
	p := &termParser{s: s}
	if !sign.Equal(One) {
		p.objects = append(p.objects, Obj(sign))
	}
	for _, c := range runes[i:] {
		if err := p.step(c); err != nil {
			return Term{}, err
		}
	}
	if p.hasBase && len(p.item) == 0 {
		return Term{}, fmt.Errorf("%w: missing exponent in %q", ErrSyntax, str)
	}
	if err := p.endItem(); err != nil {
		return Term{}, err
	}
	if len(p.objects) == 0 {
		return TermOf(Obj(Zero)), nil
	}
	return Term{Objects: p.objects}, nil
}

func (p *termParser) step(c rune) error {
	if p.depth == 0 {
		switch {
		case isNumberChar(c):
			if p.kind != numberItem {
				if err := p.endItem(); err != nil {
					return err
				}
			}
			p.kind = numberItem
			p.item = append(p.item, c)
			return nil
		case c == '*':
			return p.endItem()
		case c == '/':
			if err := p.endItem(); err != nil {
				return err
			}
			p.dividing = true
			return nil
		case c == '^':
			if p.hasBase || len(p.item) == 0 {
				return ErrSyntax
			}
			p.base, p.baseKind, p.hasBase = p.item, p.kind, true
			p.item = nil
			return nil
		case !isOpen(c):
			if p.kind != variableItem {
				if err := p.endItem(); err != nil {
					return err
				}
			}
			p.kind = variableItem
			p.item = append(p.item, c)
			return nil
		}
	}
	switch {
	case isOpen(c):
		fn := p.kind == variableItem && p.s.HasFunction(string(p.item))
		if p.depth == 0 && !fn {
			if err := p.endItem(); err != nil {
				return err
			}
			p.kind = expressionItem
		} else if p.depth == 0 {
			p.kind = functionItem
		}
		p.item = append(p.item, c)
		p.depth++
	case isClose(c):
		p.item = append(p.item, c)
		p.depth--
	default:
		p.item = append(p.item, c)
	}
	return nil
}

func (p *termParser) endItem() error {
	if len(p.item) == 0 {
		return nil
	}
	if !p.hasBase && p.kind == numberItem && (string(p.item) == "-" || string(p.item) == "+") {
		if string(p.item) == "-" {
			p.objects = append(p.objects, Obj(NegOne))
		}
		p.item, p.kind = nil, noItem
		return nil
	}
	var obj Object
	if p.hasBase {
		base, err := p.s.itemValue(p.base, p.baseKind)
		if err != nil {
			return err
		}
		exp, err := p.s.itemValue(p.item, p.kind)
		if err != nil {
			return err
		}
		obj = Pow(base, exp)
	} else {
		v, err := p.s.itemValue(p.item, p.kind)
		if err != nil {
			return err
		}
		obj = Obj(v)
	}
	if p.dividing {
		obj = Pow(obj, NegOne)
	}
	p.objects = append(p.objects, obj)
	p.item, p.kind = nil, noItem
	p.base, p.baseKind, p.hasBase = nil, noItem, false
	p.dividing = false
	return nil
}

func (s *System) itemValue(item []rune, kind itemKind) (Value, error) {
	switch kind {
	case numberItem:
		return parseNumber(string(item))
	case expressionItem:
		if len(item) <= 2 {
			return nil, ErrSyntax
		}
		return s.ParseValue(string(item[1 : len(item)-1]))
	case variableItem:
		objects := make([]Object, len(item))
		for i, c := range item {
			objects[i] = Obj(Var(s.Variable(string(c))))
		}
		if len(objects) == 1 {
			return objects[0].Base, nil
		}
		return Term{Objects: objects}, nil
	case functionItem:
		return s.parseFunction(string(item))
	}
	return nil, ErrSyntax
}

// parseFunction reads name(arg, arg, ...). Unknown names become one
// parameter user functions.
func (s *System) parseFunction(str string) (FunctionValue, error) {
	var name []rune
	args := [][]rune{nil}
	depth := 0
	for _, c := range str {
		open := false
		if isOpen(c) {
			depth++
			open = true
		} else if isClose(c) {
			depth--
		} else if depth == 0 {
			name = append(name, c)
		}
		if depth == 1 && c == ',' {
			args = append(args, nil)
		} else if depth != 0 && (!open || depth > 1) {
			args[len(args)-1] = append(args[len(args)-1], c)
		}
	}
	id := s.Function(string(name), []VarID{s.DefaultVariable()})
	fv := FunctionValue{Func: id, Args: make([]Value, len(args))}
	for i, a := range args {
		e, err := s.ParseExpression(string(a))
		if err != nil {
			return FunctionValue{}, err
		}
		fv.Args[i] = e
	}
	return fv, nil
}
