package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/njchilds90/mathkit"
	"github.com/njchilds90/mathkit/graph"
	"github.com/njchilds90/mathkit/internal/config"
	"github.com/njchilds90/mathkit/internal/store"
)

var errQuit = errors.New("quit")

const help = `expressions are evaluated, or simplified when they hold unbound variables
  :let f(x, y) = body    define a function
  :let a = value         bind a variable
  :unset name            forget a variable or function
  :eq lhs = rhs          add an equation to the system
  :system x              solve the system of equations for x
  :clear                 forget every equation
  :solve lhs = rhs [for x]
  :simplify expr   :factor expr   :expand expr   :deriv expr [for x]
  :zero expr near n   :extreme expr near n   :intersect f ; g near n
  :plot file.png|file.html expr ; expr ...
  :mode angle radian|degree   :mode fraction like_fractions|all_fractions|all_terms|never
  :mode number decimal|fraction
  :history   :help   :quit`

// session executes shell lines against one System, saving definitions to
// the store when one is open.
type session struct {
	s     *mathkit.System
	store *store.Store
	cfg   config.Config
}

func newSession(cfg config.Config, st *store.Store) *session {
	s := mathkit.NewSystem()
	cfg.Apply(s)
	return &session{s: s, store: st, cfg: cfg}
}

func (se *session) exec(ctx context.Context, line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	if !strings.HasPrefix(line, ":") {
		return se.evaluate(line)
	}
	cmd, rest, _ := strings.Cut(line[1:], " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "quit", "q":
		return "", errQuit
	case "help":
		return help, nil
	case "let":
		return se.let(ctx, rest)
	case "unset":
		se.s.RemoveVariable(rest)
		se.s.RemoveFunction(rest)
		if se.store != nil {
			if err := se.store.Delete(ctx, store.VariableKind, rest); err != nil {
				return "", err
			}
			if err := se.store.Delete(ctx, store.FunctionKind, rest); err != nil {
				return "", err
			}
		}
		return "removed " + rest, nil
	case "eq":
		eq, err := se.s.ParseEquation(rest)
		if err != nil {
			return "", err
		}
		se.s.Equations = append(se.s.Equations, eq)
		return se.s.EquationString(eq), se.saveEquations(ctx)
	case "clear":
		se.s.Equations = nil
		return "cleared", se.saveEquations(ctx)
	case "system":
		if rest == "" {
			return "", fmt.Errorf("usage: :system x")
		}
		sols, err := se.s.SolveSystem(se.s.Variable(rest))
		if err != nil {
			return "", err
		}
		return se.solutions(rest, sols), nil
	case "solve":
		body, variable := splitFor(rest)
		eq, err := se.s.ParseEquation(body)
		if err != nil {
			return "", err
		}
		x := se.pickVariable(variable, eq.LHS, eq.RHS)
		sols, err := se.s.Solve(eq, x)
		if err != nil {
			return "", err
		}
		return se.solutions(se.s.Symbol(x), sols), nil
	case "simplify", "factor", "expand", "deriv":
		return se.transform(cmd, rest)
	case "zero", "extreme", "intersect":
		return se.find(cmd, rest)
	case "plot":
		return se.plot(rest)
	case "mode":
		return se.mode(rest)
	case "history":
		return se.history(ctx)
	}
	return "", fmt.Errorf("unknown command :%s, type :help", cmd)
}

func (se *session) evaluate(line string) (string, error) {
	v, err := se.s.ParseValue(line)
	if err != nil {
		return "", err
	}
	n, err := se.s.Evaluate(v)
	if err == nil {
		return se.s.Display(n), nil
	}
	if !errors.Is(err, mathkit.ErrNonAlgebraic) {
		return "", err
	}
	e, err := se.s.Simplify(v)
	if err != nil {
		return "", err
	}
	return se.s.String(e), nil
}

func (se *session) let(ctx context.Context, rest string) (string, error) {
	lhs, body, ok := strings.Cut(rest, "=")
	if !ok {
		return "", fmt.Errorf("usage: :let f(x) = body or :let a = value")
	}
	lhs, body = strings.TrimSpace(lhs), strings.TrimSpace(body)
	if name, args, isFunc := strings.Cut(lhs, "("); isFunc {
		args = strings.TrimSuffix(args, ")")
		var params []string
		for _, p := range strings.Split(args, ",") {
			if p = strings.TrimSpace(p); p != "" {
				params = append(params, p)
			}
		}
		if _, err := se.s.DefineFunction(name, params, body); err != nil {
			return "", err
		}
		if se.store != nil {
			d := store.Definition{Kind: store.FunctionKind, Name: name, Params: params, Body: body}
			if err := se.store.Save(ctx, d); err != nil {
				return "", err
			}
		}
		return name + "(" + strings.Join(params, ", ") + ") = " + body, nil
	}

	v, err := se.s.ParseValue(body)
	if err != nil {
		return "", err
	}
	se.s.Bind(se.s.Variable(lhs), v, true)
	if se.store != nil {
		if err := se.store.Save(ctx, store.Definition{Kind: store.VariableKind, Name: lhs, Body: body}); err != nil {
			return "", err
		}
	}
	return lhs + " = " + se.s.String(v), nil
}

func (se *session) saveEquations(ctx context.Context) error {
	if se.store == nil {
		return nil
	}
	eqs := make([]string, len(se.s.Equations))
	for i, eq := range se.s.Equations {
		eqs[i] = se.s.EquationString(eq)
	}
	return se.store.SetEquations(ctx, eqs)
}

func (se *session) transform(cmd, rest string) (string, error) {
	body, variable := rest, ""
	if cmd == "deriv" {
		body, variable = splitFor(rest)
	}
	v, err := se.s.ParseValue(body)
	if err != nil {
		return "", err
	}
	var out mathkit.Value
	switch cmd {
	case "simplify":
		out, err = se.s.Simplify(v)
	case "factor":
		out, err = se.s.Factor(v)
	case "expand":
		out, err = se.s.Expand(mathkit.AsExpression(v))
	case "deriv":
		var d mathkit.Value
		if d, err = se.s.Derivative(v, se.pickVariable(variable, v)); err == nil {
			out, err = se.s.Simplify(d)
		}
	}
	if err != nil {
		return "", err
	}
	return se.s.String(out), nil
}

func (se *session) find(cmd, rest string) (string, error) {
	body, near, ok := strings.Cut(rest, " near ")
	if !ok {
		return "", fmt.Errorf("usage: :%s expr near n", cmd)
	}
	nv, err := se.s.ParseValue(strings.TrimSpace(near))
	if err != nil {
		return "", err
	}
	at, err := se.s.Evaluate(nv)
	if err != nil {
		return "", err
	}

	var x mathkit.Number
	var found bool
	switch cmd {
	case "intersect":
		left, right, ok := strings.Cut(body, ";")
		if !ok {
			return "", fmt.Errorf("usage: :intersect f ; g near n")
		}
		f, err := se.s.ParseValue(left)
		if err != nil {
			return "", err
		}
		g, err := se.s.ParseValue(right)
		if err != nil {
			return "", err
		}
		x, found, err = se.s.FindIntersect(f, g, at, se.pickVariable("", f, g))
		if err != nil {
			return "", err
		}
	default:
		f, err := se.s.ParseValue(body)
		if err != nil {
			return "", err
		}
		v := se.pickVariable("", f)
		if cmd == "zero" {
			x, found, err = se.s.FindZero(f, at, v)
		} else {
			x, found, err = se.s.FindExtreme(f, at, v)
		}
		if err != nil {
			return "", err
		}
	}
	if !found {
		return "not found", nil
	}
	return se.s.Display(x), nil
}

func (se *session) plot(rest string) (string, error) {
	file, exprs, ok := strings.Cut(rest, " ")
	if !ok {
		return "", fmt.Errorf("usage: :plot file.png expr ; expr")
	}
	var list []string
	for _, e := range strings.Split(exprs, ";") {
		if e = strings.TrimSpace(e); e != "" {
			list = append(list, e)
		}
	}
	ext := strings.ToLower(filepath.Ext(file))
	if ext != ".png" && ext != ".html" && ext != ".htm" {
		return "", fmt.Errorf("plot: unknown format %q", filepath.Ext(file))
	}
	sc, err := graph.FromExpressions(se.s.Copy(), se.cfg.GraphWindow(), "x", list...)
	if err != nil {
		return "", err
	}
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if ext == ".png" {
		err = sc.RenderPNG(f, 6*vg.Inch, 4*vg.Inch)
	} else {
		err = sc.RenderHTML(f)
	}
	if err != nil {
		return "", err
	}
	return "wrote " + file, nil
}

func (se *session) mode(rest string) (string, error) {
	kind, name, _ := strings.Cut(rest, " ")
	name = strings.TrimSpace(name)
	var err error
	switch kind {
	case "angle":
		se.s.AngleMode, err = mathkit.ParseAngleMode(name)
		se.cfg.AngleMode = name
	case "fraction":
		se.s.FractionMode, err = mathkit.ParseFractionMode(name)
		se.cfg.FractionMode = name
	case "number":
		se.s.NumberMode, err = mathkit.ParseNumberMode(name)
		se.cfg.NumberMode = name
	default:
		return fmt.Sprintf("angle %s, fraction %s, number %s", se.s.AngleMode, se.s.FractionMode, se.s.NumberMode), nil
	}
	if err != nil {
		return "", err
	}
	return kind + " mode " + name, nil
}

func (se *session) history(ctx context.Context) (string, error) {
	if se.store == nil {
		return "", fmt.Errorf("no store open")
	}
	entries, err := se.store.History(ctx, 20)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s  %s\n", e.Line, e.Result)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

func (se *session) solutions(variable string, sols []mathkit.Value) string {
	if len(sols) == 0 {
		return "no solution"
	}
	strs := make([]string, len(sols))
	for i, v := range sols {
		strs[i] = variable + " = " + se.s.Display(v)
	}
	return strings.Join(strs, "\n")
}

// pickVariable resolves name, or else the first unbound variable the values
// use, or else x.
func (se *session) pickVariable(name string, values ...mathkit.Value) mathkit.VarID {
	if name != "" {
		return se.s.Variable(name)
	}
	for _, v := range values {
		for _, id := range se.s.Variables(v) {
			if se.s.Var(id).Value == nil {
				return id
			}
		}
	}
	return se.s.Variable("x")
}

// splitFor separates "body for x".
func splitFor(rest string) (string, string) {
	if i := strings.LastIndex(rest, " for "); i >= 0 {
		return strings.TrimSpace(rest[:i]), strings.TrimSpace(rest[i+5:])
	}
	return rest, ""
}
