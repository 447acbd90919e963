package mathkit

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

// ToJSON encodes v as a JSON tree. Variables and functions are written by
// name so the tree can be decoded into another System.
func (s *System) ToJSON(v Value) (string, error) {
	b, err := json.Marshal(s.toJSON(v))
	return string(b), err
}

func (s *System) toJSON(v Value) map[string]interface{} {
	switch x := v.(type) {
	case Number:
		return map[string]interface{}{"type": "num", "real": x.Real, "imag": x.Imag, "value": x.String()}
	case VariableValue:
		return map[string]interface{}{"type": "var", "symbol": s.Symbol(x.Var)}
	case Object:
		return map[string]interface{}{"type": "object", "base": s.toJSON(x.Base), "exponent": s.toJSON(x.Exponent)}
	case Term:
		objects := make([]interface{}, len(x.Objects))
		for i, o := range x.Objects {
			objects[i] = s.toJSON(o)
		}
		return map[string]interface{}{"type": "term", "objects": objects}
	case Expression:
		terms := make([]interface{}, len(x.Terms))
		for i, t := range x.Terms {
			terms[i] = s.toJSON(t)
		}
		return map[string]interface{}{"type": "expression", "terms": terms}
	case FunctionValue:
		args := make([]interface{}, len(x.Args))
		for i, a := range x.Args {
			args[i] = s.toJSON(a)
		}
		return map[string]interface{}{"type": "func", "name": s.funcs[x.Func].Name, "args": args}
	}
	panic(fmt.Sprintf("mathkit: unknown value kind %T", v))
}

// FromJSON decodes a tree produced by ToJSON, creating variables and
// functions in s as needed.
func (s *System) FromJSON(data map[string]interface{}) (Value, error) {
	if data == nil {
		return nil, fmt.Errorf("value must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	sub := func(field string) (Value, error) {
		m, ok := data[field].(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		return s.FromJSON(m)
	}
	subArray := func(field string) ([]Value, error) {
		raw, ok := data[field].([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Value, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			v, err := s.FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = v
		}
		return out, nil
	}
	subString := func(field string) (string, error) {
		str, ok := data[field].(string)
		if !ok || str == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return str, nil
	}

	switch typ {
	case "num":
		re, ok1 := data["real"].(float64)
		im, ok2 := data["imag"].(float64)
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("num: 'real' and 'imag' must be numbers")
		}
		return NComplex(re, im), nil

	case "var":
		symbol, err := subString("symbol")
		if err != nil {
			return nil, err
		}
		return Var(s.Variable(symbol)), nil

	case "object":
		base, err := sub("base")
		if err != nil {
			return nil, err
		}
		exp, err := sub("exponent")
		if err != nil {
			return nil, err
		}
		return Pow(base, exp), nil

	case "term":
		items, err := subArray("objects")
		if err != nil {
			return nil, err
		}
		objects := make([]Object, len(items))
		for i, it := range items {
			o, ok := it.(Object)
			if !ok {
				return nil, fmt.Errorf("term: objects[%d] must be an object value", i)
			}
			objects[i] = o
		}
		return Term{Objects: objects}, nil

	case "expression":
		items, err := subArray("terms")
		if err != nil {
			return nil, err
		}
		terms := make([]Term, len(items))
		for i, it := range items {
			t, ok := it.(Term)
			if !ok {
				return nil, fmt.Errorf("expression: terms[%d] must be a term", i)
			}
			terms[i] = t
		}
		return Expression{Terms: terms}, nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		args, err := subArray("args")
		if err != nil {
			return nil, err
		}
		return FunctionValue{Func: s.Function(name, []VarID{s.DefaultVariable()}), Args: args}, nil
	}
	return nil, fmt.Errorf("unknown value type: %s", typ)
}
