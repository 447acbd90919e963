package mathkit

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// HandleToolCall runs one tool request in a fresh System. Expressions,
// equations and variables are passed as strings; bounds and starting
// points as numbers or numeric strings such as "π/2".
func HandleToolCall(req ToolRequest) ToolResponse {
	s := NewSystem()

	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		str, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return str, nil
	}
	getStrings := func(key string) ([]string, error) {
		v, ok := req.Params[key]
		if !ok {
			return nil, fmt.Errorf("missing param: %s", key)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("param %s must be array", key)
		}
		result := make([]string, len(raw))
		for i, r := range raw {
			str, ok := r.(string)
			if !ok {
				return nil, fmt.Errorf("param %s[%d] must be string", key, i)
			}
			result[i] = str
		}
		return result, nil
	}
	getValue := func(key string) (Value, error) {
		str, err := getString(key)
		if err != nil {
			return nil, err
		}
		return s.ParseValue(str)
	}
	getVar := func(key string) (VarID, error) {
		str, err := getString(key)
		if err != nil {
			return 0, err
		}
		if str == "" {
			return 0, fmt.Errorf("param %s must be a non-empty string", key)
		}
		return s.Variable(str), nil
	}
	getNumber := func(key string) (Number, error) {
		v, ok := req.Params[key]
		if !ok {
			return Number{}, fmt.Errorf("missing param: %s", key)
		}
		switch x := v.(type) {
		case float64:
			return N(x), nil
		case string:
			parsed, err := s.ParseValue(x)
			if err != nil {
				return Number{}, fmt.Errorf("param %s: %w", key, err)
			}
			return s.Evaluate(parsed)
		}
		return Number{}, fmt.Errorf("param %s must be a number", key)
	}
	respond := func(v Value) ToolResponse {
		return ToolResponse{Result: s.toJSON(v), String: s.Display(v)}
	}
	respondSymbolic := func(v Value) ToolResponse {
		return ToolResponse{Result: s.toJSON(v), String: s.String(v)}
	}
	respondSolutions := func(sols []Value) ToolResponse {
		strs := make([]string, len(sols))
		for i, v := range sols {
			strs[i] = s.Display(v)
		}
		return ToolResponse{Result: strs, String: strings.Join(strs, ", ")}
	}
	respondPoint := func(x Number, ok bool, err error) ToolResponse {
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if !ok {
			return ToolResponse{Result: nil, String: "not found"}
		}
		return ToolResponse{Result: x.String(), String: s.Display(x)}
	}

	if mode, ok := req.Params["angle_mode"].(string); ok {
		m, err := ParseAngleMode(mode)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		s.AngleMode = m
	}
	if mode, ok := req.Params["fraction_mode"].(string); ok {
		m, err := ParseFractionMode(mode)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		s.FractionMode = m
	}
	if mode, ok := req.Params["number_mode"].(string); ok {
		m, err := ParseNumberMode(mode)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		s.NumberMode = m
	}

	switch req.Tool {
	case "evaluate":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		n, err := s.Evaluate(v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(n)

	case "simplify":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := s.Simplify(v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSymbolic(e)

	case "factor":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		t, err := s.Factor(v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSymbolic(t)

	case "expand":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := s.Expand(AsExpression(v))
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSymbolic(e)

	case "derivative":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		d, err := s.Derivative(v, x)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		e, err := s.Simplify(d)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSymbolic(e)

	case "solve":
		str, err := getString("equation")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		eq, err := s.ParseEquation(str)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		sols, err := s.Solve(eq, x)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSolutions(sols)

	case "solve_system":
		strs, err := getStrings("equations")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		for i, str := range strs {
			eq, err := s.ParseEquation(str)
			if err != nil {
				return ToolResponse{Error: fmt.Sprintf("equations[%d]: %v", i, err)}
			}
			s.Equations = append(s.Equations, eq)
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		sols, err := s.SolveSystem(x)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondSolutions(sols)

	case "integrate":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		a, err := getNumber("a")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		b, err := getNumber("b")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		n, err := s.Integral(a, b, v, x)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respond(n)

	case "find_zero", "find_extreme":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		near, err := getNumber("near")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		if req.Tool == "find_zero" {
			return respondPoint(s.FindZero(v, near, x))
		}
		return respondPoint(s.FindExtreme(v, near, x))

	case "find_intersect":
		f, err := getValue("f")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		g, err := getValue("g")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		x, err := getVar("var")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		near, err := getNumber("near")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return respondPoint(s.FindIntersect(f, g, near, x))

	case "to_json":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		str, err := s.ToJSON(v)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: s.toJSON(v), String: str}

	case "latex":
		v, err := getValue("expr")
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return ToolResponse{Result: s.toJSON(v), String: s.LaTeX(v)}

	case "mcp_spec":
		return ToolResponse{Result: MCPToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ============================================================
// MCP spec
// ============================================================

// ToolSpec describes one tool: its parameters and their JSON types.
type ToolSpec struct {
	Name        string
	Description string
	Required    []string
	Params      map[string]string
}

func MCPToolSpec() string {
	specs := ToolSpecs()
	tools := make([]map[string]interface{}, len(specs))
	for i, t := range specs {
		tools[i] = ts(t.Name, t.Description, t.Required, t.Params)
	}
	b, _ := json.MarshalIndent(map[string]interface{}{"tools": tools}, "", "  ")
	return string(b)
}

// ToolSpecs lists every tool HandleToolCall understands.
func ToolSpecs() []ToolSpec {
	return []ToolSpec{
		{"evaluate", "Evaluate an expression to a number", []string{"expr"}, map[string]string{"expr": "string", "angle_mode": "string", "number_mode": "string"}},
		{"simplify", "Simplify an expression", []string{"expr"}, map[string]string{"expr": "string", "fraction_mode": "string"}},
		{"factor", "Factor an expression into a product", []string{"expr"}, map[string]string{"expr": "string"}},
		{"expand", "Distribute products and powers of sums", []string{"expr"}, map[string]string{"expr": "string"}},
		{"derivative", "Symbolic derivative d/dvar", []string{"expr", "var"}, map[string]string{"expr": "string", "var": "string", "angle_mode": "string"}},
		{"solve", "Solve an equation for a variable", []string{"equation", "var"}, map[string]string{"equation": "string", "var": "string"}},
		{"solve_system", "Solve a system of equations for a variable", []string{"equations", "var"}, map[string]string{"equations": "array", "var": "string"}},
		{"integrate", "Numerical ∫_a^b by adaptive Simpson's rule", []string{"expr", "var", "a", "b"}, map[string]string{"expr": "string", "var": "string", "a": "number", "b": "number"}},
		{"find_zero", "Newton's method zero near a point", []string{"expr", "var", "near"}, map[string]string{"expr": "string", "var": "string", "near": "number"}},
		{"find_intersect", "Intersection of f and g near a point", []string{"f", "g", "var", "near"}, map[string]string{"f": "string", "g": "string", "var": "string", "near": "number"}},
		{"find_extreme", "Local minimum or maximum near a point", []string{"expr", "var", "near"}, map[string]string{"expr": "string", "var": "string", "near": "number"}},
		{"to_json", "Return the value tree of an expression", []string{"expr"}, map[string]string{"expr": "string"}},
		{"latex", "Render an expression as LaTeX", []string{"expr"}, map[string]string{"expr": "string"}},
		{"mcp_spec", "Return this tool schema", []string{}, map[string]string{}},
	}
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
