package mathkit_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
)

func TestJSON_DecodeIntoOtherSystem(t *testing.T) {
	s := mathkit.NewSystem()
	v := parse(t, s, "3(x)^(2)y - sin(x) + 1")
	str, err := s.ToJSON(v)
	require.NoError(t, err)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(str), &data))
	assert.Equal(t, "expression", data["type"])

	other := mathkit.NewSystem()
	decoded, err := other.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, s.String(v), other.String(decoded))
}

func TestJSON_NumberFields(t *testing.T) {
	s := mathkit.NewSystem()
	str, err := s.ToJSON(mathkit.NComplex(1, -2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"num","real":1,"imag":-2,"value":"1-2ⅈ"}`, str)
}

func TestJSON_Errors(t *testing.T) {
	s := mathkit.NewSystem()
	cases := []map[string]interface{}{
		nil,
		{},
		{"type": "matrix"},
		{"type": "num", "real": "1"},
		{"type": "var", "symbol": ""},
		{"type": "object", "base": map[string]interface{}{"type": "num", "real": 1.0, "imag": 0.0}},
		{"type": "term", "objects": []interface{}{map[string]interface{}{"type": "var", "symbol": "x"}}},
	}
	for _, c := range cases {
		_, err := s.FromJSON(c)
		assert.Error(t, err, "%v", c)
	}
}
