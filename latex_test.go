package mathkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/mathkit"
)

func TestLaTeX_Expressions(t *testing.T) {
	s := mathkit.NewSystem()
	cases := map[string]string{
		"3x^2y + 1/(1+x) + 2": `3 x^{2} y + \frac{1}{1 + x} + 2`,
		"6x - 7y":             `6 x - 7 y`,
		"x^(-2)":              `\frac{1}{x^{2}}`,
		"(x)^(1/2)":           `\sqrt{x}`,
		"2π":                  `2 \pi`,
	}
	for in, want := range cases {
		assert.Equal(t, want, s.LaTeX(parse(t, s, in)), in)
	}
}

func TestLaTeX_Functions(t *testing.T) {
	s := mathkit.NewSystem()
	cases := map[string]string{
		"sin(x^2)":        `\sin\left(x^{2}\right)`,
		"asin(x)":         `\arcsin\left(x\right)`,
		"abs(x)":          `\left|x\right|`,
		"log(8, 2)":       `\log_{2}\left(8\right)`,
		"∫(x^2, x, 0, 3)": `\int_{0}^{3} x^{2} \, dx`,
	}
	for in, want := range cases {
		assert.Equal(t, want, s.LaTeX(parse(t, s, in)), in)
	}
}

func TestLaTeX_Numbers(t *testing.T) {
	s := mathkit.NewSystem()
	assert.Equal(t, "12", s.LaTeX(mathkit.N(12)))
	assert.Equal(t, `\frac{7}{2}`, s.LaTeX(mathkit.N(3.5)))
	assert.Equal(t, `-\frac{1}{5}`, s.LaTeX(mathkit.N(-0.2)))
	assert.Equal(t, "1-2i", s.LaTeX(mathkit.NComplex(1, -2)))
	assert.Equal(t, `10^{20}`, s.LaTeX(mathkit.N(1e20)))
	assert.Equal(t, `2.5 \times 10^{-7}`, s.LaTeX(mathkit.N(2.5e-7)))
}

func TestTool_LaTeX(t *testing.T) {
	resp := call("latex", map[string]interface{}{"expr": "6x - 7y"})
	assert.Empty(t, resp.Error)
	assert.Equal(t, `6 x - 7 y`, resp.String)
}
