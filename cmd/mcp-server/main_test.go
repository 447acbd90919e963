package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/mathkit"
	"github.com/njchilds90/mathkit/internal/config"
)

func serve(t *testing.T, cfg config.Config, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newMux(cfg).ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(t, config.Default(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestSchema(t *testing.T) {
	rec := serve(t, config.Default(), http.MethodGet, "/schema", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, mathkit.MCPToolSpec(), rec.Body.String())
}

func TestTool(t *testing.T) {
	rec := serve(t, config.Default(), http.MethodPost, "/tool",
		`{"tool":"simplify","params":{"expr":"2y^2+(x+1)"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp mathkit.ToolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Error)
	assert.Equal(t, "x + 2(y)^(2) + 1", resp.String)
}

func TestTool_BadRequests(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, http.StatusMethodNotAllowed, serve(t, cfg, http.MethodGet, "/tool", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, cfg, http.MethodPost, "/tool", `{"tool":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, cfg, http.MethodPost, "/tool", `{"tool":"evaluate","extra":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(t, cfg, http.MethodPost, "/tool", `{"tool":"evaluate"} {}`).Code)
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.RatePerSecond = 0.001
	cfg.HTTP.Burst = 1
	mux := newMux(cfg)

	body := `{"tool":"evaluate","params":{"expr":"1+3"}}`
	first := httptest.NewRecorder()
	mux.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body)))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	mux.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/tool", strings.NewReader(body)))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestPlot(t *testing.T) {
	cfg := config.Default()

	rec := serve(t, cfg, http.MethodGet, "/plot", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, cfg, http.MethodGet, "/plot?f=x%5E2&f=sin(x)", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "y2(x)")

	rec = serve(t, cfg, http.MethodGet, "/plot?f=x&format=png&width=200&height=100", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	rec = serve(t, cfg, http.MethodGet, "/plot?f=x&format=svg", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMCPTool(t *testing.T) {
	var spec mathkit.ToolSpec
	for _, s := range mathkit.ToolSpecs() {
		if s.Name == "integrate" {
			spec = s
		}
	}
	tool := mcpTool(spec)
	assert.Equal(t, "integrate", tool.Name)
	assert.ElementsMatch(t, []string{"expr", "var", "a", "b"}, tool.InputSchema.Required)
	assert.Len(t, tool.InputSchema.Properties, 4)
}
