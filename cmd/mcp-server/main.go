// cmd/mcp-server/main.go: tool server for mathkit
//
// Exposes the mathkit tools over HTTP for agent frameworks, or over stdio
// as an MCP server.
//
// Usage:
//
//	go run ./cmd/mcp-server -addr :8080 -config mathkit.yaml
//	go run ./cmd/mcp-server -stdio
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Plot endpoint:      GET  /plot?f=x^2&f=sin(x)&format=html
// Health endpoint:    GET  /health
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/time/rate"
	"gonum.org/v1/plot/vg"

	"github.com/njchilds90/mathkit"
	"github.com/njchilds90/mathkit/graph"
	"github.com/njchilds90/mathkit/internal/config"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	addr := flag.String("addr", "", "Address to listen on (overrides config)")
	stdio := flag.Bool("stdio", false, "Serve MCP over stdin/stdout instead of HTTP")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}

	if *stdio {
		if err := server.ServeStdio(newMCPServer()); err != nil {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	log.Printf("mathkit tool server listening on %s", cfg.HTTP.Addr)
	log.Printf("  POST /tool   execute a tool call")
	log.Printf("  GET  /schema tool schema for agent registration")
	log.Printf("  GET  /plot   plot functions as HTML or PNG")
	log.Printf("  GET  /health health check")

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           newMux(cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

// ============================================================
// HTTP
// ============================================================

func newMux(cfg config.Config) *http.ServeMux {
	limit := rate.Inf
	if cfg.HTTP.RatePerSecond > 0 {
		limit = rate.Limit(cfg.HTTP.RatePerSecond)
	}
	burst := cfg.HTTP.Burst
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(limit, burst)

	mux := http.NewServeMux()
	mux.HandleFunc("/tool", limited(limiter, handleTool))
	mux.HandleFunc("/plot", limited(limiter, func(w http.ResponseWriter, r *http.Request) {
		handlePlot(w, r, cfg)
	}))

	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, mathkit.MCPToolSpec())
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}

// limited rejects requests beyond the limiter's rate and recovers panics
// from h.
func limited(limiter *rate.Limiter, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic in %s: %v\n%s", r.URL.Path, rec, string(debug.Stack()))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		h(w, r)
	}
}

func handleTool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req mathkit.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dec.More() {
		writeError(w, http.StatusBadRequest, "invalid JSON: trailing data")
		return
	}

	resp := mathkit.HandleToolCall(req)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func handlePlot(w http.ResponseWriter, r *http.Request, cfg config.Config) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	exprs := q["f"]
	if len(exprs) == 0 {
		writeError(w, http.StatusBadRequest, "missing param: f")
		return
	}
	variable := q.Get("var")
	if variable == "" {
		variable = "x"
	}

	s := mathkit.NewSystem()
	cfg.Apply(s)
	sc, err := graph.FromExpressions(s, cfg.GraphWindow(), variable, exprs...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch q.Get("format") {
	case "", "html":
		sc.Handler(w, r)
	case "png":
		width, height := 640.0, 480.0
		if v, err := strconv.ParseFloat(q.Get("width"), 64); err == nil && v > 0 && v <= 4096 {
			width = v
		}
		if v, err := strconv.ParseFloat(q.Get("height"), 64); err == nil && v > 0 && v <= 4096 {
			height = v
		}
		w.Header().Set("Content-Type", "image/png")
		if err := sc.RenderPNG(w, vg.Length(width), vg.Length(height)); err != nil {
			log.Printf("render png: %v", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "format must be html or png")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ============================================================
// MCP over stdio
// ============================================================

func newMCPServer() *server.MCPServer {
	s := server.NewMCPServer(
		"mathkit",
		"1.0.0",
		server.WithToolCapabilities(false),
	)
	for _, spec := range mathkit.ToolSpecs() {
		s.AddTool(mcpTool(spec), mcpHandler(spec.Name))
	}
	return s
}

func mcpTool(spec mathkit.ToolSpec) mcp.Tool {
	required := map[string]bool{}
	for _, r := range spec.Required {
		required[r] = true
	}
	options := []mcp.ToolOption{mcp.WithDescription(spec.Description)}
	for name, typ := range spec.Params {
		var props []mcp.PropertyOption
		if required[name] {
			props = append(props, mcp.Required())
		}
		switch typ {
		case "number":
			options = append(options, mcp.WithNumber(name, props...))
		case "array":
			options = append(options, mcp.WithArray(name, props...))
		default:
			options = append(options, mcp.WithString(name, props...))
		}
	}
	return mcp.NewTool(spec.Name, options...)
}

func mcpHandler(tool string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp := mathkit.HandleToolCall(mathkit.ToolRequest{Tool: tool, Params: request.GetArguments()})
		if resp.Error != "" {
			return mcp.NewToolResultError(resp.Error), nil
		}
		if resp.String != "" {
			return mcp.NewToolResultText(resp.String), nil
		}
		out, err := json.MarshalIndent(resp.Result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}
