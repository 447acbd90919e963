// Package config loads the YAML session configuration shared by the
// mathkit shell and the tool server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/njchilds90/mathkit"
	"github.com/njchilds90/mathkit/graph"
)

type Window struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
}

type HTTP struct {
	Addr          string  `yaml:"addr"`
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// Config is the on-disk session configuration. Mode fields hold the names
// accepted by mathkit.ParseAngleMode, ParseFractionMode and ParseNumberMode.
type Config struct {
	AngleMode        string `yaml:"angle_mode"`
	FractionMode     string `yaml:"fraction_mode"`
	NumberMode       string `yaml:"number_mode"`
	FractionAccuracy int    `yaml:"fraction_accuracy"`
	Window           Window `yaml:"window"`
	HistoryFile      string `yaml:"history_file"`
	StorePath        string `yaml:"store_path"`
	HTTP             HTTP   `yaml:"http"`
}

func Default() Config {
	return Config{
		AngleMode:        mathkit.Radian.String(),
		FractionMode:     mathkit.CombineLikeFractions.String(),
		NumberMode:       mathkit.DecimalMode.String(),
		FractionAccuracy: 4,
		Window:           Window{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10},
		HistoryFile:      ".mathkit_history",
		StorePath:        "mathkit.db",
		HTTP:             HTTP{Addr: ":8080", RatePerSecond: 20, Burst: 40},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(b, cfg)
}

// Parse decodes YAML over base and validates the result.
func Parse(b []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := mathkit.ParseAngleMode(c.AngleMode); err != nil {
		return fmt.Errorf("config: angle_mode: %w", err)
	}
	if _, err := mathkit.ParseFractionMode(c.FractionMode); err != nil {
		return fmt.Errorf("config: fraction_mode: %w", err)
	}
	if _, err := mathkit.ParseNumberMode(c.NumberMode); err != nil {
		return fmt.Errorf("config: number_mode: %w", err)
	}
	if c.FractionAccuracy < 0 || c.FractionAccuracy > 15 {
		return fmt.Errorf("config: fraction_accuracy %d out of range 0..15", c.FractionAccuracy)
	}
	if c.Window.MinX >= c.Window.MaxX || c.Window.MinY >= c.Window.MaxY {
		return fmt.Errorf("config: window minimum must be below maximum")
	}
	if c.HTTP.RatePerSecond < 0 || c.HTTP.Burst < 0 {
		return fmt.Errorf("config: http rate and burst must not be negative")
	}
	return nil
}

// Apply sets the session modes of s. c must have passed Validate.
func (c Config) Apply(s *mathkit.System) {
	s.AngleMode, _ = mathkit.ParseAngleMode(c.AngleMode)
	s.FractionMode, _ = mathkit.ParseFractionMode(c.FractionMode)
	s.NumberMode, _ = mathkit.ParseNumberMode(c.NumberMode)
	s.ApproximationDigits = c.FractionAccuracy
}

// GraphWindow converts the configured window.
func (c Config) GraphWindow() graph.Window {
	return graph.Window{
		MinX: mathkit.N(c.Window.MinX),
		MaxX: mathkit.N(c.Window.MaxX),
		MinY: mathkit.N(c.Window.MinY),
		MaxY: mathkit.N(c.Window.MaxY),
	}
}
