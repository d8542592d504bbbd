// Package config handles gridtool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/gridkit/pkg/fov"
)

// Config holds all gridtool settings.
type Config struct {
	FOV      FOVConfig      `yaml:"fov"`
	Pathfind PathfindConfig `yaml:"pathfind"`
	Flow     FlowConfig     `yaml:"flow"`
	Light    LightConfig    `yaml:"light"`
	Render   RenderConfig   `yaml:"render"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// FOVConfig holds field-of-view settings.
type FOVConfig struct {
	Algorithm string `yaml:"algorithm"` // shadowcasting, raycasting, floodfill, linecast
	Radius    int    `yaml:"radius"`
	Memory    bool   `yaml:"memory"` // keep previously seen cells as remembered
}

// PathfindConfig holds A* settings.
type PathfindConfig struct {
	MaxIterations int  `yaml:"max_iterations"` // 0 = unbounded
	Weighted      bool `yaml:"weighted"`       // use terrain costs instead of unit cost
}

// FlowConfig holds flow field settings.
type FlowConfig struct {
	ShowCosts bool `yaml:"show_costs"` // render integration costs instead of arrows
	Weighted  bool `yaml:"weighted"`
}

// LightConfig holds lighting settings.
type LightConfig struct {
	Ambient float32 `yaml:"ambient"`
}

// RenderConfig holds terminal output settings.
type RenderConfig struct {
	Color  bool   `yaml:"color"`
	Glyphs Glyphs `yaml:"glyphs"`
	Shades string `yaml:"shades"` // light ramp, darkest first
}

// Glyphs are the single-character overlays drawn on top of terrain.
type Glyphs struct {
	Path       string `yaml:"path"`
	Start      string `yaml:"start"`
	Goal       string `yaml:"goal"`
	Viewer     string `yaml:"viewer"`
	Hidden     string `yaml:"hidden"`
	Remembered string `yaml:"remembered"`
	Light      string `yaml:"light"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		FOV: FOVConfig{
			Algorithm: fov.Shadowcasting.String(),
			Radius:    8,
		},
		Pathfind: PathfindConfig{
			MaxIterations: 0,
			Weighted:      true,
		},
		Flow: FlowConfig{
			Weighted: true,
		},
		Light: LightConfig{
			Ambient: 0.05,
		},
		Render: RenderConfig{
			Color: true,
			Glyphs: Glyphs{
				Path:       "*",
				Start:      "S",
				Goal:       "G",
				Viewer:     "@",
				Hidden:     " ",
				Remembered: ",",
				Light:      "L",
			},
			Shades: " .:-=+*#%@",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := fov.ParseAlgorithm(c.FOV.Algorithm); err != nil {
		errs = append(errs, fmt.Errorf("fov.algorithm: %w", err))
	}
	if c.FOV.Radius < 0 {
		errs = append(errs, fmt.Errorf("fov.radius: must be >= 0, got %d", c.FOV.Radius))
	}
	if c.Pathfind.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("pathfind.max_iterations: must be >= 0, got %d", c.Pathfind.MaxIterations))
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		errs = append(errs, fmt.Errorf("light.ambient: must be in [0, 1], got %v", c.Light.Ambient))
	}
	if len([]rune(c.Render.Shades)) < 2 {
		errs = append(errs, fmt.Errorf("render.shades: need at least 2 characters, got %q", c.Render.Shades))
	}
	if c.Logging.Level != "" {
		if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("logging.level: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Algorithm returns the configured FOV algorithm, falling back to
// shadowcasting when the name is unknown.
func (c *Config) Algorithm() fov.Algorithm {
	alg, err := fov.ParseAlgorithm(c.FOV.Algorithm)
	if err != nil {
		return fov.Shadowcasting
	}
	return alg
}
