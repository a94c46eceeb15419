package app

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"fieldscope/internal/core"
	"fieldscope/internal/render"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the visualizer settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Engine  EngineConfig  `yaml:"engine"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Bench   BenchConfig   `yaml:"bench"`
}

// GridConfig sets the grid geometry.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// EngineConfig selects the simulation engine.
type EngineConfig struct {
	Name string `yaml:"name"`
	Seed int64  `yaml:"seed"`
}

// DisplayConfig controls presentation.
type DisplayConfig struct {
	Mode core.FieldMode `yaml:"mode"`
	TPS  int            `yaml:"tps"`
	Zoom float64        `yaml:"zoom"`
}

// LogConfig controls the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// BenchConfig controls the headless benchmark.
type BenchConfig struct {
	Frames int  `yaml:"frames"`
	Paced  bool `yaml:"paced"`
}

// Load reads configuration from a YAML file merged over the embedded
// defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file overwrite defaults.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		errs = append(errs, fmt.Errorf("grid must be positive, got %dx%d", c.Grid.Width, c.Grid.Height))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size must be positive, got %d", c.Grid.CellSize))
	}
	if c.Display.Zoom <= 0 {
		errs = append(errs, fmt.Errorf("zoom must be positive, got %g", c.Display.Zoom))
	}
	if c.Display.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.Display.TPS))
	}
	if c.Display.Mode != core.ColorField && c.Display.Mode != core.ScalarField {
		errs = append(errs, fmt.Errorf("unknown field mode %v", c.Display.Mode))
	}
	if _, ok := core.Engines()[c.Engine.Name]; !ok {
		errs = append(errs, fmt.Errorf("unknown engine %q (available: %v)", c.Engine.Name, core.EngineNames()))
	}
	return errors.Join(errs...)
}

// Size returns the configured grid size.
func (c *Config) Size() core.Size {
	return core.Size{W: c.Grid.Width, H: c.Grid.Height}
}

// CanvasSize returns the backing-store size of the canvas in pixels.
func (c *Config) CanvasSize() (w, h int) {
	return render.CanvasSize(c.Size(), c.Grid.CellSize)
}

// NewEngine constructs the configured engine.
func (c *Config) NewEngine() (core.Engine, error) {
	factory, ok := core.Engines()[c.Engine.Name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", c.Engine.Name)
	}
	return factory(c.Size(), c.Engine.Seed), nil
}

// WriteYAML encodes the configuration in the format Load reads.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}
