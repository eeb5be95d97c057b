package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/df07/go-recursive-raytracer/pkg/output"
)

// Defaults applied by Resolve to fields left empty
const (
	DefaultScene       = "default"
	DefaultPasses      = 5
	DefaultTileSize    = 64
	DefaultSeed        = 42
	DefaultFormat      = "png"
	DefaultOutputDir   = "output"
	DefaultSupersample = 1
)

// Config holds the render settings for a run.
// Width, SamplesPerPixel and MaxDepth left at zero keep the scene's own values.
type Config struct {
	Scene           string `json:"scene"`
	Width           int    `json:"width"`
	SamplesPerPixel int    `json:"samples_per_pixel"`
	MaxDepth        int    `json:"max_depth"`

	// Progressive rendering
	Passes   int    `json:"passes"`
	TileSize int    `json:"tile_size"`
	Workers  int    `json:"workers"`
	Seed     *int64 `json:"seed"` // nil until set; zero is a valid seed

	// Output
	Format      string `json:"format"`
	OutputDir   string `json:"output_dir"`
	Supersample int    `json:"supersample"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene           string
	Width           int
	SamplesPerPixel int
	MaxDepth        int
	Passes          int
	TileSize        int
	Workers         int
	Seed            *int64 // nil when the flag was not given
	Format          string
	OutputDir       string
	Supersample     int
}

// Default returns a config with every default resolved
func Default() Config {
	var cfg Config
	cfg.Resolve(Flags{})
	return cfg
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flags and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.SamplesPerPixel > 0 {
		c.SamplesPerPixel = flags.SamplesPerPixel
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Passes > 0 {
		c.Passes = flags.Passes
	}
	if flags.TileSize > 0 {
		c.TileSize = flags.TileSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Seed != nil {
		seed := *flags.Seed
		c.Seed = &seed
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}

	if c.Scene == "" {
		c.Scene = DefaultScene
	}
	if c.Passes <= 0 {
		c.Passes = DefaultPasses
	}
	if c.TileSize <= 0 {
		c.TileSize = DefaultTileSize
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Seed == nil {
		seed := int64(DefaultSeed)
		c.Seed = &seed
	}
	if c.Format == "" {
		c.Format = DefaultFormat
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.Supersample <= 0 {
		c.Supersample = DefaultSupersample
	}
}

// Validate reports the first setting that cannot be rendered
func (c Config) Validate() error {
	switch {
	case c.Width < 0:
		return fmt.Errorf("config: width must not be negative, got %d", c.Width)
	case c.SamplesPerPixel < 0:
		return fmt.Errorf("config: samples_per_pixel must not be negative, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("config: max_depth must not be negative, got %d", c.MaxDepth)
	case c.Passes <= 0:
		return fmt.Errorf("config: passes must be positive, got %d", c.Passes)
	case c.TileSize <= 0:
		return fmt.Errorf("config: tile_size must be positive, got %d", c.TileSize)
	case c.Workers <= 0:
		return fmt.Errorf("config: workers must be positive, got %d", c.Workers)
	case c.Supersample <= 0:
		return fmt.Errorf("config: supersample must be positive, got %d", c.Supersample)
	}

	if _, err := output.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// OutputFormat returns the parsed output format
func (c Config) OutputFormat() (output.Format, error) {
	return output.ParseFormat(c.Format)
}

// SeedValue returns the configured seed, or DefaultSeed if none was set
func (c Config) SeedValue() int64 {
	if c.Seed == nil {
		return DefaultSeed
	}
	return *c.Seed
}
