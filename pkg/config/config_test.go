package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/df07/go-recursive-raytracer/pkg/output"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Scene != DefaultScene || cfg.Passes != DefaultPasses || cfg.TileSize != DefaultTileSize {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.SeedValue() != DefaultSeed || cfg.Format != DefaultFormat || cfg.OutputDir != DefaultOutputDir {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Supersample != 1 || cfg.Workers != runtime.NumCPU() {
		t.Errorf("Unexpected defaults %+v", cfg)
	}
	if cfg.Width != 0 || cfg.SamplesPerPixel != 0 || cfg.MaxDepth != 0 {
		t.Errorf("Scene-owned settings should stay zero, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should be valid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"scene": "random",
		"width": 800,
		"samples_per_pixel": 200,
		"passes": 3,
		"format": "webp",
		"supersample": 2
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scene != "random" || cfg.Width != 800 || cfg.SamplesPerPixel != 200 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.Passes != 3 || cfg.Format != "webp" || cfg.Supersample != 2 {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.TileSize != 0 || cfg.OutputDir != "" {
		t.Errorf("Fields missing from the file should stay zero, got %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Expected os.ErrNotExist, got %v", err)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := Load(writeConfig(t, `{"width": `)); err == nil {
			t.Error("Expected parse error")
		}
	})
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	fileSeed := int64(7)
	cfg := Config{Scene: "random", Width: 800, Passes: 3, Format: "webp", Seed: &fileSeed}

	cfg.Resolve(Flags{Width: 320, Format: "tga", Workers: 3})

	tests := []struct {
		name     string
		got      any
		expected any
	}{
		{"flag width", cfg.Width, 320},
		{"flag format", cfg.Format, "tga"},
		{"flag workers", cfg.Workers, 3},
		{"file scene", cfg.Scene, "random"},
		{"file passes", cfg.Passes, 3},
		{"file seed", cfg.SeedValue(), int64(7)},
		{"default tile size", cfg.TileSize, DefaultTileSize},
		{"default output dir", cfg.OutputDir, DefaultOutputDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}
}

func TestResolve_Seed(t *testing.T) {
	zero, seven := int64(0), int64(7)

	tests := []struct {
		name     string
		file     string
		flag     *int64
		expected int64
	}{
		{"unset", `{}`, nil, DefaultSeed},
		{"file zero", `{"seed": 0}`, nil, 0},
		{"file seven", `{"seed": 7}`, nil, 7},
		{"flag zero overrides file", `{"seed": 7}`, &zero, 0},
		{"flag seven", `{}`, &seven, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.file))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			cfg.Resolve(Flags{Seed: tt.flag})

			if cfg.Seed == nil {
				t.Fatal("Resolve should always set a seed")
			}
			if got := cfg.SeedValue(); got != tt.expected {
				t.Errorf("Expected seed %d, got %d", tt.expected, got)
			}
		})
	}

	if got := (Config{}).SeedValue(); got != DefaultSeed {
		t.Errorf("Unresolved config should report the default seed, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		valid  bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"explicit sizes", func(c *Config) { c.Width = 200; c.SamplesPerPixel = 10; c.MaxDepth = 5 }, true},
		{"tif alias", func(c *Config) { c.Format = "tif" }, true},
		{"negative width", func(c *Config) { c.Width = -1 }, false},
		{"negative samples", func(c *Config) { c.SamplesPerPixel = -1 }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"zero passes", func(c *Config) { c.Passes = 0 }, false},
		{"zero tile size", func(c *Config) { c.TileSize = 0 }, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"zero supersample", func(c *Config) { c.Supersample = 0 }, false},
		{"unknown format", func(c *Config) { c.Format = "gif" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid config, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidate_UnknownFormatWrapsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Format = "gif"

	if err := cfg.Validate(); !errors.Is(err, output.ErrUnknownFormat) {
		t.Errorf("Expected output.ErrUnknownFormat, got %v", err)
	}

	cfg.Format = "JPEG"
	if _, err := cfg.OutputFormat(); !errors.Is(err, output.ErrUnknownFormat) {
		t.Errorf("Expected output.ErrUnknownFormat, got %v", err)
	}
}
