package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/df07/go-recursive-raytracer/pkg/config"
	"github.com/df07/go-recursive-raytracer/pkg/loaders"
	"github.com/df07/go-recursive-raytracer/pkg/output"
	"github.com/df07/go-recursive-raytracer/pkg/renderer"
	"github.com/df07/go-recursive-raytracer/pkg/scene"
)

// sceneDir holds the bundled JSON scene descriptions
const sceneDir = "scenes"

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a JSON render settings file")
	sceneType := flag.String("scene", "", "Scene: 'default', 'random', 'spheregrid', a scene file name, or a path to a .json description")
	width := flag.Int("width", 0, "Output width in pixels (0 = scene default)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum ray bounce depth (0 = scene default)")
	passes := flag.Int("passes", 0, "Number of progressive passes")
	tileSize := flag.Int("tile-size", 0, "Tile size in pixels")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = CPU count)")
	seed := flag.Int64("seed", config.DefaultSeed, "Seed for pixel sampling and random scenes")
	format := flag.String("format", "", "Output format: png, ppm, webp, tga, bmp, tiff")
	outputDir := flag.String("output", "", "Output directory")
	supersample := flag.Int("supersample", 0, "Render at N times the width and downscale")
	list := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *list {
		if err := listScenes(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var cfg config.Config
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	// Seed zero is a valid choice, so only an explicit flag overrides the file
	var seedFlag *int64
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			seedFlag = seed
		}
	})

	cfg.Resolve(config.Flags{
		Scene:           *sceneType,
		Width:           *width,
		SamplesPerPixel: *samples,
		MaxDepth:        *depth,
		Passes:          *passes,
		TileSize:        *tileSize,
		Workers:         *workers,
		Seed:            seedFlag,
		Format:          *format,
		OutputDir:       *outputDir,
		Supersample:     *supersample,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("Recursive Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Built-in scenes:")
	for _, info := range scene.BuiltinScenes() {
		fmt.Printf("  %-10s - %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Printf("Scene files in %s/ can be selected by name; use -list to show them.\n", sceneDir)
	fmt.Println("Output will be saved to <output>/<scene>/render_<timestamp>.<format>")
}

func listScenes() error {
	groups, err := scene.ListAllScenes(sceneDir, log.Default())
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Printf("  %-16s %s - %s\n", info.ID, info.Name, info.Description)
			} else {
				fmt.Printf("  %-16s %s\n", info.ID, info.Name)
			}
		}
	}
	return nil
}

// createScene resolves a built-in scene, a scene file name in the scenes
// directory, or a path to a JSON description
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	return loaders.CreateScene(sceneType, sceneDir, seed)
}

// sceneSlug names the output directory for a scene
func sceneSlug(sceneType string) string {
	base := filepath.Base(sceneType)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// applyConfig overrides the scene's sampling settings with non-zero config values
func applyConfig(s *scene.Scene, cfg config.Config) {
	if cfg.Width > 0 {
		s.SetWidth(cfg.Width)
	}
	if cfg.SamplesPerPixel > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.SamplesPerPixel
	}
	if cfg.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}
}

func run(ctx context.Context, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	logger := log.New(os.Stdout, "", log.Ltime)
	logger.Printf("Starting Recursive Raytracer...\n")

	s, err := createScene(cfg.Scene, cfg.SeedValue())
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}
	applyConfig(s, cfg)

	targetWidth, targetHeight := s.SamplingConfig.Width, s.SamplingConfig.Height
	if cfg.Supersample > 1 {
		s.SetWidth(targetWidth * cfg.Supersample)
		logger.Printf("Supersampling %dx: rendering at %dx%d\n", cfg.Supersample, s.SamplingConfig.Width, s.SamplingConfig.Height)
	}

	logger.Printf("Scene %q: %d spheres, %dx%d, %d samples, depth %d\n",
		cfg.Scene, s.GetPrimitiveCount(), targetWidth, targetHeight,
		s.SamplingConfig.SamplesPerPixel, s.SamplingConfig.MaxDepth)

	progressive := renderer.NewProgressiveRaytracer(s, renderer.ProgressiveConfig{
		TileSize:           cfg.TileSize,
		InitialSamples:     1,
		MaxSamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxPasses:          cfg.Passes,
		NumWorkers:         cfg.Workers,
		Seed:               cfg.SeedValue(),
	}, renderer.NewSceneIntegrator(s), logger)

	startTime := time.Now()
	passChan, errChan := progressive.RenderProgressive(ctx)

	var last *renderer.PassResult
	for pass := range passChan {
		last = &pass
	}

	renderErr := <-errChan
	switch {
	case renderErr == nil:
	case errors.Is(renderErr, context.Canceled) && last != nil:
		logger.Printf("Interrupted, saving pass %d\n", last.PassNumber)
	default:
		return fmt.Errorf("render: %w", renderErr)
	}
	if last == nil {
		return fmt.Errorf("render produced no passes")
	}
	renderTime := time.Since(startTime)

	var img image.Image = last.Image
	if cfg.Supersample > 1 {
		img = output.Downsample(last.Image, targetWidth, targetHeight)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(cfg.OutputDir, sceneSlug(cfg.Scene), "render_"+timestamp+format.Extension())
	if err := output.Save(filename, img); err != nil {
		return fmt.Errorf("save render: %w", err)
	}

	p := message.NewPrinter(language.English)
	p.Printf("Render completed in %v after %d passes\n", renderTime.Round(time.Millisecond), last.PassNumber)
	p.Printf("Samples: %d total, %.1f per pixel (range %d - %d)\n",
		last.Stats.TotalSamples, last.Stats.AverageSamples, last.Stats.MinSamples, last.Stats.MaxSamplesUsed)
	p.Printf("Average luminance: %.4f\n", renderer.CalculateAverageLuminance(img))
	p.Printf("Render saved as %s\n", filename)

	return nil
}
