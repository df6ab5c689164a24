package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Config holds the command line settings
type Config struct {
	SceneType string
	Width     int   // 0 keeps the scene's width
	Samples   int   // 0 keeps the scene's samples per pixel
	MaxDepth  int   // Negative keeps the scene's max depth
	Seed      int64 // Seed for the random source
	Workers   int   // Render workers, 0 uses every CPU; the image does not depend on it
	OutputDir string
}

func main() {
	config, help, list := parseFlags()

	if help {
		showHelp()
		return
	}
	if list {
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-12s %s\n", info.ID, info.Description)
		}
		return
	}

	if err := run(config); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (Config, bool, bool) {
	var config Config
	flag.StringVar(&config.SceneType, "scene", "default", "Scene id (see -list)")
	flag.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default); height follows the aspect ratio")
	flag.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flag.IntVar(&config.MaxDepth, "depth", -1, "Maximum bounce depth (-1 = scene default)")
	flag.Int64Var(&config.Seed, "seed", 1, "Random seed; the same seed reproduces the same image here and in the web server")
	flag.IntVar(&config.Workers, "workers", 1, "Render workers (0 = one per CPU)")
	flag.StringVar(&config.OutputDir, "output", "output", "Base output directory")
	help := flag.Bool("help", false, "Show help information")
	list := flag.Bool("list", false, "List available scenes")
	flag.Parse()

	return config, *help, *list
}

func showHelp() {
	fmt.Println("Sphere Path Tracer")
	fmt.Println("Usage: pathtracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Println()
	fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.png")
}

func run(config Config) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	sceneObj, err := createScene(config)
	if err != nil {
		return err
	}

	sampling := sceneObj.SamplingConfig
	logger.Printf("Rendering scene %q at %dx%d, %d samples per pixel, max depth %d",
		config.SceneType, sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth)

	startTime := time.Now()
	img, stats := render(context.Background(), sceneObj, config, logger)
	logger.Printf("Render completed in %v (%d pixels, %d samples, average luminance %.3f)",
		time.Since(startTime), stats.TotalPixels, stats.TotalSamples, renderer.CalculateAverageLuminance(img))

	outputDir := createOutputDir(config.OutputDir, config.SceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	if err := savePNG(filename, img); err != nil {
		return err
	}

	logger.Printf("Render saved as %s", filename)
	return nil
}

// createScene builds the named scene and applies the command line overrides
func createScene(config Config) (*scene.Scene, error) {
	sceneObj, err := scene.NewScene(config.SceneType)
	if err != nil {
		return nil, err
	}

	if config.Width > 0 {
		sceneObj.SetWidth(config.Width)
	}
	if config.Samples > 0 {
		sceneObj.SamplingConfig.SamplesPerPixel = config.Samples
	}
	if config.MaxDepth >= 0 {
		sceneObj.SamplingConfig.MaxDepth = config.MaxDepth
	}

	if err := sceneObj.Validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", config.SceneType, err)
	}
	return sceneObj, nil
}

// render seeds scanline j with Seed+j, matching the web server for the same scene and seed
func render(ctx context.Context, sceneObj *scene.Scene, config Config, logger core.Logger) (*image.RGBA, renderer.RenderStats) {
	raytracer := renderer.NewRaytracer(sceneObj, sceneObj.SamplingConfig, core.NewRandomSampler(config.Seed))
	raytracer.SetLogger(logger, 16)

	sink := renderer.NewImageSink(sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height)
	stats := raytracer.RenderParallel(ctx, sink, config.Seed, config.Workers)
	return sink.Image, stats
}

// createOutputDir returns the directory renders of sceneType are written to
func createOutputDir(base, sceneType string) string {
	return filepath.Join(base, sceneType)
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}
	return file.Close()
}
