package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/config"
	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/output"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

func main() {
	cfg, err := config.Load(config.RootDirFromEnv())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := run(os.Args[1:], cfg, os.Stdout, renderer.NewDefaultLogger()); err != nil {
		log.Fatalf("Render failed: %v", err)
	}
}

// options holds the parsed command line, seeded from config
type options struct {
	scene        string
	width        int
	height       int
	samples      int
	depth        int
	seed         int64
	output       string
	previewWidth int
	upload       bool
	list         bool
	help         bool
}

func parseFlags(args []string, cfg *config.Config, stdout io.Writer) (*options, *flag.FlagSet, error) {
	opts := &options{}
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.StringVar(&opts.scene, "scene", cfg.Scene, "Scene to render (see -list)")
	fs.IntVar(&opts.width, "width", cfg.Width, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", cfg.Height, "Image height (0 = scene default)")
	fs.IntVar(&opts.samples, "samples", cfg.Samples, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", cfg.MaxDepth, "Maximum ray bounces (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", cfg.Seed, "Random seed")
	fs.StringVar(&opts.output, "output", "", "Output file (.ppm, .png, .jpg); default output/<scene>/render_<timestamp>.ppm")
	fs.IntVar(&opts.previewWidth, "preview", cfg.PreviewWidth, "Also write a PNG thumbnail this many pixels wide (0 = none)")
	fs.BoolVar(&opts.upload, "upload", false, "Publish the render as PNG to the configured S3 bucket")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	fs.BoolVar(&opts.help, "help", false, "Show help information")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if opts.width < 0 || opts.height < 0 || opts.samples < 0 || opts.depth < 0 || opts.previewWidth < 0 {
		return nil, nil, fmt.Errorf("%w: negative flag value", config.ErrInvalidConfig)
	}
	return opts, fs, nil
}

func printHelp(stdout io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(stdout, "Sphere Raytracer")
	fmt.Fprintln(stdout, "Usage: raytracer [options]")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(stdout)
	printScenes(stdout)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Output will be saved to output/<scene>/render_<timestamp>.ppm")
}

func printScenes(stdout io.Writer) {
	fmt.Fprintln(stdout, "Available scenes:")
	for _, info := range scene.List() {
		fmt.Fprintf(stdout, "  %-12s %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene and applies size and sampling overrides
func createScene(opts *options) (*scene.Scene, error) {
	s, err := scene.Lookup(opts.scene)
	if err != nil {
		return nil, err
	}

	if opts.width > 0 || opts.height > 0 {
		width, height := s.Width, s.Height
		if opts.width > 0 {
			width = opts.width
		}
		if opts.height > 0 {
			height = opts.height
		}
		s.Resize(width, height)
	}
	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	return s, nil
}

func run(args []string, cfg *config.Config, stdout io.Writer, logger core.Logger) error {
	opts, fs, err := parseFlags(args, cfg, stdout)
	if err != nil {
		return err
	}
	if opts.help {
		printHelp(stdout, fs)
		return nil
	}
	if opts.list {
		printScenes(stdout)
		return nil
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Rendering scene %s at %dx%d (%d samples, depth %d)\n",
		selectedScene.Name, selectedScene.Width, selectedScene.Height,
		selectedScene.SamplingConfig.SamplesPerPixel, selectedScene.SamplingConfig.MaxDepth)

	raytracer := renderer.NewRaytracer(selectedScene, selectedScene.Width, selectedScene.Height)
	raytracer.SetSamplingConfig(selectedScene.SamplingConfig)
	raytracer.SetSampler(core.NewSeededSampler(opts.seed))
	raytracer.SetLogger(logger)

	img, stats, err := raytracer.RenderPass(context.Background())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render completed in %v\n", stats.Duration)
	fmt.Fprintf(stdout, "Samples per pixel: %.1f (%d total)\n", stats.AverageSamples, stats.TotalSamples)

	timestamp := time.Now().Format("20060102_150405")
	filename := opts.output
	if filename == "" {
		filename = filepath.Join(cfg.OutputDir, selectedScene.Name, fmt.Sprintf("render_%s.ppm", timestamp))
	}
	if err := output.SaveImage(filename, img); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", filename)

	if opts.previewWidth > 0 {
		previewName := strings.TrimSuffix(filename, filepath.Ext(filename)) + "_preview.png"
		if err := output.SaveRGBA(previewName, output.Preview(img, opts.previewWidth)); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Preview saved as %s\n", previewName)
	}

	if opts.upload {
		publisher, err := output.NewS3Publisher(cfg.S3, logger)
		if err != nil {
			return err
		}
		data, err := output.EncodePNG(img)
		if err != nil {
			return err
		}
		key := fmt.Sprintf("%s/render_%s.png", selectedScene.Name, timestamp)
		if err := publisher.Publish(context.Background(), key, data, "image/png"); err != nil {
			return err
		}
	}
	return nil
}
