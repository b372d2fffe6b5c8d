package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-minirt/pkg/config"
	"github.com/df07/go-minirt/pkg/display"
	"github.com/df07/go-minirt/pkg/loaders"
	"github.com/df07/go-minirt/pkg/output"
	"github.com/df07/go-minirt/pkg/renderer"
	"github.com/df07/go-minirt/pkg/scene"
	"github.com/df07/go-minirt/pkg/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error\n%v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("minirt", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON config file")
	outputPath := fs.String("output", "", "Output image path; format by extension (.bmp, .png, .webp, .tga)")
	width := fs.Int("width", 0, "Image width in pixels (default 800)")
	height := fs.Int("height", 0, "Image height in pixels (default 600)")
	workers := fs.Int("workers", 0, "Row workers; 1 renders sequentially (default CPU count)")
	noWindow := fs.Bool("no-window", false, "Do not open a preview window")
	upload := fs.Bool("upload", false, "Upload the image to the configured S3 bucket")
	builtin := fs.String("scene", "", "Built-in scene name instead of a .rt file")
	help := fs.Bool("help", false, "Show help information")
	if err := fs.Parse(args); err != nil {
		// -h prints usage and is not a failure
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *help {
		fmt.Println("miniRT")
		fmt.Println("Usage: minirt [options] <scene.rt>")
		fmt.Println()
		fmt.Println("Options:")
		fs.PrintDefaults()
		fmt.Println()
		fmt.Println("Built-in scenes:")
		for _, name := range scene.BuiltinSceneNames() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	sceneArg := *builtin
	if sceneArg == "" {
		if fs.NArg() != 1 {
			return errors.New("Usage: minirt [options] <scene.rt>")
		}
		sceneArg = fs.Arg(0)
	}

	cfg, err := loadConfig(*configPath, config.Flags{
		Width:    *width,
		Height:   *height,
		Workers:  *workers,
		Output:   *outputPath,
		NoWindow: *noWindow,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Parsing scene: %s\n", sceneArg)
	s, err := createScene(sceneArg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt := renderer.NewRaytracer(s, renderer.Config{
		Width:   cfg.Width,
		Height:  cfg.Height,
		Workers: cfg.Workers,
	}, renderer.NewDefaultLogger())

	fb, stats, err := rt.Render(ctx)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Printf("Render completed in %v (%d of %d pixels hit)\n", stats.Elapsed, stats.HitPixels, stats.TotalPixels)

	if err := output.Save(cfg.Output, fb); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", cfg.Output)

	if *upload {
		if err := uploadFrame(ctx, cfg, fb); err != nil {
			return err
		}
	}

	if !cfg.NoWindow {
		return display.Show(fb, "miniRT - "+filepath.Base(sceneArg))
	}
	return nil
}

// loadConfig merges the config file, .env and environment, and CLI flags
func loadConfig(path string, flags config.Flags) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if err := cfg.LoadEnv("."); err != nil {
		return cfg, err
	}
	cfg.Resolve(flags)
	return cfg, nil
}

// createScene resolves a built-in scene name or a path to a .rt file
func createScene(arg string) (*scene.Scene, error) {
	if arg == "" {
		return nil, errors.New("no scene given")
	}
	if s, err := scene.NewBuiltinScene(arg); err == nil {
		return s, nil
	}
	if strings.EqualFold(filepath.Ext(arg), ".rt") {
		return loaders.LoadRT(arg)
	}
	return nil, fmt.Errorf("unknown scene %q: expected a .rt file or one of %s",
		arg, strings.Join(scene.BuiltinSceneNames(), ", "))
}

func uploadFrame(ctx context.Context, cfg config.Config, fb *renderer.Framebuffer) error {
	uploader, err := storage.NewS3Uploader(cfg.S3)
	if err != nil {
		return err
	}
	return uploadEncoded(ctx, uploader, cfg.Output, fb)
}

// uploadEncoded encodes the frame in the output file's format and uploads it
// under a timestamped key
func uploadEncoded(ctx context.Context, uploader storage.Uploader, outputPath string, fb *renderer.Framebuffer) error {
	format, err := output.FormatFromPath(outputPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := output.Encode(&buf, fb, format); err != nil {
		return err
	}

	key := fmt.Sprintf("renders/render_%s%s", time.Now().Format("20060102_150405"), format.Extension())
	if err := uploader.Upload(ctx, key, format.ContentType(), buf.Bytes()); err != nil {
		return err
	}
	fmt.Printf("Uploaded %s (%d bytes)\n", key, buf.Len())
	return nil
}
