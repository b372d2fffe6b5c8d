package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/df07/go-minirt/pkg/core"
	"github.com/df07/go-minirt/pkg/geometry"
	"github.com/df07/go-minirt/pkg/scene"
)

// ErrInvalidResolution is returned when a render is asked for a non-positive
// width or height
var ErrInvalidResolution = errors.New("invalid resolution")

// Config contains the output resolution and parallelism of a render
type Config struct {
	Width   int // Image width in pixels
	Height  int // Image height in pixels
	Workers int // Row workers; 1 renders sequentially, 0 uses CPU count
}

// DefaultConfig returns the reference 800x600 resolution
func DefaultConfig() Config {
	return Config{
		Width:   800,
		Height:  600,
		Workers: runtime.NumCPU(),
	}
}

// Raytracer renders a read-only scene into a framebuffer
type Raytracer struct {
	scene  *scene.Scene
	camera *Camera
	config Config
	logger core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards output.
func NewRaytracer(s *scene.Scene, config Config, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Raytracer{
		scene:  s,
		camera: NewCamera(s.Camera, config.Width, config.Height),
		config: config,
		logger: logger,
	}
}

// RenderPixel traces the primary ray through pixel (i, j) and returns its
// packed color, or Background when nothing is hit
func (rt *Raytracer) RenderPixel(i, j int) uint32 {
	packed, _ := rt.tracePixel(i, j)
	return packed
}

func (rt *Raytracer) tracePixel(i, j int) (uint32, bool) {
	ray := rt.camera.GetRay(i, j)

	hit := rt.scene.ClosestHit(ray)
	if !hit.Ok() {
		return Background, false
	}

	hit.Resolve(ray)
	return Vec3ToColor(CalculateLighting(rt.scene, hit)), true
}

// renderRow fills row j and returns how many pixels hit an object
func (rt *Raytracer) renderRow(fb *Framebuffer, j int) int {
	hits := 0
	for i := 0; i < fb.Width; i++ {
		packed, ok := rt.tracePixel(i, j)
		fb.Set(i, j, packed)
		if ok {
			hits++
		}
	}
	return hits
}

// Render produces a full frame. Rows are independent: each pixel is written
// once by exactly one row task, so the result does not depend on the number
// of workers.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	if rt.config.Width <= 0 || rt.config.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("%w: %dx%d", ErrInvalidResolution, rt.config.Width, rt.config.Height)
	}

	start := time.Now()
	fb := NewFramebuffer(rt.config.Width, rt.config.Height)
	rowHits := make([]int, fb.Height)

	pool := NewWorkerPool(rt.config.Workers)
	stats := RenderStats{
		TotalPixels: fb.Width * fb.Height,
		Rows:        fb.Height,
		Workers:     pool.GetNumWorkers(),
	}

	rt.logger.Printf("Rendering %dx%d, %d objects%s, %d lights, %d workers\n",
		fb.Width, fb.Height, len(rt.scene.Objects), describeKinds(rt.scene.GetPrimitiveCount()),
		len(rt.scene.Lights), stats.Workers)

	var err error
	if stats.Workers == 1 {
		err = rt.renderSequential(ctx, fb, rowHits)
	} else {
		err = pool.Run(ctx, fb.Height, func(j int) error {
			rowHits[j] = rt.renderRow(fb, j)
			return nil
		})
	}
	if err != nil {
		return nil, stats, err
	}

	for _, h := range rowHits {
		stats.HitPixels += h
	}
	stats.Elapsed = time.Since(start)

	rt.logger.Printf("Render completed in %v (%.1f%% coverage)\n", stats.Elapsed, stats.Coverage()*100)
	return fb, stats, nil
}

// describeKinds formats per-kind object counts as " (2 sphere, 1 plane)",
// or "" for an empty scene
func describeKinds(counts map[geometry.Kind]int) string {
	var parts []string
	for _, k := range []geometry.Kind{geometry.KindSphere, geometry.KindPlane, geometry.KindCylinder} {
		if n := counts[k]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, k))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (rt *Raytracer) renderSequential(ctx context.Context, fb *Framebuffer, rowHits []int) error {
	for j := 0; j < fb.Height; j++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		rowHits[j] = rt.renderRow(fb, j)
	}
	return nil
}

// RenderScene is the pure entry point: scene and resolution in, pixels out
func RenderScene(ctx context.Context, s *scene.Scene, width, height int) (*Framebuffer, error) {
	fb, _, err := NewRaytracer(s, Config{Width: width, Height: height, Workers: 1}, nil).Render(ctx)
	return fb, err
}
