package renderer

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var (
	// ErrInterrupted is returned when a render is cancelled before every row is traced
	ErrInterrupted = errors.New("renderer: render interrupted")
	// ErrNoCamera is returned when a renderer is created without a camera
	ErrNoCamera = errors.New("renderer: no camera")
	// ErrNoWorld is returned when a renderer is created without a world
	ErrNoWorld = errors.New("renderer: no world")
)

// Config contains rendering configuration
type Config struct {
	MaxDepth   int // Reflection/refraction bounce limit for the default integrator
	NumWorkers int // Parallel row workers, 0 = runtime.NumCPU()
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   integrator.DefaultMaxDepth,
		NumWorkers: runtime.NumCPU(),
	}
}

// Renderer renders a world through a camera using a pool of row workers
type Renderer struct {
	camera     *Camera
	world      *scene.World
	integrator integrator.Integrator
	config     Config
	logger     core.Logger // Logger for rendering output
}

// NewRenderer creates a renderer. A nil integrator selects Whitted with
// config.MaxDepth and a nil logger discards output.
func NewRenderer(camera *Camera, world *scene.World, integratorInst integrator.Integrator, config Config, logger core.Logger) (*Renderer, error) {
	if camera == nil {
		return nil, ErrNoCamera
	}
	if world == nil {
		return nil, ErrNoWorld
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if integratorInst == nil {
		integratorInst = integrator.NewWhitted(config.MaxDepth)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}, nil
}

// Render traces the whole image. On cancellation the partially rendered
// canvas is returned with an error wrapping ErrInterrupted.
func (r *Renderer) Render(ctx context.Context) (*canvas.Canvas, RenderStats, error) {
	img := canvas.New(r.camera.HSize, r.camera.VSize)
	rr := NewRowRenderer(r.camera, r.world, r.integrator, img)

	numWorkers := min(r.config.NumWorkers, max(1, r.camera.VSize))
	pool := NewWorkerPool(rr, r.camera.VSize, numWorkers)

	r.logger.Printf("Rendering %dx%d with %d workers...\n", r.camera.HSize, r.camera.VSize, pool.GetNumWorkers())
	startTime := time.Now()

	perWorker, err := pool.Run(ctx)
	stats := newRenderStats(perWorker, time.Since(startTime))

	if err != nil {
		r.logger.Printf("Render cancelled after %d of %d rows\n", stats.Rows, r.camera.VSize)
		return img, stats, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}

	r.logger.Printf("Render completed in %v (%d pixels)\n", stats.Duration, stats.TotalPixels)
	return img, stats, nil
}
