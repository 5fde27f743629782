package renderer

import (
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// RowRenderer traces pixels into a shared canvas. Callers must give
// concurrent RenderBounds calls non-overlapping bounds.
type RowRenderer struct {
	camera     *Camera
	world      *scene.World
	integrator integrator.Integrator
	target     *canvas.Canvas
}

// NewRowRenderer creates a renderer writing into target
func NewRowRenderer(camera *Camera, world *scene.World, integratorInst integrator.Integrator, target *canvas.Canvas) *RowRenderer {
	return &RowRenderer{
		camera:     camera,
		world:      world,
		integrator: integratorInst,
		target:     target,
	}
}

// RenderRow renders one full image row and returns the number of pixels traced
func (rr *RowRenderer) RenderRow(y int) int {
	return rr.RenderBounds(image.Rect(0, y, rr.camera.HSize, y+1))
}

// RenderBounds renders every pixel within bounds and returns the number of pixels traced
func (rr *RowRenderer) RenderBounds(bounds image.Rectangle) int {
	bounds = bounds.Intersect(image.Rect(0, 0, rr.camera.HSize, rr.camera.VSize))

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := rr.camera.RayForPixel(x, y)
			rr.target.WritePixel(x, y, rr.integrator.RayColor(ray, rr.world))
		}
	}

	return bounds.Dx() * bounds.Dy()
}
