package canvas

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ppmLineLimit is the maximum line length of the PPM pixel data
const ppmLineLimit = 70

// Canvas is a grid of linear colors addressed by (x, y) with y growing downward
type Canvas struct {
	Width  int
	Height int
	pixels []core.Color
}

// New creates a black canvas
func New(width, height int) *Canvas {
	return &Canvas{
		Width:  width,
		Height: height,
		pixels: make([]core.Color, width*height),
	}
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.Width && y >= 0 && y < c.Height
}

// WritePixel sets the color at (x, y). Writes outside the canvas are ignored.
// Concurrent writes to distinct pixels are safe.
func (c *Canvas) WritePixel(x, y int, col core.Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.Width+x] = col
}

// PixelAt returns the color at (x, y), black outside the canvas
func (c *Canvas) PixelAt(x, y int) core.Color {
	if !c.inBounds(x, y) {
		return core.Black
	}
	return c.pixels[y*c.Width+x]
}

// toByte clamps a channel to [0,1] and scales it to 0..255
func toByte(v float64) uint8 {
	v = math.Max(0, math.Min(1, v))
	return uint8(math.Round(v * 255))
}

// ToImage converts the canvas to an 8-bit image
func (c *Canvas) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.pixels[y*c.Width+x]
			img.SetRGBA(x, y, color.RGBA{R: toByte(p.R), G: toByte(p.G), B: toByte(p.B), A: 255})
		}
	}
	return img
}

// WritePNG encodes the canvas as a PNG image
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.ToImage())
}

// WritePPM writes the canvas as a plain (P3) PPM image. Each canvas row
// starts a new line and no line exceeds 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return err
	}

	for y := 0; y < c.Height; y++ {
		lineLen := 0
		for x := 0; x < c.Width; x++ {
			p := c.pixels[y*c.Width+x]
			for _, v := range [3]float64{p.R, p.G, p.B} {
				token := strconv.Itoa(int(toByte(v)))

				switch {
				case lineLen == 0:
				case lineLen+1+len(token) > ppmLineLimit:
					bw.WriteByte('\n')
					lineLen = 0
				default:
					bw.WriteByte(' ')
					lineLen++
				}
				bw.WriteString(token)
				lineLen += len(token)
			}
		}
		bw.WriteByte('\n')
	}

	return bw.Flush()
}
