package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/log"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var errUnsupportedFormat = errors.New("output file must end in .png or .ppm")

// RenderScene renders a scene file or built-in scene to an image file.
func RenderScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() > 1 {
		return errors.New("expected at most one scene file argument")
	}

	outFile := ctx.String("out")
	if err := checkOutputFormat(outFile); err != nil {
		return err
	}

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}
	sc.Camera = sc.Camera.WithSize(ctx.Int("width"), ctx.Int("height"))

	camera, err := renderer.NewCameraFromConfig(sc.Camera)
	if err != nil {
		return err
	}

	config := renderer.Config{
		MaxDepth:   ctx.Int("depth"),
		NumWorkers: ctx.Int("workers"),
	}
	if config.MaxDepth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", config.MaxDepth)
	}

	r, err := renderer.NewRenderer(camera, sc.World, nil, config, log.AsPrintf(logger))
	if err != nil {
		return err
	}

	// Stop on Ctrl+C and keep whatever rows finished
	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Noticef("rendering scene %q at %dx%d", sc.Name, camera.HSize, camera.VSize)
	img, stats, renderErr := r.Render(renderCtx)
	if renderErr != nil && !errors.Is(renderErr, renderer.ErrInterrupted) {
		return renderErr
	}

	displayRenderStats(stats)

	start := time.Now()
	if err := writeImage(img, outFile); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", outFile, time.Since(start).Milliseconds())

	return renderErr
}

// loadScene reads the scene file argument, or builds the --scene built-in when there is none
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	if ctx.NArg() == 1 {
		return loaders.LoadSceneFile(ctx.Args().First())
	}
	return scene.Builtin(ctx.String("scene"))
}

func checkOutputFormat(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".ppm":
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, filename)
	}
}

// writeImage saves the canvas, choosing the encoder from the file extension
func writeImage(img *canvas.Canvas, filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	if strings.ToLower(filepath.Ext(filename)) == ".ppm" {
		err = img.WritePPM(f)
	} else {
		err = img.WritePNG(f)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "Pixels", "Busy time", "% busy"})
	for _, stat := range stats.PerWorker {
		table.Append([]string{
			fmt.Sprintf("%d", stat.ID),
			fmt.Sprintf("%d", stat.Rows),
			fmt.Sprintf("%d", stat.Pixels),
			stat.Busy.Round(time.Microsecond).String(),
			fmt.Sprintf("%02.1f %%", 100*stat.Utilization(stats.Duration)),
		})
	}
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.Rows),
		fmt.Sprintf("%d", stats.TotalPixels),
		stats.Duration.Round(time.Microsecond).String(),
		fmt.Sprintf("%.0f px/s", stats.PixelsPerSecond()),
	})

	table.Render()
	logger.Noticef("render statistics\n%s", buf.String())
}
