package main

import (
	"github.com/urfave/cli"

	"github.com/df07/go-whitted-raytracer/web/server"
)

// Serve runs the HTTP render API until the listener fails.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	s := server.NewServer(server.Config{
		Port:       ctx.Int("port"),
		MaxWidth:   ctx.Int("max-width"),
		MaxHeight:  ctx.Int("max-height"),
		NumWorkers: ctx.Int("workers"),
		ScenesDir:  ctx.String("dir"),
	})

	logger.Noticef("visit http://localhost:%d/api/scenes to list scenes", ctx.Int("port"))
	return s.Start()
}
