package main

import (
	"os"

	"github.com/urfave/cli"
)

func init() {
	// The default "version, v" flag collides with the global -v verbosity flag
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes using Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level: debug, info, notice, warning or error",
			EnvVar: "RAYTRACER_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to an image file",
			Description: `
Render a YAML scene file, or a built-in scene selected with --scene, and write
the image as PNG or plain PPM depending on the output file extension.

Width and height override the scene camera's image size.`,
			ArgsUsage: "[scene.yaml]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "scene, s",
					Value:  "default",
					Usage:  "built-in scene to render when no scene file is given",
					EnvVar: "RAYTRACER_SCENE",
				},
				cli.IntFlag{
					Name:   "width",
					Usage:  "image width, 0 keeps the scene's width",
					EnvVar: "RAYTRACER_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Usage:  "image height, 0 keeps the scene's height",
					EnvVar: "RAYTRACER_HEIGHT",
				},
				cli.IntFlag{
					Name:   "depth",
					Value:  5,
					Usage:  "maximum reflection/refraction depth",
					EnvVar: "RAYTRACER_DEPTH",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "number of render workers, 0 uses every CPU",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "render.png",
					Usage:  "output image filename (.png or .ppm)",
					EnvVar: "RAYTRACER_OUT",
				},
			},
			Action: RenderScene,
		},
		{
			Name:  "scenes",
			Usage: "list built-in scenes and scene files",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory to search for scene files",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
			},
			Action: ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the render API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port, p",
					Value:  8080,
					Usage:  "port to listen on",
					EnvVar: "RAYTRACER_PORT",
				},
				cli.IntFlag{
					Name:   "max-width",
					Value:  2000,
					Usage:  "largest image width a request may ask for",
					EnvVar: "RAYTRACER_MAX_WIDTH",
				},
				cli.IntFlag{
					Name:   "max-height",
					Value:  2000,
					Usage:  "largest image height a request may ask for",
					EnvVar: "RAYTRACER_MAX_HEIGHT",
				},
				cli.IntFlag{
					Name:   "workers",
					Usage:  "render workers per request, 0 uses every CPU",
					EnvVar: "RAYTRACER_WORKERS",
				},
				cli.StringFlag{
					Name:   "dir",
					Value:  "scenes",
					Usage:  "directory holding scene files",
					EnvVar: "RAYTRACER_SCENES_DIR",
				},
			},
			Action: Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
