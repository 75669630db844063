package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/QPG-MIT/optiverse-sub000/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "optiverse"
	app.Usage = "trace polarized light through 2D optical benches"
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
	}
	app.Commands = []cli.Command{
		{
			Name:  "trace",
			Usage: "trace a scene and write the ray paths as JSON or SVG",
			Description: `
Trace a built-in scene (see list-scenes) or a JSON scene document through the
splitting tracer. Each output path carries its polyline, polarization state,
wavelength, and remaining intensity.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name",
				},
				cli.StringFlag{
					Name:  "file, f",
					Usage: "JSON scene document (overrides --scene)",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output file (default stdout)",
				},
				cli.StringFlag{
					Name:  "format",
					Usage: "output format: json or svg (default from --out extension)",
				},
				cli.IntFlag{
					Name:  "max-events",
					Usage: "per-source interaction budget (overrides the scene's)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "trace worker count (0 = all cores)",
				},
			},
			Action: cmd.TraceScene,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "serve",
			Usage: "serve the trace API over HTTP",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "port, p",
					Usage: "port to listen on (overrides OPTIVERSE_PORT)",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "trace worker count (overrides OPTIVERSE_TRACE_WORKERS)",
				},
			},
			Action: cmd.Serve,
		},
	}

	app.Run(os.Args)
}
