package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/QPG-MIT/optiverse-sub000/pkg/loaders"
	"github.com/QPG-MIT/optiverse-sub000/pkg/renderer"
	"github.com/QPG-MIT/optiverse-sub000/pkg/scene"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// traceOutput is the JSON document written by the trace command
type traceOutput struct {
	Scene     string           `json:"scene,omitempty"`
	PathCount int              `json:"pathCount"`
	Paths     []tracer.RayPath `json:"paths"`
}

// TraceScene traces a built-in or file-based scene and writes the resulting
// ray paths as JSON or SVG.
func TraceScene(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := resolveScene(ctx)
	if err != nil {
		return err
	}

	config := renderer.DefaultConfig()
	config.MaxEvents = sc.MaxEvents
	config.NumWorkers = ctx.Int("workers")
	if ctx.IsSet("max-events") {
		config.MaxEvents = ctx.Int("max-events")
	}

	start := time.Now()
	paths, err := renderer.TraceParallel(sc.Elements, sc.Sources, config)
	if err != nil {
		return err
	}
	logger.Infof("traced %q: %d sources, %d paths in %v", sc.Name, len(sc.Sources), len(paths), time.Since(start))

	out, closer, err := openOutput(ctx.String("out"))
	if err != nil {
		return err
	}
	defer closer()

	switch format := outputFormat(ctx); format {
	case "svg":
		return renderer.WriteSVG(out, sc.Elements, paths, renderer.DefaultSVGOptions())
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(traceOutput{
			Scene:     sc.Name,
			PathCount: len(paths),
			Paths:     paths,
		})
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// ListScenes prints the built-in scene names
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)
	for _, name := range scene.Names() {
		fmt.Println(name)
	}
	return nil
}

func resolveScene(ctx *cli.Context) (*scene.Scene, error) {
	if file := ctx.String("file"); file != "" {
		return loaders.Load(file)
	}

	name := ctx.String("scene")
	sc := scene.ByName(name)
	if sc == nil {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(scene.Names(), ", "))
	}
	return sc, nil
}

// outputFormat picks the format flag, falling back to the output file
// extension. Bare stdout defaults to JSON.
func outputFormat(ctx *cli.Context) string {
	if format := ctx.String("format"); format != "" {
		return format
	}
	if strings.HasSuffix(ctx.String("out"), ".svg") {
		return "svg"
	}
	return "json"
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
