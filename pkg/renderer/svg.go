package renderer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// SVGOptions controls the rendered document
type SVGOptions struct {
	Margin      float64 // blank border around the scene bounds
	StrokeWidth float64 // line width for rays and elements
	Background  string  // CSS color, empty for none
}

// DefaultSVGOptions returns the options used by the CLI and web endpoints
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Margin:      20,
		StrokeWidth: 1,
		Background:  "#101418",
	}
}

// WriteSVG renders elements and traced ray paths as an SVG document. The
// viewBox is fitted to the scene, so callers scale it freely.
func WriteSVG(w io.Writer, elements []element.Element, paths []tracer.RayPath, opts SVGOptions) error {
	minP, maxP := sceneBounds(elements, paths, opts.Margin)
	width := maxP.X - minP.X
	height := maxP.Y - minP.Y

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="%s %s %s %s">`,
		formatFloat(minP.X), formatFloat(minP.Y), formatFloat(width), formatFloat(height)))
	builder.WriteString("\n")

	if opts.Background != "" {
		builder.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="%s" />`,
			formatFloat(minP.X), formatFloat(minP.Y), formatFloat(width), formatFloat(height), opts.Background))
		builder.WriteString("\n")
	}

	for _, path := range paths {
		builder.WriteString("  ")
		builder.WriteString(renderPath(path, opts.StrokeWidth))
		builder.WriteString("\n")
	}

	// Elements draw above the rays so thin optics stay visible
	for _, e := range elements {
		builder.WriteString("  ")
		builder.WriteString(renderElement(e, opts.StrokeWidth))
		builder.WriteString("\n")
	}

	builder.WriteString("</svg>\n")

	_, err := io.WriteString(w, builder.String())
	return err
}

func renderPath(path tracer.RayPath, strokeWidth float64) string {
	var points strings.Builder
	for i, p := range path.Points {
		if i > 0 {
			points.WriteByte(' ')
		}
		points.WriteString(formatFloat(p.X))
		points.WriteByte(',')
		points.WriteString(formatFloat(p.Y))
	}

	c := path.Color
	return fmt.Sprintf(
		`<polyline points="%s" fill="none" stroke="#%02x%02x%02x" stroke-opacity="%s" stroke-width="%s" />`,
		points.String(), c.R, c.G, c.B,
		formatFloat(float64(c.A)/255), formatFloat(strokeWidth))
}

func renderElement(e element.Element, strokeWidth float64) string {
	c := e.DisplayColor()
	return fmt.Sprintf(
		`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#%02x%02x%02x" stroke-width="%s"><title>%s</title></line>`,
		formatFloat(e.A.X), formatFloat(e.A.Y), formatFloat(e.B.X), formatFloat(e.B.Y),
		c.R, c.G, c.B, formatFloat(strokeWidth*2), e.DisplayLabel())
}

// sceneBounds fits a bounding box around everything drawable. Escape
// segments stretch to the tracer horizon, so ray endpoints are clipped
// against the element bounds plus a generous apron before fitting.
func sceneBounds(elements []element.Element, paths []tracer.RayPath, margin float64) (core.Vec2, core.Vec2) {
	minP := core.NewVec2(math.Inf(1), math.Inf(1))
	maxP := core.NewVec2(math.Inf(-1), math.Inf(-1))

	include := func(p core.Vec2) {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}

	for _, e := range elements {
		include(e.A)
		include(e.B)
	}
	for _, path := range paths {
		for i, p := range path.Points {
			// The final point of an escaped path sits at the horizon;
			// skip it here and let the polyline run off the canvas.
			if i == len(path.Points)-1 && len(elements) > 0 {
				continue
			}
			include(p)
		}
	}

	if math.IsInf(minP.X, 1) {
		return core.NewVec2(0, 0), core.NewVec2(100, 100)
	}

	if maxP.X-minP.X < 1 {
		maxP.X = minP.X + 1
	}
	if maxP.Y-minP.Y < 1 {
		maxP.Y = minP.Y + 1
	}

	return minP.Subtract(core.NewVec2(margin, margin)), maxP.Add(core.NewVec2(margin, margin))
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}
