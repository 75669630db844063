// Package loaders reads and writes the JSON scene document format consumed
// by the CLI and the web API. The editor layers produce the same structure.
package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/polarization"
	"github.com/QPG-MIT/optiverse-sub000/pkg/scene"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// Document is the top-level JSON scene file
type Document struct {
	Name      string       `json:"name,omitempty"`
	MaxEvents int          `json:"maxEvents,omitempty"`
	Elements  []ElementDoc `json:"elements"`
	Sources   []SourceDoc  `json:"sources"`
}

// ElementDoc is one optical element in the document. Type selects which of
// the optional parameter fields apply.
type ElementDoc struct {
	Type string  `json:"type"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`

	FocalLength   *float64 `json:"focalLength,omitempty"`
	Reflectivity  *float64 `json:"reflectivity,omitempty"`
	Transmission  *float64 `json:"transmission,omitempty"`
	Reflection    *float64 `json:"reflection,omitempty"`
	Polarizing    bool     `json:"polarizing,omitempty"`
	AxisDeg       float64  `json:"axisDeg,omitempty"`
	CutoffNm      float64  `json:"cutoffNm,omitempty"`
	WidthNm       float64  `json:"widthNm,omitempty"`
	Pass          string   `json:"pass,omitempty"`
	RetardanceDeg float64  `json:"retardanceDeg,omitempty"`
	FastAxisDeg   float64  `json:"fastAxisDeg,omitempty"`
	N1            float64  `json:"n1,omitempty"`
	N2            float64  `json:"n2,omitempty"`
}

// FanDoc expands a source into a spread of rays
type FanDoc struct {
	SpreadDeg float64 `json:"spreadDeg"`
	Count     int     `json:"count"`
}

// SourceDoc is one light source in the document. Polarization accepts a
// named state; Jones overrides it with an explicit [xRe, xIm, yRe, yIm]
// vector when present.
type SourceDoc struct {
	X            float64     `json:"x"`
	Y            float64     `json:"y"`
	DirX         float64     `json:"dirX"`
	DirY         float64     `json:"dirY"`
	WavelengthNm float64     `json:"wavelengthNm,omitempty"`
	Intensity    *float64    `json:"intensity,omitempty"`
	Polarization string      `json:"polarization,omitempty"`
	Jones        *[4]float64 `json:"jones,omitempty"`
	Fan          *FanDoc     `json:"fan,omitempty"`
}

// Parse decodes a scene document
func Parse(r io.Reader) (*scene.Scene, error) {
	var doc Document
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("loaders: invalid scene document: %w", err)
	}
	return sceneFromDocument(&doc)
}

// Load reads a scene document from disk
func Load(path string) (*scene.Scene, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loaders: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Save writes a scene back out as an indented document
func Save(w io.Writer, s *scene.Scene) error {
	doc := documentFromScene(s)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("loaders: %w", err)
	}
	return nil
}

func sceneFromDocument(doc *Document) (*scene.Scene, error) {
	s := &scene.Scene{
		Name:      doc.Name,
		MaxEvents: doc.MaxEvents,
	}
	if s.MaxEvents == 0 {
		s.MaxEvents = tracer.DefaultMaxEvents
	}

	for i, ed := range doc.Elements {
		e, err := elementFromDoc(ed)
		if err != nil {
			return nil, fmt.Errorf("loaders: element %d: %w", i, err)
		}
		s.Elements = append(s.Elements, e)
	}

	for i, sd := range doc.Sources {
		sources, err := sourcesFromDoc(sd)
		if err != nil {
			return nil, fmt.Errorf("loaders: source %d: %w", i, err)
		}
		s.Sources = append(s.Sources, sources...)
	}

	return s, nil
}

func elementFromDoc(doc ElementDoc) (element.Element, error) {
	a := core.NewVec2(doc.X1, doc.Y1)
	b := core.NewVec2(doc.X2, doc.Y2)

	floatOr := func(p *float64, fallback float64) float64 {
		if p != nil {
			return *p
		}
		return fallback
	}

	switch doc.Type {
	case "mirror":
		return element.NewMirror(a, b, floatOr(doc.Reflectivity, 100)), nil
	case "lens":
		return element.NewLens(a, b, floatOr(doc.FocalLength, 100)), nil
	case "beamsplitter":
		e := element.NewBeamSplitter(a, b, floatOr(doc.Transmission, 50), floatOr(doc.Reflection, 50))
		e.Splitter.Polarizing = doc.Polarizing
		e.Splitter.AxisDeg = doc.AxisDeg
		return e, nil
	case "dichroic":
		pass := element.PassType(doc.Pass)
		if pass == "" {
			pass = element.LongPass
		}
		if pass != element.LongPass && pass != element.ShortPass {
			return element.Element{}, fmt.Errorf("unknown pass type %q", doc.Pass)
		}
		return element.NewDichroic(a, b, doc.CutoffNm, doc.WidthNm, pass), nil
	case "waveplate":
		return element.NewWaveplate(a, b, doc.RetardanceDeg, doc.FastAxisDeg), nil
	case "refractive":
		return element.NewRefractive(a, b, doc.N1, doc.N2), nil
	case "block":
		return element.NewBlock(a, b), nil
	}
	return element.Element{}, fmt.Errorf("unknown element type %q", doc.Type)
}

func sourcesFromDoc(doc SourceDoc) ([]tracer.Source, error) {
	var pol polarization.Jones
	if doc.Jones != nil {
		pol = polarization.NewJones(
			complex(doc.Jones[0], doc.Jones[1]),
			complex(doc.Jones[2], doc.Jones[3]),
		)
	} else {
		var err error
		pol, err = polarization.ParseState(doc.Polarization)
		if err != nil {
			return nil, err
		}
	}

	intensity := 1.0
	if doc.Intensity != nil {
		intensity = *doc.Intensity
	}

	src := tracer.Source{
		Origin:       core.NewVec2(doc.X, doc.Y),
		Direction:    core.NewVec2(doc.DirX, doc.DirY),
		WavelengthNm: doc.WavelengthNm,
		Polarization: pol,
		Intensity:    intensity,
	}

	if src.Direction.LengthSquared() == 0 {
		return nil, fmt.Errorf("source has no direction")
	}

	if doc.Fan != nil {
		return src.Fan(doc.Fan.SpreadDeg, doc.Fan.Count), nil
	}
	return []tracer.Source{src}, nil
}

func documentFromScene(s *scene.Scene) *Document {
	doc := &Document{
		Name:      s.Name,
		MaxEvents: s.MaxEvents,
	}

	for _, e := range s.Elements {
		doc.Elements = append(doc.Elements, elementToDoc(e))
	}
	for _, src := range s.Sources {
		intensity := src.Intensity
		jones := [4]float64{
			real(src.Polarization.X), imag(src.Polarization.X),
			real(src.Polarization.Y), imag(src.Polarization.Y),
		}
		doc.Sources = append(doc.Sources, SourceDoc{
			X:            src.Origin.X,
			Y:            src.Origin.Y,
			DirX:         src.Direction.X,
			DirY:         src.Direction.Y,
			WavelengthNm: src.WavelengthNm,
			Intensity:    &intensity,
			Jones:        &jones,
		})
	}
	return doc
}

func elementToDoc(e element.Element) ElementDoc {
	doc := ElementDoc{
		X1: e.A.X, Y1: e.A.Y,
		X2: e.B.X, Y2: e.B.Y,
	}

	switch e.Kind {
	case element.KindMirror:
		doc.Type = "mirror"
		doc.Reflectivity = &e.Mirror.Reflectivity
	case element.KindLens:
		doc.Type = "lens"
		doc.FocalLength = &e.Lens.FocalLength
	case element.KindBeamSplitter:
		doc.Type = "beamsplitter"
		doc.Transmission = &e.Splitter.Transmission
		doc.Reflection = &e.Splitter.Reflection
		doc.Polarizing = e.Splitter.Polarizing
		doc.AxisDeg = e.Splitter.AxisDeg
	case element.KindDichroic:
		doc.Type = "dichroic"
		doc.CutoffNm = e.Dichroic.CutoffNm
		doc.WidthNm = e.Dichroic.WidthNm
		doc.Pass = string(e.Dichroic.Pass)
	case element.KindWaveplate:
		doc.Type = "waveplate"
		doc.RetardanceDeg = e.Waveplate.RetardanceDeg
		doc.FastAxisDeg = e.Waveplate.FastAxisDeg
	case element.KindRefractive:
		doc.Type = "refractive"
		doc.N1 = e.Refractive.N1
		doc.N2 = e.Refractive.N2
	case element.KindBlock:
		doc.Type = "block"
	}
	return doc
}
