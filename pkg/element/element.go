// Package element defines the data model for a single optical surface on the
// bench: a finite segment plus per-kind optical parameters. All optical
// behavior lives in the tracer; this package only carries data and derived
// geometric/descriptive queries.
package element

import (
	"image/color"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
)

// Kind identifies the optical behavior of an element
type Kind uint8

const (
	KindMirror Kind = iota
	KindLens
	KindBeamSplitter
	KindDichroic
	KindWaveplate
	KindRefractive
	KindBlock
)

// PassType selects which side of a dichroic cutoff transmits
type PassType string

const (
	LongPass  PassType = "longpass"
	ShortPass PassType = "shortpass"
)

// LensParams holds thin-lens parameters
type LensParams struct {
	FocalLength float64 `json:"focalLength"` // mm, signed; positive converges
}

// MirrorParams holds mirror parameters
type MirrorParams struct {
	Reflectivity float64 `json:"reflectivity"` // percent, 0-100
}

// SplitterParams holds beamsplitter parameters. Transmission and reflection
// percentages need not sum to 100; the gap is loss.
type SplitterParams struct {
	Transmission float64 `json:"transmission"` // percent
	Reflection   float64 `json:"reflection"`   // percent
	Polarizing   bool    `json:"polarizing"`
	AxisDeg      float64 `json:"axisDeg"` // PBS transmission-axis angle
}

// DichroicParams holds dichroic filter parameters
type DichroicParams struct {
	CutoffNm float64  `json:"cutoffNm"`
	WidthNm  float64  `json:"widthNm"` // transition width
	Pass     PassType `json:"pass"`
}

// WaveplateParams holds retarder parameters
type WaveplateParams struct {
	RetardanceDeg float64 `json:"retardanceDeg"` // phase shift between axes
	FastAxisDeg   float64 `json:"fastAxisDeg"`
}

// RefractiveParams holds the indices on either side of a refractive boundary
type RefractiveParams struct {
	N1 float64 `json:"n1"` // incident side
	N2 float64 `json:"n2"` // transmitted side
}

// Element is a tagged variant over all optical element kinds. Only the
// parameter struct matching Kind is meaningful; the rest stay zero. Elements
// are immutable during a trace pass.
type Element struct {
	Kind Kind      `json:"kind"`
	A    core.Vec2 `json:"a"` // first endpoint
	B    core.Vec2 `json:"b"` // second endpoint

	Lens       LensParams       `json:"lens,omitempty"`
	Mirror     MirrorParams     `json:"mirror,omitempty"`
	Splitter   SplitterParams   `json:"splitter,omitempty"`
	Dichroic   DichroicParams   `json:"dichroic,omitempty"`
	Waveplate  WaveplateParams  `json:"waveplate,omitempty"`
	Refractive RefractiveParams `json:"refractive,omitempty"`
}

// NewMirror creates a mirror segment with the given reflectivity percentage
func NewMirror(a, b core.Vec2, reflectivity float64) Element {
	return Element{Kind: KindMirror, A: a, B: b, Mirror: MirrorParams{Reflectivity: reflectivity}}
}

// NewLens creates an ideal thin lens with the given focal length (mm, signed)
func NewLens(a, b core.Vec2, focalLength float64) Element {
	return Element{Kind: KindLens, A: a, B: b, Lens: LensParams{FocalLength: focalLength}}
}

// NewBeamSplitter creates a non-polarizing beamsplitter with the given
// transmission and reflection percentages
func NewBeamSplitter(a, b core.Vec2, transmission, reflection float64) Element {
	return Element{Kind: KindBeamSplitter, A: a, B: b, Splitter: SplitterParams{
		Transmission: transmission,
		Reflection:   reflection,
	}}
}

// NewPolarizingBeamSplitter creates a PBS with the given transmission-axis angle
func NewPolarizingBeamSplitter(a, b core.Vec2, axisDeg float64) Element {
	return Element{Kind: KindBeamSplitter, A: a, B: b, Splitter: SplitterParams{
		Transmission: 100,
		Reflection:   100,
		Polarizing:   true,
		AxisDeg:      axisDeg,
	}}
}

// NewDichroic creates a dichroic filter
func NewDichroic(a, b core.Vec2, cutoffNm, widthNm float64, pass PassType) Element {
	return Element{Kind: KindDichroic, A: a, B: b, Dichroic: DichroicParams{
		CutoffNm: cutoffNm,
		WidthNm:  widthNm,
		Pass:     pass,
	}}
}

// NewWaveplate creates a retarder
func NewWaveplate(a, b core.Vec2, retardanceDeg, fastAxisDeg float64) Element {
	return Element{Kind: KindWaveplate, A: a, B: b, Waveplate: WaveplateParams{
		RetardanceDeg: retardanceDeg,
		FastAxisDeg:   fastAxisDeg,
	}}
}

// NewRefractive creates a refractive boundary between indices n1 and n2
func NewRefractive(a, b core.Vec2, n1, n2 float64) Element {
	return Element{Kind: KindRefractive, A: a, B: b, Refractive: RefractiveParams{N1: n1, N2: n2}}
}

// NewBlock creates an absorber segment
func NewBlock(a, b core.Vec2) Element {
	return Element{Kind: KindBlock, A: a, B: b}
}

// Length returns the segment length
func (e Element) Length() float64 {
	return e.B.Subtract(e.A).Length()
}

// Angle returns the segment orientation in radians
func (e Element) Angle() float64 {
	return e.B.Subtract(e.A).Angle()
}

// Midpoint returns the segment midpoint
func (e Element) Midpoint() core.Vec2 {
	return e.A.Add(e.B).Multiply(0.5)
}

// displayColors maps each kind to its editor draw color. Static configuration,
// never mutated at runtime.
var displayColors = map[Kind]color.RGBA{
	KindMirror:       {R: 0xc0, G: 0xc8, B: 0xd4, A: 0xff},
	KindLens:         {R: 0x7f, G: 0xc4, B: 0xff, A: 0xff},
	KindBeamSplitter: {R: 0x9f, G: 0x8f, B: 0xff, A: 0xff},
	KindDichroic:     {R: 0xff, G: 0xa0, B: 0x40, A: 0xff},
	KindWaveplate:    {R: 0x60, G: 0xd8, B: 0x90, A: 0xff},
	KindRefractive:   {R: 0xa8, G: 0xd8, B: 0xe8, A: 0xff},
	KindBlock:        {R: 0x40, G: 0x40, B: 0x40, A: 0xff},
}

// displayLabels maps each kind to its human-readable name
var displayLabels = map[Kind]string{
	KindMirror:       "Mirror",
	KindLens:         "Lens",
	KindBeamSplitter: "Beam splitter",
	KindDichroic:     "Dichroic",
	KindWaveplate:    "Waveplate",
	KindRefractive:   "Refractive interface",
	KindBlock:        "Block",
}

// DisplayColor returns the draw color for the element kind
func (e Element) DisplayColor() color.RGBA {
	if c, ok := displayColors[e.Kind]; ok {
		return c
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}

// DisplayLabel returns the human-readable label for the element kind
func (e Element) DisplayLabel() string {
	label, ok := displayLabels[e.Kind]
	if !ok {
		return "Unknown"
	}
	return label
}

// IsDegenerate reports whether the segment is too short to be hittable
func (e Element) IsDegenerate() bool {
	return e.Length() < core.HitEpsilon
}
