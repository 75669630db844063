package tracer

import (
	"image/color"
	"math"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/polarization"
)

// Source describes a single emitted ray: where it starts, where it points,
// and the light it carries. Sources are read-only inputs to the tracer.
type Source struct {
	Origin       core.Vec2          `json:"origin"`
	Direction    core.Vec2          `json:"direction"`
	WavelengthNm float64            `json:"wavelengthNm"` // 0 = unspecified
	Polarization polarization.Jones `json:"polarization"`
	Intensity    float64            `json:"intensity"` // 0-1
}

// Fan expands a source into count rays spread symmetrically around its
// direction by spreadDeg degrees total. count <= 1 returns the source as-is.
func (s Source) Fan(spreadDeg float64, count int) []Source {
	if count <= 1 {
		return []Source{s}
	}
	center := s.Direction.Angle()
	spread := spreadDeg * math.Pi / 180
	out := make([]Source, 0, count)
	for i := 0; i < count; i++ {
		angle := center - spread/2 + spread*float64(i)/float64(count-1)
		src := s
		src.Direction = core.NewVec2(math.Cos(angle), math.Sin(angle))
		out = append(out, src)
	}
	return out
}

// RayPath is one terminal branch of the trace tree: the polyline actually
// drawn, plus the light state at its end. Paths are immutable once returned.
type RayPath struct {
	Points       []core.Vec2        `json:"points"` // always >= 2 points
	Color        color.RGBA         `json:"color"`
	Polarization polarization.Jones `json:"polarization"`
	WavelengthNm float64            `json:"wavelengthNm"`
	Intensity    float64            `json:"intensity"`
	SourceIndex  int                `json:"sourceIndex"`
}

// activeRay is an in-flight ray inside the tracer's work queue. Each branch
// owns its polyline copy so siblings from a split never share state.
type activeRay struct {
	origin    core.Vec2
	direction core.Vec2 // unit
	pol       polarization.Jones
	intensity float64
	points    []core.Vec2
}
