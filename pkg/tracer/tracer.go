// Package tracer turns sources and optical elements into renderable ray
// paths. It is a pure, synchronous computation: no I/O, no shared state, and
// a hard event budget so cyclic geometry (two facing mirrors) always halts.
package tracer

import (
	"fmt"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
)

const (
	// MinIntensity is the pruning threshold: outgoing rays dimmer than this
	// terminate silently instead of propagating.
	MinIntensity = 1e-4

	// EscapeLength is how far a ray that hits nothing is extended before its
	// path is emitted, a fixed rendering horizon.
	EscapeLength = 1e4

	// DefaultMaxEvents is the per-source event budget used when the caller
	// has no opinion.
	DefaultMaxEvents = 300
)

// Trace runs the simulation for every source against the element list and
// returns the terminal ray paths in deterministic order. maxEvents bounds
// the number of ray-splitting events per source and must be positive; a
// non-positive budget is a contract violation, not a degenerate scene.
//
// The element and source slices are read-only during the call and must not
// be mutated concurrently with it.
func Trace(elements []element.Element, sources []Source, maxEvents int) ([]RayPath, error) {
	if maxEvents <= 0 {
		return nil, fmt.Errorf("tracer: event budget must be positive, got %d", maxEvents)
	}

	var paths []RayPath
	for i, src := range sources {
		paths = append(paths, TraceSource(elements, src, i, maxEvents)...)
	}
	return paths, nil
}

// TraceSource traces a single source. Sources are mutually independent, so
// callers may fan this out across workers; branch ordering within the
// returned slice is deterministic (breadth-first, transmitted before
// reflected).
func TraceSource(elements []element.Element, src Source, sourceIndex, maxEvents int) []RayPath {
	direction := src.Direction.Normalize()
	if direction.LengthSquared() == 0 {
		return nil // no direction, nothing to trace
	}

	queue := []activeRay{{
		origin:    src.Origin,
		direction: direction,
		pol:       src.Polarization,
		intensity: src.Intensity,
		points:    []core.Vec2{src.Origin},
	}}
	budget := maxEvents

	var paths []RayPath
	for len(queue) > 0 {
		ray := queue[0]
		queue = queue[1:]

		hit, hitElement, found := nearestHit(elements, ray)
		if !found {
			// Escaped: extend to the rendering horizon and emit.
			points := append(ray.points, ray.origin.Add(ray.direction.Multiply(EscapeLength)))
			paths = append(paths, finishPath(points, ray, src, sourceIndex))
			continue
		}

		points := append(ray.points, hit.Point)
		branches := respond(hitElement, ray.direction, ray.pol, src.WavelengthNm, hit)

		spawned := false
		for _, br := range branches {
			childIntensity := ray.intensity * br.factor
			if childIntensity < MinIntensity {
				continue // expected terminal condition, dropped silently
			}

			if budget <= 0 {
				// Budget exhausted: the branch still yields a (truncated)
				// path so the caller can see where tracing stopped.
				truncated := ray
				truncated.pol = br.pol
				truncated.intensity = childIntensity
				paths = append(paths, finishPath(points, truncated, src, sourceIndex))
				spawned = true
				continue
			}
			budget--

			childPoints := make([]core.Vec2, len(points))
			copy(childPoints, points)
			queue = append(queue, activeRay{
				origin:    hit.Point,
				direction: br.direction,
				pol:       br.pol,
				intensity: childIntensity,
				points:    childPoints,
			})
			spawned = true
		}

		if !spawned {
			// Absorbed, or every branch fell below the pruning threshold:
			// the path ends at the hit point.
			paths = append(paths, finishPath(points, ray, src, sourceIndex))
		}
	}
	return paths
}

// nearestHit intersects a ray against every element and returns the hit with
// the smallest positive t. Ties keep the earliest element in list order, so
// results are reproducible.
func nearestHit(elements []element.Element, ray activeRay) (core.SegmentHit, element.Element, bool) {
	var best core.SegmentHit
	var bestElement element.Element
	found := false

	r := core.NewRay(ray.origin, ray.direction)
	for _, e := range elements {
		hit, ok := core.HitSegment(r, e.A, e.B)
		if !ok {
			continue
		}
		if !found || hit.T < best.T {
			best = hit
			bestElement = e
			found = true
		}
	}
	return best, bestElement, found
}

// finishPath freezes a terminal branch into a RayPath
func finishPath(points []core.Vec2, ray activeRay, src Source, sourceIndex int) RayPath {
	return RayPath{
		Points:       points,
		Color:        PathColor(src.WavelengthNm, ray.intensity),
		Polarization: ray.pol,
		WavelengthNm: src.WavelengthNm,
		Intensity:    ray.intensity,
		SourceIndex:  sourceIndex,
	}
}
