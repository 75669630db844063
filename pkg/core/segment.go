package core

import "math"

const (
	// HitEpsilon is the absolute tolerance used by the intersection kernel.
	// Hits with t <= HitEpsilon are rejected so a ray never re-hits the
	// surface it just departed.
	HitEpsilon = 1e-9

	// BoundaryEpsilon is the relative tolerance applied at segment endpoints,
	// so near-grazing hits at the very edge of an optic are neither falsely
	// accepted nor falsely missed.
	BoundaryEpsilon = 1e-7
)

// SegmentHit describes an intersection between a ray and a finite segment.
type SegmentHit struct {
	T        float64 // Distance along the ray
	Point    Vec2    // Intersection point
	Tangent  Vec2    // Unit tangent of the segment (A toward B)
	Normal   Vec2    // Unit normal, tangent rotated 90 degrees counterclockwise
	Midpoint Vec2    // Segment midpoint
	Length   float64 // Segment length
}

// HitSegment intersects the ray r (t > 0) with the finite segment AB.
//
// Degenerate segments, rays parallel to the segment, hits at or behind the
// ray origin, and hits beyond the segment endpoints all report no hit.
func HitSegment(r Ray, a, b Vec2) (SegmentHit, bool) {
	edge := b.Subtract(a)
	length := edge.Length()
	if length < HitEpsilon {
		return SegmentHit{}, false // degenerate segment, never hittable
	}

	tangent := edge.Multiply(1.0 / length)
	normal := tangent.Perp()

	denominator := r.Direction.Dot(normal)
	if math.Abs(denominator) < HitEpsilon {
		return SegmentHit{}, false // ray parallel to segment
	}

	t := a.Subtract(r.Origin).Dot(normal) / denominator
	if t <= HitEpsilon {
		return SegmentHit{}, false // behind or at the origin
	}

	point := r.At(t)
	midpoint := a.Add(b).Multiply(0.5)

	// Signed distance of the hit from the midpoint along the tangent.
	s := point.Subtract(midpoint).Dot(tangent)
	if math.Abs(s) > length/2+BoundaryEpsilon*length+HitEpsilon {
		return SegmentHit{}, false // outside the finite segment
	}

	return SegmentHit{
		T:        t,
		Point:    point,
		Tangent:  tangent,
		Normal:   normal,
		Midpoint: midpoint,
		Length:   length,
	}, true
}
