package tracer

import (
	"math"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/polarization"
)

// branch is one outgoing ray produced by an element interaction. The
// intensity factor is relative to the incoming ray; the tracer applies it
// and prunes the result against MinIntensity.
type branch struct {
	direction core.Vec2
	pol       polarization.Jones
	factor    float64
}

// respond computes the outgoing branches for a ray hitting an element.
// Zero branches means the ray was absorbed. When an interaction splits,
// the transmitted branch always precedes the reflected branch.
func respond(e element.Element, dir core.Vec2, pol polarization.Jones, wavelengthNm float64, hit core.SegmentHit) []branch {
	switch e.Kind {
	case element.KindBlock:
		return nil

	case element.KindMirror:
		return []branch{{
			direction: dir.Reflect(hit.Normal),
			pol:       polarization.ReflectMirror(pol, dir, hit.Normal),
			factor:    e.Mirror.Reflectivity / 100,
		}}

	case element.KindLens:
		return []branch{{
			direction: lensDeflect(dir, hit, e.Lens.FocalLength),
			pol:       pol,
			factor:    1.0,
		}}

	case element.KindRefractive:
		return refractiveBranches(e, dir, pol, hit)

	case element.KindBeamSplitter:
		return splitterBranches(e, dir, pol, hit)

	case element.KindDichroic:
		return dichroicBranches(e, dir, pol, wavelengthNm, hit)

	case element.KindWaveplate:
		// The element normal is the traversal reference axis; rays arriving
		// from either side see the plate with a consistent handedness.
		forward := dir.Dot(hit.Normal) >= 0
		return []branch{{
			direction: dir,
			pol:       polarization.WaveplateTransform(pol, e.Waveplate.RetardanceDeg, e.Waveplate.FastAxisDeg, forward),
			factor:    1.0,
		}}
	}

	return nil
}

// lensDeflect applies the paraxial thin-lens rule u' = u - h/f, where u is
// the incoming slope relative to the optical axis (the element normal
// oriented along propagation), h the signed tangential offset of the hit
// from the lens center, and f the signed focal length. Positive f bends
// rays toward the axis on the transmission side.
func lensDeflect(dir core.Vec2, hit core.SegmentHit, focalLength float64) core.Vec2 {
	if focalLength == 0 {
		return dir // a flat plate, no deflection defined
	}

	axis := hit.Normal
	if dir.Dot(axis) < 0 {
		axis = axis.Negate()
	}

	axial := dir.Dot(axis) // > 0, parallel rays never reach the dispatcher
	slope := dir.Dot(hit.Tangent) / axial
	offset := hit.Point.Subtract(hit.Midpoint).Dot(hit.Tangent)

	outSlope := slope - offset/focalLength
	return axis.Add(hit.Tangent.Multiply(outSlope)).Normalize()
}

// refractiveBranches applies Snell's law with total internal reflection and
// a Fresnel energy split. The ray arriving against the element normal
// travels in n1; arriving with it, in n2.
func refractiveBranches(e element.Element, dir core.Vec2, pol polarization.Jones, hit core.SegmentHit) []branch {
	faceNormal := hit.Normal
	ratio := e.Refractive.N1 / e.Refractive.N2
	if dir.Dot(hit.Normal) > 0 {
		faceNormal = hit.Normal.Negate()
		ratio = e.Refractive.N2 / e.Refractive.N1
	}

	cosTheta := math.Min(-dir.Dot(faceNormal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	if ratio*sinTheta > 1.0 {
		// Past the critical angle: total internal reflection, a lossless
		// mirror bounce in the incident medium.
		return []branch{{
			direction: dir.Reflect(faceNormal),
			pol:       polarization.ReflectMirror(pol, dir, faceNormal),
			factor:    1.0,
		}}
	}

	reflectance := schlickReflectance(cosTheta, ratio)
	return []branch{
		{
			direction: refractDirection(dir, faceNormal, ratio),
			pol:       pol,
			factor:    1.0 - reflectance,
		},
		{
			direction: dir.Reflect(faceNormal),
			pol:       polarization.ReflectMirror(pol, dir, faceNormal),
			factor:    reflectance,
		},
	}
}

// refractDirection bends a unit direction through a boundary via Snell's law
func refractDirection(dir, n core.Vec2, etaiOverEtat float64) core.Vec2 {
	cosTheta := math.Min(-dir.Dot(n), 1.0)
	outPerp := dir.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	outParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - outPerp.LengthSquared())))
	return outPerp.Add(outParallel)
}

// schlickReflectance approximates the unpolarized Fresnel reflectance
func schlickReflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// splitterBranches produces the transmitted and reflected rays of a
// beamsplitter. The polarization model supplies the per-branch state and
// projection factor; the element's T/R percentages apply on top.
func splitterBranches(e element.Element, dir core.Vec2, pol polarization.Jones, hit core.SegmentHit) []branch {
	transmittedPol, tFactor := polarization.SplitterTransform(
		pol, dir, hit.Normal, e.Splitter.Polarizing, e.Splitter.AxisDeg, true)
	reflectedPol, rFactor := polarization.SplitterTransform(
		pol, dir, hit.Normal, e.Splitter.Polarizing, e.Splitter.AxisDeg, false)

	return []branch{
		{
			direction: dir,
			pol:       transmittedPol,
			factor:    tFactor * e.Splitter.Transmission / 100,
		},
		{
			direction: dir.Reflect(hit.Normal),
			pol:       reflectedPol,
			factor:    rFactor * e.Splitter.Reflection / 100,
		},
	}
}

// dichroicBranches routes a ray through a dichroic filter. The transmittance
// curve is a smooth sigmoid in wavelength, so both the chosen branch and its
// intensity factor vary continuously across the transition band.
func dichroicBranches(e element.Element, dir core.Vec2, pol polarization.Jones, wavelengthNm float64, hit core.SegmentHit) []branch {
	transmittance := dichroicTransmittance(wavelengthNm, e.Dichroic)
	if transmittance >= 0.5 {
		return []branch{{
			direction: dir,
			pol:       pol,
			factor:    transmittance,
		}}
	}
	return []branch{{
		direction: dir.Reflect(hit.Normal),
		pol:       polarization.ReflectMirror(pol, dir, hit.Normal),
		factor:    1.0 - transmittance,
	}}
}

// dichroicTransmittance evaluates the filter's smooth rolloff. The logistic
// is scaled so transmittance moves between ~12% and ~88% across one
// transition width centered on the cutoff.
func dichroicTransmittance(wavelengthNm float64, p element.DichroicParams) float64 {
	var t float64
	if p.WidthNm <= 0 {
		// Zero width degenerates to an ideal step filter
		if wavelengthNm >= p.CutoffNm {
			t = 1
		}
	} else {
		t = 1 / (1 + math.Exp(-4*(wavelengthNm-p.CutoffNm)/p.WidthNm))
	}

	if p.Pass == element.ShortPass {
		return 1 - t
	}
	return t
}
