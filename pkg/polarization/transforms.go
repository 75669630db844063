package polarization

import (
	"math"
	"math/cmplx"

	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
)

// ExtinctionThreshold is the projected intensity below which a polarizing
// split is treated as fully extinguished and yields the zero state.
const ExtinctionThreshold = 1e-12

const degToRad = math.Pi / 180

// incidenceSAxis derives the s-polarization axis for a surface interaction
// from the incoming direction and the surface normal. The s axis is
// perpendicular to the plane of incidence; at normal incidence the plane
// degenerates and a fixed (0, 1) axis is used instead.
func incidenceSAxis(vIn, normal core.Vec2) core.Vec2 {
	tangential := vIn.Subtract(normal.Multiply(vIn.Dot(normal)))
	if tangential.Length() < 1e-9 {
		return core.NewVec2(0, 1)
	}
	return tangential.Normalize().Perp()
}

// project returns the complex amplitude of the state along a real axis
func project(j Jones, axis core.Vec2) complex128 {
	return j.X*complex(axis.X, 0) + j.Y*complex(axis.Y, 0)
}

// compose rebuilds a lab-frame state from s/p amplitudes and their axes
func compose(s, p complex128, sAxis, pAxis core.Vec2) Jones {
	return Jones{
		X: s*complex(sAxis.X, 0) + p*complex(pAxis.X, 0),
		Y: s*complex(sAxis.Y, 0) + p*complex(pAxis.Y, 0),
	}
}

// ReflectMirror transforms a polarization state through a mirror reflection.
// The state is decomposed into s and p components in the incidence-plane
// basis; s is preserved and p picks up a pi phase flip. The transform is
// lossless.
func ReflectMirror(j Jones, vIn, normal core.Vec2) Jones {
	sAxis := incidenceSAxis(vIn, normal)
	pAxis := sAxis.Perp()
	s := project(j, sAxis)
	p := project(j, pAxis)
	return compose(s, -p, sAxis, pAxis)
}

// SplitterTransform computes the polarization state and intensity factor for
// one branch of a beamsplitter interaction.
//
// Non-polarizing splitters pass the transmitted state unchanged and apply the
// mirror transform to the reflected state, both with factor 1; the T/R energy
// split is the caller's job. A polarizing splitter projects onto its
// transmission axis (transmitted branch) or the perpendicular axis with a pi
// flip (reflected branch), renormalizes the survivor to unit intensity, and
// reports the projected fraction as the intensity factor. A projection below
// ExtinctionThreshold yields the zero state with factor 0.
func SplitterTransform(j Jones, vIn, normal core.Vec2, polarizing bool, axisDeg float64, transmitted bool) (Jones, float64) {
	if !polarizing {
		if transmitted {
			return j, 1.0
		}
		return ReflectMirror(j, vIn, normal), 1.0
	}

	theta := axisDeg * degToRad
	pAxis := core.NewVec2(math.Cos(theta), math.Sin(theta))
	sAxis := pAxis.Perp()

	total := j.Intensity()
	if total == 0 {
		return Jones{}, 0
	}

	var amplitude complex128
	var axis core.Vec2
	if transmitted {
		amplitude = project(j, pAxis)
		axis = pAxis
	} else {
		amplitude = -project(j, sAxis)
		axis = sAxis
	}

	projected := real(amplitude)*real(amplitude) + imag(amplitude)*imag(amplitude)
	if projected < ExtinctionThreshold {
		return Jones{}, 0
	}

	out := Jones{
		X: amplitude * complex(axis.X, 0),
		Y: amplitude * complex(axis.Y, 0),
	}
	return out.Normalized(), projected / total
}

// WaveplateTransform passes a polarization state through a retarder with the
// given phase shift and fast-axis angle (both degrees). The full lab-frame
// matrix is R(-theta) * diag(1, e^{i*delta}) * R(theta).
//
// forward=false negates the axis angle for rays traversing the optic in the
// reverse physical direction, so a retroreflected double pass through the
// same plate composes correctly instead of doubling the rotation.
func WaveplateTransform(j Jones, phaseShiftDeg, fastAxisDeg float64, forward bool) Jones {
	delta := phaseShiftDeg * degToRad
	theta := fastAxisDeg * degToRad
	if !forward {
		theta = -theta
	}

	m := Rotation(-theta).Mul(Retarder(delta)).Mul(Rotation(theta))
	return m.Apply(j)
}

// LinearAngle returns the orientation (radians) of a purely linear state.
// It is meaningful only when the state has negligible circular component,
// which is the case for linear inputs passed through linear optics.
func (j Jones) LinearAngle() float64 {
	return math.Atan2(cmplx.Abs(j.Y)*signOf(real(j.Y*cmplx.Conj(j.X))), cmplx.Abs(j.X))
}

func signOf(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
