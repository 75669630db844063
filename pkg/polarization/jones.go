package polarization

import (
	"math"
	"math/cmplx"
)

// Jones represents a fully-polarized light state as a 2-component complex
// vector in the fixed lab-frame (x, y) basis. Values are immutable; every
// transform returns a new state.
type Jones struct {
	X, Y complex128
}

// NewJones creates a Jones vector from explicit complex components
func NewJones(x, y complex128) Jones {
	return Jones{X: x, Y: y}
}

// Horizontal returns a horizontally polarized state
func Horizontal() Jones {
	return Jones{X: 1, Y: 0}
}

// Vertical returns a vertically polarized state
func Vertical() Jones {
	return Jones{X: 0, Y: 1}
}

// Linear returns a linearly polarized state at the given angle (radians)
// from the x axis
func Linear(angle float64) Jones {
	return Jones{X: complex(math.Cos(angle), 0), Y: complex(math.Sin(angle), 0)}
}

// LeftCircular returns a left-circularly polarized state
func LeftCircular() Jones {
	s := complex(1/math.Sqrt2, 0)
	return Jones{X: s, Y: s * complex(0, 1)}
}

// RightCircular returns a right-circularly polarized state
func RightCircular() Jones {
	s := complex(1/math.Sqrt2, 0)
	return Jones{X: s, Y: s * complex(0, -1)}
}

// Intensity returns the total intensity |x|^2 + |y|^2
func (j Jones) Intensity() float64 {
	xr, xi := real(j.X), imag(j.X)
	yr, yi := real(j.Y), imag(j.Y)
	return xr*xr + xi*xi + yr*yr + yi*yi
}

// Normalized returns the state scaled to unit intensity.
// A zero state is returned unchanged.
func (j Jones) Normalized() Jones {
	intensity := j.Intensity()
	if intensity == 0 {
		return j
	}
	scale := complex(1/math.Sqrt(intensity), 0)
	return Jones{X: j.X * scale, Y: j.Y * scale}
}

// IsZero reports whether both components are exactly zero
func (j Jones) IsZero() bool {
	return j.X == 0 && j.Y == 0
}

// Matrix is a 2x2 complex Jones matrix, row-major:
//
//	[ A B ]
//	[ C D ]
type Matrix struct {
	A, B, C, D complex128
}

// Rotation returns the basis-rotation Jones matrix for the given angle
// (radians): [[cos, sin], [-sin, cos]]
func Rotation(angle float64) Matrix {
	c := complex(math.Cos(angle), 0)
	s := complex(math.Sin(angle), 0)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// Retarder returns the diagonal retarder matrix diag(1, e^{i*delta})
// for a phase delay delta (radians) between fast and slow axes
func Retarder(delta float64) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: cmplx.Exp(complex(0, delta))}
}

// Mul returns the matrix product m * other
func (m Matrix) Mul(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
	}
}

// Apply returns the matrix applied to a Jones vector
func (m Matrix) Apply(j Jones) Jones {
	return Jones{
		X: m.A*j.X + m.B*j.Y,
		Y: m.C*j.X + m.D*j.Y,
	}
}
