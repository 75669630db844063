package polarization

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestJones_Intensity(t *testing.T) {
	tests := []struct {
		name     string
		state    Jones
		expected float64
	}{
		{"Horizontal", Horizontal(), 1.0},
		{"Vertical", Vertical(), 1.0},
		{"Linear 45", Linear(math.Pi / 4), 1.0},
		{"Left circular", LeftCircular(), 1.0},
		{"Scaled", NewJones(complex(2, 0), 0), 4.0},
		{"Zero", Jones{}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if math.Abs(tt.state.Intensity()-tt.expected) > tolerance {
				t.Errorf("Expected intensity %v, got %v", tt.expected, tt.state.Intensity())
			}
		})
	}
}

func TestJones_Normalized(t *testing.T) {
	state := NewJones(complex(3, 0), complex(0, 4)).Normalized()
	const tolerance = 1e-12
	if math.Abs(state.Intensity()-1) > tolerance {
		t.Errorf("Expected unit intensity, got %v", state.Intensity())
	}

	zero := Jones{}.Normalized()
	if !zero.IsZero() {
		t.Errorf("Zero state should normalize to itself, got %v", zero)
	}
}

func TestRotation_Matrix(t *testing.T) {
	// A rotation by theta maps horizontal onto (cos theta, -sin theta)
	// under the [[cos, sin], [-sin, cos]] convention.
	theta := math.Pi / 6
	rotated := Rotation(theta).Apply(Horizontal())

	const tolerance = 1e-12
	if cmplx.Abs(rotated.X-complex(math.Cos(theta), 0)) > tolerance ||
		cmplx.Abs(rotated.Y-complex(-math.Sin(theta), 0)) > tolerance {
		t.Errorf("Unexpected rotation result %v", rotated)
	}

	// Rotation composed with its inverse is the identity
	identity := Rotation(theta).Mul(Rotation(-theta))
	restored := identity.Apply(Linear(0.3))
	if cmplx.Abs(restored.X-Linear(0.3).X) > tolerance || cmplx.Abs(restored.Y-Linear(0.3).Y) > tolerance {
		t.Errorf("Rotation inverse did not restore state: %v", restored)
	}
}

func TestRotation_PreservesIntensity(t *testing.T) {
	states := []Jones{Horizontal(), Vertical(), Linear(1.1), LeftCircular(), RightCircular()}
	for _, state := range states {
		rotated := Rotation(0.7).Apply(state)
		if math.Abs(rotated.Intensity()-state.Intensity()) > 1e-12 {
			t.Errorf("Rotation changed intensity: %v -> %v", state.Intensity(), rotated.Intensity())
		}
	}
}
