package core

import (
	"math"
	"testing"
)

func TestVec2_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec2
		expected Vec2
	}{
		{
			name:     "Unit vector unchanged",
			vector:   NewVec2(1, 0),
			expected: NewVec2(1, 0),
		},
		{
			name:     "Diagonal vector",
			vector:   NewVec2(3, 4),
			expected: NewVec2(0.6, 0.8),
		},
		{
			name:     "Zero vector stays zero",
			vector:   NewVec2(0, 0),
			expected: NewVec2(0, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Normalize()

			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec2_Reflect(t *testing.T) {
	tests := []struct {
		name     string
		vector   Vec2
		normal   Vec2
		expected Vec2
	}{
		{
			name:     "Normal incidence reverses direction",
			vector:   NewVec2(1, 0),
			normal:   NewVec2(-1, 0),
			expected: NewVec2(-1, 0),
		},
		{
			name:     "45 degree incidence",
			vector:   NewVec2(1, -1).Normalize(),
			normal:   NewVec2(0, 1),
			expected: NewVec2(1, 1).Normalize(),
		},
		{
			name:     "Grazing reflection unchanged",
			vector:   NewVec2(1, 0),
			normal:   NewVec2(0, 1),
			expected: NewVec2(1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.vector.Reflect(tt.normal)

			const tolerance = 1e-12
			if result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec2_Perp(t *testing.T) {
	v := NewVec2(1, 0)
	p := v.Perp()
	if p.Dot(v) != 0 {
		t.Errorf("Perp should be orthogonal, got dot %v", p.Dot(v))
	}
	if p.Subtract(NewVec2(0, 1)).Length() > 1e-12 {
		t.Errorf("Expected (0,1), got %v", p)
	}
}

func TestHitSegment(t *testing.T) {
	tests := []struct {
		name      string
		ray       Ray
		a, b      Vec2
		wantHit   bool
		wantT     float64
		wantPoint Vec2
	}{
		{
			name:      "Normal incidence at segment center",
			ray:       NewRay(NewVec2(0, 0), NewVec2(1, 0)),
			a:         NewVec2(10, -5),
			b:         NewVec2(10, 5),
			wantHit:   true,
			wantT:     10,
			wantPoint: NewVec2(10, 0),
		},
		{
			name:      "Oblique incidence off center",
			ray:       NewRay(NewVec2(0, 0), NewVec2(1, 0.25).Normalize()),
			a:         NewVec2(10, -5),
			b:         NewVec2(10, 5),
			wantHit:   true,
			wantT:     math.Sqrt(10*10 + 2.5*2.5),
			wantPoint: NewVec2(10, 2.5),
		},
		{
			name:    "Hit beyond segment endpoint",
			ray:     NewRay(NewVec2(0, 6), NewVec2(1, 0)),
			a:       NewVec2(10, -5),
			b:       NewVec2(10, 5),
			wantHit: false,
		},
		{
			name:    "Segment behind origin",
			ray:     NewRay(NewVec2(0, 0), NewVec2(1, 0)),
			a:       NewVec2(-10, -5),
			b:       NewVec2(-10, 5),
			wantHit: false,
		},
		{
			name:    "Ray parallel to segment",
			ray:     NewRay(NewVec2(0, 0), NewVec2(0, 1)),
			a:       NewVec2(10, -5),
			b:       NewVec2(10, 5),
			wantHit: false,
		},
		{
			name:    "Degenerate segment",
			ray:     NewRay(NewVec2(0, 0), NewVec2(1, 0)),
			a:       NewVec2(10, 0),
			b:       NewVec2(10, 0),
			wantHit: false,
		},
		{
			name:    "Hit exactly at origin rejected",
			ray:     NewRay(NewVec2(10, 0), NewVec2(1, 0)),
			a:       NewVec2(10, -5),
			b:       NewVec2(10, 5),
			wantHit: false,
		},
		{
			name:      "Hit just inside endpoint accepted",
			ray:       NewRay(NewVec2(0, 4.9999999), NewVec2(1, 0)),
			a:         NewVec2(10, -5),
			b:         NewVec2(10, 5),
			wantHit:   true,
			wantT:     10,
			wantPoint: NewVec2(10, 4.9999999),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := HitSegment(tt.ray, tt.a, tt.b)
			if ok != tt.wantHit {
				t.Fatalf("Expected hit=%v, got %v", tt.wantHit, ok)
			}
			if !ok {
				return
			}

			const tolerance = 1e-9
			if math.Abs(hit.T-tt.wantT) > tolerance {
				t.Errorf("Expected t=%v, got %v", tt.wantT, hit.T)
			}
			if hit.Point.Subtract(tt.wantPoint).Length() > tolerance {
				t.Errorf("Expected point %v, got %v", tt.wantPoint, hit.Point)
			}
			if math.Abs(hit.Tangent.Length()-1) > tolerance {
				t.Errorf("Tangent not unit length: %v", hit.Tangent)
			}
			if math.Abs(hit.Normal.Length()-1) > tolerance {
				t.Errorf("Normal not unit length: %v", hit.Normal)
			}
			if math.Abs(hit.Normal.Dot(hit.Tangent)) > tolerance {
				t.Errorf("Normal not orthogonal to tangent")
			}
		})
	}
}

func TestHitSegment_Deterministic(t *testing.T) {
	ray := NewRay(NewVec2(-3, 1), NewVec2(1, -0.1).Normalize())
	a, b := NewVec2(5, -8), NewVec2(6, 9)

	first, ok := HitSegment(ray, a, b)
	if !ok {
		t.Fatal("Expected a hit")
	}
	for i := 0; i < 100; i++ {
		hit, ok := HitSegment(ray, a, b)
		if !ok || hit != first {
			t.Fatalf("Intersection not reproducible on iteration %d", i)
		}
	}
}
