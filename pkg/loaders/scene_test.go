package loaders

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/scene"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

const benchDoc = `{
	"name": "bench",
	"maxEvents": 50,
	"elements": [
		{"type": "mirror", "x1": 40, "y1": -10, "x2": 40, "y2": 10, "reflectivity": 95},
		{"type": "lens", "x1": 20, "y1": -10, "x2": 20, "y2": 10, "focalLength": 80},
		{"type": "beamsplitter", "x1": 60, "y1": -10, "x2": 80, "y2": 10, "polarizing": true, "axisDeg": 30},
		{"type": "dichroic", "x1": 100, "y1": -10, "x2": 100, "y2": 10, "cutoffNm": 600, "widthNm": 30, "pass": "shortpass"},
		{"type": "waveplate", "x1": 120, "y1": -10, "x2": 120, "y2": 10, "retardanceDeg": 180, "fastAxisDeg": 22.5},
		{"type": "refractive", "x1": 140, "y1": -10, "x2": 140, "y2": 10, "n1": 1.0, "n2": 1.5},
		{"type": "block", "x1": 160, "y1": -10, "x2": 160, "y2": 10}
	],
	"sources": [
		{"x": 0, "y": 0, "dirX": 1, "dirY": 0, "wavelengthNm": 633, "polarization": "diagonal"},
		{"x": 0, "y": 5, "dirX": 1, "dirY": 0, "jones": [0, 0, 1, 0], "intensity": 0.5}
	]
}`

func TestParse(t *testing.T) {
	s, err := Parse(strings.NewReader(benchDoc))
	if err != nil {
		t.Fatal(err)
	}

	if s.Name != "bench" {
		t.Errorf("Expected name bench, got %q", s.Name)
	}
	if s.MaxEvents != 50 {
		t.Errorf("Expected maxEvents 50, got %d", s.MaxEvents)
	}
	if len(s.Elements) != 7 {
		t.Fatalf("Expected 7 elements, got %d", len(s.Elements))
	}
	if len(s.Sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(s.Sources))
	}

	mirror := s.Elements[0]
	if mirror.Kind != element.KindMirror || mirror.Mirror.Reflectivity != 95 {
		t.Errorf("Mirror did not parse: %+v", mirror)
	}

	splitter := s.Elements[2]
	if !splitter.Splitter.Polarizing || splitter.Splitter.AxisDeg != 30 {
		t.Errorf("Polarizing splitter did not parse: %+v", splitter.Splitter)
	}

	dichroic := s.Elements[3]
	if dichroic.Dichroic.Pass != element.ShortPass {
		t.Errorf("Expected shortpass, got %q", dichroic.Dichroic.Pass)
	}

	diagonal := s.Sources[0].Polarization
	if math.Abs(real(diagonal.X)-real(diagonal.Y)) > 1e-9 {
		t.Errorf("Diagonal source should have equal components, got %v", diagonal)
	}

	vertical := s.Sources[1]
	if vertical.Polarization.X != 0 || vertical.Polarization.Y != 1 {
		t.Errorf("Explicit jones vector did not parse: %v", vertical.Polarization)
	}
	if vertical.Intensity != 0.5 {
		t.Errorf("Expected intensity 0.5, got %v", vertical.Intensity)
	}
}

func TestParseDefaults(t *testing.T) {
	doc := `{
		"elements": [{"type": "mirror", "x1": 10, "y1": -5, "x2": 10, "y2": 5}],
		"sources": [{"x": 0, "y": 0, "dirX": 1, "dirY": 0}]
	}`
	s, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}

	if s.MaxEvents != tracer.DefaultMaxEvents {
		t.Errorf("Expected default event budget %d, got %d", tracer.DefaultMaxEvents, s.MaxEvents)
	}
	if s.Elements[0].Mirror.Reflectivity != 100 {
		t.Errorf("Expected default reflectivity 100, got %v", s.Elements[0].Mirror.Reflectivity)
	}
	src := s.Sources[0]
	if src.Intensity != 1 {
		t.Errorf("Expected default intensity 1, got %v", src.Intensity)
	}
	if src.Polarization.X != 1 || src.Polarization.Y != 0 {
		t.Errorf("Expected horizontal default polarization, got %v", src.Polarization)
	}
}

func TestParseFan(t *testing.T) {
	doc := `{
		"elements": [{"type": "block", "x1": 50, "y1": -40, "x2": 50, "y2": 40}],
		"sources": [{"x": 0, "y": 0, "dirX": 1, "dirY": 0, "fan": {"spreadDeg": 30, "count": 5}}]
	}`
	s, err := Parse(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Sources) != 5 {
		t.Fatalf("Expected fan of 5 sources, got %d", len(s.Sources))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"bogus": true, "elements": [], "sources": []}`},
		{"unknown element type", `{"elements": [{"type": "prism", "x1": 0, "y1": 0, "x2": 1, "y2": 1}], "sources": []}`},
		{"unknown pass type", `{"elements": [{"type": "dichroic", "x1": 0, "y1": 0, "x2": 1, "y2": 1, "pass": "bandpass"}], "sources": []}`},
		{"unknown polarization", `{"elements": [], "sources": [{"x": 0, "y": 0, "dirX": 1, "dirY": 0, "polarization": "elliptical"}]}`},
		{"zero direction", `{"elements": [], "sources": [{"x": 0, "y": 0, "dirX": 0, "dirY": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.doc)); err == nil {
				t.Error("Expected parse error, got nil")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	original, err := Parse(strings.NewReader(benchDoc))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Save(&buf, original); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Parse(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(reloaded.Elements) != len(original.Elements) {
		t.Fatalf("Element count changed across round trip: %d vs %d",
			len(reloaded.Elements), len(original.Elements))
	}
	if len(reloaded.Sources) != len(original.Sources) {
		t.Fatalf("Source count changed across round trip: %d vs %d",
			len(reloaded.Sources), len(original.Sources))
	}
	for i := range original.Elements {
		if reloaded.Elements[i] != original.Elements[i] {
			t.Errorf("Element %d changed across round trip", i)
		}
	}
	for i := range original.Sources {
		if reloaded.Sources[i] != original.Sources[i] {
			t.Errorf("Source %d changed across round trip", i)
		}
	}
}

func TestBuiltinScenesRoundTrip(t *testing.T) {
	for _, name := range scene.Names() {
		t.Run(name, func(t *testing.T) {
			s := scene.ByName(name)
			var buf bytes.Buffer
			if err := Save(&buf, s); err != nil {
				t.Fatal(err)
			}
			reloaded, err := Parse(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if len(reloaded.Elements) != len(s.Elements) || len(reloaded.Sources) != len(s.Sources) {
				t.Errorf("Scene %q changed shape across round trip", name)
			}
		})
	}
}
