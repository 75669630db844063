package scene

import (
	"testing"

	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s := ByName(name)
		if s == nil {
			t.Fatalf("Built-in scene %q did not build", name)
		}
		if s.Name != name {
			t.Errorf("Scene %q reports name %q", name, s.Name)
		}
		if len(s.Sources) == 0 || len(s.Elements) == 0 {
			t.Errorf("Scene %q is empty", name)
		}
		if s.MaxEvents <= 0 {
			t.Errorf("Scene %q has no event budget", name)
		}
	}

	if ByName("no-such-scene") != nil {
		t.Error("Unknown scene name should return nil")
	}
}

func TestBuiltinScenesTrace(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s := ByName(name)
			paths, err := tracer.Trace(s.Elements, s.Sources, s.MaxEvents)
			if err != nil {
				t.Fatal(err)
			}
			if len(paths) < len(s.Sources) {
				t.Errorf("Expected at least one path per source, got %d for %d sources",
					len(paths), len(s.Sources))
			}
			for _, path := range paths {
				if len(path.Points) < 2 {
					t.Errorf("Path with fewer than 2 points in scene %q", name)
				}
			}
		})
	}
}
