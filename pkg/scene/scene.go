// Package scene bundles elements, sources, and trace settings, and ships a
// few built-in optical benches used by the web UI, the CLI, and tests.
package scene

import (
	"sort"

	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// Scene is a complete optical bench ready to trace
type Scene struct {
	Name      string
	Elements  []element.Element
	Sources   []tracer.Source
	MaxEvents int
}

// builders maps scene names to constructors. Static configuration.
var builders = map[string]func() *Scene{
	"default":        NewDefaultScene,
	"michelson":      NewMichelsonScene,
	"polarimeter":    NewPolarimeterScene,
	"dichroic-bench": NewDichroicBenchScene,
}

// ByName builds a built-in scene, or nil for an unknown name
func ByName(name string) *Scene {
	if build, ok := builders[name]; ok {
		return build()
	}
	return nil
}

// Names lists the built-in scenes in stable order
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
