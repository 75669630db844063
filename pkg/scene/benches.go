package scene

import (
	"github.com/QPG-MIT/optiverse-sub000/pkg/core"
	"github.com/QPG-MIT/optiverse-sub000/pkg/element"
	"github.com/QPG-MIT/optiverse-sub000/pkg/polarization"
	"github.com/QPG-MIT/optiverse-sub000/pkg/tracer"
)

// NewDefaultScene builds a small focusing bench: a fan of green rays through
// a converging lens onto a screen.
func NewDefaultScene() *Scene {
	lens := element.NewLens(core.NewVec2(60, -25), core.NewVec2(60, 25), 80)
	screen := element.NewBlock(core.NewVec2(160, -40), core.NewVec2(160, 40))

	base := tracer.Source{
		Origin:       core.NewVec2(0, 0),
		Direction:    core.NewVec2(1, 0),
		WavelengthNm: 532,
		Polarization: polarization.Horizontal(),
		Intensity:    1,
	}

	return &Scene{
		Name:      "default",
		Elements:  []element.Element{lens, screen},
		Sources:   base.Fan(24, 7),
		MaxEvents: tracer.DefaultMaxEvents,
	}
}

// NewMichelsonScene builds one arm of a Michelson-style interferometer:
// a 45-degree beamsplitter, two end mirrors, and a quarter-wave plate in
// the transmitted arm so the recombined beams come back with rotated
// polarization.
func NewMichelsonScene() *Scene {
	splitter := element.NewBeamSplitter(core.NewVec2(30, -10), core.NewVec2(50, 10), 50, 50)
	armMirror := element.NewMirror(core.NewVec2(100, -15), core.NewVec2(100, 15), 100)
	referenceMirror := element.NewMirror(core.NewVec2(25, 60), core.NewVec2(55, 60), 100)
	quarterWave := element.NewWaveplate(core.NewVec2(70, -12), core.NewVec2(70, 12), 90, 45)

	source := tracer.Source{
		Origin:       core.NewVec2(0, 0),
		Direction:    core.NewVec2(1, 0),
		WavelengthNm: 633,
		Polarization: polarization.Horizontal(),
		Intensity:    1,
	}

	return &Scene{
		Name:      "michelson",
		Elements:  []element.Element{splitter, quarterWave, armMirror, referenceMirror},
		Sources:   []tracer.Source{source},
		MaxEvents: 60,
	}
}

// NewPolarimeterScene builds a half-wave plate feeding a polarizing
// beamsplitter: rotating the plate redistributes power between the two
// output ports.
func NewPolarimeterScene() *Scene {
	halfWave := element.NewWaveplate(core.NewVec2(40, -12), core.NewVec2(40, 12), 180, 22.5)
	splitter := element.NewPolarizingBeamSplitter(core.NewVec2(70, -10), core.NewVec2(90, 10), 0)
	transmitPort := element.NewBlock(core.NewVec2(140, -15), core.NewVec2(140, 15))
	reflectPort := element.NewBlock(core.NewVec2(65, 50), core.NewVec2(95, 50))

	source := tracer.Source{
		Origin:       core.NewVec2(0, 0),
		Direction:    core.NewVec2(1, 0),
		WavelengthNm: 780,
		Polarization: polarization.Horizontal(),
		Intensity:    1,
	}

	return &Scene{
		Name:      "polarimeter",
		Elements:  []element.Element{halfWave, splitter, transmitPort, reflectPort},
		Sources:   []tracer.Source{source},
		MaxEvents: 40,
	}
}

// NewDichroicBenchScene builds a two-color bench: a longpass dichroic at 45
// degrees passes the red source and folds the green one onto a separate
// detector.
func NewDichroicBenchScene() *Scene {
	dichroic := element.NewDichroic(core.NewVec2(50, -12), core.NewVec2(74, 12), 600, 30, element.LongPass)
	redPort := element.NewBlock(core.NewVec2(130, -15), core.NewVec2(130, 15))
	greenPort := element.NewBlock(core.NewVec2(45, 60), core.NewVec2(80, 60))

	red := tracer.Source{
		Origin:       core.NewVec2(0, 2),
		Direction:    core.NewVec2(1, 0),
		WavelengthNm: 650,
		Polarization: polarization.Horizontal(),
		Intensity:    1,
	}
	green := tracer.Source{
		Origin:       core.NewVec2(0, -2),
		Direction:    core.NewVec2(1, 0),
		WavelengthNm: 532,
		Polarization: polarization.Vertical(),
		Intensity:    1,
	}

	return &Scene{
		Name:      "dichroic-bench",
		Elements:  []element.Element{dichroic, redPort, greenPort},
		Sources:   []tracer.Source{red, green},
		MaxEvents: tracer.DefaultMaxEvents,
	}
}
