package motionplan_test

import (
	"math"
	"testing"

	"go.viam.com/test"

	"github.com/ill-paths/tasengine/motionplan"
)

func TestRawExporterFormatsDegrees(t *testing.T) {
	e := motionplan.RawExporter{Precision: 2}
	lines, err := e.Export([]motionplan.Vertex{{A4: math.Pi, A2: 0}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lines[0], test.ShouldEqual, "180.00 0.00")
}

func TestNomadExporterFormat(t *testing.T) {
	e := motionplan.NomadExporter{}
	lines, err := e.Export([]motionplan.Vertex{{A4: 0, A2: math.Pi / 2}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lines[0], test.ShouldEqual, "dr a4 0.0000 a2 90.0000")
}

func TestNicosExporterFormat(t *testing.T) {
	e := motionplan.NicosExporter{Precision: 1}
	lines, err := e.Export([]motionplan.Vertex{{A4: 0, A2: 0}})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, lines[0], test.ShouldEqual, "stt(0.0); mtt(0.0);")
}
