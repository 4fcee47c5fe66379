package motionplan

import (
	"fmt"
	"math"
)

// TasCalculator is the read-only reciprocal-space collaborator: it owns the
// Q-to-angle conversion and scattering conventions this engine treats as
// pure input. The engine never mutates it and never computes physics itself.
type TasCalculator interface {
	// ScatteringSenses returns the per-axis sign (monochromator, sample,
	// analyser) that flips the handedness of the scattering convention.
	ScatteringSenses() [3]int

	// Kfix returns the fixed-k value and whether the monochromator (true)
	// or the analyser (false) carries the independent a2/a6 angle.
	Kfix() (value float64, kfFixed bool)
}

// Exporter is a visitor over a decoded angular path, writing one line per
// vertex in the order the post-processor produced them.
type Exporter interface {
	// Export writes the path, one line per vertex (radians).
	Export(path []Vertex) ([]string, error)
}

// Vertex is a single decoded path vertex, in radians.
type Vertex struct {
	A4, A2 float64
}

// RawExporter writes "a4 a2" in degrees, the plain two-column format.
type RawExporter struct{ Precision int }

// Export implements Exporter.
func (e RawExporter) Export(path []Vertex) ([]string, error) {
	prec := e.precision()
	lines := make([]string, 0, len(path))
	for _, v := range path {
		lines = append(lines, fmt.Sprintf("%.*f %.*f", prec, radToDeg(v.A4), prec, radToDeg(v.A2)))
	}
	return lines, nil
}

// NomadExporter writes Nomad scan-command lines: "dr a4 <v0> a2 <v1>".
type NomadExporter struct{ Precision int }

// Export implements Exporter.
func (e NomadExporter) Export(path []Vertex) ([]string, error) {
	prec := e.precision()
	lines := make([]string, 0, len(path))
	for _, v := range path {
		lines = append(lines, fmt.Sprintf("dr a4 %.*f a2 %.*f", prec, radToDeg(v.A4), prec, radToDeg(v.A2)))
	}
	return lines, nil
}

// NicosExporter writes Nicos move-command lines: "stt(<v0>); mtt(<v1>);".
type NicosExporter struct{ Precision int }

// Export implements Exporter.
func (e NicosExporter) Export(path []Vertex) ([]string, error) {
	prec := e.precision()
	lines := make([]string, 0, len(path))
	for _, v := range path {
		lines = append(lines, fmt.Sprintf("stt(%.*f); mtt(%.*f);", prec, radToDeg(v.A4), prec, radToDeg(v.A2)))
	}
	return lines, nil
}

func (e RawExporter) precision() int   { return defaultPrecision(e.Precision) }
func (e NomadExporter) precision() int { return defaultPrecision(e.Precision) }
func (e NicosExporter) precision() int { return defaultPrecision(e.Precision) }

func defaultPrecision(p int) int {
	if p <= 0 {
		return 4
	}
	return p
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }
