package config

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/ill-paths/tasengine/referenceframe"
	"github.com/ill-paths/tasengine/spatialmath"
)

// DocumentIdent is the fixed identifier every instrument-space document
// must declare via its root <xmlattr>.ident, analogous to the original
// engine's file-format magic string.
const DocumentIdent = "tasengine_instrument_space"

// LoadInstrumentSpace parses an XML instrument-space description rooted at
// "paths/instrument_space" into a referenceframe.InstrumentSpace. Variable
// substitution (${name}) is applied before the document is parsed into its
// final Node tree.
func LoadInstrumentSpace(raw []byte) (*referenceframe.InstrumentSpace, error) {
	substituted, err := substituteVariables(raw)
	if err != nil {
		return nil, err
	}
	root, err := ParseNode(substituted)
	if err != nil {
		return nil, err
	}

	space, ok := root.Get("paths.instrument_space")
	if !ok {
		space, ok = root.Get("instrument_space")
		if !ok {
			return nil, errors.New("config: missing paths/instrument_space root")
		}
	}

	if ident, ok := space.Attr("ident"); !ok || ident != DocumentIdent {
		return nil, errors.Errorf("config: instrument_space has unexpected ident %q", ident)
	}

	lenX := space.FloatOr("floor.len_x", 10)
	lenY := space.FloatOr("floor.len_y", 10)

	walls, err := loadWalls(space)
	if err != nil {
		return nil, err
	}

	instrNode, ok := space.Get("instrument")
	if !ok {
		return nil, errors.New("config: instrument_space missing instrument section")
	}
	mono, err := loadAxis(instrNode, "monochromator")
	if err != nil {
		return nil, errors.Wrap(err, "config: loading monochromator axis")
	}
	sample, err := loadAxis(instrNode, "sample")
	if err != nil {
		return nil, errors.Wrap(err, "config: loading sample axis")
	}
	analyser, err := loadAxis(instrNode, "analyser")
	if err != nil {
		return nil, errors.Wrap(err, "config: loading analyser axis")
	}

	inst, err := referenceframe.NewInstrument(mono, sample, analyser)
	if err != nil {
		return nil, errors.Wrap(err, "config: wiring instrument")
	}

	return referenceframe.NewInstrumentSpace(lenX, lenY, walls, inst), nil
}

func loadWalls(space *Node) ([]*spatialmath.Geometry, error) {
	wallsNode, ok := space.Get("walls")
	if !ok {
		return nil, nil
	}
	var out []*spatialmath.Geometry
	for i, wallNode := range wallsNode.Children {
		id, ok := wallNode.Attr("id")
		if !ok || id == "" {
			id = wallNode.XMLName.Local
		}
		geoNode, ok := wallNode.Get("geometry")
		if !ok {
			return nil, errors.Errorf("config: wall %d missing geometry", i)
		}
		geo, err := loadGeometry(geoNode, id)
		if err != nil {
			return nil, errors.Wrapf(err, "config: wall %q", id)
		}
		out = append(out, geo)
	}
	return out, nil
}

// loadGeometry reads a <box>/<cylinder>/<sphere> element directly under
// geoNode, mirroring Geometry::Load's dispatch on element name.
func loadGeometry(geoNode *Node, label string) (*spatialmath.Geometry, error) {
	for _, kind := range []string{"box", "cylinder", "sphere"} {
		shape, ok := geoNode.Child(kind)
		if !ok {
			continue
		}
		pose, err := loadGeometryPose(shape)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "box":
			return spatialmath.NewBox(pose,
				shape.FloatOr("length", 1), shape.FloatOr("depth", 1), shape.FloatOr("height", 1), label)
		case "cylinder":
			return spatialmath.NewCylinder(pose, shape.FloatOr("radius", 0.5), shape.FloatOr("height", 1), label)
		case "sphere":
			return spatialmath.NewSphere(pose, shape.FloatOr("radius", 0.5), label)
		}
	}
	return nil, errors.New("config: geometry element has no box/cylinder/sphere child")
}

func loadGeometryPose(shape *Node) (spatialmath.Pose, error) {
	posStr, ok := shape.String("pos")
	if !ok {
		return spatialmath.NewZeroPose(), nil
	}
	xyz, err := Floats3(posStr)
	if err != nil {
		return spatialmath.Pose{}, err
	}
	return spatialmath.NewPoseFromPoint(r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}), nil
}

// loadAxis reads instrument.<name>, applying the original engine's
// degrees-to-radians conversion for every angle key.
func loadAxis(instrNode *Node, name string) (*referenceframe.Axis, error) {
	node, ok := instrNode.Get(name)
	if !ok {
		return nil, errors.Errorf("config: instrument missing %q section", name)
	}

	axis := referenceframe.NewAxis(name)

	if posStr, ok := node.String("pos"); ok {
		xyz, err := Floats3(posStr)
		if err != nil {
			return nil, err
		}
		axis.Pos = spatialmath.NewVec2(xyz[0], xyz[1])
	}

	axis.AIn = degToRad(node.FloatOr("angle_in", 0))
	axis.AInternal = degToRad(node.FloatOr("angle_internal", 0))
	axis.AOut = degToRad(node.FloatOr("angle_out", 0))
	axis.Speed = node.FloatOr("speed", 0)

	loadLimit(node, "angle_in", referenceframe.AngleIn, axis)
	loadLimit(node, "angle_internal", referenceframe.AngleInternal, axis)
	loadLimit(node, "angle_out", referenceframe.AngleOut, axis)

	var err error
	if axis.CompsIn, err = loadComponentGroup(node, "geometry_in", name+".in"); err != nil {
		return nil, err
	}
	if axis.CompsInternal, err = loadComponentGroup(node, "geometry_internal", name+".internal"); err != nil {
		return nil, err
	}
	if axis.CompsOut, err = loadComponentGroup(node, "geometry_out", name+".out"); err != nil {
		return nil, err
	}
	return axis, nil
}

func loadLimit(node *Node, key string, sel referenceframe.AngleSelector, axis *referenceframe.Axis) {
	lower, lowOk := node.Float(key + "_lower")
	upper, upOk := node.Float(key + "_upper")
	if !lowOk && !upOk {
		return
	}
	if !lowOk {
		lower = math.Inf(-1)
	} else {
		lower = degToRad(lower)
	}
	if !upOk {
		upper = math.Inf(1)
	} else {
		upper = degToRad(upper)
	}
	axis.Limits[sel] = referenceframe.Limit{Lower: lower, Upper: upper}
}

// loadComponentGroup reads an optional geometry_{in,internal,out} subtree,
// which may hold any number of box/cylinder/sphere children directly.
func loadComponentGroup(node *Node, key, labelPrefix string) ([]*spatialmath.Geometry, error) {
	group, ok := node.Get(key)
	if !ok {
		return nil, nil
	}
	var out []*spatialmath.Geometry
	for i := range group.Children {
		child := &group.Children[i]
		label, ok := child.Attr("id")
		if !ok || label == "" {
			label = labelPrefix
		}
		geo, err := loadSingleGeometry(child, label)
		if err != nil {
			return nil, err
		}
		if geo != nil {
			out = append(out, geo)
		}
	}
	return out, nil
}

func loadSingleGeometry(node *Node, label string) (*spatialmath.Geometry, error) {
	pose, err := loadGeometryPose(node)
	if err != nil {
		return nil, err
	}
	switch node.XMLName.Local {
	case "box":
		return spatialmath.NewBox(pose, node.FloatOr("length", 1), node.FloatOr("depth", 1), node.FloatOr("height", 1), label)
	case "cylinder":
		return spatialmath.NewCylinder(pose, node.FloatOr("radius", 0.5), node.FloatOr("height", 1), label)
	case "sphere":
		return spatialmath.NewSphere(pose, node.FloatOr("radius", 0.5), label)
	default:
		return nil, nil
	}
}

func degToRad(deg float64) float64 { return deg / 180 * math.Pi }
