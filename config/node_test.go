package config

import (
	"testing"

	"go.viam.com/test"
)

const sampleXML = `
<paths ident="tasengine_instrument_space">
  <floor>
    <len_x>12.5</len_x>
    <len_y>8</len_y>
  </floor>
  <instrument>
    <monochromator>
      <pos>0, 0, 0</pos>
      <angle_out>45</angle_out>
    </monochromator>
  </instrument>
</paths>
`

func TestNodeGetDottedPath(t *testing.T) {
	root, err := ParseNode([]byte(sampleXML))
	test.That(t, err, test.ShouldBeNil)

	n, ok := root.Get("instrument.monochromator")
	test.That(t, ok, test.ShouldBeTrue)

	v, ok := n.Float("angle_out")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, v, test.ShouldEqual, 45.0)
}

func TestNodeAttr(t *testing.T) {
	root, err := ParseNode([]byte(sampleXML))
	test.That(t, err, test.ShouldBeNil)
	ident, ok := root.Attr("ident")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, ident, test.ShouldEqual, "tasengine_instrument_space")
}

func TestNodeFloatOr(t *testing.T) {
	root, err := ParseNode([]byte(sampleXML))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, root.FloatOr("floor.len_x", 0), test.ShouldEqual, 12.5)
	test.That(t, root.FloatOr("floor.missing", 99), test.ShouldEqual, 99.0)
}

func TestFloats3(t *testing.T) {
	v, err := Floats3("1, 2, 3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, [3]float64{1, 2, 3})

	v, err = Floats3("1 2 3")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, [3]float64{1, 2, 3})

	_, err = Floats3("1 2")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestNodeGetMissingPath(t *testing.T) {
	root, err := ParseNode([]byte(sampleXML))
	test.That(t, err, test.ShouldBeNil)
	_, ok := root.Get("nope.nothing")
	test.That(t, ok, test.ShouldBeFalse)
}
