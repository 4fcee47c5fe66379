// Package config loads an instrument description from an XML property
// tree, mirroring the layout and lookup idioms of boost::property_tree
// used by the original engine, with ${name} variable substitution applied
// before parsing.
package config

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Node is a generic XML tree node, playing the role of a
// boost::property_tree ptree: attributes, character data and an ordered
// list of children, all addressable by dotted path.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []Node     `xml:",any"`
}

// ParseNode parses XML bytes into a Node tree rooted at the document
// element.
func ParseNode(data []byte) (*Node, error) {
	var root Node
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "config: parsing xml")
	}
	return &root, nil
}

// Child returns the first direct child element with the given name.
func (n *Node) Child(name string) (*Node, bool) {
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			return &n.Children[i], true
		}
	}
	return nil, false
}

// ChildrenNamed returns every direct child element with the given name.
func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for i := range n.Children {
		if n.Children[i].XMLName.Local == name {
			out = append(out, &n.Children[i])
		}
	}
	return out
}

// Attr returns the named attribute's value, mirroring <xmlattr>.name
// access in the original engine's property tree.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Get walks a dot-separated path of child element names from n, returning
// the node at the end of the path, analogous to ptree::get_child_optional.
func (n *Node) Get(path string) (*Node, bool) {
	cur := n
	if path == "" {
		return cur, true
	}
	for _, part := range strings.Split(path, ".") {
		child, ok := cur.Child(part)
		if !ok {
			return nil, false
		}
		cur = child
	}
	return cur, true
}

// String returns the trimmed character content at path, analogous to
// ptree::get_optional<std::string>.
func (n *Node) String(path string) (string, bool) {
	child, ok := n.Get(path)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(child.Content), true
}

// StringOr returns String(path) or def if the path is absent.
func (n *Node) StringOr(path, def string) string {
	if v, ok := n.String(path); ok {
		return v
	}
	return def
}

// Float parses the trimmed character content at path as a float64, always
// using a fixed '.' decimal separator (strconv.ParseFloat), never a
// locale-aware parse.
func (n *Node) Float(path string) (float64, bool) {
	s, ok := n.String(path)
	if !ok || s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FloatOr returns Float(path) or def if absent or unparseable.
func (n *Node) FloatOr(path string, def float64) float64 {
	if v, ok := n.Float(path); ok {
		return v
	}
	return def
}

// Floats3 parses a comma-or-whitespace-delimited triple of reals, as used
// for the instrument/geometry "pos" key.
func Floats3(s string) ([3]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	var out [3]float64
	if len(fields) < 3 {
		return out, errors.Errorf("config: expected 3 components, got %q", s)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return out, errors.Wrapf(err, "config: parsing component %d of %q", i, s)
		}
		out[i] = v
	}
	return out, nil
}
