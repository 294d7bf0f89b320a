package flat

import (
	"github.com/treeflat/go-treeflat/ir"
)

// FlattenPaths returns every leaf of tree with its decoded path, in the
// order of ir.Leaves. Holes contribute nothing.
func FlattenPaths(tree *ir.Node) []PathEntry {
	var res []PathEntry
	for p, leaf := range ir.Leaves(tree) {
		res = append(res, PathEntry{Path: p, Value: leaf.Leaf})
	}
	return res
}

// Flatten returns the flat mapping of tree. Empty containers and holes
// have no leaves and so produce no entries; a nil tree gives an empty
// mapping.
//
// Flatten fails with ErrMalformedPath if some leaf's path has no encoding
// that decodes back to it, such as an attribute name containing a
// delimiter.
func Flatten(tree *ir.Node) (Mapping, error) {
	m, err := Encode(FlattenPaths(tree))
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = Mapping{}
	}
	return m, nil
}
