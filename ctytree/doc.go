// Package ctytree flattens and merges cty values with kinded paths.
//
// A cty value plays the part of a tree: object attributes are attribute
// segments, list and tuple elements are index segments and map elements
// are key segments. Primitive and null values are leaves, and leaves are
// kept as cty.Value.
//
//	v, err := ctytree.ParseFile("model.hcl")
//	m, err := ctytree.Flatten(v)          // "layers#0.w" -> cty.Value
//	v, err = ctytree.Merge(v, updates)    // same shape, new leaves
//
// Sets have no stable element positions and are rejected with
// ErrUnsupported, as are unknown values.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/flat - the same operations on ir trees
package ctytree
