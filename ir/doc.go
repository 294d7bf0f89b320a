// Package ir provides the tree representation that flat key/value tables
// are decoded into.
//
// # Overview
//
// A tree is built from *ir.Node values. Each node is one of four kinds,
// given by its Type field:
//
//   - LeafType: an opaque value held in Leaf, never decomposed further
//   - ObjectType: named attributes, Fields[i] is the name of Values[i]
//   - MapType: keyed entries, Fields[i] is the key of Values[i]
//   - ArrayType: an ordered sequence in Values, 0-indexed
//
// Objects and mappings have the same layout but are distinct kinds: an
// attribute segment (".name") only addresses an object and a key segment
// ("@key") only addresses a mapping. Fields keep insertion order, which
// makes every traversal deterministic.
//
// Array slots may be nil. Such a slot is a hole: it is created when a
// higher index is filled before a lower one, and it contributes nothing
// when the tree is flattened.
//
// Each child is owned by exactly one parent. Nodes do not point back to
// their parents; paths are derived during traversal instead.
//
// # Creating Nodes
//
//	leaf := ir.FromLeaf(3.5)
//	obj := ir.FromMap(map[string]*ir.Node{
//	    "w": ir.FromLeaf(1),
//	})
//	seq := ir.FromSlice([]*ir.Node{nil, ir.FromLeaf(2)}) // hole at 0
//	m := ir.FromMapping(map[string]*ir.Node{"k": leaf})
//
// # Navigating Nodes
//
// Use GetKPath or GetPath to reach a node by kinded path:
//
//	child, err := root.GetKPath("layers#0.w")
//	if err != nil {
//	    // malformed path or wrong node kind along the way
//	}
//
// # Traversal
//
// Leaves yields every leaf with its path. Walk is the callback form. Transform
// rebuilds the tree and lets the caller substitute each leaf:
//
//	for p, leaf := range ir.Leaves(root) {
//	    fmt.Println(p, leaf.Leaf)
//	}
//
// # Comparison
//
//	same := ir.Equal(a, b)
//
// # JSON and YAML
//
// The IR is representable in JSON and YAML:
//
//	d, err := json.Marshal(node)
//	node, err := ir.FromJSON(d, decodeLeaf)
//	y, err := ir.ToYAML(node)
//
// # Thread Safety
//
// Node structures are not thread-safe. If you need to access nodes from
// multiple goroutines, you must synchronize access yourself or clone nodes
// for each goroutine.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/ir/kpath - kinded paths
//   - github.com/treeflat/go-treeflat/flat - building and flattening trees
//   - github.com/treeflat/go-treeflat/encode - rendering trees as text
package ir
