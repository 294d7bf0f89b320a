// Package encode renders ir trees as text, JSON or YAML.
//
// # Usage
//
//	node := ir.FromMap(map[string]*ir.Node{
//	    "w": ir.FromLeaf(1.5),
//	})
//	err := encode.Encode(node, os.Stdout)
//
//	// JSON form of the IR
//	err = encode.Encode(node, os.Stdout, encode.EncodeFormat(format.JSONFormat))
//
// The text form is an outline with one segment per line, written with
// the delimiter of its kind:
//
//	.encoder
//	  .layers
//	    #0 ~
//	    #1
//	      @bias: F32[16]
//	.step: 1000
//
// A "~" marks a hole and an empty container prints as {}, [] or @{}.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/ir - IR representation
//   - github.com/treeflat/go-treeflat/format - output formats
package encode
