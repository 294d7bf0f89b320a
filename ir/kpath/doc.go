// Package kpath provides kinded path encoding and decoding.
//
// Kinded paths encode both navigation and node kind in the syntax:
//   - .name - Object attribute
//   - #index - Sequence position
//   - @key - Mapping entry
//
// The first segment carries no delimiter, so its kind cannot be recovered
// from the encoded string: Parse always reports it as an attribute.
//
// # Usage
//
//	// Parse an encoded path
//	p, err := kpath.Parse("layers#0@bias")
//
//	// Access path components
//	seg := p.Last()
//	kind := seg.Kind // AttrEntry, IndexEntry, or KeyEntry
//
//	// Navigate
//	parent := p.Parent()
//	child := p.Append(kpath.Attr("scale"))
//
//	// Compare paths
//	cmp := p1.Compare(p2) // -1, 0, or 1
//
// # Path Examples
//
//	"encoder.layers#3.w"     // Object → sequence → object attribute
//	"heads@query#0"          // Object → mapping → sequence
//	"w"                      // single attribute
//
// # Grammar
//
//	path      := "" | segment ("." attr | "#" digits | "@" key)*
//	segment   := attr | digits | key
//	attr, key := any characters except '.', '#', '@'
//	digits    := one or more decimal digits
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/ir - tree representation
//   - github.com/treeflat/go-treeflat/flat - flat mapping <-> tree
package kpath
