// Package flat converts between flat key/value mappings and ir trees.
//
// A flat mapping associates encoded kinded paths (see package kpath) with
// leaf values:
//
//	encoder.layers#0.w   -> leaf
//	encoder.layers#1.w   -> leaf
//	heads@query          -> leaf
//
// Build decodes every key and inserts each value into a fresh tree,
// creating objects, sequences and mappings as the path segments demand.
// Flatten walks a tree and produces the mapping back. Merge replaces the
// leaves of an existing tree whose paths appear in a mapping, without
// changing the tree's shape.
//
// Build(Flatten(t)) reproduces t when every top-level child of t is an
// attribute, t has no empty containers and no trailing holes in its
// sequences. Every tree produced by Build satisfies this. The first
// segment of an encoded key does not record its kind, so a tree rooted at
// a sequence or mapping does not survive the round trip; this is a
// property of the key format.
//
// # Errors
//
//   - ErrMalformedPath: a key does not decode, or a path does not encode
//   - ErrTypeMismatch: a path descends into a node of the wrong kind
//   - ErrShapeMismatch: a merge update names no leaf of the tree
//
// All operations return new trees and leave their inputs untouched.
package flat
