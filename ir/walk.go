package ir

import (
	"fmt"
	"iter"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

// Leaves returns an iterator over every leaf reachable from n together with
// its path from n. The walk is depth first: object and mapping children in
// Fields order, array children by index. Holes yield nothing.
//
// The yielded paths are owned by the caller.
func Leaves(n *Node) iter.Seq2[kpath.Path, *Node] {
	return func(yield func(kpath.Path, *Node) bool) {
		leaves(n, make(kpath.Path, 0, 8), yield)
	}
}

func leaves(n *Node, p kpath.Path, yield func(kpath.Path, *Node) bool) bool {
	if n == nil {
		return true
	}
	switch n.Type {
	case LeafType:
		return yield(p.Clone(), n)
	case ObjectType, MapType:
		for i, f := range n.Fields {
			if !leaves(n.Values[i], append(p, fieldSegment(n.Type, f)), yield) {
				return false
			}
		}
	case ArrayType:
		for i, v := range n.Values {
			if !leaves(v, append(p, kpath.Index(i)), yield) {
				return false
			}
		}
	default:
		panic(fmt.Sprintf("ir: unknown node type %d", int(n.Type)))
	}
	return true
}

func fieldSegment(t Type, f string) kpath.Segment {
	if t == MapType {
		return kpath.Key(f)
	}
	return kpath.Attr(f)
}

// Walk calls fn for each leaf in the order of Leaves, stopping at the
// first error.
func Walk(n *Node, fn func(p kpath.Path, leaf *Node) error) error {
	for p, leaf := range Leaves(n) {
		if err := fn(p, leaf); err != nil {
			return err
		}
	}
	return nil
}

// Transform returns a copy of n in which every leaf has been replaced by
// the result of fn. Containers are copied, n itself is left untouched.
// fn sees leaves in the order of Leaves; returning the leaf unchanged keeps
// it.
func Transform(n *Node, fn func(p kpath.Path, leaf *Node) (*Node, error)) (*Node, error) {
	return transform(n, make(kpath.Path, 0, 8), fn)
}

func transform(n *Node, p kpath.Path, fn func(kpath.Path, *Node) (*Node, error)) (*Node, error) {
	if n == nil {
		return nil, nil
	}
	switch n.Type {
	case LeafType:
		return fn(p.Clone(), n)
	case ObjectType, MapType, ArrayType:
		res := n.Shallow()
		for i, v := range n.Values {
			var seg kpath.Segment
			if n.Type == ArrayType {
				seg = kpath.Index(i)
			} else {
				seg = fieldSegment(n.Type, n.Fields[i])
			}
			nv, err := transform(v, append(p, seg), fn)
			if err != nil {
				return nil, err
			}
			res.Values[i] = nv
		}
		return res, nil
	}
	panic(fmt.Sprintf("ir: unknown node type %d", int(n.Type)))
}
