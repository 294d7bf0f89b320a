package ir

import (
	"fmt"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

// ContainerFor returns the node type a segment of kind k addresses.
func ContainerFor(k kpath.EntryKind) Type {
	switch k {
	case kpath.AttrEntry:
		return ObjectType
	case kpath.IndexEntry:
		return ArrayType
	case kpath.KeyEntry:
		return MapType
	}
	panic(fmt.Sprintf("ir: unknown entry kind %d", int(k)))
}

// CheckSegment returns ErrTypeMismatch if seg cannot be applied to node.
// A nil node accepts any segment: it is created on demand by builders.
func CheckSegment(node *Node, seg kpath.Segment) error {
	if node == nil {
		return nil
	}
	if want := ContainerFor(seg.Kind); node.Type != want {
		return fmt.Errorf("%w: %s segment %q applied to %s, want %s", ErrTypeMismatch, seg.Kind, seg.Text(), node.Type, want)
	}
	return nil
}

// Child returns the child of node addressed by seg, or nil if there is no
// such child. It is an error for seg to address the wrong kind of node.
func (node *Node) Child(seg kpath.Segment) (*Node, error) {
	if node == nil {
		return nil, nil
	}
	if err := CheckSegment(node, seg); err != nil {
		return nil, err
	}
	if seg.Kind == kpath.IndexEntry {
		if seg.Index < 0 || seg.Index >= len(node.Values) {
			return nil, nil
		}
		return node.Values[seg.Index], nil
	}
	return node.Get(seg.Name), nil
}

// GetKPath navigates an ir.Node tree using an encoded kinded path.
//
// Example:
//
//	root.GetKPath("layers#0.w") navigates to the attribute w of the first
//	element of the sequence under layers.
//
// Returns nil, nil if the path doesn't exist and an error if it is invalid
// or addresses a node of the wrong kind.
func (root *Node) GetKPath(kp string) (*Node, error) {
	p, err := kpath.Parse(kp)
	if err != nil {
		return nil, err
	}
	return root.GetPath(p)
}

// GetPath is GetKPath for a decoded path.
func (root *Node) GetPath(p kpath.Path) (*Node, error) {
	res := root
	for i, seg := range p {
		next, err := res.Child(seg)
		if err != nil {
			return nil, fmt.Errorf("at %q: %w", p[:i].String(), err)
		}
		if next == nil {
			return nil, nil
		}
		res = next
	}
	return res, nil
}
