package flat

import (
	"fmt"

	"github.com/treeflat/go-treeflat/debug"
	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

// Insert returns a tree holding v at p. Missing intermediate nodes are
// created with the kind each segment implies; sequences are padded with
// holes up to the addressed index. An empty path replaces the whole tree
// with the leaf.
//
// tree is not modified: the nodes along p are copied and every other node
// is shared with the result. On error the result is nil.
func Insert(tree *ir.Node, p kpath.Path, v any) (*ir.Node, error) {
	res, err := insert(tree, p, 0, MaxIndex, v)
	if err != nil {
		return nil, fmt.Errorf("insert %q: %w", p.String(), err)
	}
	return res, nil
}

func insert(n *ir.Node, p kpath.Path, depth, limit int, v any) (*ir.Node, error) {
	if depth == len(p) {
		return ir.FromLeaf(v), nil
	}
	seg := p[depth]
	if err := checkStep(n, p, depth, limit); err != nil {
		return nil, err
	}
	var res *ir.Node
	if n == nil {
		res = &ir.Node{Type: ir.ContainerFor(seg.Kind)}
	} else {
		res = n.Shallow()
	}
	switch seg.Kind {
	case kpath.AttrEntry, kpath.KeyEntry:
		child, err := insert(res.Get(seg.Name), p, depth+1, limit, v)
		if err != nil {
			return nil, err
		}
		res.Set(seg.Name, child)
	case kpath.IndexEntry:
		res.Values = grow(res.Values, seg.Index)
		child, err := insert(res.Values[seg.Index], p, depth+1, limit, v)
		if err != nil {
			return nil, err
		}
		res.Values[seg.Index] = child
	}
	return res, nil
}

// MaxIndex is the largest sequence index Insert accepts and the default
// limit of a Builder. Sequences are dense, so one key with index i
// allocates i+1 slots.
const MaxIndex = 1<<24 - 1

func checkIndex(seg kpath.Segment, limit int) error {
	if seg.Kind != kpath.IndexEntry {
		return nil
	}
	if seg.Index < 0 {
		return fmt.Errorf("%w: negative index %d", ErrMalformedPath, seg.Index)
	}
	if seg.Index > limit {
		return fmt.Errorf("%w: index %d exceeds limit %d", ErrMalformedPath, seg.Index, limit)
	}
	return nil
}

func checkStep(n *ir.Node, p kpath.Path, depth, limit int) error {
	seg := p[depth]
	if err := checkIndex(seg, limit); err != nil {
		return err
	}
	if err := ir.CheckSegment(n, seg); err != nil {
		return fmt.Errorf("at %q: %w", p[:depth].String(), err)
	}
	return nil
}

// grow pads vs with holes so that index i exists.
func grow(vs []*ir.Node, i int) []*ir.Node {
	if i < len(vs) {
		return vs
	}
	return append(vs, make([]*ir.Node, i-len(vs)+1)...)
}

// Builder accumulates leaves into a tree it owns. Unlike Insert it mutates
// its tree in place and keeps an index of attribute and key positions, so
// building from N entries costs time proportional to the total length of
// their paths.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	root     *ir.Node
	index    map[*ir.Node]map[string]int
	maxIndex int
}

type BuildOption func(*Builder)

// IndexLimit sets the largest sequence index the builder accepts. Larger
// indices fail with ErrMalformedPath.
func IndexLimit(n int) BuildOption {
	return func(b *Builder) { b.maxIndex = n }
}

// NewBuilder returns a Builder whose tree is an empty object.
func NewBuilder(opts ...BuildOption) *Builder {
	b := &Builder{
		root:     ir.NewObject(),
		index:    map[*ir.Node]map[string]int{},
		maxIndex: MaxIndex,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Tree returns the tree built so far. It is shared with the builder.
func (b *Builder) Tree() *ir.Node {
	return b.root
}

// Add decodes key and inserts v there.
func (b *Builder) Add(key string, v any) error {
	p, err := kpath.Parse(key)
	if err != nil {
		return err
	}
	return b.Insert(p, v)
}

// Insert stores v at p with the semantics of the package level Insert.
// The whole path is checked before anything is changed, so a failing
// Insert leaves the tree as it was.
func (b *Builder) Insert(p kpath.Path, v any) error {
	n := b.root
	for depth, seg := range p {
		if n == nil {
			if err := checkIndex(seg, b.maxIndex); err != nil {
				return fmt.Errorf("insert %q: %w", p.String(), err)
			}
			continue
		}
		if err := checkStep(n, p, depth, b.maxIndex); err != nil {
			return fmt.Errorf("insert %q: %w", p.String(), err)
		}
		n = b.child(n, seg)
	}
	b.root = b.place(b.root, p, v)
	return nil
}

func (b *Builder) child(n *ir.Node, seg kpath.Segment) *ir.Node {
	if seg.Kind == kpath.IndexEntry {
		if seg.Index < len(n.Values) {
			return n.Values[seg.Index]
		}
		return nil
	}
	if i, ok := b.fields(n)[seg.Name]; ok {
		return n.Values[i]
	}
	return nil
}

func (b *Builder) fields(n *ir.Node) map[string]int {
	idx, ok := b.index[n]
	if ok {
		return idx
	}
	idx = make(map[string]int, len(n.Fields))
	for i, f := range n.Fields {
		idx[f] = i
	}
	b.index[n] = idx
	return idx
}

func (b *Builder) place(n *ir.Node, p kpath.Path, v any) *ir.Node {
	if len(p) == 0 {
		if n != nil && !n.Type.IsLeaf() {
			b.forget(n)
		}
		return ir.FromLeaf(v)
	}
	seg := p[0]
	if n == nil {
		n = &ir.Node{Type: ir.ContainerFor(seg.Kind)}
	}
	switch seg.Kind {
	case kpath.AttrEntry, kpath.KeyEntry:
		idx := b.fields(n)
		if i, ok := idx[seg.Name]; ok {
			n.Values[i] = b.place(n.Values[i], p[1:], v)
			break
		}
		idx[seg.Name] = len(n.Fields)
		n.Fields = append(n.Fields, seg.Name)
		n.Values = append(n.Values, b.place(nil, p[1:], v))
	case kpath.IndexEntry:
		n.Values = grow(n.Values, seg.Index)
		n.Values[seg.Index] = b.place(n.Values[seg.Index], p[1:], v)
	}
	return n
}

// forget drops index entries of a subtree that is being replaced.
func (b *Builder) forget(n *ir.Node) {
	_ = n.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if !isPost {
			delete(b.index, y)
		}
		return true, nil
	})
}

// Build decodes every key of m and inserts the values into a new tree in
// order, starting from an empty object. A key appearing twice, or two keys
// addressing the same node, resolve last-write-wins.
//
// If any key is malformed or indexes past the builder's limit, nothing is
// built. If two entries disagree about the kind of a node, Build fails
// with ErrTypeMismatch.
func Build(m Mapping, opts ...BuildOption) (*ir.Node, error) {
	pes, err := Decode(m)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(opts...)
	for i, pe := range pes {
		if err := b.Insert(pe.Path, pe.Value); err != nil {
			return nil, fmt.Errorf("key %q: %w", m[i].Key, err)
		}
	}
	if debug.Build() {
		debug.Logf("built tree from %d entries:\n%s\n", len(m), debug.Tree{Node: b.Tree()})
	}
	return b.Tree(), nil
}
