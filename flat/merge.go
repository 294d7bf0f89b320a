package flat

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/treeflat/go-treeflat/debug"
	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

type MergeOptions struct {
	// IgnoreUnmatched drops updates that name no leaf instead of failing
	// with ErrShapeMismatch.
	IgnoreUnmatched bool
}

type MergeOption func(*MergeOptions)

func IgnoreUnmatched() MergeOption {
	return func(o *MergeOptions) { o.IgnoreUnmatched = true }
}

func ApplyMergeOptions(opts ...MergeOption) *MergeOptions {
	res := &MergeOptions{}
	for _, o := range opts {
		o(res)
	}
	return res
}

// Updates is a decoded set of merge updates. Each update is consumed at
// most once by Take; whatever remains is reported by Unmatched.
//
// Lookups ignore the kind of the first segment, since an encoded key does
// not carry it.
type Updates struct {
	byKey map[string]*update
	order []*update
}

type update struct {
	key   string
	path  kpath.Path
	value any
	taken bool
}

// NewUpdates decodes the keys of m. Duplicate keys resolve
// last-write-wins.
func NewUpdates(m Mapping) (*Updates, error) {
	pes, err := Decode(m)
	if err != nil {
		return nil, err
	}
	u := &Updates{byKey: make(map[string]*update, len(pes))}
	for i, pe := range pes {
		k := lookupKey(pe.Path)
		if up, ok := u.byKey[k]; ok {
			up.key = m[i].Key
			up.value = pe.Value
			continue
		}
		up := &update{key: m[i].Key, path: pe.Path, value: pe.Value}
		u.byKey[k] = up
		u.order = append(u.order, up)
	}
	return u, nil
}

func lookupKey(p kpath.Path) string {
	if len(p) == 0 {
		return ""
	}
	return string(kpath.AttrSep) + p[0].Text() + p[1:].Key()
}

// Len returns the number of distinct updates.
func (u *Updates) Len() int {
	return len(u.order)
}

// Take returns the update for p and marks it as matched.
func (u *Updates) Take(p kpath.Path) (any, bool) {
	up, ok := u.byKey[lookupKey(p)]
	if !ok {
		return nil, false
	}
	up.taken = true
	return up.value, true
}

// Unmatched returns the updates not yet taken, in input order.
func (u *Updates) Unmatched() Mapping {
	var res Mapping
	for _, up := range u.order {
		if !up.taken {
			res = append(res, Entry{Key: up.key, Value: up.value})
		}
	}
	return res
}

// Err reports the unmatched updates according to opts. For each one,
// explain may supply a more specific error, such as ErrTypeMismatch when
// the path crosses a node of the wrong kind; a nil return from explain
// means plain ErrShapeMismatch.
func (u *Updates) Err(opts *MergeOptions, explain func(kpath.Path) error) error {
	if opts.IgnoreUnmatched {
		return nil
	}
	var errs []error
	for _, up := range u.order {
		if up.taken {
			continue
		}
		if explain != nil {
			if err := explain(up.path); err != nil {
				errs = append(errs, fmt.Errorf("update %q: %w", up.key, err))
				continue
			}
		}
		errs = append(errs, fmt.Errorf("%w: update %q matches no leaf", ErrShapeMismatch, up.key))
	}
	return errors.Join(errs...)
}

// Merge returns a copy of tree in which every leaf whose path matches a
// key of updates holds the update's value. The shape of the tree does not
// change: no node is created or removed, and tree itself is not modified.
//
// By default an update that matches no leaf fails the merge with
// ErrShapeMismatch and nothing is returned. With IgnoreUnmatched such
// updates are dropped.
//
// Paths match segment by segment except for the first segment, whose kind
// is ignored: "w" matches an attribute, a mapping key or an index at the
// root alike. Encoded keys never carry that kind, so this is what lets a
// mapping saved from a map or sequence rooted tree be merged back into it.
func Merge(tree *ir.Node, updates Mapping, opts ...MergeOption) (*ir.Node, error) {
	o := ApplyMergeOptions(opts...)
	u, err := NewUpdates(updates)
	if err != nil {
		return nil, err
	}
	res, err := ir.Transform(tree, func(p kpath.Path, leaf *ir.Node) (*ir.Node, error) {
		if v, ok := u.Take(p); ok {
			return ir.FromLeaf(v), nil
		}
		return leaf.Clone(), nil
	})
	if err != nil {
		return nil, err
	}
	if err := u.Err(o, Explain(tree)); err != nil {
		return nil, err
	}
	if debug.Merge() {
		debug.Logf("merged %d updates, %d unmatched:\n%s\n", u.Len(), len(u.Unmatched()), debug.Tree{Node: res})
	}
	return res, nil
}

// Explain returns a function for Updates.Err that reports
// ErrTypeMismatch for updates whose path crosses a node of tree of the
// wrong kind.
func Explain(tree *ir.Node) func(kpath.Path) error {
	return func(p kpath.Path) error {
		_, err := tree.GetPath(alignRoot(tree, p))
		if errors.Is(err, ErrTypeMismatch) {
			return err
		}
		return nil
	}
}

// alignRoot reinterprets the first segment of a decoded path for the kind
// of root, mirroring the kind-blind lookup of Updates.
func alignRoot(root *ir.Node, p kpath.Path) kpath.Path {
	if root == nil || len(p) == 0 {
		return p
	}
	var first kpath.Segment
	switch root.Type {
	case ir.MapType:
		first = kpath.Key(p[0].Text())
	case ir.ArrayType:
		i, err := strconv.Atoi(p[0].Text())
		if err != nil || i < 0 {
			return p
		}
		first = kpath.Index(i)
	default:
		return p
	}
	res := p.Clone()
	res[0] = first
	return res
}
