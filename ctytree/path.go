package ctytree

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

var ErrUnsupported = errors.New("unsupported cty value")

// KPath converts a cty path to a kinded path.
func KPath(p cty.Path) (kpath.Path, error) {
	res := make(kpath.Path, len(p))
	for i, step := range p {
		seg, err := segment(step)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		res[i] = seg
	}
	return res, nil
}

func segment(step cty.PathStep) (kpath.Segment, error) {
	switch s := step.(type) {
	case cty.GetAttrStep:
		return kpath.Attr(s.Name), nil
	case cty.IndexStep:
		k := s.Key
		if k.IsNull() || !k.IsKnown() {
			return kpath.Segment{}, fmt.Errorf("%w: null or unknown index", ErrUnsupported)
		}
		switch k.Type() {
		case cty.String:
			return kpath.Key(k.AsString()), nil
		case cty.Number:
			i, acc := k.AsBigFloat().Int64()
			if acc != big.Exact || i < 0 {
				return kpath.Segment{}, fmt.Errorf("%w: index %s", ErrUnsupported, k.AsBigFloat().String())
			}
			return kpath.Index(int(i)), nil
		}
		return kpath.Segment{}, fmt.Errorf("%w: index of type %s", ErrUnsupported, k.Type().FriendlyName())
	}
	return kpath.Segment{}, fmt.Errorf("%w: path step %T", ErrUnsupported, step)
}

// CtyPath converts a kinded path to a cty path.
func CtyPath(p kpath.Path) cty.Path {
	res := make(cty.Path, len(p))
	for i, seg := range p {
		switch seg.Kind {
		case kpath.AttrEntry:
			res[i] = cty.GetAttrStep{Name: seg.Name}
		case kpath.IndexEntry:
			res[i] = cty.IndexStep{Key: cty.NumberIntVal(int64(seg.Index))}
		case kpath.KeyEntry:
			res[i] = cty.IndexStep{Key: cty.StringVal(seg.Name)}
		}
	}
	return res
}

func isLeaf(v cty.Value) bool {
	return v.IsNull() || v.Type().IsPrimitiveType()
}

func check(v cty.Value) error {
	if !v.IsKnown() {
		return fmt.Errorf("%w: unknown value", ErrUnsupported)
	}
	if v.Type().IsSetType() {
		return fmt.Errorf("%w: set", ErrUnsupported)
	}
	return nil
}
