package ctytree

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/treeflat/go-treeflat/debug"
	"github.com/treeflat/go-treeflat/flat"
)

// Merge returns v with each leaf whose path matches a key of updates
// replaced by the update's value, converted to the leaf's type. Update
// values may be cty.Value or plain Go values. The unmatched update policy
// is that of flat.Merge.
func Merge(v cty.Value, updates flat.Mapping, opts ...flat.MergeOption) (cty.Value, error) {
	o := flat.ApplyMergeOptions(opts...)
	node, err := ToNode(v)
	if err != nil {
		return cty.NilVal, err
	}
	u, err := flat.NewUpdates(updates)
	if err != nil {
		return cty.NilVal, err
	}
	res, err := cty.Transform(v, func(p cty.Path, leaf cty.Value) (cty.Value, error) {
		if !isLeaf(leaf) {
			return leaf, nil
		}
		kp, err := KPath(p)
		if err != nil {
			return cty.NilVal, err
		}
		uv, ok := u.Take(kp)
		if !ok {
			return leaf, nil
		}
		nv, err := toType(uv, leaf.Type())
		if err != nil {
			return cty.NilVal, fmt.Errorf("update %q: %w", kp.String(), err)
		}
		return nv, nil
	})
	if err != nil {
		return cty.NilVal, err
	}
	if err := u.Err(o, flat.Explain(node)); err != nil {
		return cty.NilVal, err
	}
	if debug.Merge() {
		debug.Logf("merged %d updates into %s\n", u.Len(), v.Type().FriendlyName())
	}
	return res, nil
}

func toType(v any, ty cty.Type) (cty.Value, error) {
	cv, ok := v.(cty.Value)
	if !ok {
		if v == nil {
			return cty.NullVal(ty), nil
		}
		ity, err := gocty.ImpliedType(v)
		if err != nil {
			return cty.NilVal, err
		}
		cv, err = gocty.ToCtyValue(v, ity)
		if err != nil {
			return cty.NilVal, err
		}
	}
	return convert.Convert(cv, ty)
}
