package ctytree

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"

	"github.com/treeflat/go-treeflat/flat"
)

// Flatten returns every leaf of v under its encoded path, in cty.Walk
// order. Leaves are cty.Value.
func Flatten(v cty.Value) (flat.Mapping, error) {
	var pes []flat.PathEntry
	err := cty.Walk(v, func(p cty.Path, v cty.Value) (bool, error) {
		v, _ = v.Unmark()
		if err := check(v); err != nil {
			return false, fmt.Errorf("at %s: %w", fmtPath(p), err)
		}
		if !isLeaf(v) {
			return true, nil
		}
		kp, err := KPath(p)
		if err != nil {
			return false, err
		}
		pes = append(pes, flat.PathEntry{Path: kp, Value: v})
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	m, err := flat.Encode(pes)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = flat.Mapping{}
	}
	return m, nil
}

func fmtPath(p cty.Path) string {
	kp, err := KPath(p)
	if err != nil {
		return fmt.Sprintf("%#v", p)
	}
	return fmt.Sprintf("%q", kp.String())
}
