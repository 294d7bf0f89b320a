package ctytree

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/treeflat/go-treeflat/ir"
)

// ToNode converts v to an ir tree. Objects become objects, lists and
// tuples arrays, and maps mappings. Leaves hold the cty.Value.
func ToNode(v cty.Value) (*ir.Node, error) {
	v, _ = v.Unmark()
	if err := check(v); err != nil {
		return nil, err
	}
	if isLeaf(v) {
		return ir.FromLeaf(v), nil
	}
	ty := v.Type()
	var res *ir.Node
	switch {
	case ty.IsObjectType():
		res = ir.NewObject()
	case ty.IsMapType():
		res = ir.NewMap()
	case ty.IsListType(), ty.IsTupleType():
		res = ir.NewArray(0)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, ty.FriendlyName())
	}
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		child, err := ToNode(ev)
		if err != nil {
			return nil, err
		}
		if res.Type == ir.ArrayType {
			res.Values = append(res.Values, child)
			continue
		}
		res.Fields = append(res.Fields, k.AsString())
		res.Values = append(res.Values, child)
	}
	return res, nil
}

// Native converts a leaf to a Go value: nil, string, bool, int64 for whole
// numbers that fit and float64 otherwise.
func Native(v cty.Value) (any, error) {
	v, _ = v.Unmark()
	if !v.IsKnown() {
		return nil, fmt.Errorf("%w: unknown value", ErrUnsupported)
	}
	if v.IsNull() {
		return nil, nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Bool:
		return v.True(), nil
	case cty.Number:
		if i, acc := v.AsBigFloat().Int64(); acc == big.Exact {
			return i, nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, err
		}
		return f, nil
	}
	return nil, fmt.Errorf("%w: %s is not a leaf", ErrUnsupported, v.Type().FriendlyName())
}
