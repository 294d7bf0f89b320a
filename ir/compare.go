package ir

import (
	"reflect"
)

// Equal reports whether a and b are structurally equal: same node kinds,
// same children in every slot (holes included) and deeply equal leaf
// values. Attribute and mapping order is not significant.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case LeafType:
		return reflect.DeepEqual(a.Leaf, b.Leaf)
	case ArrayType:
		return equalArrays(a, b)
	case ObjectType, MapType:
		return equalKeyed(a, b)
	}
	return false
}

func equalArrays(a, b *Node) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func equalKeyed(a, b *Node) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i, f := range a.Fields {
		j := b.FieldIndex(f)
		if j == -1 {
			return false
		}
		if !Equal(a.Values[i], b.Values[j]) {
			return false
		}
	}
	return true
}
