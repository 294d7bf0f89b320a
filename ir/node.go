package ir

import (
	"fmt"
	"maps"
	"slices"
)

type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	Leaf any
}

func FromLeaf(v any) *Node {
	return &Node{Type: LeafType, Leaf: v}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func NewMap() *Node {
	return &Node{Type: MapType}
}

// NewArray returns an array of n holes.
func NewArray(n int) *Node {
	return &Node{Type: ArrayType, Values: make([]*Node, n)}
}

// FromMap returns an object whose attributes are the keys of yMap in
// sorted order.
func FromMap(yMap map[string]*Node) *Node {
	return fromSortedMap(ObjectType, yMap)
}

// FromMapping is like FromMap but produces a MapType node.
func FromMapping(yMap map[string]*Node) *Node {
	return fromSortedMap(MapType, yMap)
}

func fromSortedMap(t Type, yMap map[string]*Node) *Node {
	res := &Node{Type: t}
	res.Fields = slices.Sorted(maps.Keys(yMap))
	res.Values = make([]*Node, len(res.Fields))
	for i, key := range res.Fields {
		res.Values[i] = yMap[key]
	}
	return res
}

type KeyVal struct {
	Key string
	Val *Node
}

// FromKeyVals returns an object with the given attributes in order.
func FromKeyVals(kvs []KeyVal) *Node {
	return FromKeyValsAt(&Node{Type: ObjectType}, kvs)
}

// FromMapKeyVals returns a mapping with the given entries in order.
func FromMapKeyVals(kvs []KeyVal) *Node {
	return FromKeyValsAt(&Node{Type: MapType}, kvs)
}

func FromKeyValsAt(res *Node, kvs []KeyVal) *Node {
	res.Fields = make([]string, len(kvs))
	res.Values = make([]*Node, len(kvs))
	for i := range kvs {
		res.Fields[i] = kvs[i].Key
		res.Values[i] = kvs[i].Val
	}
	return res
}

// FromSlice returns an array holding ySlice; nil elements are holes.
func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	copy(res.Values, ySlice)
	return res
}

// FieldIndex returns the position of field in an object or mapping,
// or -1.
func (y *Node) FieldIndex(field string) int {
	return slices.Index(y.Fields, field)
}

// Get returns the child under field of an object or mapping, or nil.
func (y *Node) Get(field string) *Node {
	i := y.FieldIndex(field)
	if i == -1 {
		return nil
	}
	return y.Values[i]
}

// Set stores v under field, replacing an existing entry in place or
// appending a new one.
func (y *Node) Set(field string, v *Node) {
	if !y.Type.IsKeyed() {
		panic(fmt.Sprintf("ir: Set on %s node", y.Type))
	}
	if i := y.FieldIndex(field); i != -1 {
		y.Values[i] = v
		return
	}
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
}

// Len returns the number of child slots, including holes.
func (y *Node) Len() int {
	if y == nil {
		return 0
	}
	return len(y.Values)
}

// Clone returns a deep copy of the tree structure. Leaf values are opaque
// and are shared with y.
func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{Type: y.Type, Leaf: y.Leaf}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	return res
}

// Shallow copies y and its child slices but not the children.
func (y *Node) Shallow() *Node {
	res := &Node{Type: y.Type, Leaf: y.Leaf}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = slices.Clone(y.Values)
	}
	return res
}

// Visit calls f for every non-nil node in pre-order, then again in
// post-order with isPost set. Returning false from the pre-order call
// skips the node's children.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	if y == nil {
		return nil
	}
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
