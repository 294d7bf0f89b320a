package ir

import "fmt"

type Type int

const (
	LeafType Type = iota
	ObjectType
	ArrayType
	MapType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		LeafType:   "Leaf",
		ObjectType: "Object",
		ArrayType:  "Array",
		MapType:    "Map",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Leaf":   LeafType,
		"Object": ObjectType,
		"Array":  ArrayType,
		"Map":    MapType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		LeafType,
		ObjectType,
		ArrayType,
		MapType,
	}
}

func (t Type) IsLeaf() bool {
	return t == LeafType
}

// IsKeyed reports whether nodes of type t pair Fields with Values.
func (t Type) IsKeyed() bool {
	return t == ObjectType || t == MapType
}
