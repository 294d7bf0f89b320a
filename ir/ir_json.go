package ir

import (
	"encoding/json"
	"fmt"
)

type irBase struct {
	Type   Type     `json:"type"`
	Fields []string `json:"fields,omitempty"`
	Values []*Node  `json:"values,omitempty"`
	Leaf   any      `json:"leaf,omitempty"`
}

func (y *Node) MarshalJSON() ([]byte, error) {
	base := &irBase{
		Type:   y.Type,
		Fields: y.Fields,
		Values: y.Values,
	}
	if y.Type == LeafType {
		base.Leaf = y.Leaf
	}
	return json.Marshal(base)
}

// LeafDecoder turns the JSON form of a leaf value back into a value.
type LeafDecoder func(json.RawMessage) (any, error)

func decodeAny(d json.RawMessage) (any, error) {
	if len(d) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(d, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (y *Node) UnmarshalJSON(d []byte) error {
	n, err := FromJSON(d, nil)
	if err != nil {
		return err
	}
	*y = *n
	return nil
}

type rawNode struct {
	Type   Type            `json:"type"`
	Fields []string        `json:"fields,omitempty"`
	Values []*rawNode      `json:"values,omitempty"`
	Leaf   json.RawMessage `json:"leaf,omitempty"`
}

// FromJSON decodes the JSON form of an IR tree. Leaf values are decoded
// with dec, or into plain Go values when dec is nil.
func FromJSON(d []byte, dec LeafDecoder) (*Node, error) {
	if dec == nil {
		dec = decodeAny
	}
	raw := &rawNode{}
	if err := json.Unmarshal(d, raw); err != nil {
		return nil, err
	}
	return raw.toNode(dec)
}

func (r *rawNode) toNode(dec LeafDecoder) (*Node, error) {
	if r == nil {
		return nil, nil
	}
	res := &Node{Type: r.Type}
	switch r.Type {
	case LeafType:
		if len(r.Fields) != 0 || len(r.Values) != 0 {
			return nil, fmt.Errorf("%w: leaf with children", ErrBadFormat)
		}
		v, err := dec(r.Leaf)
		if err != nil {
			return nil, err
		}
		res.Leaf = v
		return res, nil
	case ArrayType:
		if len(r.Fields) != 0 {
			return nil, fmt.Errorf("%w: array with fields", ErrBadFormat)
		}
	case ObjectType, MapType:
		if len(r.Fields) != len(r.Values) {
			return nil, fmt.Errorf("%w: %s with %d fields and %d values", ErrBadFormat, r.Type, len(r.Fields), len(r.Values))
		}
		seen := make(map[string]bool, len(r.Fields))
		for _, f := range r.Fields {
			if seen[f] {
				return nil, fmt.Errorf("%w: duplicate field %q", ErrBadFormat, f)
			}
			seen[f] = true
		}
		res.Fields = r.Fields
	default:
		return nil, fmt.Errorf("%w: unknown type %d", ErrBadFormat, int(r.Type))
	}
	res.Values = make([]*Node, len(r.Values))
	for i, v := range r.Values {
		if v == nil && r.Type != ArrayType {
			return nil, fmt.Errorf("%w: null child in %s", ErrBadFormat, r.Type)
		}
		n, err := v.toNode(dec)
		if err != nil {
			return nil, err
		}
		res.Values[i] = n
	}
	return res, nil
}
