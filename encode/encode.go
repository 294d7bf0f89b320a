package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/treeflat/go-treeflat/format"
	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

type EncState struct {
	maxDepth, indent int

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: 2,
	}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		d, err := json.MarshalIndent(node, "", strings.Repeat(" ", es.indent))
		if err != nil {
			return err
		}
		return writeString(w, string(d)+"\n")
	case format.YAMLFormat:
		d, err := ir.ToYAML(node)
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	case format.TextFormat:
	default:
		return fmt.Errorf("%w: %d", format.ErrBadFormat, es.format)
	}
	if node == nil {
		return writeString(w, es.color(ir.ArrayType, HoleColor, "~")+"\n")
	}
	if node.Type == ir.LeafType {
		return writeString(w, es.leaf(node)+"\n")
	}
	if node.Len() == 0 {
		return writeString(w, es.empty(node)+"\n")
	}
	return encodeChildren(node, w, es, 0)
}

func encodeChildren(node *ir.Node, w io.Writer, es *EncState, depth int) error {
	pad := strings.Repeat(" ", depth*es.indent)
	for i, v := range node.Values {
		var seg kpath.Segment
		switch node.Type {
		case ir.ObjectType:
			seg = kpath.Attr(node.Fields[i])
		case ir.MapType:
			seg = kpath.Key(node.Fields[i])
		case ir.ArrayType:
			seg = kpath.Index(i)
		}
		line := pad + es.color(node.Type, SepColor, string(seg.Kind.Sep())) +
			es.color(node.Type, FieldColor, seg.Text())
		switch {
		case v == nil:
			line += " " + es.color(ir.ArrayType, HoleColor, "~")
		case v.Type == ir.LeafType:
			line += ": " + es.leaf(v)
		case v.Len() == 0:
			line += " " + es.empty(v)
		case es.maxDepth > 0 && depth+1 >= es.maxDepth:
			line += " " + es.color(v.Type, SummaryColor, summary(v))
		default:
			if err := writeString(w, line+"\n"); err != nil {
				return err
			}
			if err := encodeChildren(v, w, es, depth+1); err != nil {
				return err
			}
			continue
		}
		if err := writeString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) leaf(n *ir.Node) string {
	return es.color(ir.LeafType, ValueColor, LeafString(n.Leaf))
}

func (es *EncState) empty(n *ir.Node) string {
	s := "{}"
	switch n.Type {
	case ir.ArrayType:
		s = "[]"
	case ir.MapType:
		s = "@{}"
	}
	return es.color(n.Type, SummaryColor, s)
}

func summary(n *ir.Node) string {
	leaves := 0
	for range ir.Leaves(n) {
		leaves++
	}
	return fmt.Sprintf("(%s, %d leaves)", strings.ToLower(n.Type.String()), leaves)
}

// LeafString formats a leaf value for display. Strings are quoted.
func LeafString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	}
	return fmt.Sprint(v)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
