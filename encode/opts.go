package encode

import "github.com/treeflat/go-treeflat/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// Depth limits the text outline to n levels below the root. Deeper
// containers are summarized. 0 means no limit.
func Depth(n int) EncodeOption {
	return func(es *EncState) { es.maxDepth = n }
}

func Indent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
