package eval

import (
	"github.com/treeflat/go-treeflat/ir/kpath"
	"github.com/treeflat/go-treeflat/store"
)

// Env is what a filter expression sees.
type Env struct {
	Key      string   `expr:"key"`
	Segments []string `expr:"segments"`
	Kinds    []string `expr:"kinds"`
	Depth    int      `expr:"depth"`

	// Tensor fields; zero for other leaves.
	DType string `expr:"dtype"`
	Shape []int  `expr:"shape"`
	Numel int    `expr:"numel"`
	Bytes int    `expr:"bytes"`
}

// EnvFor describes the leaf v found at p.
func EnvFor(p kpath.Path, v any) Env {
	env := Env{
		Key:      p.String(),
		Segments: make([]string, len(p)),
		Kinds:    make([]string, len(p)),
		Depth:    len(p),
	}
	for i, seg := range p {
		env.Segments[i] = seg.Text()
		env.Kinds[i] = seg.Kind.String()
	}
	var t *store.Tensor
	switch x := v.(type) {
	case *store.Tensor:
		t = x
	case store.Tensor:
		t = &x
	}
	if t != nil {
		env.DType = t.DType.String()
		env.Shape = t.Shape
		env.Numel = t.NumElements()
		env.Bytes = t.NumBytes()
	}
	return env
}
