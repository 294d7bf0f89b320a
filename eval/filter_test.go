package eval

import (
	"testing"

	"github.com/treeflat/go-treeflat/ir/kpath"
	"github.com/treeflat/go-treeflat/store"
)

func TestFilter(t *testing.T) {
	t.Setenv("TREEFLAT_TEST_PREFIX", "enc")
	w := store.NewF32(make([]float32, 6), 2, 3)
	tests := []struct {
		name string
		src  string
		key  string
		leaf any
		want bool
	}{
		{"empty", "", "a", 1, true},
		{"dtype", `dtype == "F32"`, "a", w, true},
		{"dtype other", `dtype == "F64"`, "a", w, false},
		{"shape", `len(shape) == 2 && shape[0] == 2 && shape[1] == 3 && numel == 6 && bytes == 24`, "a", w, true},
		{"not tensor", `dtype == ""`, "a", 1, true},
		{"key", `key startsWith "enc."`, "enc.layers#0.w", w, true},
		{"kinds", `"index" in kinds && depth == 4`, "enc.layers#0@w", w, true},
		{"segments", `segments[1] == "layers"`, "enc.layers#0.w", w, true},
		{"getenv", `segments[0] == getenv("TREEFLAT_TEST_PREFIX")`, "enc.w", 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			got, err := f.Match(EnvFor(kpath.MustParse(tt.key), tt.leaf))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`numel +`, `unknown == 1`, `numel + 1`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) succeeded", src)
		}
	}
}
