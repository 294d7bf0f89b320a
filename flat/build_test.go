package flat

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

func treeString(n *ir.Node) string {
	if n == nil {
		return "<nil>"
	}
	d, err := json.Marshal(n)
	if err != nil {
		return err.Error()
	}
	return string(d)
}

func obj(kvs ...ir.KeyVal) *ir.Node { return ir.FromKeyVals(kvs) }

func kv(k string, v *ir.Node) ir.KeyVal { return ir.KeyVal{Key: k, Val: v} }

func leaf(v any) *ir.Node { return ir.FromLeaf(v) }

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		in   Mapping
		want *ir.Node
	}{
		{
			name: "empty",
			in:   Mapping{},
			want: ir.NewObject(),
		},
		{
			name: "siblings",
			in:   Mapping{{"a.b", 1}, {"a.c", 2}},
			want: obj(kv("a", obj(kv("b", leaf(1)), kv("c", leaf(2))))),
		},
		{
			name: "sparse index",
			in:   Mapping{{"a#3", "x"}},
			want: obj(kv("a", ir.FromSlice([]*ir.Node{nil, nil, nil, leaf("x")}))),
		},
		{
			name: "holes filled later",
			in:   Mapping{{"a#1", 1}, {"a#0", 0}},
			want: obj(kv("a", ir.FromSlice([]*ir.Node{leaf(0), leaf(1)}))),
		},
		{
			name: "map keys",
			in:   Mapping{{"heads@query", 1}, {"heads@key.w", 2}},
			want: obj(kv("heads", ir.FromMapKeyVals([]ir.KeyVal{
				kv("query", leaf(1)),
				kv("key", obj(kv("w", leaf(2)))),
			}))),
		},
		{
			name: "mixed",
			in:   Mapping{{"enc.layers#0@q.w", 1.5}},
			want: obj(kv("enc", obj(kv("layers", ir.FromSlice([]*ir.Node{
				ir.FromMapKeyVals([]ir.KeyVal{kv("q", obj(kv("w", leaf(1.5))))}),
			}))))),
		},
		{
			name: "last write wins",
			in:   Mapping{{"a", 1}, {"a", 2}},
			want: obj(kv("a", leaf(2))),
		},
		{
			name: "leaf replaces subtree",
			in:   Mapping{{"a.b", 1}, {"a.c", 2}, {"a", 3}},
			want: obj(kv("a", leaf(3))),
		},
		{
			name: "root key",
			in:   Mapping{{"", 7}},
			want: leaf(7),
		},
		{
			name: "leading index delimiter",
			in:   Mapping{{"#2", 1}},
			want: obj(kv("", ir.FromSlice([]*ir.Node{nil, nil, leaf(1)}))),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("Build() = %s, want %s", treeString(got), treeString(tt.want))
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		in   Mapping
		want error
	}{
		{"attr then index", Mapping{{"a.b", 1}, {"a#0", 2}}, ErrTypeMismatch},
		{"index then key", Mapping{{"a#0", 1}, {"a@k", 2}}, ErrTypeMismatch},
		{"key then attr", Mapping{{"a@k", 1}, {"a.k", 2}}, ErrTypeMismatch},
		{"through leaf", Mapping{{"a", 1}, {"a.b", 2}}, ErrTypeMismatch},
		{"bad index", Mapping{{"a.b", 1}, {"a#x", 2}}, ErrMalformedPath},
		{"empty index", Mapping{{"a#", 1}}, ErrMalformedPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Build() error = %v, want %v", err, tt.want)
			}
			if got != nil {
				t.Errorf("Build() = %s on error", treeString(got))
			}
		})
	}
}

func TestInsertPure(t *testing.T) {
	orig := obj(kv("a", obj(kv("b", leaf(1)))), kv("c", leaf(2)))
	keep := orig.Clone()

	got, err := Insert(orig, kpath.MustParse("a.d"), 3)
	if err != nil {
		t.Fatal(err)
	}
	if !ir.Equal(orig, keep) {
		t.Errorf("Insert modified its input: %s", treeString(orig))
	}
	want := obj(kv("a", obj(kv("b", leaf(1)), kv("d", leaf(3)))), kv("c", leaf(2)))
	if !ir.Equal(got, want) {
		t.Errorf("Insert() = %s, want %s", treeString(got), treeString(want))
	}
	if got.Get("c") != orig.Get("c") {
		t.Errorf("untouched subtree was copied")
	}
}

func TestInsertErrors(t *testing.T) {
	orig := obj(kv("a", obj(kv("b", leaf(1)))))
	keep := orig.Clone()

	got, err := Insert(orig, kpath.MustParse("a#0"), 2)
	if !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Insert() error = %v, want %v", err, ErrTypeMismatch)
	}
	if got != nil {
		t.Errorf("Insert() = %s on error", treeString(got))
	}
	if !ir.Equal(orig, keep) {
		t.Errorf("Insert modified its input: %s", treeString(orig))
	}

	_, err = Insert(nil, kpath.Path{kpath.Attr("a"), kpath.Index(-1)}, 2)
	if !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Insert() error = %v, want %v", err, ErrMalformedPath)
	}
}

func TestInsertIntoNil(t *testing.T) {
	got, err := Insert(nil, kpath.Path{kpath.Key("k"), kpath.Index(1)}, "v")
	if err != nil {
		t.Fatal(err)
	}
	want := ir.FromMapKeyVals([]ir.KeyVal{kv("k", ir.FromSlice([]*ir.Node{nil, leaf("v")}))})
	if !ir.Equal(got, want) {
		t.Errorf("Insert() = %s, want %s", treeString(got), treeString(want))
	}
}

func TestBuilderFailureLeavesTree(t *testing.T) {
	b := NewBuilder()
	if err := b.Add("a.b#0", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("a.b.c", 2); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("Add() error = %v, want %v", err, ErrTypeMismatch)
	}
	if err := b.Add("a#x", 2); !errors.Is(err, ErrMalformedPath) {
		t.Fatalf("Add() error = %v, want %v", err, ErrMalformedPath)
	}
	want := obj(kv("a", obj(kv("b", ir.FromSlice([]*ir.Node{leaf(1)})))))
	if !ir.Equal(b.Tree(), want) {
		t.Errorf("Tree() = %s, want %s", treeString(b.Tree()), treeString(want))
	}
}

func TestBuilderReplacedSubtree(t *testing.T) {
	b := NewBuilder()
	for _, e := range (Mapping{{"a.b", 1}, {"a", 2}, {"a@k", 3}}) {
		err := b.Add(e.Key, e.Value)
		if e.Key == "a@k" {
			if !errors.Is(err, ErrTypeMismatch) {
				t.Errorf("Add(%q) error = %v, want %v", e.Key, err, ErrTypeMismatch)
			}
			continue
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	if !ir.Equal(b.Tree(), obj(kv("a", leaf(2)))) {
		t.Errorf("Tree() = %s", treeString(b.Tree()))
	}
}

func TestBuildMatchesInsert(t *testing.T) {
	m := Mapping{
		{"w", 1},
		{"layers#2.bias", 2},
		{"layers#0.bias", 3},
		{"layers#2.scale", 4},
		{"heads@q#1", 5},
		{"w", 6},
	}
	built, err := Build(m)
	if err != nil {
		t.Fatal(err)
	}
	folded := ir.NewObject()
	for _, e := range m {
		folded, err = Insert(folded, kpath.MustParse(e.Key), e.Value)
		if err != nil {
			t.Fatal(err)
		}
	}
	if !ir.Equal(built, folded) {
		t.Errorf("Build() = %s, Insert fold = %s", treeString(built), treeString(folded))
	}
}

func TestBuildIndexLimit(t *testing.T) {
	huge := Mapping{{"a#4611686018427387903", 1}}
	got, err := Build(huge)
	if !errors.Is(err, ErrMalformedPath) {
		t.Fatalf("Build() error = %v, want %v", err, ErrMalformedPath)
	}
	if got != nil {
		t.Errorf("Build() = %s on error", treeString(got))
	}

	if _, err := Build(Mapping{{"a#3", 1}}, IndexLimit(2)); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Build(IndexLimit(2)) error = %v, want %v", err, ErrMalformedPath)
	}
	got, err = Build(Mapping{{"a#2", 1}}, IndexLimit(2))
	if err != nil {
		t.Fatal(err)
	}
	if n, _ := got.GetKPath("a"); n.Len() != 3 {
		t.Errorf("len(a) = %d, want 3", n.Len())
	}

	// below an existing node the limit is checked before anything changes
	b := NewBuilder(IndexLimit(4))
	if err := b.Add("a#0", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.Add("a#0.b#5", 2); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Add() error = %v, want %v", err, ErrTypeMismatch)
	}
	if err := b.Add("c.d#5", 2); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Add() error = %v, want %v", err, ErrMalformedPath)
	}
	if b.Tree().Get("c") != nil {
		t.Errorf("failed Add created c: %s", treeString(b.Tree()))
	}

	if _, err := Insert(nil, kpath.Path{kpath.Index(MaxIndex + 1)}, 1); !errors.Is(err, ErrMalformedPath) {
		t.Errorf("Insert() error = %v, want %v", err, ErrMalformedPath)
	}
}
