package ir

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

func sampleTree() *Node {
	return FromKeyVals([]KeyVal{
		{"w", FromLeaf(1)},
		{"layers", FromSlice([]*Node{
			nil,
			FromMapKeyVals([]KeyVal{
				{"bias", FromLeaf(2)},
				{"scale", FromLeaf(3)},
			}),
		})},
		{"empty", NewObject()},
	})
}

func TestLeaves(t *testing.T) {
	var got []string
	var vals []any
	for p, leaf := range Leaves(sampleTree()) {
		got = append(got, p.Key())
		vals = append(vals, leaf.Leaf)
	}
	want := []string{".w", ".layers#1@bias", ".layers#1@scale"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Leaves() paths (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]any{1, 2, 3}, vals); diff != "" {
		t.Errorf("Leaves() values (-want +got):\n%s", diff)
	}
}

func TestLeavesRootLeaf(t *testing.T) {
	n := 0
	for p, leaf := range Leaves(FromLeaf("x")) {
		n++
		if len(p) != 0 || leaf.Leaf != "x" {
			t.Errorf("got %v %v", p, leaf.Leaf)
		}
	}
	if n != 1 {
		t.Errorf("got %d leaves", n)
	}
	for range Leaves(nil) {
		t.Errorf("nil tree yielded a leaf")
	}
}

func TestLeavesStop(t *testing.T) {
	n := 0
	for range Leaves(sampleTree()) {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iteration did not stop")
	}
}

func TestLeavesPathsAreOwned(t *testing.T) {
	var paths []kpath.Path
	for p := range Leaves(sampleTree()) {
		paths = append(paths, p)
	}
	if got := paths[1].String(); got != "layers#1@bias" {
		t.Errorf("path overwritten: %q", got)
	}
}

func TestWalkError(t *testing.T) {
	stop := errors.New("stop")
	n := 0
	err := Walk(sampleTree(), func(p kpath.Path, leaf *Node) error {
		n++
		if n == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || n != 2 {
		t.Errorf("Walk() = %v after %d leaves", err, n)
	}
}

func TestTransform(t *testing.T) {
	orig := sampleTree()
	res, err := Transform(orig, func(p kpath.Path, leaf *Node) (*Node, error) {
		if p.Key() == ".layers#1@bias" {
			return FromLeaf(20), nil
		}
		return leaf, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := res.GetKPath("layers#1@bias")
	if err != nil || got.Leaf != 20 {
		t.Fatalf("transformed leaf = %v, %v", got, err)
	}
	prev, _ := orig.GetKPath("layers#1@bias")
	if prev.Leaf != 2 {
		t.Errorf("Transform mutated input: %v", prev.Leaf)
	}
	if res.Get("layers").Values[0] != nil {
		t.Errorf("hole not preserved")
	}
	if res.Get("empty") == nil || res.Get("empty").Type != ObjectType {
		t.Errorf("empty container not preserved")
	}
}
