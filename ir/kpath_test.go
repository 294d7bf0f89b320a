package ir

import (
	"errors"
	"testing"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

func TestGetKPath(t *testing.T) {
	root := sampleTree()
	tests := []struct {
		path     string
		want     any
		missing  bool
		mismatch bool
	}{
		{path: "w", want: 1},
		{path: "layers#1@scale", want: 3},
		{path: "layers#0", missing: true},
		{path: "layers#5", missing: true},
		{path: "nope", missing: true},
		{path: "layers#1@nope", missing: true},
		{path: "layers.x", mismatch: true},
		{path: "layers#1.bias", mismatch: true},
		{path: "w#0", mismatch: true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := root.GetKPath(tt.path)
			if tt.mismatch {
				if !errors.Is(err, ErrTypeMismatch) {
					t.Fatalf("GetKPath(%q) error = %v, want ErrTypeMismatch", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetKPath(%q) error = %v", tt.path, err)
			}
			if tt.missing {
				if got != nil {
					t.Errorf("GetKPath(%q) = %v, want nil", tt.path, got)
				}
				return
			}
			if got == nil || got.Leaf != tt.want {
				t.Errorf("GetKPath(%q) = %v, want leaf %v", tt.path, got, tt.want)
			}
		})
	}
	if _, err := root.GetKPath("layers#q"); !errors.Is(err, kpath.ErrMalformedPath) {
		t.Errorf("malformed path error = %v", err)
	}
	if got, _ := root.GetKPath(""); got != root {
		t.Errorf("root path did not return root")
	}
}

func TestCheckSegment(t *testing.T) {
	if err := CheckSegment(nil, kpath.Index(0)); err != nil {
		t.Errorf("nil node: %v", err)
	}
	if err := CheckSegment(NewMap(), kpath.Key("k")); err != nil {
		t.Errorf("map/key: %v", err)
	}
	if err := CheckSegment(NewMap(), kpath.Attr("k")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("map/attr: %v", err)
	}
	if err := CheckSegment(FromLeaf(1), kpath.Attr("k")); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("leaf/attr: %v", err)
	}
}
