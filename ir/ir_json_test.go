package ir

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

func TestJSONRoundTrip(t *testing.T) {
	orig := sampleTree()
	d, err := json.Marshal(orig)
	if err != nil {
		t.Fatal(err)
	}
	got := &Node{}
	if err := json.Unmarshal(d, got); err != nil {
		t.Fatal(err)
	}
	// numbers come back as float64 without a leaf decoder
	want, _ := Transform(orig, func(_ kpath.Path, leaf *Node) (*Node, error) {
		return FromLeaf(float64(leaf.Leaf.(int))), nil
	})
	if !Equal(want, got) {
		t.Errorf("round trip mismatch:\n%s", d)
	}
	if got.Get("layers").Values[0] != nil {
		t.Errorf("hole lost")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := FromMap(map[string]*Node{
		"a": FromSlice([]*Node{nil, FromLeaf("x")}),
		"m": FromMapping(map[string]*Node{"k": FromLeaf(true)}),
	})
	y, err := ToYAML(orig)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(y), "type: Map") {
		t.Errorf("unexpected yaml:\n%s", y)
	}
	got, err := FromYAML(y, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(orig, got) {
		t.Errorf("yaml round trip mismatch:\n%s", y)
	}
}

func TestFromJSONLeafDecoder(t *testing.T) {
	d := []byte(`{"type":"Object","fields":["a"],"values":[{"type":"Leaf","leaf":"7"}]}`)
	got, err := FromJSON(d, func(m json.RawMessage) (any, error) {
		return "decoded:" + string(m), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if v := got.Get("a").Leaf; v != `decoded:"7"` {
		t.Errorf("leaf = %v", v)
	}
}

func TestFromJSONBadFormat(t *testing.T) {
	bad := []string{
		`{"type":"Object","fields":["a","b"],"values":[{"type":"Leaf"}]}`,
		`{"type":"Object","fields":["a","a"],"values":[{"type":"Leaf"},{"type":"Leaf"}]}`,
		`{"type":"Array","fields":["a"],"values":[null]}`,
		`{"type":"Map","fields":["a"],"values":[null]}`,
		`{"type":"Leaf","values":[{"type":"Leaf"}]}`,
	}
	for _, d := range bad {
		if _, err := FromJSON([]byte(d), nil); !errors.Is(err, ErrBadFormat) {
			t.Errorf("FromJSON(%s) = %v, want ErrBadFormat", d, err)
		}
	}
}
