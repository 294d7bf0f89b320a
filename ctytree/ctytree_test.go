package ctytree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/ir"
	"github.com/treeflat/go-treeflat/ir/kpath"
)

func sample() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"lr": cty.NumberFloatVal(0.5),
		"layers": cty.ListVal([]cty.Value{
			cty.ObjectVal(map[string]cty.Value{"units": cty.NumberIntVal(64)}),
			cty.ObjectVal(map[string]cty.Value{"units": cty.NumberIntVal(32)}),
		}),
		"heads": cty.MapVal(map[string]cty.Value{
			"cls": cty.StringVal("softmax"),
		}),
		"tags":  cty.ListValEmpty(cty.String),
		"extra": cty.NullVal(cty.Bool),
	})
}

func TestPaths(t *testing.T) {
	p := cty.GetAttrPath("layers").IndexInt(1).GetAttr("units")
	kp, err := KPath(p)
	require.NoError(t, err)
	require.Equal(t, "layers#1.units", kp.String())
	require.True(t, CtyPath(kp).Equals(p))

	kp, err = KPath(cty.GetAttrPath("heads").IndexString("cls"))
	require.NoError(t, err)
	require.Equal(t, kpath.Path{kpath.Attr("heads"), kpath.Key("cls")}, kp)

	_, err = KPath(cty.Path{cty.IndexStep{Key: cty.NumberFloatVal(1.5)}})
	require.ErrorIs(t, err, ErrUnsupported)
	_, err = KPath(cty.Path{cty.IndexStep{Key: cty.True}})
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestFlatten(t *testing.T) {
	m, err := Flatten(sample())
	require.NoError(t, err)
	require.Equal(t, []string{"extra", "heads@cls", "layers#0.units", "layers#1.units", "lr"}, m.Keys())
	v, _ := m.Get("layers#1.units")
	require.True(t, v.(cty.Value).RawEquals(cty.NumberIntVal(32)))

	empty, err := Flatten(cty.EmptyObjectVal)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestFlattenSet(t *testing.T) {
	v := cty.ObjectVal(map[string]cty.Value{
		"s": cty.SetVal([]cty.Value{cty.StringVal("a")}),
	})
	_, err := Flatten(v)
	require.ErrorIs(t, err, ErrUnsupported)
	_, err = Merge(v, nil)
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestMerge(t *testing.T) {
	got, err := Merge(sample(), flat.Mapping{
		{Key: "layers#0.units", Value: 128},
		{Key: "heads@cls", Value: cty.StringVal("sigmoid")},
		{Key: "lr", Value: "0.25"},
		{Key: "extra", Value: true},
	})
	require.NoError(t, err)
	require.True(t, got.Type().Equals(sample().Type()))
	require.True(t, got.GetAttr("layers").Index(cty.NumberIntVal(0)).GetAttr("units").RawEquals(cty.NumberIntVal(128)))
	require.True(t, got.GetAttr("layers").Index(cty.NumberIntVal(1)).GetAttr("units").RawEquals(cty.NumberIntVal(32)))
	require.True(t, got.GetAttr("heads").Index(cty.StringVal("cls")).RawEquals(cty.StringVal("sigmoid")))
	require.True(t, got.GetAttr("lr").RawEquals(cty.NumberFloatVal(0.25)))
	require.True(t, got.GetAttr("extra").RawEquals(cty.True))
}

func TestMergeUnmatched(t *testing.T) {
	_, err := Merge(sample(), flat.Mapping{{Key: "layers#5.units", Value: 1}})
	require.ErrorIs(t, err, flat.ErrShapeMismatch)

	_, err = Merge(sample(), flat.Mapping{{Key: "layers.units", Value: 1}})
	require.ErrorIs(t, err, flat.ErrTypeMismatch)

	got, err := Merge(sample(), flat.Mapping{{Key: "nope", Value: 1}, {Key: "lr", Value: 1}}, flat.IgnoreUnmatched())
	require.NoError(t, err)
	require.True(t, got.GetAttr("lr").RawEquals(cty.NumberIntVal(1)))
}

func TestMergeConversionError(t *testing.T) {
	_, err := Merge(sample(), flat.Mapping{{Key: "extra", Value: "maybe"}})
	require.Error(t, err)
}

func TestToNode(t *testing.T) {
	n, err := ToNode(sample())
	require.NoError(t, err)
	require.Equal(t, ir.ObjectType, n.Type)
	require.Equal(t, ir.MapType, n.Get("heads").Type)
	require.Equal(t, ir.ArrayType, n.Get("layers").Type)
	require.Equal(t, 2, n.Get("layers").Len())
	require.Equal(t, 0, n.Get("tags").Len())

	m, err := flat.Flatten(n)
	require.NoError(t, err)
	cm, err := Flatten(sample())
	require.NoError(t, err)
	require.Equal(t, cm.Keys(), m.Keys())
}

func TestNative(t *testing.T) {
	tests := []struct {
		in   cty.Value
		want any
	}{
		{cty.StringVal("x"), "x"},
		{cty.True, true},
		{cty.NumberIntVal(3), int64(3)},
		{cty.NumberFloatVal(0.5), 0.5},
		{cty.NullVal(cty.String), nil},
	}
	for _, tt := range tests {
		got, err := Native(tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
	_, err := Native(cty.ListValEmpty(cty.String))
	require.ErrorIs(t, err, ErrUnsupported)
	_, err = Native(cty.UnknownVal(cty.String))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestParse(t *testing.T) {
	src := []byte(`
lr     = 0.001
layers = [{ units = 64 }, { units = 32 }]
heads  = { cls = "softmax" }
`)
	v, err := Parse(src, "model.hcl")
	require.NoError(t, err)
	m, err := Flatten(v)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"lr", "layers#0.units", "layers#1.units", "heads.cls"}, m.Keys())

	_, err = Parse([]byte(`x = `), "bad.hcl")
	require.Error(t, err)
}

func TestParseFileJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"w": [1, 2], "name": "m"}`), 0644))
	v, err := ParseFile(p)
	require.NoError(t, err)
	m, err := Flatten(v)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"name", "w#0", "w#1"}, m.Keys())
}
