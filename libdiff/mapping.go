package libdiff

import (
	"reflect"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/treeflat/go-treeflat/flat"
)

const (
	surrogateMin = 0xD800
	surrogateLen = 0x800
	maxKeys      = 0x10FFFF + 1 - surrogateLen
)

// EqualFunc reports whether two leaf values are the same.
type EqualFunc func(a, b any) bool

// DiffMappings returns the changes that turn from into to, in the order
// of the aligned key sequences. Unchanged entries are omitted. Duplicate
// keys within one mapping count once, at their first position with their
// last value. A nil eq compares with reflect.DeepEqual.
func DiffMappings(from, to flat.Mapping, eq EqualFunc) []Change {
	if eq == nil {
		eq = reflect.DeepEqual
	}
	from, to = unique(from), unique(to)
	m := map[string]rune{}
	fromRunes := mapKeys(m, from)
	toRunes := mapKeys(m, to)
	if len(m) > maxKeys {
		return diffUnaligned(from, to, eq)
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)

	fromVals := from.Map()
	toVals := to.Map()
	var res []Change
	fi, ti := 0, 0
	for i := range diffs {
		diff := &diffs[i]
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range diff.Text {
				e := from[fi]
				fi++
				if _, moved := toVals[e.Key]; moved {
					continue
				}
				res = append(res, Change{Kind: Delete, Key: e.Key, From: e.Value})
			}
		case diffpatch.DiffEqual:
			for range diff.Text {
				a, b := from[fi], to[ti]
				fi++
				ti++
				if !eq(a.Value, b.Value) {
					res = append(res, Change{Kind: Replace, Key: a.Key, From: a.Value, To: b.Value})
				}
			}
		case diffpatch.DiffInsert:
			for range diff.Text {
				e := to[ti]
				ti++
				if old, moved := fromVals[e.Key]; moved {
					res = append(res, Change{Kind: Move, Key: e.Key, From: old, To: e.Value})
					continue
				}
				res = append(res, Change{Kind: Insert, Key: e.Key, To: e.Value})
			}
		}
	}
	return res
}

// mapKeys assigns each distinct key a rune outside the surrogate range,
// which does not survive conversion to string.
func mapKeys(m map[string]rune, fm flat.Mapping) []rune {
	rs := make([]rune, len(fm))
	for i, e := range fm {
		r, ok := m[e.Key]
		if !ok {
			r = rune(len(m))
			if r >= surrogateMin {
				r += surrogateLen
			}
			m[e.Key] = r
		}
		rs[i] = r
	}
	return rs
}

func unique(fm flat.Mapping) flat.Mapping {
	pos := make(map[string]int, len(fm))
	res := make(flat.Mapping, 0, len(fm))
	for _, e := range fm {
		if i, ok := pos[e.Key]; ok {
			res[i].Value = e.Value
			continue
		}
		pos[e.Key] = len(res)
		res = append(res, e)
	}
	return res
}

// diffUnaligned compares by key only, for mappings with more distinct
// keys than there are runes.
func diffUnaligned(from, to flat.Mapping, eq EqualFunc) []Change {
	toVals := to.Map()
	fromVals := from.Map()
	var res []Change
	for _, e := range from {
		v, ok := toVals[e.Key]
		switch {
		case !ok:
			res = append(res, Change{Kind: Delete, Key: e.Key, From: e.Value})
		case !eq(e.Value, v):
			res = append(res, Change{Kind: Replace, Key: e.Key, From: e.Value, To: v})
		}
	}
	for _, e := range to {
		if _, ok := fromVals[e.Key]; !ok {
			res = append(res, Change{Kind: Insert, Key: e.Key, To: e.Value})
		}
	}
	return res
}
