package flat

import (
	"fmt"
	"maps"
	"slices"

	"github.com/treeflat/go-treeflat/ir/kpath"
)

// Entry is one encoded key and its leaf value.
type Entry struct {
	Key   string
	Value any
}

// Mapping is an ordered flat mapping. When a key occurs more than once the
// last occurrence wins.
type Mapping []Entry

// FromMap returns the entries of m ordered by key.
func FromMap(m map[string]any) Mapping {
	res := make(Mapping, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		res = append(res, Entry{Key: k, Value: m[k]})
	}
	return res
}

// Map returns m as a Go map, resolving duplicates last-write-wins.
func (m Mapping) Map() map[string]any {
	res := make(map[string]any, len(m))
	for _, e := range m {
		res[e.Key] = e.Value
	}
	return res
}

// Get returns the value of the last entry with the given key.
func (m Mapping) Get(key string) (any, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key == key {
			return m[i].Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order, including duplicates.
func (m Mapping) Keys() []string {
	res := make([]string, len(m))
	for i := range m {
		res[i] = m[i].Key
	}
	return res
}

func (m Mapping) Len() int { return len(m) }

// PathEntry is an Entry with its key decoded.
type PathEntry struct {
	Path  kpath.Path
	Value any
}

// Decode parses every key of m. It stops at the first malformed key and
// returns no entries in that case.
func Decode(m Mapping) ([]PathEntry, error) {
	res := make([]PathEntry, len(m))
	for i, e := range m {
		p, err := kpath.Parse(e.Key)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		res[i] = PathEntry{Path: p, Value: e.Value}
	}
	return res, nil
}

// Encode renders decoded entries back into a mapping.
func Encode(pes []PathEntry) (Mapping, error) {
	res := make(Mapping, len(pes))
	for i, pe := range pes {
		if err := pe.Path.Check(); err != nil {
			return nil, fmt.Errorf("path %q: %w", pe.Path.String(), err)
		}
		res[i] = Entry{Key: pe.Path.String(), Value: pe.Value}
	}
	return res, nil
}
