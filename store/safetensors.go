package store

import (
	"fmt"

	"github.com/treeflat/go-treeflat/debug"
	"github.com/treeflat/go-treeflat/flat"
)

// Safetensors stores flat mappings of *Tensor values in safetensors files.
type Safetensors struct {
	// Metadata is written to the header of every file WriteAll creates.
	Metadata map[string]string
}

// ReadAll returns the tensors of the file at p in data order. Errors
// opening or reading the file are returned as is.
func (s Safetensors) ReadAll(p string) (flat.Mapping, error) {
	f, err := ReadFile(p)
	if err != nil {
		return nil, err
	}
	res := f.Mapping()
	if debug.Store() {
		debug.Logf("read %d tensors from %s\n", len(res), p)
	}
	return res, nil
}

// WriteAll writes m to p. Every value must be a *Tensor or a Tensor. A key
// that occurs more than once keeps its first position and its last value.
func (s Safetensors) WriteAll(p string, m flat.Mapping) error {
	f := &File{Metadata: s.Metadata}
	pos := make(map[string]int, len(m))
	for _, e := range m {
		t, err := asTensor(e.Value)
		if err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		if i, ok := pos[e.Key]; ok {
			f.Entries[i].Tensor = t
			continue
		}
		pos[e.Key] = len(f.Entries)
		f.Entries = append(f.Entries, Entry{Key: e.Key, Tensor: t})
	}
	if err := WriteFile(p, f); err != nil {
		return err
	}
	if debug.Store() {
		debug.Logf("wrote %d tensors to %s\n", len(f.Entries), p)
	}
	return nil
}

// Mapping returns the entries of f as a flat mapping of *Tensor values.
func (f *File) Mapping() flat.Mapping {
	res := make(flat.Mapping, len(f.Entries))
	for i, e := range f.Entries {
		res[i] = flat.Entry{Key: e.Key, Value: e.Tensor}
	}
	return res
}

func asTensor(v any) (*Tensor, error) {
	switch x := v.(type) {
	case *Tensor:
		if x == nil {
			return nil, ErrNotTensor
		}
		return x, nil
	case Tensor:
		return &x, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotTensor, v)
}
