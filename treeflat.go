package treeflat

import (
	"fmt"

	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/ir"
)

// Store reads and writes whole flat mappings. store.Safetensors is the
// file based implementation.
type Store interface {
	ReadAll(path string) (flat.Mapping, error)
	WriteAll(path string, m flat.Mapping) error
}

// Load reads the mapping at path and builds a tree from it.
func Load(s Store, path string) (*ir.Node, error) {
	m, err := s.ReadAll(path)
	if err != nil {
		return nil, err
	}
	tree, err := flat.Build(m)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tree, nil
}

// Save flattens tree and writes it to path. Nothing is written if the
// tree cannot be flattened.
func Save(s Store, tree *ir.Node, path string) error {
	m, err := flat.Flatten(tree)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return s.WriteAll(path, m)
}

// LoadInto reads the mapping at path and merges it into tree, returning
// the updated tree. tree itself is not modified.
func LoadInto(s Store, tree *ir.Node, path string, opts ...flat.MergeOption) (*ir.Node, error) {
	m, err := s.ReadAll(path)
	if err != nil {
		return nil, err
	}
	res, err := flat.Merge(tree, m, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s into tree: %w", path, err)
	}
	return res, nil
}
