// Package treeflat loads and saves trees through flat key/value stores.
//
// A store holds a flat mapping from encoded kinded paths to leaves:
//
//	encoder.layers#0.w  -> tensor
//	heads@cls.bias      -> tensor
//
// Load builds the tree such a mapping describes, Save writes a tree's
// leaves back, and LoadInto replaces the leaves of an existing tree with
// the stored ones while keeping its shape:
//
//	s := store.Safetensors{}
//	tree, err := treeflat.Load(s, "model.safetensors")
//	err = treeflat.Save(s, tree, "copy.safetensors")
//	tree, err = treeflat.LoadInto(s, tree, "finetuned.safetensors")
//
// Each call reads or writes the store exactly once. Store errors are
// returned as they are.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/flat - build, flatten and merge
//   - github.com/treeflat/go-treeflat/store - safetensors files
//   - github.com/treeflat/go-treeflat/ir - tree representation
package treeflat
