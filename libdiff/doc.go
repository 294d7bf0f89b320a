// Package libdiff compares flat mappings.
//
// DiffMappings aligns the key sequences of two mappings with
// diffmatchpatch, the way a text diff aligns lines: each distinct key is
// mapped to a rune and the rune strings are diffed. Keys present on both
// sides are then compared by value.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/flat - flat mappings
package libdiff
