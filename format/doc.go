// Package format names the output formats trees can be rendered in.
//
//	f, err := format.ParseFormat("yaml")
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/encode - render trees in a format
package format
