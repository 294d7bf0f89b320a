// Package store reads and writes flat mappings of tensors in the
// safetensors container format.
//
// A file is laid out as
//
//	[8 bytes]  little-endian uint64 N, the header size
//	[N bytes]  JSON header, space padded to a multiple of 8
//	[...]      tensor data, in header offset order
//
// The header maps each key to its dtype, its shape and the [begin, end)
// offsets of its data relative to the start of the data section. The
// optional "__metadata__" entry maps strings to strings.
//
// ReadFile and WriteFile work on whole files. Safetensors adapts them to
// the flat mapping interface used by package treeflat, where each key is
// an encoded kinded path and each value is a *Tensor.
package store
