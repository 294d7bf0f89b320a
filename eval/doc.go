// Package eval compiles leaf filters.
//
// A filter is an expr-lang boolean expression evaluated once per leaf
// against an Env describing the leaf's path and, when the leaf is a
// tensor, its dtype and shape:
//
//	f, err := eval.Compile(`dtype == "F32" && numel > 1000 && "attr" in kinds`)
//	ok, err := f.Match(eval.EnvFor(p, leaf))
//
// The function getenv(name) reads an environment variable.
//
// # Related Packages
//
//   - github.com/treeflat/go-treeflat/store - tensor leaves
package eval
