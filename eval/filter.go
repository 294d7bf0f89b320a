package eval

import (
	"fmt"
	"os"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/treeflat/go-treeflat/debug"
)

type Filter struct {
	src string
	prg *vm.Program
}

// Compile type checks src against Env. An empty src matches every leaf.
func Compile(src string) (*Filter, error) {
	f := &Filter{src: src}
	if src == "" {
		return f, nil
	}
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("error compiling %q: %w", src, err)
	}
	f.prg = prg
	return f, nil
}

func exprOpts() []expr.Option {
	return []expr.Option{
		expr.Env(Env{}),
		expr.AsBool(),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func (f *Filter) String() string {
	return f.src
}

func (f *Filter) Match(env Env) (bool, error) {
	if f.prg == nil {
		return true, nil
	}
	res, err := vm.Run(f.prg, env)
	if err != nil {
		return false, fmt.Errorf("error evaluating %q on %q: %w", f.src, env.Key, err)
	}
	ok, _ := res.(bool)
	if debug.Filter() {
		debug.Logf("filter %q on %q: %v\n", f.src, env.Key, ok)
	}
	return ok, nil
}
