package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/libdiff"
	"github.com/treeflat/go-treeflat/store"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 arguments", cli.ErrUsage)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	from, err := store.Safetensors{}.ReadAll(args[0])
	if err != nil {
		return err
	}
	to, err := store.Safetensors{}.ReadAll(args[1])
	if err != nil {
		return err
	}
	changes := libdiff.DiffMappings(from, to, tensorEqual)
	if len(changes) == 0 {
		return nil
	}
	for _, c := range changes {
		fmt.Fprintln(cc.Out, c)
	}
	return cli.ExitCodeErr(1)
}

func tensorEqual(a, b any) bool {
	ta, ok := a.(*store.Tensor)
	if !ok {
		return false
	}
	tb, ok := b.(*store.Tensor)
	if !ok {
		return false
	}
	return ta.Equal(tb)
}
