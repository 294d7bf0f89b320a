package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	treeflat "github.com/treeflat/go-treeflat"
	"github.com/treeflat/go-treeflat/encode"
	"github.com/treeflat/go-treeflat/store"
)

func tree(cfg *TreeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Tree.Parse(cc, args)
	if err != nil {
		cfg.Tree.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: tree requires at least one file", cli.ErrUsage)
	}
	for _, arg := range args {
		node, err := treeflat.Load(store.Safetensors{}, arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
