package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	treeflat "github.com/treeflat/go-treeflat"
	"github.com/treeflat/go-treeflat/encode"
	"github.com/treeflat/go-treeflat/ir/kpath"
	"github.com/treeflat/go-treeflat/store"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: get requires a path and at least one file", cli.ErrUsage)
	}
	p, err := kpath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for _, arg := range args[1:] {
		root, err := treeflat.Load(store.Safetensors{}, arg)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", arg, err)
		}
		node, err := root.GetPath(p)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", p, arg, err)
		}
		if node == nil {
			// nothing there, don't encode anything
			continue
		}
		if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
