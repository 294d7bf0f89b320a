package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	treeflat "github.com/treeflat/go-treeflat"
	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/store"
)

func merge(cfg *MergeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Merge.Parse(cc, args)
	if err != nil {
		cfg.Merge.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if cfg.Into == "" {
		return fmt.Errorf("%w: merge requires -into", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: merge requires at least one file", cli.ErrUsage)
	}
	dst := cfg.Dest
	if dst == "" {
		dst = cfg.Into
	}
	into, err := store.ReadFile(cfg.Into)
	if err != nil {
		return err
	}
	node, err := flat.Build(into.Mapping())
	if err != nil {
		return fmt.Errorf("error loading %s: %w", cfg.Into, err)
	}
	s := store.Safetensors{Metadata: into.Metadata}
	for _, arg := range args {
		node, err = treeflat.LoadInto(s, node, arg, cfg.mergeOpts()...)
		if err != nil {
			return fmt.Errorf("error merging %s: %w", arg, err)
		}
		theLog.Info("merged", "from", arg, "into", cfg.Into)
	}
	if err := treeflat.Save(s, node, dst); err != nil {
		return fmt.Errorf("error writing %s: %w", dst, err)
	}
	return nil
}
