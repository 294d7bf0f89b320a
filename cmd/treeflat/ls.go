package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/eval"
	"github.com/treeflat/go-treeflat/ir/kpath"
	"github.com/treeflat/go-treeflat/store"
)

func ls(cfg *LsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Ls.Parse(cc, args)
	if err != nil {
		cfg.Ls.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: ls requires at least one file", cli.ErrUsage)
	}
	filter, err := eval.Compile(cfg.Where)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	for i, arg := range args {
		if len(args) > 1 {
			if i > 0 {
				fmt.Fprintln(cc.Out)
			}
			fmt.Fprintf(cc.Out, "%s:\n", arg)
		}
		if err := lsFile(cc.Out, filter, arg); err != nil {
			return fmt.Errorf("error listing %s: %w", arg, err)
		}
	}
	return nil
}

func lsFile(w io.Writer, filter *eval.Filter, p string) error {
	m, err := store.Safetensors{}.ReadAll(p)
	if err != nil {
		return err
	}
	for _, e := range m {
		kp, err := kpath.Parse(e.Key)
		if err != nil {
			return fmt.Errorf("key %q: %w", e.Key, err)
		}
		ok, err := filter.Match(eval.EnvFor(kp, e.Value))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%v\n", e.Key, e.Value)
	}
	return nil
}
