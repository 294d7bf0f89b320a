package main

import (
	"fmt"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/store"
)

func meta(cfg *MetaConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Meta.Parse(cc, args)
	if err != nil {
		cfg.Meta.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var md map[string]string
	switch len(args) {
	case 1:
		f, err := store.ReadFile(args[0])
		if err != nil {
			return err
		}
		md = f.Metadata
	case 2:
		patch := []byte(args[1])
		if cfg.File {
			patch, err = os.ReadFile(args[1])
			if err != nil {
				return err
			}
		}
		md, err = store.PatchMetadata(args[0], patch)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", args[0], err)
		}
		theLog.Info("patched metadata", "file", args[0], "keys", len(md))
	default:
		return fmt.Errorf("%w: meta requires a file and an optional patch", cli.ErrUsage)
	}
	return writeMapping(cc.Out, cfg.format(), flat.FromMap(metadataMap(md)))
}

func metadataMap(md map[string]string) map[string]any {
	res := make(map[string]any, len(md))
	for k, v := range md {
		res[k] = v
	}
	return res
}
