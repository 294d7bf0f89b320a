package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout); a .json, .yaml or .txt suffix selects the output format",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtOpt, "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "treeflat").
		WithSynopsis("treeflat [opts] command [opts]").
		WithDescription("treeflat converts flat tensor containers to and from trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tfMain(cfg, cc, args)
		}).
		WithSubs(
			LsCommand(cfg),
			TreeCommand(cfg),
			GetCommand(cfg),
			MergeCommand(cfg),
			DiffCommand(cfg),
			MetaCommand(cfg),
			FlattenCommand(cfg),
			PackCommand(cfg))
}

func LsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("ls").
		WithAliases("l", "list").
		WithSynopsis("ls [-where expr] files").
		WithDescription("list the keys of safetensors files with their dtype and shape").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ls(cfg, cc, args)
		})
	cfg.Ls = cmd
	return cmd
}

func TreeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TreeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("tree").
		WithAliases("t").
		WithSynopsis("tree [-depth n] files").
		WithDescription("show the tree built from the keys of safetensors files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tree(cfg, cc, args)
		})
	cfg.Tree = cmd
	return cmd
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("get").
		WithAliases("g").
		WithSynopsis("get <path> files").
		WithDescription("get the subtree at a path from safetensors files").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
	cfg.Get = cmd
	return cmd
}

func MergeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MergeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("merge").
		WithAliases("m").
		WithSynopsis("merge -into dst [-ignore-unmatched] [-o out] files").
		WithDescription("replace the tensors of dst with same-path tensors from files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return merge(cfg, cc, args)
		})
	cfg.Merge = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithSynopsis("diff [-r] file1 file2").
		WithDescription("diff the keys and tensors of two safetensors files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func MetaCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MetaConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("meta").
		WithSynopsis("meta [-f] file [patch]").
		WithDescription("show or patch the metadata of a safetensors file; a json array patch is applied as RFC 6902, anything else as a merge patch").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return meta(cfg, cc, args)
		})
	cfg.Meta = cmd
	return cmd
}

func FlattenCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FlattenConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("flatten").
		WithAliases("f").
		WithSynopsis("flatten files").
		WithDescription("flatten the attributes of hcl or json configuration files into keys").
		WithRun(func(cc *cli.Context, args []string) error {
			return flatten(cfg, cc, args)
		})
	cfg.Flatten = cmd
	return cmd
}

func PackCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PackConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("pack").
		WithAliases("p").
		WithSynopsis("pack -o out file").
		WithDescription("write the numeric and boolean attributes of a configuration file as scalar tensors").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return pack(cfg, cc, args)
		})
	cfg.Pack = cmd
	return cmd
}
