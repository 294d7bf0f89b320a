package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/encode"
	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/format"
)

type MainConfig struct {
	Color bool `cli:"name=color desc='encode with color'"`

	J bool `cli:"name=j aliases=json desc='output the IR in json'"`
	Y bool `cli:"name=y aliases=yaml desc='output the IR in yaml'"`

	// OutFormat is set by -O.
	OutFormat *format.Format

	Out        string
	CloseOut   func() error
	fileFormat *format.Format

	Main *cli.Command
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.format()),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w should be colored: always with
// -color, never with -color=false, otherwise when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type LsConfig struct {
	*MainConfig
	Where string `cli:"name=where desc='only list leaves matching this expression'"`

	Ls *cli.Command
}

type TreeConfig struct {
	*MainConfig
	Depth int `cli:"name=depth desc='summarize containers below this depth'"`

	Tree *cli.Command
}

func (cfg *TreeConfig) encOpts(w io.Writer) []encode.EncodeOption {
	return append(cfg.MainConfig.encOpts(w), encode.Depth(cfg.Depth))
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type MergeConfig struct {
	*MainConfig
	Into            string `cli:"name=into desc='container to merge into'"`
	Dest            string `cli:"name=o desc='output container (default: the -into container)'"`
	IgnoreUnmatched bool   `cli:"name=ignore-unmatched desc='drop tensors that match no leaf'"`

	Merge *cli.Command
}

func (cfg *MergeConfig) mergeOpts() []flat.MergeOption {
	if cfg.IgnoreUnmatched {
		return []flat.MergeOption{flat.IgnoreUnmatched()}
	}
	return nil
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type MetaConfig struct {
	*MainConfig
	File bool `cli:"name=f desc='patch arg is a file path'"`

	Meta *cli.Command
}

type FlattenConfig struct {
	*MainConfig

	Flatten *cli.Command
}

type PackConfig struct {
	*MainConfig
	Dest string `cli:"name=o desc='output container'"`

	Pack *cli.Command
}
