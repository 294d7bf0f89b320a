package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/format"
)

// outOpt redirects output to the file a, "-" meaning stdout. A known
// suffix such as ".json" also selects the output format unless one is
// given explicitly.
func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	cfg.fileFormat = suffixFormat(a)
	return nil, nil
}

func suffixFormat(p string) *format.Format {
	ext := filepath.Ext(p)
	if ext == "" {
		return nil
	}
	for _, f := range format.AllFormats() {
		if strings.EqualFold(ext, f.Suffix()) {
			return &f
		}
	}
	return nil
}

func (cfg *MainConfig) fmtOpt(cc *cli.Context, a string) (any, error) {
	f, err := format.ParseFormat(a)
	if err != nil {
		return nil, err
	}
	cfg.OutFormat = &f
	return f, nil
}

func (cfg *MainConfig) closeOut() {
	if cfg.CloseOut != nil {
		cfg.CloseOut()
	}
}

// format returns the output format: -O, -j or -y if given, else the one
// implied by the -o file, else text.
func (cfg *MainConfig) format() format.Format {
	switch {
	case cfg.OutFormat != nil:
		return *cfg.OutFormat
	case cfg.Y:
		return format.YAMLFormat
	case cfg.J:
		return format.JSONFormat
	case cfg.fileFormat != nil:
		return *cfg.fileFormat
	}
	return format.TextFormat
}
