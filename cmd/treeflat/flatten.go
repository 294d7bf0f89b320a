package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
	"github.com/zclconf/go-cty/cty"

	"github.com/treeflat/go-treeflat/ctytree"
	"github.com/treeflat/go-treeflat/encode"
	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/format"
)

func flatten(cfg *FlattenConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Flatten.Parse(cc, args)
	if err != nil {
		cfg.Flatten.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: flatten requires at least one file", cli.ErrUsage)
	}
	for _, arg := range args {
		m, err := flattenFile(arg)
		if err != nil {
			return fmt.Errorf("error flattening %s: %w", arg, err)
		}
		if err := writeMapping(cc.Out, cfg.format(), m); err != nil {
			return err
		}
	}
	return nil
}

// flattenFile parses a configuration file and returns its leaves with
// native Go values.
func flattenFile(p string) (flat.Mapping, error) {
	v, err := ctytree.ParseFile(p)
	if err != nil {
		return nil, err
	}
	m, err := ctytree.Flatten(v)
	if err != nil {
		return nil, err
	}
	for i := range m {
		nv, err := ctytree.Native(m[i].Value.(cty.Value))
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", m[i].Key, err)
		}
		m[i].Value = nv
	}
	return m, nil
}

func writeMapping(w io.Writer, f format.Format, m flat.Mapping) error {
	switch {
	case f.IsJSON():
		return writeJSON(w, m)
	case f.IsYAML():
		return writeYAML(w, m)
	case f.IsText():
		return writeKeys(w, m)
	}
	return fmt.Errorf("%w: %s", format.ErrBadFormat, f)
}

func writeKeys(w io.Writer, m flat.Mapping) error {
	for _, e := range m {
		if _, err := fmt.Fprintf(w, "%s = %s\n", e.Key, encode.LeafString(e.Value)); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, m flat.Mapping) error {
	d, err := json.MarshalIndent(m.Map(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", d)
	return err
}

// writeYAML writes m as a YAML mapping in entry order.
func writeYAML(w io.Writer, m flat.Mapping) error {
	ms := make(yaml.MapSlice, len(m))
	for i, e := range m {
		ms[i] = yaml.MapItem{Key: e.Key, Value: e.Value}
	}
	d, err := yaml.Marshal(ms)
	if err != nil {
		return err
	}
	_, err = w.Write(d)
	return err
}
