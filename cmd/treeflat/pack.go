package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/treeflat/go-treeflat/flat"
	"github.com/treeflat/go-treeflat/store"
)

func pack(cfg *PackConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Pack.Parse(cc, args)
	if err != nil {
		cfg.Pack.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: pack requires one file", cli.ErrUsage)
	}
	if cfg.Dest == "" {
		return fmt.Errorf("%w: pack requires -o", cli.ErrUsage)
	}
	m, err := flattenFile(args[0])
	if err != nil {
		return fmt.Errorf("error flattening %s: %w", args[0], err)
	}
	tensors, err := scalars(m)
	if err != nil {
		return err
	}
	s := store.Safetensors{Metadata: map[string]string{"source": args[0]}}
	if err := s.WriteAll(cfg.Dest, tensors); err != nil {
		return fmt.Errorf("error writing %s: %w", cfg.Dest, err)
	}
	theLog.Info("packed", "file", args[0], "tensors", len(tensors), "out", cfg.Dest)
	return nil
}

// scalars converts the numeric and boolean values of m to scalar tensors.
// Other values are skipped.
func scalars(m flat.Mapping) (flat.Mapping, error) {
	res := make(flat.Mapping, 0, len(m))
	for _, e := range m {
		switch e.Value.(type) {
		case bool, int64, float64:
		default:
			theLog.Warn("skipping non-numeric value", "key", e.Key)
			continue
		}
		t, err := store.Scalar(e.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", e.Key, err)
		}
		res = append(res, flat.Entry{Key: e.Key, Value: t})
	}
	return res, nil
}
