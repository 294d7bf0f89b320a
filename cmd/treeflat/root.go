package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

// tfMain parses the options shared by all subcommands and runs the
// subcommand named by the first remaining argument.
func tfMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer cfg.closeOut()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if err := cfg.checkFormat(); err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q", cli.ErrNoSuchCommand, args[0])
	}
	return runSub(sub, cc, args[1:])
}

func runSub(sub *cli.Command, cc *cli.Context, args []string) error {
	err := sub.Run(cc, args)
	if !errors.Is(err, cli.ErrUsage) {
		return err
	}
	sub.Usage(cc, err)
	os.Exit(sub.Exit(cc, err))
	return err
}

// checkFormat rejects more than one explicit output format. A format
// implied by the -o file suffix yields to an explicit one.
func (cfg *MainConfig) checkFormat() error {
	if count(cfg.J, cfg.Y, cfg.OutFormat != nil) > 1 {
		return fmt.Errorf("%w: specify at most one of -j[son] -y[aml] -O", cli.ErrUsage)
	}
	return nil
}

func count(vs ...bool) int {
	ttl := 0
	for _, v := range vs {
		if v {
			ttl++
		}
	}
	return ttl
}
