package main

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires two files", cli.ErrUsage)
	}
	if cfg.Reverse {
		args[0], args[1] = args[1], args[0]
	}
	from, err := cfg.load(cc, args[0])
	if err != nil {
		return err
	}
	to, err := cfg.load(cc, args[1])
	if err != nil {
		return err
	}
	changes := libdiff.Diff(from, to)
	if len(changes) == 0 {
		return nil
	}
	if err := libdiff.Write(cc.Out, changes, cfg.colors(cc.Out)); err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
