package main

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/convert"

	"github.com/scott-cotton/cli"
)

func dot(cfg *DotConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Dot.Parse(cc, args)
	if err != nil {
		cfg.Dot.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: dot takes at most one file", cli.ErrUsage)
	}
	root, err := cfg.load(cc, inputs(args)[0])
	if err != nil {
		return err
	}
	return convert.ToDot(root, cc.Out, convert.DotDepth(cfg.Depth), convert.DotRoot(cfg.Root))
}
