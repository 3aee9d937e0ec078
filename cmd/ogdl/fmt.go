package main

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/encode"

	"github.com/scott-cotton/cli"
)

func fmtTrees(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	for _, arg := range inputs(args) {
		root, err := cfg.load(cc, arg)
		if err != nil {
			return err
		}
		opts := append(cfg.encOpts(cc.Out), encode.Depth(cfg.Depth))
		if err := encode.Encode(root, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", arg, err)
		}
	}
	return nil
}
