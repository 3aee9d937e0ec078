package main

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/bin"
	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/format"

	"github.com/scott-cotton/cli"
)

func binary(cfg *BinConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Bin.Parse(cc, args)
	if err != nil {
		cfg.Bin.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: bin takes at most one file", cli.ErrUsage)
	}
	arg := inputs(args)[0]
	if cfg.Decode {
		if cfg.InFormat == nil {
			f := format.BinaryFormat
			cfg.InFormat = &f
		}
		root, err := cfg.load(cc, arg)
		if err != nil {
			return err
		}
		return encode.Encode(root, cc.Out, cfg.encOpts(cc.Out)...)
	}
	root, err := cfg.load(cc, arg)
	if err != nil {
		return err
	}
	return bin.Encode(root, cc.Out)
}
