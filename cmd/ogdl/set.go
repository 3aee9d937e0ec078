package main

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/graph"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and at most one file", cli.ErrUsage)
	}
	path, val := args[0], args[1]
	value, err := graph.New(val)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	root, err := cfg.load(cc, inputs(args[2:])[0])
	if err != nil {
		return err
	}
	if err := root.Set(path, value); err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	if err := encode.Encode(root, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
