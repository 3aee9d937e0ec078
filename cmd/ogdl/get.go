package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/signadot/ogdl-format/go-ogdl/debug"
	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/eval"
	"github.com/signadot/ogdl-format/go-ogdl/graph"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, an ogdl path", cli.ErrUsage)
	}
	path := args[0]
	if path == "" {
		return fmt.Errorf("%w: invalid path \"\"", cli.ErrUsage)
	}
	found := false
	for _, arg := range inputs(args[1:]) {
		ok, err := getArg(cfg, cc, arg, path)
		if err != nil {
			return fmt.Errorf("error querying %s with %s: %w", arg, path, err)
		}
		found = found || ok
	}
	if !found {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func getArg(cfg *GetConfig, cc *cli.Context, arg, path string) (bool, error) {
	root, err := cfg.load(cc, arg)
	if err != nil {
		return false, err
	}
	if arg != "-" {
		if err := root.SetName(baseName(arg)); err != nil {
			return false, err
		}
	}
	node := root
	if path != "." {
		node, err = root.Get(path)
		if debug.Path() {
			debug.Logf("get %q in %s: %v, %v", path, arg, node, err)
		}
		if errors.Is(err, graph.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
	}
	if cfg.Where != "" {
		if node, err = eval.Filter(node, cfg.Where); err != nil {
			return false, err
		}
	}
	return true, printNode(cfg, cc.Out, node)
}

// printNode prints a leaf, or a node whose only child is a leaf, as the
// bare value and anything else as a tree.
func printNode(cfg *GetConfig, w io.Writer, node *graph.Node) error {
	opts := append(cfg.encOpts(w), encode.Depth(cfg.Depth))
	switch {
	case cfg.Root:
		opts = append(opts, encode.EncodeRoot(true))
	case node.Len() == 0:
		_, err := fmt.Fprintln(w, node.Name)
		return err
	case node.Len() == 1 && node.Index(0).Len() == 0:
		_, err := fmt.Fprintln(w, node.Index(0).Name)
		return err
	}
	if err := encode.Encode(node, w, opts...); err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	return nil
}
