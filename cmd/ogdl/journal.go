package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/journal"

	"github.com/scott-cotton/cli"
)

func logMain(cfg *LogConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Log.Parse(cc, args)
	if err != nil {
		cfg.Log.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: log requires a command: add, get or list", cli.ErrUsage)
	}
	return runSub(cfg.Log, cc, args)
}

func openJournal(args []string) (*journal.Journal, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: missing journal file", cli.ErrUsage)
	}
	return journal.Open(args[0], theLog)
}

func logAdd(cfg *LogConfig, cc *cli.Context, args []string) error {
	j, err := openJournal(args)
	if err != nil {
		return err
	}
	defer j.Close()
	for _, arg := range inputs(args[1:]) {
		root, err := cfg.load(cc, arg)
		if err != nil {
			return err
		}
		off, err := j.Add(root)
		if err != nil {
			return err
		}
		fmt.Fprintln(cc.Out, off)
	}
	return nil
}

func logGet(cfg *LogConfig, cc *cli.Context, args []string) error {
	j, err := openJournal(args)
	if err != nil {
		return err
	}
	defer j.Close()
	if len(args) != 2 {
		return fmt.Errorf("%w: log get requires a journal and an offset", cli.ErrUsage)
	}
	off, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad offset %q", cli.ErrUsage, args[1])
	}
	node, err := j.Get(off)
	if err != nil {
		return err
	}
	return encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...)
}

func logList(cfg *LogConfig, cc *cli.Context, args []string) error {
	j, err := openJournal(args)
	if err != nil {
		return err
	}
	defer j.Close()
	for {
		off := j.Position()
		node, err := j.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "# offset %d\n", off)
		if err := encode.Encode(node, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
}
