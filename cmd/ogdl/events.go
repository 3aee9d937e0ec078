package main

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/ogdl-format/go-ogdl/parse"

	"github.com/scott-cotton/cli"
)

func events(cfg *EventsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Events.Parse(cc, args)
	if err != nil {
		cfg.Events.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	var sink parse.Sink = &parse.EventSink{W: cc.Out}
	if cfg.Print {
		sink = &parse.PrintSink{W: cc.Out, Indent: cfg.MainConfig.Indent}
	}
	for _, arg := range inputs(args) {
		if err := eventsArg(cfg, cc.In, arg, sink); err != nil {
			return fmt.Errorf("error parsing %s: %w", arg, err)
		}
	}
	return nil
}

func eventsArg(cfg *EventsConfig, in io.Reader, arg string, sink parse.Sink) error {
	r := in
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	return parse.New(cfg.parseOpts(sink)...).Parse(r)
}
