package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{Indent: 2}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "input format: ogdl/o, bin/b, xml/x, json/j, yaml/y (default from file suffix)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "ogdl").
		WithSynopsis("ogdl [opts] command [opts]").
		WithDescription("ogdl is a tool for working with OGDL trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ogdlMain(cfg, cc, args)
		}).
		WithSubs(
			GetCommand(cfg),
			SetCommand(cfg),
			FmtCommand(cfg),
			EventsCommand(cfg),
			DotCommand(cfg),
			DiffCommand(cfg),
			BinCommand(cfg),
			IndentCommand(cfg),
			LogCommand(cfg))
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get [-d depth] [-r] [-where expr] <path> [files]").
		WithDescription("get the nodes addressed by an ogdl path. A path of '.' addresses the whole tree.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set <path> <value> [file]").
		WithDescription("set the value at an ogdl path, creating the path if needed, and print the tree").
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-d depth] [files]").
		WithDescription("print trees from any input format as ogdl text").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtTrees(cfg, cc, args)
		})
}

func EventsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &EventsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Events, "events").
		WithAliases("ev").
		WithSynopsis("events [-comments] [-p] [files]").
		WithDescription("print the parser events of ogdl text").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return events(cfg, cc, args)
		})
}

func DotCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DotConfig{MainConfig: mainCfg, Depth: -1}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Dot, "dot").
		WithSynopsis("dot [-d depth] [-r] [file]").
		WithDescription("print a tree as a graphviz digraph").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return dot(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-r] <from> <to>").
		WithDescription("print the differences between two trees, exiting with 1 if there are any").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func BinCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BinConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Bin, "bin").
		WithAliases("b").
		WithSynopsis("bin [-d] [file]").
		WithDescription("convert a tree to the binary stream format, or back with -d").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return binary(cfg, cc, args)
		})
}

func IndentCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &IndentConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.IndentCmd, "indent").
		WithSynopsis("indent [n] [title]").
		WithDescription("indent standard input by n spaces (default 2), dropping carriage returns, after an optional title line").
		WithRun(func(cc *cli.Context, args []string) error {
			return indent(cfg, cc, args)
		})
}

func LogCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &LogConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Log, "log").
		WithAliases("l").
		WithSynopsis("log command <journal> [args]").
		WithDescription("add trees to and read trees from a journal file").
		WithRun(func(cc *cli.Context, args []string) error {
			return logMain(cfg, cc, args)
		}).
		WithSubs(
			cli.NewCommand("add").
				WithSynopsis("add <journal> [files]").
				WithDescription("append each tree as an entry and print its offset").
				WithRun(func(cc *cli.Context, args []string) error {
					return logAdd(cfg, cc, args)
				}),
			cli.NewCommand("get").
				WithSynopsis("get <journal> <offset>").
				WithDescription("print the entry at an offset").
				WithRun(func(cc *cli.Context, args []string) error {
					return logGet(cfg, cc, args)
				}),
			cli.NewCommand("list").
				WithAliases("ls").
				WithSynopsis("list <journal>").
				WithDescription("print every entry preceded by its offset").
				WithRun(func(cc *cli.Context, args []string) error {
					return logList(cfg, cc, args)
				}))
}
