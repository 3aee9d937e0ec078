package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/bin"
	"github.com/signadot/ogdl-format/go-ogdl/convert"
	"github.com/signadot/ogdl-format/go-ogdl/debug"
	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/format"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/signadot/ogdl-format/go-ogdl/parse"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='encode with color'"`
	Indent  int  `cli:"name=n desc='indentation of ogdl output' default=2"`
	Content bool `cli:"name=c desc='place xml element content under _'"`

	InFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return []parse.ParseOption{
		parse.ParseLogger(theLog),
		parse.ParseErrorHandler(parse.ExitOnError(theLog)),
	}
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{encode.Indent(cfg.Indent)}
	if c := cfg.colors(w); c != nil {
		res = append(res, encode.EncodeColors(c))
	}
	return res
}

// colors returns the colors to write to w with, or nil. Without -color,
// colors are used when w is a terminal.
func (cfg *MainConfig) colors(w io.Writer) *encode.Colors {
	if cfg.Color {
		return encode.NewColors()
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name == "color" && opt.Value != nil {
			return nil
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return nil
	}
	if isatty.IsTerminal(f.Fd()) {
		return encode.NewColors()
	}
	return nil
}

// inFormat returns the format of arg: the -I format if given, otherwise
// a guess from its file name.
func (cfg *MainConfig) inFormat(arg string) format.Format {
	if cfg.InFormat != nil {
		return *cfg.InFormat
	}
	if arg == "-" {
		return format.OGDLFormat
	}
	return format.FromSuffix(arg)
}

// load reads the tree in arg, a file name or "-" for stdin.
func (cfg *MainConfig) load(cc *cli.Context, arg string) (*graph.Node, error) {
	var r io.Reader
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	node, err := cfg.read(r, cfg.inFormat(arg))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", arg, err)
	}
	if debug.Build() {
		debug.Logf("built %s: %s", arg, node)
	}
	return node, nil
}

func (cfg *MainConfig) read(r io.Reader, f format.Format) (*graph.Node, error) {
	switch f {
	case format.OGDLFormat:
		return parse.ParseReader(r, cfg.parseOpts()...)
	case format.BinaryFormat:
		return bin.Decode(r)
	case format.XMLFormat:
		return convert.FromXML(r, convert.XMLContentNode(cfg.Content))
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	switch f {
	case format.JSONFormat:
		return convert.FromJSON(d)
	case format.YAMLFormat:
		return convert.FromYAML(d)
	default:
		return nil, fmt.Errorf("%w: cannot read %s", format.ErrBadFormat, f)
	}
}

// baseName is the file name of arg without directory and extension.
func baseName(arg string) string {
	b := filepath.Base(arg)
	return strings.TrimSuffix(b, filepath.Ext(b))
}

type GetConfig struct {
	*MainConfig
	Depth int    `cli:"name=d desc='maximum depth to print, -1 for all'"`
	Root  bool   `cli:"name=r desc='print the addressed node itself'"`
	Where string `cli:"name=where desc='keep children for which this expression holds'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig

	Set *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Depth int `cli:"name=d desc='maximum depth to print, -1 for all'"`

	Fmt *cli.Command
}

type EventsConfig struct {
	*MainConfig
	Comments bool `cli:"name=comments desc='include comments'"`
	Print    bool `cli:"name=p desc='print text events indented instead'"`

	Events *cli.Command
}

func (cfg *EventsConfig) parseOpts(sink parse.Sink) []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.ParseComments(cfg.Comments), parse.ParseSink(sink))
}

type DotConfig struct {
	*MainConfig
	Depth int  `cli:"name=d desc='maximum depth to draw, -1 for all'"`
	Root  bool `cli:"name=r desc='draw the root node'"`

	Dot *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`

	Diff *cli.Command
}

type BinConfig struct {
	*MainConfig
	Decode bool `cli:"name=d desc='decode binary to text'"`

	Bin *cli.Command
}

type IndentConfig struct {
	*MainConfig

	IndentCmd *cli.Command
}

type LogConfig struct {
	*MainConfig

	Log *cli.Command
}
