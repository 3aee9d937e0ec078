package parse

import (
	"log/slog"
	"os"

	"github.com/signadot/ogdl-format/go-ogdl/debug"
)

const (
	DefaultMaxToken  = 65534
	DefaultMaxLevels = 128
	DefaultMaxGroups = 128
)

type parseOpts struct {
	sink      Sink
	onError   ErrorHandler
	comments  bool
	maxToken  int
	maxLevels int
	maxGroups int
	logger    *slog.Logger
}

func defaultOpts() *parseOpts {
	return &parseOpts{
		maxToken:  DefaultMaxToken,
		maxLevels: DefaultMaxLevels,
		maxGroups: DefaultMaxGroups,
	}
}

type ParseOption func(*parseOpts)

// ParseSink sends events to s instead of building a tree.
func ParseSink(s Sink) ParseOption {
	return func(o *parseOpts) { o.sink = s }
}

func ParseErrorHandler(h ErrorHandler) ParseOption {
	return func(o *parseOpts) { o.onError = h }
}

// ParseComments enables comment events.
func ParseComments(v bool) ParseOption {
	return func(o *parseOpts) { o.comments = v }
}

func MaxToken(n int) ParseOption {
	return func(o *parseOpts) { o.maxToken = n }
}

func MaxLevels(n int) ParseOption {
	return func(o *parseOpts) { o.maxLevels = n }
}

func MaxGroups(n int) ParseOption {
	return func(o *parseOpts) { o.maxGroups = n }
}

// ParseLogger traces every event to l at debug level when parse debugging
// is enabled, see debug.Parse.
func ParseLogger(l *slog.Logger) ParseOption {
	return func(o *parseOpts) { o.logger = l }
}

// State is the parser position handed to an ErrorHandler.
type State struct {
	Line      int
	Level     int
	LineLevel int
}

// ErrorHandler is called once with the error which aborts a parse.
type ErrorHandler func(err error, st State)

// ExitOnError returns a handler logging the error to l and exiting the
// process with status 1.
func ExitOnError(l *slog.Logger) ErrorHandler {
	return func(err error, st State) {
		l.Error("parse failed", "error", err, "line", st.Line, "level", st.Level)
		os.Exit(1)
	}
}

func (o *parseOpts) tracing() bool {
	return o.logger != nil && debug.Parse()
}
