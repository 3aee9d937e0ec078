package main

import (
	"log/slog"
	"os"

	"github.com/signadot/ogdl-format/go-ogdl/debug"
)

var (
	theLog = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			if a.Key == slog.LevelKey {
				if a.Value.String() == "INFO" {
					return slog.Attr{}
				}
			}
			return a
		},
	}))
)

func logLevel() slog.Level {
	if debug.Parse() || debug.Path() || debug.Build() {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
