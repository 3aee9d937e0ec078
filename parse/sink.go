package parse

import (
	"fmt"
	"io"
	"strings"
)

// Sink receives the events of a parse. Events arrive in document order,
// each tagged with the depth at which its node attaches.
//
// Format events carry structural markers such as "(" and ")". Binary
// events are only produced by binary decoders.
type Sink interface {
	Format(level int, text string) error
	Text(level int, text string) error
	Binary(level int, data []byte) error
	Comment(level int, text string) error
}

// PrintSink writes each text event on its own line, indented by level.
type PrintSink struct {
	W      io.Writer
	Indent int
}

// NewPrintSink returns a PrintSink indenting by 4 spaces per level.
func NewPrintSink(w io.Writer) *PrintSink {
	return &PrintSink{W: w, Indent: 4}
}

func (s *PrintSink) Format(int, string) error { return nil }

func (s *PrintSink) Text(level int, text string) error {
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintf(s.W, "%s%s\n", strings.Repeat(" ", level*s.Indent), text)
	return err
}

func (s *PrintSink) Binary(level int, data []byte) error {
	_, err := fmt.Fprintf(s.W, "%s(%d bytes)\n", strings.Repeat(" ", level*s.Indent), len(data))
	return err
}

func (s *PrintSink) Comment(int, string) error { return nil }

// EventSink writes every event, including format and comment events, as
// "level kind text" lines. It is meant for debugging the grammar.
type EventSink struct {
	W io.Writer
}

func (s *EventSink) Format(level int, text string) error {
	return s.write(level, "format", text)
}

func (s *EventSink) Text(level int, text string) error {
	return s.write(level, "text", text)
}

func (s *EventSink) Binary(level int, data []byte) error {
	return s.write(level, "binary", fmt.Sprintf("%x", data))
}

func (s *EventSink) Comment(level int, text string) error {
	return s.write(level, "comment", text)
}

func (s *EventSink) write(level int, kind, text string) error {
	_, err := fmt.Fprintf(s.W, "%d %s %q\n", level, kind, text)
	return err
}
