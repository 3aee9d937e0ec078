// Package parse reads OGDL text.
//
// OGDL expresses a tree through indentation. Each word on a line is a node;
// subsequent words on the same line nest under it, and more indented lines
// nest under the last node of the line above:
//
//	a b c         a{b{c}}
//	a (b c) d     a{b{c} d}
//	a (b, c)      a{b c}
//	a
//	  b           a{b c}
//	  c
//
// Values containing spaces are quoted or written as blocks:
//
//	name 'John Smith'
//	text \
//	  any text
//	  up to the first less indented line
//
// A '|' at the end of a line starts a table, each following indented line
// being a numbered row. "# " starts a comment running to the end of the
// line.
//
// The Parser produces events which a Sink consumes. The default Sink, a
// Builder, assembles them into a graph.Node.
package parse
