package encode

import (
	"io"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

type EncState struct {
	depth   int
	indent  int
	root    bool
	pending bool

	w   io.Writer
	err error

	Color func(ColorAttr, string) string
}

// Encode writes the children of node to w as top level trees, or node
// itself with EncodeRoot.
func Encode(node *graph.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		depth:  -1,
		indent: 4,
		w:      w,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return nil
	}
	if es.root {
		es.node(node, 0, false)
	} else {
		for _, c := range node.Children {
			es.node(c, 0, false)
		}
	}
	if es.pending {
		es.write("\n")
	}
	return es.err
}

func (es *EncState) write(s string) {
	if es.err != nil {
		return
	}
	_, es.err = io.WriteString(es.w, s)
}

func (es *EncState) color(a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(a, s)
}

// breakLine ends the line holding the previous node.
func (es *EncState) breakLine() {
	if es.pending {
		es.write("\n")
		es.pending = false
	}
}

func (es *EncState) node(n *graph.Node, depth int, only bool) {
	if es.depth >= 0 && depth >= es.depth {
		return
	}
	col := depth * es.indent
	name := n.Name
	switch {
	case !hasSpace(name):
		es.breakLine()
		attr := LeafColor
		if len(n.Children) != 0 {
			attr = NameColor
		}
		tail := ""
		switch {
		case name == "\\":
			// a bare backslash ending a line would open a block
			tail = " "
		case needsQuote(name):
			name, attr = quote(name, col+1), QuotedColor
		}
		es.write(pad(col) + es.color(attr, name) + tail)
		es.pending = true
	case len(n.Children) == 0 && blockable(name):
		if only && es.pending {
			// continue the parent's line; nothing follows at this column
			es.write(" " + es.color(MarkerColor, "\\") + "\n")
		} else {
			es.breakLine()
			es.write(pad(col) + es.color(MarkerColor, "\\") + "\n")
			col += es.indent
		}
		es.block(name, col)
		es.pending = false
	default:
		es.breakLine()
		es.write(pad(col) + es.color(QuotedColor, quote(name, col+1)))
		es.pending = true
	}
	for i, c := range n.Children {
		es.node(c, depth+1, i == 0 && len(n.Children) == 1)
	}
}

// block writes s indented by col on every line.
func (es *EncState) block(s string, col int) {
	p := pad(col)
	lines := strings.SplitAfter(s, "\n")
	for i, ln := range lines {
		if ln == "" && i == len(lines)-1 {
			break
		}
		es.write(p + es.color(BlockColor, strings.TrimSuffix(ln, "\n")) + "\n")
	}
}

func pad(n int) string {
	return strings.Repeat(" ", n)
}

func hasSpace(s string) bool {
	return strings.ContainsAny(s, " \t\r\n")
}

// blockable reports whether s reads back unchanged from a block. Block
// lines are indented with spaces, so no line may indent with a tab. The
// first line loses its leading whitespace and trailing line breaks are
// chomped.
func blockable(s string) bool {
	switch s[0] {
	case ' ', '\t':
		return false
	}
	switch s[len(s)-1] {
	case '\n', '\r':
		return false
	}
	lines := strings.Split(s, "\n")
	for _, ln := range lines[1:] {
		ws := ln[:len(ln)-len(strings.TrimLeft(ln, " \t"))]
		if strings.IndexByte(ws, '\t') >= 0 {
			return false
		}
	}
	return true
}

// needsQuote reports whether a value without whitespace would read back
// as something else when written bare. A bare "#" followed by a space
// starts a comment.
func needsQuote(s string) bool {
	switch s {
	case "|", "#":
		return true
	}
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '(', ')', ',', '\'', '"':
			return true
		default:
			if c < ' ' || c == 0x7f {
				return true
			}
		}
	}
	return false
}

// quote quotes s, escaping the quote character and backslashes with a
// backslash. Continuation lines are padded by col so that reading them back
// drops exactly the padding.
func quote(s string, col int) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == q || c == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
		if c == '\n' {
			sb.WriteString(pad(col))
		}
	}
	sb.WriteByte(q)
	return sb.String()
}
