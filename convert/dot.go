package convert

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

type dotOpts struct {
	depth int
	root  bool
}

type DotOption func(*dotOpts)

// DotDepth limits output to n levels. Negative means no limit.
func DotDepth(n int) DotOption {
	return func(o *dotOpts) { o.depth = n }
}

// DotRoot includes the node passed to ToDot as well.
func DotRoot(v bool) DotOption {
	return func(o *dotOpts) { o.root = v }
}

// ToDot writes node as a left to right Graphviz digraph. Graph nodes are
// numbered in document order starting at 1.
func ToDot(node *graph.Node, w io.Writer, opts ...DotOption) error {
	o := &dotOpts{depth: -1}
	for _, opt := range opts {
		opt(o)
	}
	bw := bufio.NewWriter(w)
	bw.WriteString("digraph _name_ {\n\n")
	bw.WriteString("  rankdir=\"LR\";\n  node [ color = \"#ff8000\" ];\n  edge [ color = \"#cccccc\" ];\n")
	d := &dotWriter{w: bw, opts: o}
	if o.root {
		d.node(node, 0, 0)
	} else {
		for _, c := range node.Children {
			d.node(c, 0, 0)
		}
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

type dotWriter struct {
	w    *bufio.Writer
	opts *dotOpts
	n    int
}

func (d *dotWriter) node(g *graph.Node, up, depth int) {
	if d.opts.depth >= 0 && depth >= d.opts.depth {
		return
	}
	d.n++
	id := d.n
	fmt.Fprintf(d.w, "  %d [ label = \"%s\" ];\n", id, dotLabel(g.Name))
	if up != 0 {
		fmt.Fprintf(d.w, "  %d -> %d;\n", up, id)
	}
	for _, c := range g.Children {
		d.node(c, id, depth+1)
	}
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

func dotLabel(s string) string {
	return labelEscaper.Replace(s)
}
