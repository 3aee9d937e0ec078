package libdiff

import (
	"bytes"
	"io"
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/ogdl-format/go-ogdl/encode"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// Write prints changes one per line, "op path", followed by the children
// of the deleted or inserted node, indented. A replacement shows the old
// and new names with their differences marked. colors may be nil.
func Write(w io.Writer, changes []Change, colors *encode.Colors) error {
	buf := bytes.NewBuffer(nil)
	for i := range changes {
		c := &changes[i]
		switch c.Op {
		case Delete:
			buf.WriteString(colors.Color(encode.DeleteColor, "- "+c.Path) + "\n")
			if err := body(buf, c.From, colors); err != nil {
				return err
			}
		case Insert:
			buf.WriteString(colors.Color(encode.InsertColor, "+ "+c.Path) + "\n")
			if err := body(buf, c.To, colors); err != nil {
				return err
			}
		case Replace:
			buf.WriteString("~ " + c.Path + " " + nameDiff(c.From.Name, c.To.Name, colors) + "\n")
			if err := body(buf, c.To, colors); err != nil {
				return err
			}
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func body(buf *bytes.Buffer, n *graph.Node, colors *encode.Colors) error {
	if n.Len() == 0 {
		return nil
	}
	sub := bytes.NewBuffer(nil)
	if err := encode.Encode(n, sub, encode.Indent(2), encode.EncodeColors(colors)); err != nil {
		return err
	}
	for _, ln := range strings.SplitAfter(sub.String(), "\n") {
		if ln != "" {
			buf.WriteString("    " + ln)
		}
	}
	return nil
}

// nameDiff renders the character differences between two names as
// [-deleted-]{+inserted+}.
func nameDiff(from, to string, colors *encode.Colors) string {
	dmp := diffpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(from, to, false))
	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString(colors.Color(encode.DeleteColor, "[-"+d.Text+"-]"))
		case diffpatch.DiffInsert:
			sb.WriteString(colors.Color(encode.InsertColor, "{+"+d.Text+"+}"))
		default:
			sb.WriteString(d.Text)
		}
	}
	return strings.Join(strings.Split(sb.String(), "\n"), `\n`)
}
