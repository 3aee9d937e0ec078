package libdiff

import (
	"strconv"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
	"github.com/signadot/ogdl-format/go-ogdl/graph"
	"github.com/signadot/ogdl-format/go-ogdl/graph/gpath"
)

type Op int

const (
	Delete Op = iota + 1
	Insert
	Replace
)

func (o Op) String() string {
	switch o {
	case Delete:
		return "-"
	case Insert:
		return "+"
	case Replace:
		return "~"
	default:
		return "?"
	}
}

// Change is one difference between two trees. Delete and Replace paths
// address the old tree, Insert paths the new one. From and To point into
// the trees passed to Diff.
type Change struct {
	Op   Op
	Path string
	From *graph.Node
	To   *graph.Node
}

// Diff returns the changes turning the children of from into the children
// of to, in document order. The names of from and to themselves are not
// compared.
func Diff(from, to *graph.Node) []Change {
	var res []Change
	diffChildren(from, to, "", "", &res)
	return res
}

func diffChildren(from, to *graph.Node, fromPrefix, toPrefix string, res *[]Change) {
	codes := map[string]rune{}
	fromRunes := mapNamesTo(codes, from)
	toRunes := mapNamesTo(codes, to)
	diffs := diffpatch.New().DiffMainRunes(fromRunes, toRunes, false)

	fi, ti := 0, 0
	var pending []int
	flush := func() {
		for _, i := range pending {
			*res = append(*res, Change{Op: Delete, Path: step(fromPrefix, from, i), From: from.Children[i]})
		}
		pending = pending[:0]
	}
	for i := range diffs {
		diff := &diffs[i]
		n := len([]rune(diff.Text))
		switch diff.Type {
		case diffpatch.DiffDelete:
			for range n {
				pending = append(pending, fi)
				fi++
			}
		case diffpatch.DiffInsert:
			for range n {
				if len(pending) != 0 {
					*res = append(*res, Change{
						Op:   Replace,
						Path: step(fromPrefix, from, pending[0]),
						From: from.Children[pending[0]],
						To:   to.Children[ti],
					})
					pending = pending[1:]
				} else {
					*res = append(*res, Change{Op: Insert, Path: step(toPrefix, to, ti), To: to.Children[ti]})
				}
				ti++
			}
		case diffpatch.DiffEqual:
			flush()
			for range n {
				diffChildren(from.Children[fi], to.Children[ti],
					step(fromPrefix, from, fi), step(toPrefix, to, ti), res)
				fi++
				ti++
			}
		}
	}
	flush()
}

// mapNamesTo codes the child names of node as runes, one rune per
// distinct name, skipping the surrogate range.
func mapNamesTo(m map[string]rune, node *graph.Node) []rune {
	rs := make([]rune, len(node.Children))
	for i, c := range node.Children {
		r, ok := m[c.Name]
		if !ok {
			r = rune(len(m))
			if r >= 0xd800 {
				r += 0x800
			}
			m[c.Name] = r
		}
		rs[i] = r
	}
	return rs
}

// step extends prefix with the path element of the i-th child of parent.
func step(prefix string, parent *graph.Node, i int) string {
	name := parent.Children[i].Name
	k := 0
	for _, c := range parent.Children[:i] {
		if c.Name == name {
			k++
		}
	}
	elem := name
	if gpath.NeedsQuote(name) {
		elem = gpath.Quote(name)
	}
	if k != 0 {
		elem += "[" + strconv.Itoa(k) + "]"
	}
	if prefix == "" {
		return elem
	}
	return prefix + "." + elem
}
