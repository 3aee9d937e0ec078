package eval

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/debug"
	"github.com/signadot/ogdl-format/go-ogdl/graph"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

type env struct {
	Name  string `expr:"name"`
	Index int    `expr:"index"`
	Size  int    `expr:"size"`
	Value string `expr:"value"`
}

// Filter returns a detached graph.VectorName node holding copies of the
// children of node for which program is true.
func Filter(node *graph.Node, program string) (*graph.Node, error) {
	if node == nil {
		return nil, fmt.Errorf("%w: nil node", graph.ErrInvalidArgument)
	}
	f, err := Compile(program)
	if err != nil {
		return nil, err
	}
	res := graph.MustNew(graph.VectorName)
	for i, c := range node.Children {
		ok, err := f.Match(c, i)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		if err := res.AddNode(c.Clone()); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Program is a compiled filter.
type Program struct {
	src string
	prg *vm.Program
	cur *graph.Node
}

// Compile compiles a filter program. Programs not yielding a boolean are
// rejected.
func Compile(src string) (*Program, error) {
	p := &Program{src: src}
	prg, err := expr.Compile(src, append(p.exprOpts(), expr.Env(env{}), expr.AsBool())...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter %q: %w", src, err)
	}
	p.prg = prg
	return p, nil
}

// Match evaluates the program on n, the i-th child of its parent. A
// Program must not be used by more than one goroutine at a time.
func (p *Program) Match(n *graph.Node, i int) (bool, error) {
	p.cur = n
	defer func() { p.cur = nil }()
	e := env{Name: n.Name, Index: i, Size: n.Len()}
	if v, ok := n.NameAt(0); ok {
		e.Value = v
	}
	res, err := expr.Run(p.prg, e)
	if err != nil {
		return false, fmt.Errorf("filter %q on %s: %w", p.src, n.Path(), err)
	}
	ok, _ := res.(bool)
	if debug.Path() {
		debug.Logf("filter %q on %q: %t", p.src, n.Path(), ok)
	}
	return ok, nil
}
