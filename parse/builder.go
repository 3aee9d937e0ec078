package parse

import (
	"fmt"

	"github.com/signadot/ogdl-format/go-ogdl/graph"
)

// Builder is the Sink assembling events into a tree rooted at a node named
// graph.RootName.
//
// It keeps, for each depth, the node most recently opened there. A text
// event at level L becomes a child of the node open at L and is itself open
// at L+1.
type Builder struct {
	open       []*graph.Node
	maxLevels  int
	skipHeader bool
	header     bool
}

type BuilderOption func(*Builder)

// BuildMaxLevels bounds the depth of the built tree.
func BuildMaxLevels(n int) BuilderOption {
	return func(b *Builder) { b.maxLevels = n }
}

// SkipHeader drops the first text event, which binary streams use as a
// header.
func SkipHeader() BuilderOption {
	return func(b *Builder) { b.skipHeader = true }
}

func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{maxLevels: DefaultMaxLevels}
	for _, f := range opts {
		f(b)
	}
	b.maxLevels = max(b.maxLevels, 2)
	b.Reset()
	return b
}

// Reset discards the tree built so far.
func (b *Builder) Reset() {
	if len(b.open) == 0 {
		b.open = make([]*graph.Node, b.maxLevels)
	} else {
		clear(b.open)
	}
	b.open[0] = graph.MustNew(graph.RootName)
	b.header = false
}

// Root returns the root of the tree built so far.
func (b *Builder) Root() *graph.Node {
	return b.open[0]
}

// Detach returns the built tree and starts a new one.
func (b *Builder) Detach() *graph.Node {
	res := b.open[0]
	b.Reset()
	return res
}

func (b *Builder) Format(int, string) error { return nil }

func (b *Builder) Comment(int, string) error { return nil }

func (b *Builder) Text(level int, text string) error {
	if text == "" {
		return nil
	}
	return b.add(level, text)
}

func (b *Builder) Binary(level int, data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return b.add(level, string(data))
}

func (b *Builder) add(level int, name string) error {
	if b.skipHeader && !b.header {
		b.header = true
		return nil
	}
	if level >= b.maxLevels-1 {
		return fmt.Errorf("%w: level %d", ErrMaxNesting, level)
	}
	if level < 0 {
		return fmt.Errorf("%w: level %d", ErrNegativeNesting, level)
	}
	parent := b.open[level]
	if parent == nil {
		return fmt.Errorf("%w: no open node at level %d", ErrInternal, level)
	}
	n, err := parent.Add(name)
	if err != nil {
		return err
	}
	b.open[level+1] = n
	clear(b.open[level+2:])
	return nil
}
