package graph

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

const (
	// MaxName is the longest name a node may carry, in bytes.
	MaxName = 65534
	// Chunk is the number of child slots added each time a node's
	// children outgrow their capacity.
	Chunk = 16
	// MaxChildren bounds the number of children of a single node.
	MaxChildren = math.MaxInt32

	RootName   = "__root__"
	VectorName = "__vector__"
)

// Node is an ordered tree node. Its children are owned exclusively: a node
// has at most one parent and the structure never contains cycles.
type Node struct {
	Name     string
	Type     string
	Children []*Node

	parent *Node
}

// New creates a detached node. The name must be 1 to MaxName bytes.
func New(name string) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	return &Node{Name: name}, nil
}

// MustNew is like New but panics on an invalid name.
func MustNew(name string) *Node {
	n, err := New(name)
	if err != nil {
		panic(err)
	}
	return n
}

func checkName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}
	if len(name) > MaxName {
		return fmt.Errorf("%w: name of %d bytes exceeds %d", ErrInvalidArgument, len(name), MaxName)
	}
	return nil
}

// Len returns the number of children.
func (g *Node) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Children)
}

// Index returns the i-th child or nil when out of range.
func (g *Node) Index(i int) *Node {
	if g == nil || i < 0 || i >= len(g.Children) {
		return nil
	}
	return g.Children[i]
}

// NameAt returns the name of the i-th child.
func (g *Node) NameAt(i int) (string, bool) {
	c := g.Index(i)
	if c == nil {
		return "", false
	}
	return c.Name, true
}

// Parent returns the node owning g, or nil for a root or detached node.
func (g *Node) Parent() *Node {
	if g == nil {
		return nil
	}
	return g.parent
}

// SetName replaces the node's name.
func (g *Node) SetName(name string) error {
	if g == nil {
		return fmt.Errorf("%w: nil node", ErrInvalidArgument)
	}
	if err := checkName(name); err != nil {
		return err
	}
	g.Name = name
	return nil
}

// AddNode appends child as the last child of g, transferring ownership.
func (g *Node) AddNode(child *Node) error {
	if err := g.adoptable(child); err != nil {
		return err
	}
	n := len(g.Children)
	if n >= MaxChildren {
		return fmt.Errorf("%w: %q has %d children", ErrAllocation, g.Name, n)
	}
	if n == cap(g.Children) {
		grown := make([]*Node, n, n+Chunk)
		copy(grown, g.Children)
		g.Children = grown
	}
	g.Children = append(g.Children, child)
	child.parent = g
	return nil
}

func (g *Node) adoptable(child *Node) error {
	if g == nil {
		return fmt.Errorf("%w: nil parent", ErrInvalidArgument)
	}
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidArgument)
	}
	if child.parent != nil {
		return fmt.Errorf("%w: %q already has a parent", ErrInvalidArgument, child.Name)
	}
	for p := g; p != nil; p = p.parent {
		if p == child {
			return fmt.Errorf("%w: adding %q would create a cycle", ErrInvalidArgument, child.Name)
		}
	}
	return nil
}

// Add creates a node named name and appends it to g.
func (g *Node) Add(name string) (*Node, error) {
	child, err := New(name)
	if err != nil {
		return nil, err
	}
	if err := g.AddNode(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Node returns the first child named name, or nil.
func (g *Node) Node(name string) *Node {
	if g == nil || name == "" {
		return nil
	}
	for _, c := range g.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Detach removes g from its parent's children. The node keeps its subtree.
func (g *Node) Detach() *Node {
	if g == nil || g.parent == nil {
		return g
	}
	p := g.parent
	for i, c := range p.Children {
		if c == g {
			p.Children = slices.Delete(p.Children, i, i+1)
			break
		}
	}
	g.parent = nil
	return g
}

// replace installs child at index i, releasing the previous occupant.
func (g *Node) replace(i int, child *Node) error {
	if err := g.adoptable(child); err != nil {
		return err
	}
	old := g.Children[i]
	g.Children[i] = child
	child.parent = g
	old.parent = nil
	old.release()
	return nil
}

// Release detaches g and recursively releases its subtree. Any reference
// kept to a released node observes an empty, childless node.
func (g *Node) Release() {
	if g == nil {
		return
	}
	g.Detach()
	g.release()
}

func (g *Node) release() {
	for _, c := range g.Children {
		c.parent = nil
		c.release()
	}
	g.Children = nil
	g.Name = ""
	g.Type = ""
}

// Clone returns a deep, detached copy of g.
func (g *Node) Clone() *Node {
	if g == nil {
		return nil
	}
	res := &Node{Name: g.Name, Type: g.Type}
	if len(g.Children) != 0 {
		res.Children = make([]*Node, 0, len(g.Children))
		for _, c := range g.Children {
			cc := c.Clone()
			cc.parent = res
			res.Children = append(res.Children, cc)
		}
	}
	return res
}

// Equal reports whether g and o have the same names and shape.
func (g *Node) Equal(o *Node) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.Name != o.Name || len(g.Children) != len(o.Children) {
		return false
	}
	for i := range g.Children {
		if !g.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Visit walks the tree calling f before (isPost false) and after (isPost
// true) each node's children. Children are skipped when f returns false.
func (g *Node) Visit(f func(g *Node, isPost bool) (bool, error)) error {
	dive, err := f(g, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range g.Children {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(g, true); err != nil {
		return err
	}
	return nil
}

// Root returns the topmost ancestor of g.
func (g *Node) Root() *Node {
	res := g
	for res.parent != nil {
		res = res.parent
	}
	return res
}

// String renders the tree in a compact single line form, a{b c{d}}, for
// diagnostics.
func (g *Node) String() string {
	if g == nil {
		return "<nil>"
	}
	var sb strings.Builder
	g.compact(&sb)
	return sb.String()
}

func (g *Node) compact(sb *strings.Builder) {
	sb.WriteString(g.Name)
	if len(g.Children) == 0 {
		return
	}
	sb.WriteByte('{')
	for i, c := range g.Children {
		if i != 0 {
			sb.WriteByte(' ')
		}
		c.compact(sb)
	}
	sb.WriteByte('}')
}
